package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

//go:embed seed/articles.yaml
var defaultSeed []byte

type seedFile struct {
	Articles []Article `yaml:"articles"`
}

// YAMLSource loads articles from YAML seed files. An empty Glob selects the
// seed bundled with the binary.
type YAMLSource struct {
	Glob string
}

func (s YAMLSource) Load(ctx context.Context) ([]Article, error) {
	if s.Glob == "" {
		articles, err := ParseYAML(defaultSeed)
		if err != nil {
			return nil, fmt.Errorf("parse bundled seed: %w", err)
		}
		return articles, nil
	}

	paths, err := doublestar.FilepathGlob(s.Glob)
	if err != nil {
		return nil, fmt.Errorf("expand seed glob %q: %w", s.Glob, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no seed files match %q", s.Glob)
	}
	sort.Strings(paths)

	var articles []Article
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		var file seedFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse seed file %s: %w", path, err)
		}
		articles = append(articles, file.Articles...)
	}
	if err := Normalize(articles); err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	return articles, nil
}

// ParseYAML decodes a single seed document.
func ParseYAML(data []byte) ([]Article, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if err := Normalize(file.Articles); err != nil {
		return nil, err
	}
	return file.Articles, nil
}
