package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	article "github.com/glabrego/cardfeed/internal/render/article"
	"github.com/glabrego/cardfeed/internal/storage"
)

const (
	defaultViewer        = "You"
	defaultLogLevel      = "info"
	defaultLimit         = 50
	defaultImages        = "label"
	defaultMarkdownStyle = "dark"
)

// Config holds runtime settings for the feed viewer.
type Config struct {
	SeedGlob string
	FeedPath string
	DBPath   string
	Viewer   string
	LogLevel string
	LogFile  string
	Limit    int
	// Images is "label" or "none".
	Images        string
	MarkdownStyle string
}

// Overrides are explicitly set command line values. Nil fields keep what the
// environment provided.
type Overrides struct {
	SeedGlob      *string
	FeedPath      *string
	DBPath        *string
	Viewer        *string
	LogLevel      *string
	LogFile       *string
	Limit         *int
	Images        *string
	MarkdownStyle *string
}

// FromEnv reads CARDFEED_* variables without defaults or validation.
func FromEnv() (Config, error) {
	cfg := Config{
		SeedGlob:      os.Getenv("CARDFEED_SEED"),
		FeedPath:      os.Getenv("CARDFEED_FEED"),
		DBPath:        os.Getenv("CARDFEED_DB_PATH"),
		Viewer:        os.Getenv("CARDFEED_VIEWER"),
		LogLevel:      os.Getenv("CARDFEED_LOG_LEVEL"),
		LogFile:       os.Getenv("CARDFEED_LOG_FILE"),
		Images:        os.Getenv("CARDFEED_IMAGES"),
		MarkdownStyle: os.Getenv("CARDFEED_MARKDOWN_STYLE"),
	}
	if raw := os.Getenv("CARDFEED_LIMIT"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("CARDFEED_LIMIT must be a number: %q", raw)
		}
		cfg.Limit = limit
	}
	return cfg, nil
}

func LoadFromEnv() (Config, error) {
	return Resolve(Overrides{})
}

// Resolve layers overrides on top of the environment, fills defaults and
// validates the result once.
func Resolve(o Overrides) (Config, error) {
	cfg, err := FromEnv()
	if err != nil {
		return Config{}, err
	}
	cfg.ApplyDefaults()
	cfg.Override(o)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Override applies the set fields of o. A seed glob given on its own
// replaces a feed path from the environment and vice versa.
func (c *Config) Override(o Overrides) {
	switch {
	case o.SeedGlob != nil && o.FeedPath != nil:
		c.SeedGlob, c.FeedPath = *o.SeedGlob, *o.FeedPath
	case o.SeedGlob != nil:
		c.SeedGlob, c.FeedPath = *o.SeedGlob, ""
	case o.FeedPath != nil:
		c.SeedGlob, c.FeedPath = "", *o.FeedPath
	}
	setString(&c.DBPath, o.DBPath)
	setString(&c.Viewer, o.Viewer)
	setString(&c.LogLevel, o.LogLevel)
	setString(&c.LogFile, o.LogFile)
	setString(&c.Images, o.Images)
	setString(&c.MarkdownStyle, o.MarkdownStyle)
	if o.Limit != nil {
		c.Limit = *o.Limit
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// RenderOptions maps the body rendering settings onto the renderer.
func (c Config) RenderOptions() article.Options {
	opts := article.Options{ImageMode: article.ImageModeLabel, MarkdownStyle: c.MarkdownStyle}
	if c.Images == "none" {
		opts.ImageMode = article.ImageModeNone
	}
	return opts
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.DBPath == "" {
		c.DBPath = storage.MemoryDSN
	}
	if c.Viewer == "" {
		c.Viewer = defaultViewer
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.Limit == 0 {
		c.Limit = defaultLimit
	}
	if c.Images == "" {
		c.Images = defaultImages
	}
	if c.MarkdownStyle == "" {
		c.MarkdownStyle = defaultMarkdownStyle
	}
}

func (c Config) Validate() error {
	var errs criterio.FieldErrorsBuilder
	if c.Limit < 1 {
		errs = errs.Append("limit", fmt.Errorf("must be at least 1, got %d", c.Limit))
	}
	if c.SeedGlob != "" && c.FeedPath != "" {
		errs = errs.Append("feed", errors.New("cannot be combined with a seed glob"))
	}

	return criterio.ValidateStruct(
		criterio.Run("log_level", c.LogLevel, validLogLevel),
		criterio.Run("viewer", c.Viewer, notBlank),
		criterio.Run("db_path", c.DBPath, notBlank),
		criterio.Run("feed", c.FeedPath, fileExists),
		criterio.Run("images", c.Images, validImageMode),
		criterio.Run("markdown_style", c.MarkdownStyle, notBlank),
		errs.ToError(),
	)
}

func validLogLevel(level string) error {
	if _, err := zerolog.ParseLevel(level); err != nil {
		return fmt.Errorf("unknown log level %q", level)
	}
	return nil
}

func validImageMode(mode string) error {
	switch mode {
	case "label", "none":
		return nil
	}
	return fmt.Errorf("must be label or none, got %q", mode)
}

func notBlank(v string) error {
	if v == "" {
		return errors.New("cannot be empty")
	}
	return nil
}

func fileExists(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	return nil
}
