package article

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

func renderMarkdownLines(src string, width int, style string) ([]string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(max(1, width)),
	)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(src)
	if err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return trimBlankLines(lines), nil
}
