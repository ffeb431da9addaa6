// Package article turns an article body into terminal lines for the
// reading overlay.
package article

import (
	"html"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	nethtml "golang.org/x/net/html"

	"github.com/glabrego/cardfeed/internal/catalog"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type ImageMode int

const (
	ImageModeLabel ImageMode = iota
	ImageModeNone
)

type Options struct {
	ImageMode ImageMode
	// MarkdownStyle is a glamour style path such as "dark" or "notty".
	MarkdownStyle string
}

var DefaultOptions = Options{
	ImageMode:     ImageModeLabel,
	MarkdownStyle: "dark",
}

func withDefaults(opts Options) Options {
	out := opts
	if out.ImageMode != ImageModeLabel && out.ImageMode != ImageModeNone {
		out.ImageMode = DefaultOptions.ImageMode
	}
	if out.MarkdownStyle == "" {
		out.MarkdownStyle = DefaultOptions.MarkdownStyle
	}
	return out
}

type htmlArticleRenderer struct {
	width int
	opts  Options
}

func ContentLines(a catalog.Article, width int) []string {
	return ContentLinesWithOptions(a, width, DefaultOptions)
}

// ContentLinesWithOptions renders the body according to its format. An empty
// body falls back to the summary, and a body that renders to nothing falls
// back to wrapped plain text.
func ContentLinesWithOptions(a catalog.Article, width int, opts Options) []string {
	opts = withDefaults(opts)
	body := strings.TrimSpace(a.Body)
	if body == "" {
		summary := strings.TrimSpace(a.Summary)
		if summary == "" {
			return nil
		}
		return wrapText(summary, width)
	}

	switch a.BodyFormat {
	case catalog.FormatHTML:
		if lines := renderHTMLFragmentLines(body, width, opts); len(lines) > 0 {
			return lines
		}
		return wrapText(strings.TrimSpace(html.UnescapeString(body)), width)
	case catalog.FormatMarkdown:
		if lines, err := renderMarkdownLines(body, width, opts.MarkdownStyle); err == nil && len(lines) > 0 {
			return lines
		}
	}
	return trimBlankLines(wrapText(body, width))
}

func renderHTMLFragmentLines(raw string, width int, opts Options) []string {
	doc, err := nethtml.Parse(strings.NewReader("<html><body>" + raw + "</body></html>"))
	if err != nil {
		return nil
	}
	body := findBodyNode(doc)
	if body == nil {
		return nil
	}
	renderer := htmlArticleRenderer{width: max(1, width), opts: opts}
	return trimBlankLines(renderer.renderNodes(elementChildren(body), 0))
}

func trimBlankLines(lines []string) []string {
	if len(lines) == 0 {
		return lines
	}
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines) - 1
	for end >= start && strings.TrimSpace(lines[end]) == "" {
		end--
	}
	if end < start {
		return nil
	}
	out := make([]string, 0, end-start+1)
	prevBlank := false
	for i := start; i <= end; i++ {
		blank := strings.TrimSpace(lines[i]) == ""
		if blank && prevBlank {
			continue
		}
		out = append(out, lines[i])
		prevBlank = blank
	}
	return out
}

// wrapText wraps each line of text to width display cells. Words wider
// than the line are split.
func wrapText(text string, width int) []string {
	if width < 1 {
		return []string{text}
	}
	paragraphs := strings.Split(text, "\n")
	out := make([]string, 0, len(paragraphs))

	for _, p := range paragraphs {
		words := strings.Fields(p)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range words {
			for visibleLen(word) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				head, tail := splitAtWidth(word, width)
				out = append(out, head)
				word = tail
			}

			if line == "" {
				line = word
				continue
			}
			if visibleLen(line)+1+visibleLen(word) <= width {
				line += " " + word
				continue
			}
			out = append(out, line)
			line = word
		}
		if line != "" {
			out = append(out, line)
		}
	}

	return out
}

func splitAtWidth(word string, width int) (string, string) {
	cells := 0
	for i, r := range word {
		w := runewidth.RuneWidth(r)
		if cells+w > width && i > 0 {
			return word[:i], word[i:]
		}
		cells += w
	}
	return word, ""
}

func visibleLen(s string) int {
	return runewidth.StringWidth(stripANSI(s))
}

func stripANSI(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}

func findBodyNode(node *nethtml.Node) *nethtml.Node {
	if node == nil {
		return nil
	}
	if node.Type == nethtml.ElementNode && strings.EqualFold(node.Data, "body") {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findBodyNode(child); found != nil {
			return found
		}
	}
	return nil
}

func elementChildren(node *nethtml.Node) []*nethtml.Node {
	children := make([]*nethtml.Node, 0, 4)
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == nethtml.TextNode && strings.TrimSpace(child.Data) == "" {
			continue
		}
		children = append(children, child)
	}
	return children
}

func nodeAttr(node *nethtml.Node, name string) string {
	for _, attr := range node.Attr {
		if strings.EqualFold(attr.Key, name) {
			return strings.TrimSpace(attr.Val)
		}
	}
	return ""
}

func collectRawText(node *nethtml.Node) string {
	if node == nil {
		return ""
	}
	if node.Type == nethtml.TextNode {
		return node.Data
	}
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(collectRawText(child))
	}
	return b.String()
}

// WrapText wraps plain text to width display cells, keeping line breaks.
func WrapText(text string, width int) []string {
	return wrapText(text, width)
}
