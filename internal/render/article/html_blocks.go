package article

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	nethtml "golang.org/x/net/html"
)

func (r htmlArticleRenderer) renderNodes(nodes []*nethtml.Node, depth int) []string {
	var lines []string
	var pending []string

	appendBlock := func(block []string) {
		if len(block) == 0 {
			return
		}
		if len(lines) > 0 && lines[len(lines)-1] != "" {
			lines = append(lines, "")
		}
		lines = append(lines, block...)
	}
	flush := func() {
		text := normalizeInlineText(strings.Join(pending, " "))
		pending = pending[:0]
		if text != "" {
			appendBlock(wrapText(text, r.width))
		}
	}

	for _, node := range nodes {
		switch node.Type {
		case nethtml.TextNode:
			pending = append(pending, node.Data)
		case nethtml.ElementNode:
			if !isBlockElement(node.Data) {
				pending = append(pending, r.renderInlineNode(node))
				continue
			}
			flush()
			appendBlock(r.renderBlock(node, depth))
		}
	}
	flush()
	return trimBlankLines(lines)
}

func (r htmlArticleRenderer) renderBlock(node *nethtml.Node, depth int) []string {
	tag := strings.ToLower(node.Data)
	switch tag {
	case "script", "style", "noscript":
		return nil
	case "h1", "h2", "h3", "h4", "h5", "h6":
		text := normalizeInlineText(r.renderInlineChildren(node))
		prefix := headingStyle.Render("▌") + " "
		return styleNonBlankLines(wrapPrefixedText(text, r.width, prefix, "  "), headingStyle)
	case "blockquote":
		inner := r.renderNodes(elementChildren(node), depth)
		out := make([]string, 0, len(inner))
		for _, line := range inner {
			if strings.TrimSpace(line) == "" {
				out = append(out, "")
				continue
			}
			out = append(out, quotePrefix+quoteStyle.Render(line))
		}
		return out
	case "ul", "ol":
		return r.renderList(node, tag == "ol", depth+1)
	case "li":
		return r.renderListItem(node, depth, "• ")
	case "figcaption", "caption":
		text := normalizeInlineText(r.renderInlineChildren(node))
		return styleNonBlankLines(wrapPrefixedText(text, r.width, "~ ", "  "), captionStyle)
	case "img":
		if r.opts.ImageMode == ImageModeNone {
			return nil
		}
		return imageLabel(node, r.width)
	case "pre":
		text := strings.ReplaceAll(collectRawText(node), "\r\n", "\n")
		var out []string
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimRight(line, " \t")
			if line != "" {
				line = "    " + codeStyle.Render(line)
			}
			out = append(out, line)
		}
		return trimBlankLines(out)
	case "hr":
		return []string{ruleStyle.Render(strings.Repeat("─", min(max(r.width, 3), 24)))}
	}

	if hasBlockChild(node) {
		return r.renderNodes(elementChildren(node), depth)
	}
	text := normalizeInlineText(r.renderInlineChildren(node))
	if text == "" {
		return nil
	}
	return wrapText(text, r.width)
}

func (r htmlArticleRenderer) renderList(node *nethtml.Node, ordered bool, depth int) []string {
	var lines []string
	n := 0
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != nethtml.ElementNode || !strings.EqualFold(child.Data, "li") {
			continue
		}
		n++
		marker := bulletFor(depth)
		if ordered {
			marker = fmt.Sprintf("%d. ", n)
		}
		lines = append(lines, r.renderListItem(child, depth, marker)...)
	}
	return lines
}

func (r htmlArticleRenderer) renderListItem(node *nethtml.Node, depth int, marker string) []string {
	indent := strings.Repeat("  ", max(0, depth-1))
	var parts []string
	var nested []string
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == nethtml.ElementNode {
			switch strings.ToLower(child.Data) {
			case "ul":
				nested = append(nested, r.renderList(child, false, depth+1)...)
				continue
			case "ol":
				nested = append(nested, r.renderList(child, true, depth+1)...)
				continue
			}
		}
		parts = append(parts, r.renderInlineNode(child))
	}
	lines := wrapPrefixedText(
		strings.Join(parts, " "),
		r.width,
		indent+marker,
		indent+strings.Repeat(" ", visibleLen(marker)),
	)
	return append(lines, nested...)
}

func imageLabel(node *nethtml.Node, width int) []string {
	text := normalizeInlineText(nodeAttr(node, "alt"))
	if text == "" {
		text = normalizeInlineText(nodeAttr(node, "title"))
	}
	line := imageLabelStyle.Render("[image]")
	if text != "" {
		line += " " + imageTextStyle.Render(text)
	}
	return wrapText(line, max(1, width))
}

func wrapPrefixedText(text string, width int, firstPrefix, restPrefix string) []string {
	text = normalizeInlineText(text)
	if text == "" {
		return nil
	}
	lineWidth := max(1, width-max(visibleLen(firstPrefix), visibleLen(restPrefix)))
	var out []string
	for i, line := range wrapText(text, lineWidth) {
		if i == 0 {
			out = append(out, firstPrefix+line)
			continue
		}
		out = append(out, restPrefix+line)
	}
	return out
}

func bulletFor(depth int) string {
	switch depth {
	case 1:
		return "• "
	case 2:
		return "◦ "
	default:
		return "▪ "
	}
}

func styleNonBlankLines(lines []string, style lipgloss.Style) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			out[i] = line
			continue
		}
		out[i] = style.Render(line)
	}
	return out
}

func isBlockElement(tag string) bool {
	switch strings.ToLower(tag) {
	case "h1", "h2", "h3", "h4", "h5", "h6",
		"p", "div", "section", "article", "main", "header", "footer", "aside", "nav",
		"blockquote", "ul", "ol", "li", "table", "thead", "tbody", "tfoot", "tr", "img",
		"pre", "figure", "figcaption", "caption", "hr":
		return true
	}
	return false
}

func hasBlockChild(node *nethtml.Node) bool {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == nethtml.ElementNode && isBlockElement(child.Data) {
			return true
		}
	}
	return false
}
