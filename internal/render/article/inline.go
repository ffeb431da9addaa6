package article

import (
	"html"
	"strings"

	nethtml "golang.org/x/net/html"
)

var punctuationSpacing = strings.NewReplacer(
	" .", ".",
	" ,", ",",
	" ;", ";",
	" :", ":",
	" !", "!",
	" ?", "?",
	" )", ")",
	"( ", "(",
)

func (r htmlArticleRenderer) renderInlineChildren(node *nethtml.Node) string {
	var parts []string
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		parts = append(parts, r.renderInlineNode(child))
	}
	return strings.Join(parts, " ")
}

func (r htmlArticleRenderer) renderInlineNode(node *nethtml.Node) string {
	switch node.Type {
	case nethtml.TextNode:
		return node.Data
	case nethtml.ElementNode:
	default:
		return ""
	}

	switch strings.ToLower(node.Data) {
	case "script", "style", "noscript", "img":
		return ""
	case "br":
		return "\n"
	case "a":
		text := normalizeInlineText(r.renderInlineChildren(node))
		href := nodeAttr(node, "href")
		switch {
		case href == "":
			return text
		case text == "" || strings.EqualFold(text, href):
			return linkStyle.Render(href)
		}
		return text + " " + linkStyle.Render("("+href+")")
	case "code", "kbd", "samp":
		if text := normalizeInlineText(r.renderInlineChildren(node)); text != "" {
			return codeStyle.Render("`" + text + "`")
		}
		return ""
	case "strong", "b":
		if text := normalizeInlineText(r.renderInlineChildren(node)); text != "" {
			return strongStyle.Render(text)
		}
		return ""
	case "em", "i":
		if text := normalizeInlineText(r.renderInlineChildren(node)); text != "" {
			return emphasisStyle.Render(text)
		}
		return ""
	}
	return r.renderInlineChildren(node)
}

// normalizeInlineText unescapes entities and collapses whitespace inside
// each line, dropping empty lines.
func normalizeInlineText(s string) string {
	s = html.UnescapeString(s)
	var out []string
	for _, part := range strings.Split(s, "\n") {
		if part = strings.Join(strings.Fields(part), " "); part != "" {
			out = append(out, part)
		}
	}
	return punctuationSpacing.Replace(strings.Join(out, "\n"))
}
