package stx

import (
	"fmt"
	"strings"
)

// Render renders nodes as HTML. Level is the heading level of the outermost
// headings; headings nested below them take the next level. Headings at
// level 0 or beyond 5 are rendered as a bold term of a definition list.
func Render(nodes []Node, level int) string {
	var b strings.Builder
	render(&b, nodes, level)
	return mergeLists(b.String())
}

func render(b *strings.Builder, nodes []Node, level int) {
	for _, n := range nodes {
		c := Classify(n)
		switch c.Kind {
		case KindBullet:
			listItem(b, "ul", c.Text, n.Children, level)

		case KindOrdered, KindOrderedParen:
			listItem(b, "ol", c.Text, n.Children, level)

		case KindDefinition:
			fmt.Fprintf(b, "<dl><dt>%s<dd><p>%s</p>\n", Inline(c.Term), Inline(c.Definition))
			render(b, n.Children, level)
			b.WriteString("\n</dl>\n")

		case KindLiteral:
			paragraph(b, c.Text)
			pre(b, n.Children)
			b.WriteString("\n")

		case KindHeading:
			heading(b, c.Text, n.Children, level)

		default:
			paragraph(b, c.Text)
			render(b, n.Children, level)
			b.WriteString("\n")
		}
	}
}

func listItem(b *strings.Builder, tag, text string, children []Node, level int) {
	b.WriteString("<" + tag + "><li>")
	if text != "" {
		b.WriteString("<p>" + strings.TrimSpace(Inline(text)) + "</p>")
	}
	b.WriteString("\n")
	render(b, children, level)
	b.WriteString("\n</" + tag + ">\n")
}

func heading(b *strings.Builder, text string, children []Node, level int) {
	title := strings.TrimSpace(Inline(text))
	if level > 0 && level < 6 {
		fmt.Fprintf(b, "<h%d>%s</h%d>\n", level, title, level)
		render(b, children, level+1)
		b.WriteString("\n")
		return
	}
	fmt.Fprintf(b, "<dl><dt><p><strong>%s</strong></p>\n<dd>", title)
	if level > 0 {
		level++
	}
	render(b, children, level)
	b.WriteString("\n</dl>\n")
}

func paragraph(b *strings.Builder, text string) {
	b.WriteString("<p>" + Inline(text) + "</p>\n")
}

// pre writes nodes verbatim inside a single <pre> element. Paragraphs are
// separated by a blank line and keep their indentation relative to the
// shallowest paragraph of the block.
func pre(b *strings.Builder, nodes []Node) {
	if len(nodes) == 0 {
		return
	}
	base := nodes[0].Level
	for _, n := range nodes[1:] {
		base = min(base, n.Level)
	}
	b.WriteString("<pre>\n")
	preBody(b, nodes, base)
	b.WriteString("</pre>\n")
}

func preBody(b *strings.Builder, nodes []Node, base int) {
	for _, n := range nodes {
		b.WriteString(Quote(Indent(n.Text, n.Level-base)))
		b.WriteString("\n\n")
		preBody(b, n.Children, base)
	}
}

// mergeLists joins lists of the same kind that were closed and immediately
// reopened by consecutive items.
func mergeLists(s string) string {
	for _, tag := range []string{"dl", "ul", "ol"} {
		s = strings.ReplaceAll(s, "</"+tag+">\n<"+tag+">", "\n")
	}
	return s
}
