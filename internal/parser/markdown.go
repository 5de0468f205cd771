package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/stxdoc/internal/doctree"
	"github.com/dgallion1/stxdoc/internal/stx"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Inline markup is
// rewritten to its structured text form: *em*, **strong**, 'code' and
// "text":url links.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))
	b := doctree.NewBuilder(titleFromFilename(filename))

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			b.Heading(node.Level, plainText(node, src))
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			b.Literal(blockLines(n, src))
		case *ast.List:
			b.Text(markdownList(node, src))
		case *ast.ThematicBreak, *ast.HTMLBlock:
		default:
			b.Text(markdownBlock(n, src))
		}
	}
	return b.Tree(), nil
}

// markdownList renders a list as structured text items. Content after the
// first paragraph of an item, nested lists included, is indented beneath it.
func markdownList(list *ast.List, src []byte) string {
	var items []string
	num := list.Start
	if num == 0 {
		num = 1
	}
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "-"
		if list.IsOrdered() {
			marker = fmt.Sprintf("%d.", num)
			num++
		}
		var parts []string
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			var t string
			switch c := c.(type) {
			case *ast.List:
				t = markdownList(c, src)
			case *ast.FencedCodeBlock, *ast.CodeBlock:
				t = "Example::\n\n" + stx.Indent(blockLines(c, src), 2)
			default:
				t = markdownBlock(c, src)
			}
			if t != "" {
				parts = append(parts, t)
			}
		}
		if len(parts) == 0 {
			continue
		}
		entry := marker + " " + parts[0]
		for _, p := range parts[1:] {
			entry += "\n\n" + stx.Indent(p, 2)
		}
		items = append(items, strings.TrimRight(entry, " "))
	}
	return strings.Join(items, "\n\n")
}

// markdownBlock returns the structured text of a non-list block.
func markdownBlock(n ast.Node, src []byte) string {
	switch node := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return inlineText(node, src)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return "Example::\n\n" + stx.Indent(blockLines(node, src), 2)
	case *ast.List:
		return markdownList(node, src)
	}
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := markdownBlock(c, src); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}

// inlineText gets the text content of a goldmark inline container, with
// emphasis, code spans and links kept as structured text markup.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	writeInline(&buf, n, src)
	return strings.TrimSpace(buf.String())
}

func writeInline(buf *bytes.Buffer, n ast.Node, src []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			buf.Write(c.Segment.Value(src))
			if c.HardLineBreak() || c.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(c.Value)
		case *ast.Emphasis:
			mark := strings.Repeat("*", c.Level)
			buf.WriteString(mark)
			writeInline(buf, c, src)
			buf.WriteString(mark)
		case *ast.CodeSpan:
			buf.WriteByte('\'')
			writeInline(buf, c, src)
			buf.WriteByte('\'')
		case *ast.Link:
			buf.WriteByte('"')
			writeInline(buf, c, src)
			buf.WriteString(`":`)
			buf.Write(c.Destination)
		case *ast.AutoLink:
			buf.Write(c.URL(src))
		default:
			writeInline(buf, c, src)
		}
	}
}

// plainText is inlineText without markup, for headings.
func plainText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch c := c.(type) {
			case *ast.Text:
				buf.Write(c.Segment.Value(src))
				if c.SoftLineBreak() {
					buf.WriteByte(' ')
				}
			case *ast.String:
				buf.Write(c.Value)
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}

// blockLines returns the raw lines of a code block.
func blockLines(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	return strings.TrimRight(buf.String(), "\n")
}
