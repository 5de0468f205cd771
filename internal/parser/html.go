package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dgallion1/stxdoc/internal/doctree"
	"github.com/dgallion1/stxdoc/internal/stx"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	title := titleFromFilename(filename)
	// Extract title from <title> tag if present.
	if t := findTitle(doc); t != "" {
		title = t
	}
	b := doctree.NewBuilder(title)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				b.Heading(level, textContent(n))
				return
			}

			// Skip non-content elements.
			switch n.Data {
			case "script", "style", "nav", "footer", "header", "head":
				return
			case "p", "td", "th", "blockquote", "dd", "dt", "caption":
				b.Text(inlineHTML(n))
				return
			case "ul", "ol":
				b.Text(htmlList(n))
				return
			case "dl":
				b.Text(htmlDefinitions(n))
				return
			case "pre":
				b.Literal(rawText(n))
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	// Find <body> or use whole document.
	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return b.Tree(), nil
}

// htmlList renders <ul> and <ol> items. Nested lists are indented under
// their item.
func htmlList(list *html.Node) string {
	var items []string
	num := 1
	if s, err := strconv.Atoi(attr(list, "start")); err == nil {
		num = s
	}
	for li := list.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		marker := "-"
		if list.Data == "ol" {
			marker = strconv.Itoa(num) + "."
			num++
		}

		var text strings.Builder
		var nested []string
		for c := li.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
				nested = append(nested, htmlList(c))
				continue
			}
			writeInlineHTML(&text, c)
		}
		entry := marker + " " + collapse(text.String())
		for _, n := range nested {
			if n != "" {
				entry += "\n\n" + stx.Indent(n, 2)
			}
		}
		items = append(items, strings.TrimRight(entry, " "))
	}
	return strings.Join(items, "\n\n")
}

// htmlDefinitions renders a <dl> as "term -- definition" items.
func htmlDefinitions(dl *html.Node) string {
	var items []string
	term := ""
	for c := dl.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "dt":
			term = inlineHTML(c)
		case "dd":
			def := inlineHTML(c)
			if term == "" {
				items = append(items, def)
			} else {
				items = append(items, term+" -- "+def)
			}
			term = ""
		}
	}
	return strings.Join(items, "\n\n")
}

// inlineHTML returns the text of n on one line, with emphasis, code and
// links kept as structured text markup.
func inlineHTML(n *html.Node) string {
	var buf strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeInlineHTML(&buf, c)
	}
	return collapse(buf.String())
}

func writeInlineHTML(buf *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		buf.WriteString(n.Data)
		return
	}
	if n.Type != html.ElementNode {
		return
	}
	inner := func() string {
		var b strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeInlineHTML(&b, c)
		}
		return collapse(b.String())
	}
	switch n.Data {
	case "script", "style":
	case "em", "i":
		buf.WriteString("*" + inner() + "*")
	case "strong", "b":
		buf.WriteString("**" + inner() + "**")
	case "u":
		buf.WriteString("_" + inner() + "_")
	case "code", "tt", "kbd":
		buf.WriteString("'" + inner() + "'")
	case "a":
		if href := attr(n, "href"); href != "" {
			buf.WriteString(`"` + inner() + `":` + href)
		} else {
			buf.WriteString(inner())
		}
	default:
		buf.WriteString(inner())
	}
}

// rawText returns the text of n exactly as written.
func rawText(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

func textContent(n *html.Node) string {
	return collapse(rawText(n))
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// collapse squeezes runs of whitespace, including line breaks, to a single
// space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
