package doctree

import (
	"strings"

	"github.com/dgallion1/stxdoc/internal/stx"
)

// Builder assembles a DocTree from a flat stream of headings and body
// paragraphs, nesting each heading under the last heading of a lower level.
type Builder struct {
	title string
	root  *DocNode
	stack []stackEntry
	paras []string
	page  int
}

type stackEntry struct {
	node  *DocNode
	level int
}

// NewBuilder starts a tree with the given title. Root is level 0, so every
// heading of level 1 or more nests under it.
func NewBuilder(title string) *Builder {
	root := &DocNode{Title: title}
	return &Builder{
		title: title,
		root:  root,
		stack: []stackEntry{{node: root, level: 0}},
	}
}

// Heading opens a new section. Pending body text goes to the section being
// closed.
func (b *Builder) Heading(level int, title string) {
	title = strings.Join(strings.Fields(title), " ")
	if title == "" {
		return
	}
	b.flush()
	node := &DocNode{Title: title, Page: b.page}

	// Pop stack until we find a parent with lower level.
	for len(b.stack) > 1 && b.stack[len(b.stack)-1].level >= level {
		b.stack = b.stack[:len(b.stack)-1]
	}
	parent := b.stack[len(b.stack)-1].node
	parent.Children = append(parent.Children, node)
	b.stack = append(b.stack, stackEntry{node: node, level: level})
}

// Text adds a body paragraph to the current section. It may itself be
// structured text spanning several paragraphs.
func (b *Builder) Text(text string) {
	text = strings.Trim(text, "\n")
	if strings.TrimSpace(text) == "" {
		return
	}
	b.paras = append(b.paras, text)
}

// Literal adds a block that must be reproduced verbatim. The preceding
// paragraph introduces it when it ends in a colon; otherwise an "Example::"
// paragraph is added.
func (b *Builder) Literal(code string) {
	code = strings.TrimRight(code, "\n ")
	if strings.TrimSpace(code) == "" {
		return
	}
	last := ""
	if n := len(b.paras); n > 0 {
		last = strings.TrimRight(b.paras[n-1], " ")
		if strings.HasSuffix(last, ":") && !strings.HasSuffix(last, "::") {
			b.paras[n-1] = last + ":"
		}
	}
	if !strings.HasSuffix(last, ":") {
		b.paras = append(b.paras, "Example::")
	}
	b.paras = append(b.paras, stx.Reindent(code, 2))
}

// SetPage records the source page for sections opened from now on.
func (b *Builder) SetPage(page int) { b.page = page }

// Tree finishes the document. If there were no headings, all text ends up in
// a single untitled child.
func (b *Builder) Tree() *DocTree {
	b.flush()
	tree := &DocTree{Title: b.title, Children: b.root.Children}
	if len(tree.Children) == 0 && b.root.Text != "" {
		tree.Children = []*DocNode{{Text: b.root.Text, Page: b.page}}
	}
	return tree
}

func (b *Builder) flush() {
	if len(b.paras) == 0 {
		return
	}
	top := b.stack[len(b.stack)-1].node
	text := strings.Join(b.paras, "\n\n")
	if top.Text != "" {
		top.Text += "\n\n" + text
	} else {
		top.Text = text
	}
	b.paras = b.paras[:0]
}
