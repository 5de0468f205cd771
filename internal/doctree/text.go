package doctree

import (
	"strings"

	"github.com/dgallion1/stxdoc/internal/stx"
)

// StructuredText flattens a tree into structured text. Section titles become
// paragraphs indented two spaces per depth, with their body and subsections
// indented one step further, so each titled section with content renders as
// a heading. The tree title heads the whole document unless the document
// already consists of a single titled section.
func StructuredText(tree *DocTree) string {
	var parts []string
	depth := 0
	single := len(tree.Children) == 1 && tree.Children[0].Title != ""
	if title := cleanTitle(tree.Title); title != "" && len(tree.Children) > 0 && !single {
		parts = append(parts, title)
		depth = 1
	}
	for _, n := range tree.Children {
		parts = appendNode(parts, n, depth)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func appendNode(parts []string, n *DocNode, depth int) []string {
	inner := depth
	if title := cleanTitle(n.Title); title != "" {
		parts = append(parts, stx.Indent(title, 2*depth))
		inner = depth + 1
	}
	if strings.TrimSpace(n.Text) != "" {
		parts = append(parts, stx.Reindent(n.Text, 2*inner))
	}
	for _, c := range n.Children {
		parts = appendNode(parts, c, inner)
	}
	return parts
}

// cleanTitle collapses a title onto one line and drops trailing colons, which
// would otherwise turn the heading into a plain or literal-introducing
// paragraph.
func cleanTitle(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimRight(s, ":")
}
