package stx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	child := []Node{{Text: "child", Level: 2}}
	for _, tc := range []struct {
		name string
		node Node
		want Class
	}{
		{"dash bullet", Node{Text: "- item"}, Class{Kind: KindBullet, Marker: "-", Text: "item"}},
		{"star bullet", Node{Text: "* item"}, Class{Kind: KindBullet, Marker: "*", Text: "item"}},
		{"o bullet", Node{Text: "o item"}, Class{Kind: KindBullet, Marker: "o", Text: "item"}},
		{"word starting with o", Node{Text: "once upon"}, Class{Kind: KindParagraph, Text: "once upon"}},
		{"emphasis is not a bullet", Node{Text: "*very* nice"}, Class{Kind: KindParagraph, Text: "*very* nice"}},
		{"numbered", Node{Text: "1. first"}, Class{Kind: KindOrdered, Marker: "1.", Text: "first"}},
		{"multi-level", Node{Text: "1.2.3. deep"}, Class{Kind: KindOrdered, Marker: "1.2.3.", Text: "deep"}},
		{"alphabetic", Node{Text: "b) second"}, Class{Kind: KindOrdered, Marker: "b)", Text: "second"}},
		{"parenthesized", Node{Text: "(3) third"}, Class{Kind: KindOrderedParen, Marker: "(3)", Text: "third"}},
		{"definition", Node{Text: "Term -- Definition text"}, Class{Kind: KindDefinition, Term: "Term", Definition: "Definition text"}},
		{"definition splits at last marker", Node{Text: "a -- b -- c"}, Class{Kind: KindDefinition, Term: "a -- b", Definition: "c"}},
		{"bullet before definition", Node{Text: "- a -- b"}, Class{Kind: KindBullet, Marker: "-", Text: "a -- b"}},
		{"double colon", Node{Text: "Code::", Children: child}, Class{Kind: KindLiteral, Text: "Code:"}},
		{"double colon without children", Node{Text: "Code::"}, Class{Kind: KindParagraph, Text: "Code::"}},
		{"example colon", Node{Text: "For example:", Children: child}, Class{Kind: KindLiteral, Text: "For example:"}},
		{"examples", Node{Text: "Some examples", Children: child}, Class{Kind: KindLiteral, Text: "Some examples"}},
		{"example is case sensitive", Node{Text: "Example:", Children: child}, Class{Kind: KindParagraph, Text: "Example:"}},
		{"heading", Node{Text: "Title", Children: child}, Class{Kind: KindHeading, Text: "Title"}},
		{"single line without children", Node{Text: "Title"}, Class{Kind: KindParagraph, Text: "Title"}},
		{"colon is not a heading", Node{Text: "Intro:", Children: child}, Class{Kind: KindParagraph, Text: "Intro:"}},
		{"multi-line is not a heading", Node{Text: "two\nlines", Children: child}, Class{Kind: KindParagraph, Text: "two\nlines"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.node))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "OrderedParen", KindOrderedParen.String())
	assert.Equal(t, "InvalidKind", Kind(42).String())
}
