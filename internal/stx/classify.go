package stx

import (
	"regexp"
	"strings"
)

// Kind is the classification of a paragraph, decided from its leading text
// and whether it has children.
type Kind int

const (
	KindParagraph Kind = iota
	KindBullet
	KindOrdered
	KindOrderedParen
	KindDefinition
	KindLiteral
	KindHeading
)

func (k Kind) String() string {
	switch k {
	case KindParagraph:
		return "Paragraph"
	case KindBullet:
		return "Bullet"
	case KindOrdered:
		return "Ordered"
	case KindOrderedParen:
		return "OrderedParen"
	case KindDefinition:
		return "Definition"
	case KindLiteral:
		return "Literal"
	case KindHeading:
		return "Heading"
	default:
		return "InvalidKind"
	}
}

// Class is a classified paragraph. Which fields are set depends on Kind:
// list items carry Marker and Text, definitions carry Term and Definition,
// the rest carry Text only.
type Class struct {
	Kind       Kind
	Marker     string
	Text       string
	Term       string
	Definition string
}

var (
	bulletRe  = regexp.MustCompile(`^[ \t\n]*([o*-])[ \t\n]+((?s:.*))`)
	olRe      = regexp.MustCompile(`^[ \t]*((?:(?:[0-9]+|[a-zA-Z]+)[.)])+)[ \t\n]+((?s:.*))`)
	olpRe     = regexp.MustCompile(`^[ \t]*(\([0-9]+\))[ \t\n]+((?s:.*))`)
	dlRe      = regexp.MustCompile(`^([^\n]+)[ \t]+--[ \t\n]+((?s:.*))`)
	exampleRe = regexp.MustCompile(`(?:^|[\x00- ])examples?:?[\x00- ]*$`)
)

// rule is one entry of the classification table. It reports false when the
// node does not match.
type rule func(n Node) (Class, bool)

// rules are tried in order; the first match wins.
var rules = []rule{
	markerRule(KindBullet, bulletRe),
	markerRule(KindOrdered, olRe),
	markerRule(KindOrderedParen, olpRe),
	definitionRule,
	literalRule,
	headingRule,
}

func markerRule(kind Kind, re *regexp.Regexp) rule {
	return func(n Node) (Class, bool) {
		m := re.FindStringSubmatch(n.Text)
		if m == nil {
			return Class{}, false
		}
		return Class{Kind: kind, Marker: m[1], Text: m[2]}, true
	}
}

func definitionRule(n Node) (Class, bool) {
	m := dlRe.FindStringSubmatch(n.Text)
	if m == nil {
		return Class{}, false
	}
	return Class{Kind: KindDefinition, Term: m[1], Definition: m[2]}, true
}

func literalRule(n Node) (Class, bool) {
	if len(n.Children) == 0 {
		return Class{}, false
	}
	if exampleRe.MatchString(n.Text) {
		return Class{Kind: KindLiteral, Text: n.Text}, true
	}
	if text := trimTrailing(n.Text); strings.HasSuffix(text, "::") {
		// "Code::" introduces the block as "Code:"
		return Class{Kind: KindLiteral, Text: text[:len(text)-1]}, true
	}
	return Class{}, false
}

func headingRule(n Node) (Class, bool) {
	if len(n.Children) == 0 || strings.Contains(n.Text, "\n") {
		return Class{}, false
	}
	if strings.HasSuffix(trimTrailing(n.Text), ":") {
		return Class{}, false
	}
	return Class{Kind: KindHeading, Text: n.Text}, true
}

// Classify decides how a node is rendered.
func Classify(n Node) Class {
	for _, r := range rules {
		if c, ok := r(n); ok {
			return c
		}
	}
	return Class{Kind: KindParagraph, Text: n.Text}
}

func trimTrailing(s string) string {
	return strings.TrimRight(s, " \t\n")
}
