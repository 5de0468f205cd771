package stx

import "regexp"

var (
	anchorRe  = regexp.MustCompile(`(?m)^([ \t]*)\.\. \[([-_0-9a-zA-Z]+)\]`)
	refRe     = regexp.MustCompile(`\[([-_0-9a-zA-Z]+)\]`)
	docLinkRe = regexp.MustCompile(`\[([^\]]+)\.html\]`)

	refAfter = oneOf(",.:")
)

func refBefore(c byte) bool { return c <= ' ' || c == ',' }

// References converts bracketed references across the whole text:
//
//	.. [12] Smith, Joe ...    names the anchor "12"
//	as shown by Smith [12]    links to "#12"
//	see [install.html]        links to the document install.html
//
// A reference must be surrounded by whitespace or punctuation.
func References(text string) string {
	text = anchorRe.ReplaceAllString(text, `$1<a name="$2">[$2]</a>`)
	text = replaceBounded(text, refRe, refBefore, refAfter, func(m []string) string {
		return `<a href="#` + m[1] + `">[` + m[1] + `]</a>`
	})
	return replaceBounded(text, docLinkRe, refBefore, refAfter, func(m []string) string {
		return `<a href="` + m[1] + `.html">[` + m[1] + `]</a>`
	})
}
