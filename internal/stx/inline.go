package stx

import (
	"regexp"
	"strings"
)

const (
	urlChars = `[-:a-zA-Z0-9_,./?=@#]`
	urlLast  = `[^-,.?:\x00- "<>]`
	urlTail  = `([,.:?;])?([\x00- ]|$)`
)

var (
	// "text":http://host/path
	quotedLinkRe = regexp.MustCompile(`"([^"\x00]+)":(` + urlChars + `+` + urlLast + `)` + urlTail)
	// "text", mailto:someone@host
	commaLinkRe = regexp.MustCompile(`"([^"\x00]+)",[\x00- ]+([a-zA-Z]*:` + urlChars + `*` + urlLast + `)` + urlTail)
)

// span is a delimited inline markup pass.
type span struct {
	re  *regexp.Regexp
	tag string
}

// delimited builds the pattern for text enclosed by delim on both sides. The
// enclosed text may not start or end with whitespace and may not contain the
// delimiter's first byte; a single character is always accepted.
func delimited(delim string) *regexp.Regexp {
	q := regexp.QuoteMeta(delim)
	c := regexp.QuoteMeta(delim[:1])
	return regexp.MustCompile(q + `([^\x00- ` + c + `][^` + c + `]*[^\x00- ` + c + `]|[^` + c + `])` + q)
}

// spans are applied in order: strong before emphasis so that "**" is never
// read as two emphasis markers.
var spans = []span{
	{delimited("**"), "strong"},
	{delimited("_"), "u"},
	{delimited("'"), "code"},
	{delimited("*"), "em"},
}

var spanAfter = oneOf(",.:;!?)")

func spanBefore(c byte) bool { return c <= ' ' || c == '(' }

// Inline applies inline markup to paragraph text: quoted hyperlinks first,
// then strong, underline, code and emphasis spans. Unmatched markers are
// left as they are.
func Inline(s string) string {
	if s == "" {
		return s
	}
	s = Links(s)
	for _, sp := range spans {
		openTag, closeTag := "<"+sp.tag+">", "</"+sp.tag+">"
		s = replaceBounded(s, sp.re, spanBefore, spanAfter, func(m []string) string {
			return openTag + m[1] + closeTag
		})
	}
	return s
}

// Links converts quoted hyperlinks:
//
//	"Zope":http://www.zope.org/ is great
//	"mail me", mailto:amos@digicool.com.
//	"relative"::file_in_same_dir
//
// Trailing punctuation and the whitespace after a link are kept outside the
// anchor.
func Links(s string) string {
	return replaceLinks(replaceLinks(s, quotedLinkRe), commaLinkRe)
}

func replaceLinks(s string, re *regexp.Regexp) string {
	all := re.FindAllStringSubmatchIndex(s, -1)
	if all == nil {
		return s
	}
	group := func(loc []int, i int) string {
		if loc[2*i] < 0 {
			return ""
		}
		return s[loc[2*i]:loc[2*i+1]]
	}
	var b strings.Builder
	copied := 0
	for _, loc := range all {
		// protocol-less form: "text"::relative
		href := strings.TrimPrefix(group(loc, 2), ":")
		b.WriteString(s[copied:loc[0]])
		b.WriteString(`<a href="` + href + `">` + group(loc, 1) + `</a>`)
		b.WriteString(group(loc, 3))
		b.WriteString(group(loc, 4))
		copied = loc[1]
	}
	b.WriteString(s[copied:])
	return b.String()
}

var quoter = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// Quote escapes the HTML special characters &, <, > and ".
func Quote(s string) string {
	return quoter.Replace(s)
}
