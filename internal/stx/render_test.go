package stx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTML(t *testing.T) {
	for _, tc := range []struct {
		name  string
		in    string
		level int
		want  string
	}{
		{"empty", "", 1, ""},
		{"paragraph", "Hello world", 1, "<p>Hello world</p>\n\n"},
		{
			"bullet with sub paragraph",
			"- item one\n\n  sub item", 1,
			"<ul><li><p>item one</p>\n<p>sub item</p>\n\n\n</ul>\n",
		},
		{
			"definition",
			"Term -- Definition text", 1,
			"<dl><dt>Term<dd><p>Definition text</p>\n\n</dl>\n",
		},
		{
			"heading",
			"Title\n\n  Body text", 1,
			"<h1>Title</h1>\n<p>Body text</p>\n\n\n",
		},
		{
			"nested headings",
			"A\n\n  B\n\n    text", 1,
			"<h1>A</h1>\n<h2>B</h2>\n<p>text</p>\n\n\n\n",
		},
		{
			"heading level five",
			"Title\n\n  Body", 5,
			"<h5>Title</h5>\n<p>Body</p>\n\n\n",
		},
		{
			"heading beyond level five",
			"Title\n\n  Body", 6,
			"<dl><dt><p><strong>Title</strong></p>\n<dd><p>Body</p>\n\n\n</dl>\n",
		},
		{
			"headings disabled",
			"Title\n\n  Body", 0,
			"<dl><dt><p><strong>Title</strong></p>\n<dd><p>Body</p>\n\n\n</dl>\n",
		},
		{
			"literal block",
			"Code::\n\n  code *here* & <b>", 1,
			"<p>Code:</p>\n<pre>\ncode *here* &amp; &lt;b&gt;\n\n</pre>\n\n",
		},
		{
			"literal block keeps relative indentation",
			"For example:\n\n  line one\n\n    nested\n\n  line two", 1,
			"<p>For example:</p>\n<pre>\nline one\n\n  nested\n\n" + "line two\n\n</pre>\n\n",
		},
		{
			"nested literal trigger stays verbatim",
			"Code::\n\n  inner::\n\n    deeper", 1,
			"<p>Code:</p>\n<pre>\ninner::\n\n  deeper\n\n</pre>\n\n",
		},
		{
			"bullets merge",
			"- a\n\n- b", 1,
			"<ul><li><p>a</p>\n\n\n<li><p>b</p>\n\n</ul>\n",
		},
		{
			"ordered items merge",
			"1. one\n\n(2) two", 1,
			"<ol><li><p>one</p>\n\n\n<li><p>two</p>\n\n</ol>\n",
		},
		{
			"definitions merge",
			"a -- one\n\nb -- two", 1,
			"<dl><dt>a<dd><p>one</p>\n\n\n<dt>b<dd><p>two</p>\n\n</dl>\n",
		},
		{
			"link",
			`"Zope":http://www.zope.org/ is great`, 1,
			"<p><a href=\"http://www.zope.org/\">Zope</a> is great</p>\n\n",
		},
		{
			"references",
			"As shown by Smith [12] it works.\n\n.. [12] Smith, Joe", 1,
			"<p>As shown by Smith <a href=\"#12\">[12]</a> it works.</p>\n\n" +
				"<p><a name=\"12\">[12]</a> Smith, Joe</p>\n\n",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTML(tc.in, tc.level))
		})
	}
}

func TestHTMLListMerge(t *testing.T) {
	out := HTML("- first\n\n- second", DefaultLevel)
	assert.Equal(t, 1, strings.Count(out, "<ul>"))
	assert.Equal(t, 2, strings.Count(out, "<li>"))
}

func TestHTMLEmphasisBoundary(t *testing.T) {
	assert.NotContains(t, HTML("this is *not emphasized*inline", 1), "<em>")
	assert.Contains(t, HTML("this is *emphasized* text", 1), "<em>emphasized</em>")
}

func TestHTMLLiteralSkipsInlineMarkup(t *testing.T) {
	out := HTML("Source::\n\n  a *b* \"c\":http://x.org/ d", 1)
	assert.Contains(t, out, "a *b* &quot;c&quot;:http://x.org/ d")
	assert.NotContains(t, out, "<em>")
	assert.NotContains(t, out, "<a href")
}

func TestHTMLMalformedDegradesToParagraphs(t *testing.T) {
	out := HTML("** stray\n\n_ also _\n\n'", 1)
	assert.Equal(t, "<p>** stray</p>\n\n<p>_ also _</p>\n\n<p>'</p>\n\n", out)
}

func TestHTMLConcurrent(t *testing.T) {
	const doc = "Title\n\n  - one\n\n  - two *em*\n\n  Code::\n\n    x < y"
	want := HTML(doc, 1)
	done := make(chan string)
	for range 8 {
		go func() { done <- HTML(doc, 1) }()
	}
	for range 8 {
		assert.Equal(t, want, <-done)
	}
}
