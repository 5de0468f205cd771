package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_Structure(t *testing.T) {
	input := `<html><head><title>Manual</title><style>p{}</style></head>
<body>
<nav>skip me</nav>
<h1>Start</h1>
<p>Read <em>this</em> and <a href="http://x.org/">that</a>.</p>
<ul><li>one</li><li>two<ul><li>inner</li></ul></li></ul>
<h2>Config</h2>
<dl><dt>port</dt><dd>listen port</dd></dl>
<pre>  a &lt; b
    c</pre>
<ol start="3"><li>three</li><li>four</li></ol>
</body></html>`

	p := &HTMLParser{}
	tree, err := p.Parse(strings.NewReader(input), "manual.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "Manual" {
		t.Errorf("expected title %q, got %q", "Manual", tree.Title)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 top-level child, got %d", len(tree.Children))
	}

	start := tree.Children[0]
	wantStart := "Read *this* and \"that\":http://x.org/.\n\n- one\n\n- two\n\n  - inner"
	if start.Text != wantStart {
		t.Errorf("expected %q, got %q", wantStart, start.Text)
	}
	if len(start.Children) != 1 {
		t.Fatalf("expected 1 subsection, got %d", len(start.Children))
	}

	wantConfig := "port -- listen port\n\nExample::\n\n  a < b\n    c\n\n3. three\n\n4. four"
	if got := start.Children[0].Text; got != wantConfig {
		t.Errorf("expected %q, got %q", wantConfig, got)
	}
}

func TestHTMLParser_TitleFallback(t *testing.T) {
	p := &HTMLParser{}
	tree, err := p.Parse(strings.NewReader("<p>hi</p>"), "page.htm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "page" {
		t.Errorf("expected title %q, got %q", "page", tree.Title)
	}
	if len(tree.Children) != 1 || tree.Children[0].Text != "hi" {
		t.Errorf("unexpected children: %+v", tree.Children)
	}
}
