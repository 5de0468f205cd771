package stx

import (
	"fmt"
	"io"
	"strings"
)

// Paragraph is a run of non-blank lines. Text has the paragraph's minimum
// indentation removed from every line; Level records that indentation.
type Paragraph struct {
	Text  string
	Level int
}

// Node is a paragraph together with the paragraphs nested beneath it.
type Node struct {
	Text     string
	Level    int
	Children []Node
}

// Document is the parsed form of a structured text string.
type Document struct {
	// Level is the heading level assigned to top-level headings. Zero
	// disables <hN> headings altogether.
	Level int
	Nodes []Node
}

// Paragraphs splits text into paragraphs at runs of blank lines, after tab
// expansion. Whitespace-only lines count as blank.
func Paragraphs(text string) []Paragraph {
	var (
		paras []Paragraph
		run   []string
	)
	flush := func() {
		if len(run) == 0 {
			return
		}
		block := strings.Join(run, "\n")
		if level, ok := IndentLevel(block); ok {
			paras = append(paras, Paragraph{Text: dedent(block, level), Level: level})
		}
		run = run[:0]
	}
	for _, line := range strings.Split(Untabify(text), "\n") {
		if isBlank(line) {
			flush()
			continue
		}
		run = append(run, line)
	}
	flush()
	return paras
}

// Structure nests paragraphs by level. Each paragraph takes the run of
// immediately following paragraphs with a strictly greater level as its
// children; the first paragraph at the same or a lower level ends the run.
func Structure(paras []Paragraph) []Node {
	if len(paras) == 0 {
		return nil
	}
	var nodes []Node
	for i := 0; i < len(paras); {
		p := paras[i]
		j := i + 1
		for j < len(paras) && paras[j].Level > p.Level {
			j++
		}
		nodes = append(nodes, Node{
			Text:     p.Text,
			Level:    p.Level,
			Children: Structure(paras[i+1 : j]),
		})
		i = j
	}
	return nodes
}

// Parse builds the document tree for text. Level is the heading level of
// top-level headings; see Document.
func Parse(text string, level int) *Document {
	return &Document{
		Level: level,
		Nodes: Structure(Paragraphs(text)),
	}
}

// HTML renders the document.
func (d *Document) HTML() string {
	return Render(d.Nodes, d.Level)
}

// Format writes an outline of the document, one line per paragraph, indented
// by depth. With the '+' flag each line also carries the paragraph level and
// its classification.
func (d *Document) Format(f fmt.State, _ rune) {
	writeOutline(f, d.Nodes, 0, f.Flag('+'))
}

// Format writes an outline of the node and its children, see
// Document.Format.
func (n Node) Format(f fmt.State, _ rune) {
	writeOutline(f, []Node{n}, 0, f.Flag('+'))
}

func writeOutline(w io.Writer, nodes []Node, depth int, verbose bool) {
	for _, n := range nodes {
		first, _, _ := strings.Cut(n.Text, "\n")
		io.WriteString(w, strings.Repeat("  ", depth))
		if verbose {
			fmt.Fprintf(w, "@%d %v ", n.Level, Classify(n).Kind)
		}
		fmt.Fprintf(w, "%q\n", first)
		writeOutline(w, n.Children, depth+1, verbose)
	}
}
