package doctree

// DocTree is the root of an imported document.
type DocTree struct {
	Title    string     // Document title (from metadata or filename)
	Children []*DocNode // Top-level sections
}

// DocNode is a recursive section in the document tree.
type DocNode struct {
	Title    string     // Section heading (empty for leaf text)
	Text     string     // Structured text body, paragraphs separated by blank lines
	Page     int        // Source page (0 if N/A)
	Children []*DocNode // Subsections
}
