// Package stx converts structured text into HTML.
//
// Structured text is plain text whose structure is implied by indentation.
// A document is a sequence of paragraphs separated by blank lines. Each
// paragraph has a level, its minimum indentation, and a paragraph is a
// sub-paragraph of the last preceding paragraph with a lower level.
//
// Leading symbols classify a paragraph: "-", "*" or "o" start a bullet item,
// "1.", "a)" or "(1)" start an ordered item, "term -- definition" starts a
// definition item. A single-line paragraph with sub-paragraphs is a heading,
// and the sub-paragraphs of a paragraph ending in "::" or "example:" are
// output verbatim.
//
// Inline markup covers *emphasis*, **strong**, _underline_, 'code',
// "quoted":http://links and [references].
package stx
