package stx

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// DefaultLevel is the heading level given to top-level headings when the
// caller has no preference.
const DefaultLevel = 1

// ErrInputKind is returned when input is not text.
var ErrInputKind = errors.New("input is not utf-8 text")

// HTML converts a structured text string to HTML, resolving bracketed
// references first. Level is the heading level of top-level headings.
func HTML(text string, level int) string {
	return Parse(References(text), level).HTML()
}

// Convert reads structured text from r and converts it to HTML.
func Convert(r io.Reader, level int) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	text, err := Normalize(data)
	if err != nil {
		return "", err
	}
	return HTML(text, level), nil
}

// Normalize validates raw input and converts "\r\n" and "\r" line endings
// to "\n".
func Normalize(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrInputKind
	}
	text := string(data)
	if strings.IndexByte(text, '\r') >= 0 {
		text = strings.ReplaceAll(text, "\r\n", "\n")
		text = strings.ReplaceAll(text, "\r", "\n")
	}
	return text, nil
}

// StripPreamble drops a leading "#!" line and any empty lines before the
// first line of content.
func StripPreamble(text string) string {
	if strings.HasPrefix(text, "#!") {
		if eol := strings.IndexByte(text, '\n'); eol >= 0 {
			text = text[eol+1:]
		} else {
			text = ""
		}
	}
	return strings.TrimLeft(text, "\n")
}

// Page wraps rendered HTML in a complete page when it opens with a level 1
// heading, using that heading as the page title. Other HTML is returned
// unchanged.
func Page(body string) string {
	if !strings.HasPrefix(body, "<h1>") {
		return body
	}
	title, _, ok := strings.Cut(body[len("<h1>"):], "</h1>")
	if !ok {
		return body
	}
	return "<html><head><title>" + title + "</title>\n</head><body>\n" + body + "</body></html>\n"
}
