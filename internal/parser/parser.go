package parser

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/stxdoc/internal/doctree"
	"github.com/dgallion1/stxdoc/internal/stx"
)

// Parser converts raw document bytes into a DocTree.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.DocTree, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".stx":      true,
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// Importer turns any supported file into structured text.
type Importer struct {
	PDFFallback bool // Shell out to pdftotext when the Go PDF reader fails.
}

// ForFile returns the appropriate parser for a filename. Structured text
// files have no parser; see IsStructuredText.
func (im *Importer) ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: im.PDFFallback}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// Import reads a document and returns it as structured text. Structured
// text input is only normalized.
func (im *Importer) Import(r io.Reader, filename string) (string, error) {
	if IsStructuredText(filename) {
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", filename, err)
		}
		return stx.Normalize(data)
	}
	p, err := im.ForFile(filename)
	if err != nil {
		return "", err
	}
	tree, err := p.Parse(r, filepath.Base(filename))
	if err != nil {
		return "", err
	}
	return doctree.StructuredText(tree), nil
}

// ImportBytes is Import over an in-memory document.
func (im *Importer) ImportBytes(data []byte, filename string) (string, error) {
	return im.Import(bytes.NewReader(data), filename)
}

// IsStructuredText reports whether a file is already structured text.
func IsStructuredText(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".stx", ".txt":
		return true
	}
	return false
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// titleFromFilename strips the extension from a filename.
func titleFromFilename(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
