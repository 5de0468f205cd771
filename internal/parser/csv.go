package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/stxdoc/internal/doctree"
)

// CSVParser handles CSV files. Each data row becomes a section holding one
// "header -- value" definition per column.
type CSVParser struct{}

// Group rows into batches of 20 so long files stay navigable.
const csvBatchSize = 20

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	b := doctree.NewBuilder(titleFromFilename(filename))
	if len(records) == 0 {
		return b.Tree(), nil
	}

	// First row is headers.
	headers := records[0]
	dataRows := records[1:]

	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := min(i+csvBatchSize, len(dataRows))
		b.Heading(1, fmt.Sprintf("Rows %d-%d", i+2, end+1)) // 1-indexed, skip header

		for j, row := range dataRows[i:end] {
			b.Heading(2, fmt.Sprintf("Row %d", i+j+2))
			for k, cell := range row {
				cell = strings.Join(strings.Fields(cell), " ")
				if cell == "" {
					continue
				}
				term := fmt.Sprintf("Column %d", k+1)
				if k < len(headers) && strings.TrimSpace(headers[k]) != "" {
					term = strings.TrimSpace(headers[k])
				}
				b.Text(term + " -- " + cell)
			}
		}
	}
	return b.Tree(), nil
}
