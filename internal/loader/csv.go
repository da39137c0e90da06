package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVLoader handles CSV files. Line 1 lists the headers and every data row
// becomes one "header: value" line, so row N of the file is line N.
type CSVLoader struct{}

func (l *CSVLoader) Load(r io.Reader, filename string) (*Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	var b builder
	if len(records) == 0 {
		return b.document(filename), nil
	}

	headers := records[0]
	b.line("Headers: " + strings.Join(headers, ", "))
	for _, row := range records[1:] {
		cells := make([]string, len(row))
		for j, cell := range row {
			cell = strings.ReplaceAll(Normalize(cell), "\n", " ")
			if j < len(headers) && headers[j] != "" {
				cells[j] = headers[j] + ": " + cell
			} else {
				cells[j] = cell
			}
		}
		b.line(strings.Join(cells, ", "))
	}
	return b.document(filename), nil
}
