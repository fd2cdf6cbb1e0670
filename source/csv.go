package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/c360studio/salience/corpus"
)

// loadCSV reads documents from a CSV file with a header row containing
// "year" and "content" columns (case-insensitive, any position). A
// leading UTF-8 BOM is tolerated since the files often round-trip
// through spreadsheet applications.
func loadCSV(path string) ([]corpus.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty CSV file")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	yearCol, contentCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "year":
			yearCol = i
		case "content":
			contentCol = i
		}
	}
	if yearCol < 0 || contentCol < 0 {
		return nil, fmt.Errorf("CSV header must contain year and content columns, got %v", header)
	}

	var docs []corpus.Document
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record at line %d: %w", line+1, err)
		}
		line++

		if yearCol >= len(record) || contentCol >= len(record) {
			return nil, fmt.Errorf("record at line %d has %d fields, need at least %d", line, len(record), max(yearCol, contentCol)+1)
		}

		year, err := strconv.Atoi(strings.TrimSpace(record[yearCol]))
		if err != nil {
			return nil, fmt.Errorf("invalid year %q at line %d: %w", record[yearCol], line, err)
		}

		docs = append(docs, corpus.Document{
			Year:    year,
			Content: record[contentCol],
		})
	}

	return docs, nil
}
