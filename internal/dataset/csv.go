package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Options controls how a document is turned into a Dataset.
type Options struct {
	// Delimiter for CSV. If 0, picked from the file extension (',' or '\t').
	Delimiter rune
	// TrimSpace drops leading whitespace in CSV fields. Off by default so
	// values round-trip exactly.
	TrimSpace bool
	// XLSX sheet selection. Sheet wins over SheetIndex (1-based).
	Sheet      string
	SheetIndex int
}

type csvSource struct{}

func (csvSource) CanLoad(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv")
}

func (csvSource) Load(path string, opt Options) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	if opt.Delimiter == 0 {
		opt.Delimiter = sniffDelimiter(path)
	}
	ds, err := ParseCSV(f, opt)
	if err != nil {
		return nil, err
	}
	ds.Name = filepath.Base(path)
	return ds, nil
}

// ParseCSV reads a header-having CSV document into a Dataset.
// Any row whose width differs from the header fails the whole parse.
func ParseCSV(r io.Reader, opt Options) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = opt.TrimSpace
	if opt.Delimiter != 0 {
		cr.Comma = opt.Delimiter
	}

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Reason: "missing header row"}
		}
		return nil, csvParseError(err)
	}
	header = append([]string(nil), header...)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, csvParseError(err)
		}
		if len(rec) != len(header) {
			line, _ := cr.FieldPos(0)
			return nil, &ParseError{
				Line:   line,
				Reason: fmt.Sprintf("expected %d fields, got %d", len(header), len(rec)),
			}
		}
		rows = append(rows, rec)
	}
	return build("", header, rows), nil
}

// FromRows builds a dataset from already-materialized rows. Rows must match
// the header width.
func FromRows(name string, header []string, rows [][]string) (*Dataset, error) {
	if len(header) == 0 {
		return nil, &ParseError{Reason: "missing header row"}
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, &ParseError{
				Line:   i + 2,
				Reason: fmt.Sprintf("expected %d fields, got %d", len(header), len(row)),
			}
		}
	}
	return build(name, header, rows), nil
}

func build(name string, header []string, rows [][]string) *Dataset {
	cols := append([]string(nil), header...)
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := make(Record, len(cols))
		for i, c := range cols {
			rec[c] = row[i]
		}
		records = append(records, rec)
	}
	return New(name, cols, records)
}

func checkHeader(header []string) error {
	seen := make(map[string]struct{}, len(header))
	for _, h := range header {
		if _, dup := seen[h]; dup {
			return &ParseError{Line: 1, Reason: fmt.Sprintf("duplicate column %q", h)}
		}
		seen[h] = struct{}{}
	}
	return nil
}

func csvParseError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Line, Reason: "invalid csv", Err: pe.Err}
	}
	return &ParseError{Reason: "read csv", Err: err}
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
