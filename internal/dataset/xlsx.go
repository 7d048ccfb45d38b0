package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxSource struct{}

func (xlsxSource) CanLoad(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

// Load reads the selected sheet. If opt.Sheet is empty and opt.SheetIndex <= 0,
// the first sheet is used.
func (xlsxSource) Load(path string, opt Options) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Reason: "workbook has no sheets"}
	}
	sheet := ""
	switch {
	case opt.Sheet != "":
		for _, s := range sheets {
			if strings.EqualFold(s, opt.Sheet) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, fmt.Errorf("sheet '%s' not found in workbook '%s'; available sheets: %s",
				opt.Sheet, filepath.Base(path), strings.Join(sheets, ", "))
		}
	case opt.SheetIndex > 0:
		if opt.SheetIndex > len(sheets) {
			return nil, fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", opt.SheetIndex, len(sheets))
		}
		sheet = sheets[opt.SheetIndex-1]
	default:
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	ds, err := fromSheetRows(rows)
	if err != nil {
		return nil, err
	}
	ds.Name = fmt.Sprintf("%s (sheet: %s)", filepath.Base(path), sheet)
	return ds, nil
}

// fromSheetRows normalizes spreadsheet rows. Spreadsheets drop trailing empty
// cells, so short rows are padded; wider rows are still malformed.
func fromSheetRows(rows [][]string) (*Dataset, error) {
	var header []string
	var body [][]string
	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		if header == nil {
			header = row
			continue
		}
		if len(row) > len(header) {
			return nil, &ParseError{
				Line:   i + 1,
				Reason: fmt.Sprintf("expected %d fields, got %d", len(header), len(row)),
			}
		}
		if len(row) < len(header) {
			padded := make([]string, len(header))
			copy(padded, row)
			row = padded
		}
		body = append(body, row)
	}
	if header == nil {
		return nil, &ParseError{Reason: "missing header row"}
	}
	return FromRows("", header, body)
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
