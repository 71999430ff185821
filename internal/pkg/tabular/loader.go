package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/unidoc/unioffice/spreadsheet"
)

// LoadCSV parses CSV bytes into a dataset. Non-UTF8 input is decoded
// as Latin-1, which covers the exports this tool usually sees.
func LoadCSV(name string, data []byte) (*entity.Dataset, error) {
	if !utf8.Valid(data) {
		data = latin1ToUTF8(data)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	return fromRecords(name, records)
}

// LoadXLSX parses the first sheet of an Excel workbook.
func LoadXLSX(name string, data []byte) (*entity.Dataset, error) {
	wb, err := spreadsheet.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return nil, entity.ErrEmptyDataset
	}

	var records [][]string
	for _, row := range sheets[0].Rows() {
		var record []string
		for _, cell := range row.Cells() {
			record = append(record, strings.TrimSpace(cell.GetFormattedValue()))
		}
		records = append(records, record)
	}

	return fromRecords(name, records)
}

// Load picks the parser from the file extension.
func Load(name string, data []byte) (*entity.Dataset, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return LoadCSV(name, data)
	case strings.HasSuffix(lower, ".xlsx"):
		return LoadXLSX(name, data)
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, name)
	}
}

func fromRecords(name string, records [][]string) (*entity.Dataset, error) {
	if len(records) < 2 {
		return nil, entity.ErrEmptyDataset
	}

	header := records[0]
	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if isEmptyRow(rec) {
			continue
		}
		// Pad short rows so every row matches the header width.
		row := make([]string, len(header))
		copy(row, rec)
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, entity.ErrEmptyDataset
	}

	columns := make([]entity.Column, len(header))
	for i, h := range header {
		columns[i] = entity.Column{
			Name: strings.TrimSpace(h),
			Type: inferType(rows, i),
		}
	}

	return &entity.Dataset{Name: name, Columns: columns, Rows: rows}, nil
}

func isEmptyRow(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"01/02/2006",
	time.RFC3339,
}

func inferType(rows [][]string, col int) entity.ColumnType {
	numeric, dates, seen := 0, 0, 0
	for _, row := range rows {
		v := strings.TrimSpace(row[col])
		if v == "" {
			continue
		}
		seen++
		if _, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64); err == nil {
			numeric++
			continue
		}
		if isDate(v) {
			dates++
		}
	}

	if seen == 0 {
		return entity.ColumnText
	}
	if numeric == seen {
		return entity.ColumnNumeric
	}
	if dates == seen {
		return entity.ColumnDate
	}
	return entity.ColumnText
}

func isDate(v string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

func latin1ToUTF8(data []byte) []byte {
	buf := make([]rune, len(data))
	for i, b := range data {
		buf[i] = rune(b)
	}
	return []byte(string(buf))
}
