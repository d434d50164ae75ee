package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// RawRecord is one row of an uploaded file keyed by header/field name. The
// field set varies per row; CSV and spreadsheet sources do not guarantee
// uniform columns.
type RawRecord map[string]interface{}

// ParseFile dispatches raw bytes to the parser for a detected format.
func ParseFile(format FileFormat, content []byte) ([]RawRecord, error) {
	switch format {
	case FormatCSV:
		return ParseCSV(content)
	case FormatExcel:
		return ParseExcel(content)
	case FormatJSON:
		return ParseJSON(content)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// ParseCSV decodes UTF-8 text, takes the first row as the header and zips
// each subsequent row into a record. Row order is preserved; it is the
// basis for 1-based row numbering in validation errors.
func ParseCSV(content []byte) ([]RawRecord, error) {
	if !utf8.Valid(content) {
		return nil, &ParseError{Format: FormatCSV, Err: errors.New("content is not valid UTF-8")}
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &ParseError{Format: FormatCSV, Err: err}
	}
	if len(rows) == 0 {
		return []RawRecord{}, nil
	}

	header := rows[0]
	records := make([]RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(RawRecord, len(header))
		for i, key := range header {
			if i < len(row) {
				record[key] = row[i]
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// ParseExcel reads the first sheet of a workbook, first row as header.
// Cell values arrive as excelize renders them, so numeric cells keep their
// numeric rendering.
func ParseExcel(content []byte) ([]RawRecord, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, &ParseError{Format: FormatExcel, Err: err}
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, &ParseError{Format: FormatExcel, Err: err}
	}
	if len(rows) == 0 {
		return []RawRecord{}, nil
	}

	header := rows[0]
	records := make([]RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(RawRecord, len(header))
		for i, key := range header {
			if i < len(row) {
				record[key] = row[i]
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// ParseJSON accepts either a single object (promoted to a one-element
// sequence) or an array of objects. Any other root shape is a parse error.
// A JSON null decodes into a nil map without error, so nil is checked
// explicitly for the root and for every array element.
func ParseJSON(content []byte) ([]RawRecord, error) {
	var object map[string]interface{}
	if err := json.Unmarshal(content, &object); err == nil && object != nil {
		return []RawRecord{object}, nil
	}

	var objects []map[string]interface{}
	if err := json.Unmarshal(content, &objects); err != nil || objects == nil {
		return nil, &ParseError{Format: FormatJSON, Err: errors.New("root must be an object or an array of objects")}
	}

	records := make([]RawRecord, 0, len(objects))
	for _, obj := range objects {
		if obj == nil {
			return nil, &ParseError{Format: FormatJSON, Err: errors.New("array elements must be objects")}
		}
		records = append(records, RawRecord(obj))
	}
	return records, nil
}
