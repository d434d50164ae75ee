package services

import (
	"fmt"
	"strings"
)

type FileFormat string

const (
	FormatCSV   FileFormat = "csv"
	FormatExcel FileFormat = "excel"
	FormatJSON  FileFormat = "json"
)

// DetectFileFormat classifies an upload from its filename extension, falling
// back to a substring match on the declared content type. Browsers often
// send generic content types, so the extension wins when both are present.
func DetectFileFormat(filename, contentType string) (FileFormat, error) {
	name := strings.ToLower(filename)
	ct := strings.ToLower(contentType)

	switch {
	case strings.HasSuffix(name, ".csv") || strings.Contains(ct, "csv"):
		return FormatCSV, nil
	case strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xls") || strings.Contains(ct, "excel"):
		return FormatExcel, nil
	case strings.HasSuffix(name, ".json") || strings.Contains(ct, "json"):
		return FormatJSON, nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
}
