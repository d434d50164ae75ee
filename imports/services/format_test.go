package services

import (
	"errors"
	"testing"
)

func TestDetectFileFormat(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		want        FileFormat
		wantErr     bool
	}{
		{name: "csv extension", filename: "links.csv", want: FormatCSV},
		{name: "csv extension uppercase", filename: "LINKS.CSV", want: FormatCSV},
		{name: "xlsx extension", filename: "users.xlsx", want: FormatExcel},
		{name: "xls extension", filename: "legacy.xls", want: FormatExcel},
		{name: "json extension", filename: "data.json", want: FormatJSON},
		{name: "csv content type fallback", filename: "upload", contentType: "text/csv", want: FormatCSV},
		{name: "excel content type fallback", filename: "upload", contentType: "application/vnd.ms-excel", want: FormatExcel},
		{name: "json content type fallback", filename: "upload", contentType: "application/json", want: FormatJSON},
		{name: "extension wins over content type", filename: "data.csv", contentType: "application/json", want: FormatCSV},
		{name: "unsupported", filename: "notes.txt", contentType: "text/plain", wantErr: true},
		{name: "empty", filename: "", contentType: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFileFormat(tt.filename, tt.contentType)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("DetectFileFormat(%q, %q) expected error, got %q", tt.filename, tt.contentType, got)
				}
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("expected ErrUnsupportedFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectFileFormat(%q, %q) unexpected error: %v", tt.filename, tt.contentType, err)
			}
			if got != tt.want {
				t.Errorf("DetectFileFormat(%q, %q) = %q, want %q", tt.filename, tt.contentType, got, tt.want)
			}
		})
	}
}
