package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"linkabet-backend/imports/services"

	"github.com/xuri/excelize/v2"
)

const reportDir = "./public/files"

// GenerateImportErrorReport writes an xlsx listing the records a job could
// not persist and returns the file path. The report is attached to the
// operator notification mail.
func GenerateImportErrorReport(jobID string, failures []services.ImportFailure) (string, error) {
	if err := os.MkdirAll(reportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to ensure report directory exists: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %w", err)
	}

	headers := []string{"Row", "Error"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return "", fmt.Errorf("error setting header %s: %w", header, err)
		}
	}

	for i, failure := range failures {
		rowCell, _ := excelize.CoordinatesToCellName(1, i+2)
		msgCell, _ := excelize.CoordinatesToCellName(2, i+2)
		if err := f.SetCellValue(sheetName, rowCell, failure.RowNumber); err != nil {
			return "", err
		}
		if err := f.SetCellValue(sheetName, msgCell, failure.Message); err != nil {
			return "", err
		}
	}

	f.SetActiveSheet(index)

	filePath := filepath.Join(reportDir, fmt.Sprintf("import_errors_%s.xlsx", jobID))
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving error report: %w", err)
	}
	return filePath, nil
}
