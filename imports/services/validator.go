package services

import (
	"regexp"
	"strings"

	"linkabet-backend/db/models"
)

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationIssue is one per-row data-quality problem. The offending record
// travels with the issue so operators can diagnose without reopening the
// source file.
type ValidationIssue struct {
	RowNumber int       `json:"row_number"`
	Field     string    `json:"field"`
	Message   string    `json:"error"`
	Severity  string    `json:"severity"`
	Data      RawRecord `json:"data"`
}

// ValidationResult aggregates per-row issues for one upload. IsValid is
// strictly "no errors"; warnings never affect validity.
type ValidationResult struct {
	IsValid      bool              `json:"is_valid"`
	TotalRecords int               `json:"total_records"`
	ValidRecords int               `json:"valid_records"`
	Errors       []ValidationIssue `json:"errors"`
	Warnings     []ValidationIssue `json:"warnings"`
}

var urlPattern = regexp.MustCompile(`(?i)^https?://` +
	`(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+[A-Z]{2,6}\.?|` +
	`localhost|` +
	`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
	`(?::\d+)?` +
	`(?:/?|[/?]\S+)$`)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isValidURL(url string) bool {
	return urlPattern.MatchString(url)
}

// Short URLs only need something before and after a dot; custom domains make
// strict validation here counterproductive.
func isValidShortURL(shortURL string) bool {
	return len(shortURL) > 0 && strings.Contains(shortURL, ".")
}

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateForType runs the validator for an import kind. Kinds without
// specific rules pass everything through as valid.
func ValidateForType(importType models.ImportType, records []RawRecord) ValidationResult {
	switch importType {
	case models.ImportTypeLinks:
		return ValidateLinks(records)
	case models.ImportTypeUsers:
		return ValidateUsers(records)
	case models.ImportTypeAnalytics:
		return ValidateAnalytics(records)
	case models.ImportTypeDomains:
		return ValidateDomains(records)
	case models.ImportTypeContacts:
		return ValidateContacts(records)
	}
	return ValidationResult{
		IsValid:      true,
		TotalRecords: len(records),
		ValidRecords: len(records),
		Errors:       []ValidationIssue{},
		Warnings:     []ValidationIssue{},
	}
}

// ValidateLinks checks link rows. A malformed short_url is only a warning;
// rows with warnings still count as valid.
func ValidateLinks(records []RawRecord) ValidationResult {
	errs := []ValidationIssue{}
	warnings := []ValidationIssue{}
	validRecords := 0

	for i, record := range records {
		rowErrs := []ValidationIssue{}

		originalURL := stringField(record, "original_url")
		if originalURL == "" {
			rowErrs = append(rowErrs, ValidationIssue{
				RowNumber: i + 1,
				Field:     "original_url",
				Message:   "Original URL is required",
				Severity:  SeverityError,
				Data:      record,
			})
		} else if !isValidURL(originalURL) {
			rowErrs = append(rowErrs, ValidationIssue{
				RowNumber: i + 1,
				Field:     "original_url",
				Message:   "Invalid URL format",
				Severity:  SeverityError,
				Data:      record,
			})
		}

		if shortURL := stringField(record, "short_url"); shortURL != "" && !isValidShortURL(shortURL) {
			warnings = append(warnings, ValidationIssue{
				RowNumber: i + 1,
				Field:     "short_url",
				Message:   "Invalid short URL format",
				Severity:  SeverityWarning,
				Data:      record,
			})
		}

		if len(rowErrs) == 0 {
			validRecords++
		} else {
			errs = append(errs, rowErrs...)
		}
	}

	return ValidationResult{
		IsValid:      len(errs) == 0,
		TotalRecords: len(records),
		ValidRecords: validRecords,
		Errors:       errs,
		Warnings:     warnings,
	}
}

// ValidateUsers checks user rows. A missing name is an error even when the
// email is fine.
func ValidateUsers(records []RawRecord) ValidationResult {
	errs := []ValidationIssue{}
	warnings := []ValidationIssue{}
	validRecords := 0

	for i, record := range records {
		rowErrs := []ValidationIssue{}

		if stringField(record, "name") == "" {
			rowErrs = append(rowErrs, ValidationIssue{
				RowNumber: i + 1,
				Field:     "name",
				Message:   "Name is required",
				Severity:  SeverityError,
				Data:      record,
			})
		}

		email := stringField(record, "email")
		if email == "" {
			rowErrs = append(rowErrs, ValidationIssue{
				RowNumber: i + 1,
				Field:     "email",
				Message:   "Email is required",
				Severity:  SeverityError,
				Data:      record,
			})
		} else if !isValidEmail(email) {
			rowErrs = append(rowErrs, ValidationIssue{
				RowNumber: i + 1,
				Field:     "email",
				Message:   "Invalid email format",
				Severity:  SeverityError,
				Data:      record,
			})
		}

		if len(rowErrs) == 0 {
			validRecords++
		} else {
			errs = append(errs, rowErrs...)
		}
	}

	return ValidationResult{
		IsValid:      len(errs) == 0,
		TotalRecords: len(records),
		ValidRecords: validRecords,
		Errors:       errs,
		Warnings:     warnings,
	}
}

// ValidateAnalytics checks analytics rows: a link identifier of some kind
// plus a click date.
func ValidateAnalytics(records []RawRecord) ValidationResult {
	errs := []ValidationIssue{}
	warnings := []ValidationIssue{}
	validRecords := 0

	for i, record := range records {
		rowErrs := []ValidationIssue{}

		if stringField(record, "link_id") == "" &&
			stringField(record, "short_url") == "" &&
			stringField(record, "original_url") == "" {
			rowErrs = append(rowErrs, ValidationIssue{
				RowNumber: i + 1,
				Field:     "link_identifier",
				Message:   "At least one of link_id, short_url, or original_url is required",
				Severity:  SeverityError,
				Data:      record,
			})
		}

		if stringField(record, "click_date") == "" {
			rowErrs = append(rowErrs, ValidationIssue{
				RowNumber: i + 1,
				Field:     "click_date",
				Message:   "Click date is required",
				Severity:  SeverityError,
				Data:      record,
			})
		}

		if len(rowErrs) == 0 {
			validRecords++
		} else {
			errs = append(errs, rowErrs...)
		}
	}

	return ValidationResult{
		IsValid:      len(errs) == 0,
		TotalRecords: len(records),
		ValidRecords: validRecords,
		Errors:       errs,
		Warnings:     warnings,
	}
}

// ValidateDomains checks custom-domain rows.
func ValidateDomains(records []RawRecord) ValidationResult {
	errs := []ValidationIssue{}
	validRecords := 0

	for i, record := range records {
		if stringField(record, "domain") == "" {
			errs = append(errs, ValidationIssue{
				RowNumber: i + 1,
				Field:     "domain",
				Message:   "Domain is required",
				Severity:  SeverityError,
				Data:      record,
			})
		} else {
			validRecords++
		}
	}

	return ValidationResult{
		IsValid:      len(errs) == 0,
		TotalRecords: len(records),
		ValidRecords: validRecords,
		Errors:       errs,
		Warnings:     []ValidationIssue{},
	}
}

// ValidateContacts checks contact rows with the same email rule as users.
func ValidateContacts(records []RawRecord) ValidationResult {
	errs := []ValidationIssue{}
	validRecords := 0

	for i, record := range records {
		rowErrs := []ValidationIssue{}

		if stringField(record, "name") == "" {
			rowErrs = append(rowErrs, ValidationIssue{
				RowNumber: i + 1,
				Field:     "name",
				Message:   "Name is required",
				Severity:  SeverityError,
				Data:      record,
			})
		}

		email := stringField(record, "email")
		if email == "" {
			rowErrs = append(rowErrs, ValidationIssue{
				RowNumber: i + 1,
				Field:     "email",
				Message:   "Email is required",
				Severity:  SeverityError,
				Data:      record,
			})
		} else if !isValidEmail(email) {
			rowErrs = append(rowErrs, ValidationIssue{
				RowNumber: i + 1,
				Field:     "email",
				Message:   "Invalid email format",
				Severity:  SeverityError,
				Data:      record,
			})
		}

		if len(rowErrs) == 0 {
			validRecords++
		} else {
			errs = append(errs, rowErrs...)
		}
	}

	return ValidationResult{
		IsValid:      len(errs) == 0,
		TotalRecords: len(records),
		ValidRecords: validRecords,
		Errors:       errs,
		Warnings:     []ValidationIssue{},
	}
}
