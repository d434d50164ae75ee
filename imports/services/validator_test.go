package services

import (
	"testing"

	"linkabet-backend/db/models"
)

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com", true},
		{"http://example.com/path?x=1", true},
		{"https://sub.example.co.uk", true},
		{"http://localhost", true},
		{"http://localhost:8080/path", true},
		{"http://192.168.1.1:3000", true},
		{"ftp://example.com", false},
		{"example.com", false},
		{"https://", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isValidURL(tt.url); got != tt.want {
			t.Errorf("isValidURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last+tag@sub.example.org", true},
		{"user@localhost", false},
		{"not-an-email", false},
		{"@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isValidEmail(tt.email); got != tt.want {
			t.Errorf("isValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestValidateLinks(t *testing.T) {
	records := []RawRecord{
		{"original_url": "https://example.com"},
		{"original_url": "not a url"},
		{"title": "missing url"},
		{"original_url": "https://example.com", "short_url": "nodot"},
	}

	result := ValidateLinks(records)

	if result.IsValid {
		t.Error("expected IsValid = false")
	}
	if result.TotalRecords != 4 {
		t.Errorf("TotalRecords = %d, want 4", result.TotalRecords)
	}
	// Rows 1 and 4 are valid; the short_url problem is only a warning.
	if result.ValidRecords != 2 {
		t.Errorf("ValidRecords = %d, want 2", result.ValidRecords)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("len(Errors) = %d, want 2", len(result.Errors))
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("len(Warnings) = %d, want 1", len(result.Warnings))
	}
	if result.Errors[0].RowNumber != 2 {
		t.Errorf("first error row = %d, want 2", result.Errors[0].RowNumber)
	}
	if result.Warnings[0].RowNumber != 4 {
		t.Errorf("warning row = %d, want 4", result.Warnings[0].RowNumber)
	}
	if result.Warnings[0].Severity != SeverityWarning {
		t.Errorf("warning severity = %q", result.Warnings[0].Severity)
	}
}

func TestValidateLinksAllValid(t *testing.T) {
	records := []RawRecord{
		{"original_url": "https://example.com"},
		{"original_url": "https://other.com", "short_url": "lab.et/abc"},
	}

	result := ValidateLinks(records)

	if !result.IsValid {
		t.Errorf("expected IsValid = true, errors: %+v", result.Errors)
	}
	if result.ValidRecords != 2 {
		t.Errorf("ValidRecords = %d, want 2", result.ValidRecords)
	}
}

func TestValidateUsers(t *testing.T) {
	records := []RawRecord{
		{"name": "Alice", "email": "alice@example.com"},
		{"name": "Bob", "email": "not-an-email"},
		{"email": "carol@example.com"},
		{"name": "Dave"},
	}

	result := ValidateUsers(records)

	if result.IsValid {
		t.Error("expected IsValid = false")
	}
	if result.ValidRecords != 1 {
		t.Errorf("ValidRecords = %d, want 1", result.ValidRecords)
	}
	if len(result.Errors) != 3 {
		t.Errorf("len(Errors) = %d, want 3", len(result.Errors))
	}
}

func TestValidateAnalytics(t *testing.T) {
	records := []RawRecord{
		{"short_url": "lab.et/abc", "click_date": "2024-01-01"},
		{"click_date": "2024-01-02"},
		{"link_id": "42"},
	}

	result := ValidateAnalytics(records)

	if result.ValidRecords != 1 {
		t.Errorf("ValidRecords = %d, want 1", result.ValidRecords)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("len(Errors) = %d, want 2", len(result.Errors))
	}
	if result.Errors[0].Field != "link_identifier" {
		t.Errorf("first error field = %q", result.Errors[0].Field)
	}
	if result.Errors[1].Field != "click_date" {
		t.Errorf("second error field = %q", result.Errors[1].Field)
	}
}

func TestValidateDomains(t *testing.T) {
	records := []RawRecord{
		{"domain": "links.example.com"},
		{"owner_email": "x@example.com"},
	}

	result := ValidateDomains(records)

	if result.ValidRecords != 1 {
		t.Errorf("ValidRecords = %d, want 1", result.ValidRecords)
	}
	if len(result.Errors) != 1 {
		t.Errorf("len(Errors) = %d, want 1", len(result.Errors))
	}
}

func TestValidateForTypeUnknownKindPassesThrough(t *testing.T) {
	records := []RawRecord{{"anything": "goes"}, {}}

	result := ValidateForType(models.ImportTypePlatformMigration, records)

	if !result.IsValid {
		t.Error("expected IsValid = true for kind without rules")
	}
	if result.ValidRecords != 2 {
		t.Errorf("ValidRecords = %d, want 2", result.ValidRecords)
	}
}
