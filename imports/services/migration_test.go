package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestMigrateFromPlatformUnsupported(t *testing.T) {
	svc := NewPlatformMigrationService(zap.NewNop())

	_, err := svc.MigrateFromPlatform(context.Background(), "tinyurl", MigrationCredentials{})
	if err == nil {
		t.Fatal("expected error for unsupported platform")
	}
	if got := err.Error(); got != "platform tinyurl not supported" {
		t.Errorf("error = %q", got)
	}
}

func TestMigrateFromBitly(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.String()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"links": [
			{"long_url": "https://example.com", "link": "https://bit.ly/abc", "title": "Example", "clicks": 7, "tags": ["work"]},
			{"long_url": "https://other.com", "link": "https://bit.ly/def", "title": ""}
		]}`))
	}))
	defer server.Close()

	svc := NewPlatformMigrationService(zap.NewNop())
	svc.bitlyBaseURL = server.URL

	records, err := svc.MigrateFromBitly(context.Background(), MigrationCredentials{AccessToken: "tok-123"})
	if err != nil {
		t.Fatalf("MigrateFromBitly returned error: %v", err)
	}

	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotPath != "/v4/links?size=50" {
		t.Errorf("path = %q", gotPath)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0]["original_url"] != "https://example.com" {
		t.Errorf("original_url = %v", records[0]["original_url"])
	}
	if records[0]["short_url"] != "https://bit.ly/abc" {
		t.Errorf("short_url = %v", records[0]["short_url"])
	}
	if records[0]["clicks"] != 7 {
		t.Errorf("clicks = %v", records[0]["clicks"])
	}
}

func TestMigrateFromBitlyAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	svc := NewPlatformMigrationService(zap.NewNop())
	svc.bitlyBaseURL = server.URL

	_, err := svc.MigrateFromBitly(context.Background(), MigrationCredentials{AccessToken: "bad"})
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestMigrateFromRebrandly(t *testing.T) {
	var gotAPIKey, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("apikey")
		gotPath = r.URL.String()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"destination": "https://example.com", "domainName": "rebrand.ly", "slashtag": "abc", "title": "Example", "clicks": 3}
		]`))
	}))
	defer server.Close()

	svc := NewPlatformMigrationService(zap.NewNop())
	svc.rebrandlyBaseURL = server.URL

	records, err := svc.MigrateFromRebrandly(context.Background(), MigrationCredentials{APIKey: "key-456"})
	if err != nil {
		t.Fatalf("MigrateFromRebrandly returned error: %v", err)
	}

	if gotAPIKey != "key-456" {
		t.Errorf("apikey = %q", gotAPIKey)
	}
	if gotPath != "/v1/links?limit=25" {
		t.Errorf("path = %q", gotPath)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0]["short_url"] != "https://rebrand.ly/abc" {
		t.Errorf("short_url = %v", records[0]["short_url"])
	}
}

func TestMigrateFromPlatformDispatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"links": []}`))
	}))
	defer server.Close()

	svc := NewPlatformMigrationService(zap.NewNop())
	svc.bitlyBaseURL = server.URL

	// Case-insensitive platform name.
	records, err := svc.MigrateFromPlatform(context.Background(), "Bitly", MigrationCredentials{AccessToken: "t"})
	if err != nil {
		t.Fatalf("MigrateFromPlatform returned error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty page, got %d records", len(records))
	}
}
