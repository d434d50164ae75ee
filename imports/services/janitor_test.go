package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeStaleJobStore struct {
	gotCutoff  time.Time
	gotMessage string
	failed     int64
}

func (s *fakeStaleJobStore) FailStaleProcessingJobs(olderThan time.Time, message string) (int64, error) {
	s.gotCutoff = olderThan
	s.gotMessage = message
	return s.failed, nil
}

func TestJanitorStartSchedulesBothJobs(t *testing.T) {
	janitor := NewJanitor(&fakeStaleJobStore{}, t.TempDir(), zap.NewNop())
	defer janitor.Stop()

	if err := janitor.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if got := len(janitor.cron.Entries()); got != 2 {
		t.Errorf("scheduled %d cron entries, want 2", got)
	}
}

func TestFailStuckJobs(t *testing.T) {
	store := &fakeStaleJobStore{failed: 3}
	janitor := NewJanitor(store, t.TempDir(), zap.NewNop())

	before := time.Now().UTC().Add(-time.Hour)
	janitor.FailStuckJobs()
	after := time.Now().UTC().Add(-time.Hour)

	if store.gotCutoff.Before(before) || store.gotCutoff.After(after) {
		t.Errorf("cutoff %v not within one hour ago", store.gotCutoff)
	}
	if store.gotMessage != "import timed out" {
		t.Errorf("message = %q", store.gotMessage)
	}
}

func TestCleanupExpiredFiles(t *testing.T) {
	dir := t.TempDir()

	oldFile := filepath.Join(dir, "stale.csv")
	if err := os.WriteFile(oldFile, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	past := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(oldFile, past, past); err != nil {
		t.Fatal(err)
	}

	freshFile := filepath.Join(dir, "fresh.csv")
	if err := os.WriteFile(freshFile, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	janitor := NewJanitor(&fakeStaleJobStore{}, dir, zap.NewNop())
	janitor.CleanupExpiredFiles()

	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Error("expired file was not removed")
	}
	if _, err := os.Stat(freshFile); err != nil {
		t.Error("fresh file should have been kept")
	}
}
