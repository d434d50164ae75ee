package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"linkabet-backend/db/models"

	"go.uber.org/zap"
)

// fakeTargetStore records created entities and serves duplicate lookups from
// what it has seen.
type fakeTargetStore struct {
	links    []models.Link
	users    []models.User
	events   []models.AnalyticsEvent
	domains  []models.Domain
	contacts []models.Contact

	existingURLs   map[string]bool
	existingEmails map[string]bool
	failCreate     bool
}

func newFakeTargetStore() *fakeTargetStore {
	return &fakeTargetStore{
		existingURLs:   map[string]bool{},
		existingEmails: map[string]bool{},
	}
}

func (s *fakeTargetStore) FindLinkByOriginalURL(originalURL string) (*models.Link, error) {
	if s.existingURLs[originalURL] {
		return &models.Link{OriginalURL: originalURL}, nil
	}
	return nil, nil
}

func (s *fakeTargetStore) CreateLink(link *models.Link) error {
	if s.failCreate {
		return errors.New("store unavailable")
	}
	s.links = append(s.links, *link)
	return nil
}

func (s *fakeTargetStore) FindUserByEmail(email string) (*models.User, error) {
	if s.existingEmails[email] {
		return &models.User{Email: email}, nil
	}
	return nil, nil
}

func (s *fakeTargetStore) CreateUser(user *models.User) error {
	if s.failCreate {
		return errors.New("store unavailable")
	}
	s.users = append(s.users, *user)
	return nil
}

func (s *fakeTargetStore) CreateAnalyticsEvent(event *models.AnalyticsEvent) error {
	if s.failCreate {
		return errors.New("store unavailable")
	}
	s.events = append(s.events, *event)
	return nil
}

func (s *fakeTargetStore) FindDomainByName(domain string) (*models.Domain, error) {
	if s.existingURLs[domain] {
		return &models.Domain{Domain: domain}, nil
	}
	return nil, nil
}

func (s *fakeTargetStore) CreateDomain(domain *models.Domain) error {
	if s.failCreate {
		return errors.New("store unavailable")
	}
	s.domains = append(s.domains, *domain)
	return nil
}

func (s *fakeTargetStore) FindContactByEmail(email string) (*models.Contact, error) {
	if s.existingEmails[email] {
		return &models.Contact{Email: email}, nil
	}
	return nil, nil
}

func (s *fakeTargetStore) CreateContact(contact *models.Contact) error {
	if s.failCreate {
		return errors.New("store unavailable")
	}
	s.contacts = append(s.contacts, *contact)
	return nil
}

type fakeIndexer struct {
	indexed []models.Link
	fail    bool
}

func (f *fakeIndexer) IndexSingleLink(link models.Link) error {
	if f.fail {
		return errors.New("index unavailable")
	}
	f.indexed = append(f.indexed, link)
	return nil
}

func TestProcessLinksImportDefaults(t *testing.T) {
	store := newFakeTargetStore()
	importer := NewImporter(store, nil, zap.NewNop())

	records := []RawRecord{
		{"original_url": "https://example.com"},
	}

	counts := importer.ProcessLinksImport(records, "job-1", false)

	if counts.Success != 1 || counts.Errors != 0 || counts.Skipped != 0 {
		t.Fatalf("counts = %+v", counts)
	}
	if len(store.links) != 1 {
		t.Fatalf("expected 1 link created, got %d", len(store.links))
	}

	link := store.links[0]
	if !strings.HasPrefix(link.ShortURL, "lab.et/") {
		t.Errorf("ShortURL = %q, want lab.et/ prefix", link.ShortURL)
	}
	if len(link.ShortURL) != len("lab.et/")+8 {
		t.Errorf("ShortURL = %q, want 8-char generated slug", link.ShortURL)
	}
	if link.Title != "Imported Link" {
		t.Errorf("Title = %q", link.Title)
	}
	if link.Category != "General" {
		t.Errorf("Category = %q", link.Category)
	}
	if link.UserID != "1" {
		t.Errorf("UserID = %q", link.UserID)
	}
	if !link.IsActive {
		t.Error("IsActive = false, want true")
	}
	if link.Clicks != 0 {
		t.Errorf("Clicks = %d", link.Clicks)
	}

	var meta map[string]interface{}
	if err := json.Unmarshal(link.Metadata, &meta); err != nil {
		t.Fatalf("metadata is not valid JSON: %v", err)
	}
	if meta["imported"] != true {
		t.Errorf("metadata imported = %v", meta["imported"])
	}
	if meta["import_job_id"] != "job-1" {
		t.Errorf("metadata import_job_id = %v", meta["import_job_id"])
	}
}

func TestProcessLinksImportSkipDuplicates(t *testing.T) {
	store := newFakeTargetStore()
	store.existingURLs["https://existing.com"] = true
	importer := NewImporter(store, nil, zap.NewNop())

	records := []RawRecord{
		{"original_url": "https://existing.com"},
		{"original_url": "https://new.com"},
	}

	counts := importer.ProcessLinksImport(records, "job-1", true)

	if counts.Processed != 2 || counts.Success != 1 || counts.Skipped != 1 {
		t.Fatalf("counts = %+v", counts)
	}
	if len(store.links) != 1 || store.links[0].OriginalURL != "https://new.com" {
		t.Fatalf("links = %+v", store.links)
	}
}

func TestProcessLinksImportDuplicatesKeptWithoutFlag(t *testing.T) {
	store := newFakeTargetStore()
	store.existingURLs["https://existing.com"] = true
	importer := NewImporter(store, nil, zap.NewNop())

	records := []RawRecord{{"original_url": "https://existing.com"}}

	counts := importer.ProcessLinksImport(records, "job-1", false)

	if counts.Success != 1 || counts.Skipped != 0 {
		t.Fatalf("counts = %+v", counts)
	}
}

func TestProcessLinksImportRecordsFailures(t *testing.T) {
	store := newFakeTargetStore()
	importer := NewImporter(store, nil, zap.NewNop())

	records := []RawRecord{
		{"title": "no url"},
		{"original_url": "https://example.com"},
	}

	counts := importer.ProcessLinksImport(records, "job-1", false)

	if counts.Processed != 2 || counts.Success != 1 || counts.Errors != 1 {
		t.Fatalf("counts = %+v", counts)
	}
	if counts.Processed != counts.Success+counts.Errors+counts.Skipped {
		t.Errorf("count invariant broken: %+v", counts)
	}
	if len(counts.Failures) != 1 {
		t.Fatalf("Failures = %+v", counts.Failures)
	}
	if counts.Failures[0].RowNumber != 1 {
		t.Errorf("failure row = %d, want 1", counts.Failures[0].RowNumber)
	}
}

func TestProcessLinksImportStoreErrorContinues(t *testing.T) {
	store := newFakeTargetStore()
	store.failCreate = true
	importer := NewImporter(store, nil, zap.NewNop())

	records := []RawRecord{
		{"original_url": "https://a.com"},
		{"original_url": "https://b.com"},
	}

	counts := importer.ProcessLinksImport(records, "job-1", false)

	if counts.Processed != 2 || counts.Errors != 2 {
		t.Fatalf("counts = %+v", counts)
	}
}

func TestProcessLinksImportIndexesCreatedLinks(t *testing.T) {
	store := newFakeTargetStore()
	indexer := &fakeIndexer{}
	importer := NewImporter(store, indexer, zap.NewNop())

	records := []RawRecord{{"original_url": "https://example.com"}}

	importer.ProcessLinksImport(records, "job-1", false)

	if len(indexer.indexed) != 1 {
		t.Fatalf("expected 1 indexed link, got %d", len(indexer.indexed))
	}
}

func TestProcessLinksImportIndexFailureDoesNotFailRecord(t *testing.T) {
	store := newFakeTargetStore()
	indexer := &fakeIndexer{fail: true}
	importer := NewImporter(store, indexer, zap.NewNop())

	records := []RawRecord{{"original_url": "https://example.com"}}

	counts := importer.ProcessLinksImport(records, "job-1", false)

	if counts.Success != 1 || counts.Errors != 0 {
		t.Fatalf("counts = %+v", counts)
	}
}

func TestProcessUsersImport(t *testing.T) {
	store := newFakeTargetStore()
	store.existingEmails["dup@example.com"] = true
	importer := NewImporter(store, nil, zap.NewNop())

	records := []RawRecord{
		{"name": "Alice", "email": "alice@example.com", "password": "secret123"},
		{"name": "Dup", "email": "dup@example.com"},
		{"email": "noname@example.com"},
		{"name": "Gen", "email": "gen@example.com"},
	}

	counts := importer.ProcessUsersImport(records, "job-2", true)

	if counts.Processed != 4 || counts.Success != 2 || counts.Skipped != 1 || counts.Errors != 1 {
		t.Fatalf("counts = %+v", counts)
	}
	if len(store.users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(store.users))
	}

	alice := store.users[0]
	if alice.Password == "secret123" || alice.Password == "" {
		t.Error("password was not hashed")
	}
	if !CheckPasswordHash("secret123", alice.Password) {
		t.Error("hashed password does not verify")
	}
	if alice.UserType != "customer" || alice.Plan != "Basic" || alice.Status != "active" {
		t.Errorf("defaults not applied: %+v", alice)
	}

	gen := store.users[1]
	if gen.Password == "" {
		t.Error("expected auto-generated password to be hashed and stored")
	}
}

func TestProcessUsersImportNoAutoGenerate(t *testing.T) {
	store := newFakeTargetStore()
	importer := NewImporter(store, nil, zap.NewNop())

	records := []RawRecord{{"name": "NoPass", "email": "nopass@example.com"}}

	counts := importer.ProcessUsersImport(records, "job-2", false)

	if counts.Success != 1 {
		t.Fatalf("counts = %+v", counts)
	}
	if store.users[0].Password != "" {
		t.Errorf("Password = %q, want empty", store.users[0].Password)
	}
}

func TestProcessAnalyticsImport(t *testing.T) {
	store := newFakeTargetStore()
	importer := NewImporter(store, nil, zap.NewNop())

	records := []RawRecord{
		{"short_url": "lab.et/abc", "click_date": "2024-01-01", "clicks": 5},
		{"short_url": "lab.et/def"},
	}

	counts := importer.ProcessAnalyticsImport(records, "job-3")

	if counts.Success != 1 || counts.Errors != 1 {
		t.Fatalf("counts = %+v", counts)
	}
	if store.events[0].Clicks != 5 {
		t.Errorf("Clicks = %d, want 5", store.events[0].Clicks)
	}
}

func TestProcessDomainsImport(t *testing.T) {
	store := newFakeTargetStore()
	store.existingURLs["taken.example.com"] = true
	importer := NewImporter(store, nil, zap.NewNop())

	records := []RawRecord{
		{"domain": "links.example.com"},
		{"domain": "taken.example.com"},
		{"owner_email": "x@example.com"},
	}

	counts := importer.ProcessDomainsImport(records, "job-4")

	if counts.Success != 1 || counts.Skipped != 1 || counts.Errors != 1 {
		t.Fatalf("counts = %+v", counts)
	}
	created := store.domains[0]
	if !created.IsActive || !created.SSLEnabled || created.DNSVerified {
		t.Errorf("domain defaults: %+v", created)
	}
}

func TestProcessContactsImport(t *testing.T) {
	store := newFakeTargetStore()
	store.existingEmails["dup@example.com"] = true
	importer := NewImporter(store, nil, zap.NewNop())

	records := []RawRecord{
		{"name": "Alice", "email": "alice@example.com"},
		{"name": "Dup", "email": "dup@example.com"},
	}

	counts := importer.ProcessContactsImport(records, "job-5")

	if counts.Success != 1 || counts.Skipped != 1 {
		t.Fatalf("counts = %+v", counts)
	}
	if store.contacts[0].Status != "active" {
		t.Errorf("Status = %q, want active", store.contacts[0].Status)
	}
}

func TestImportCountsInvariantAcrossLargeBatch(t *testing.T) {
	store := newFakeTargetStore()
	importer := NewImporter(store, nil, zap.NewNop())

	var records []RawRecord
	for i := 0; i < 50; i++ {
		if i%3 == 0 {
			records = append(records, RawRecord{"title": "missing url"})
		} else {
			records = append(records, RawRecord{"original_url": fmt.Sprintf("https://example.com/%d", i)})
		}
	}

	counts := importer.ProcessLinksImport(records, "job-6", false)

	if counts.Processed != 50 {
		t.Errorf("Processed = %d, want 50", counts.Processed)
	}
	if counts.Processed != counts.Success+counts.Errors+counts.Skipped {
		t.Errorf("count invariant broken: %+v", counts)
	}
	if len(counts.Failures) != counts.Errors {
		t.Errorf("failures %d != errors %d", len(counts.Failures), counts.Errors)
	}
}
