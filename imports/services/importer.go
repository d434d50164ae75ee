package services

import (
	"encoding/json"
	"fmt"

	"linkabet-backend/db/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// TargetStore is the narrow persistence surface the importer writes through.
// Find methods return (nil, nil) when no entity matches the natural key, so
// either a relational or document backend can satisfy the interface.
type TargetStore interface {
	FindLinkByOriginalURL(originalURL string) (*models.Link, error)
	CreateLink(link *models.Link) error
	FindUserByEmail(email string) (*models.User, error)
	CreateUser(user *models.User) error
	CreateAnalyticsEvent(event *models.AnalyticsEvent) error
	FindDomainByName(domain string) (*models.Domain, error)
	CreateDomain(domain *models.Domain) error
	FindContactByEmail(email string) (*models.Contact, error)
	CreateContact(contact *models.Contact) error
}

// LinkIndexer receives successfully imported links for search indexing.
// Indexing failures are logged and never fail the record; the index is
// eventually consistent with the store.
type LinkIndexer interface {
	IndexSingleLink(link models.Link) error
}

type recordOutcome int

const (
	outcomeSuccess recordOutcome = iota
	outcomeSkipped
	outcomeFailed
)

// ImportFailure identifies one record that could not be persisted.
type ImportFailure struct {
	RowNumber int    `json:"row_number"`
	Message   string `json:"error"`
}

// ImportCounts aggregates per-record outcomes for one batch.
// Processed == Success + Errors + Skipped always holds.
type ImportCounts struct {
	Processed int             `json:"processed_count"`
	Success   int             `json:"success_count"`
	Errors    int             `json:"error_count"`
	Skipped   int             `json:"skipped_count"`
	Failures  []ImportFailure `json:"-"`
}

func (c *ImportCounts) record(row int, outcome recordOutcome, err error) {
	c.Processed++
	switch outcome {
	case outcomeSuccess:
		c.Success++
	case outcomeSkipped:
		c.Skipped++
	case outcomeFailed:
		c.Errors++
		msg := "record could not be persisted"
		if err != nil {
			msg = err.Error()
		}
		c.Failures = append(c.Failures, ImportFailure{RowNumber: row, Message: msg})
	}
}

// Importer maps raw records onto target entities and writes them through the
// store. It holds no state between calls; construct once and share.
type Importer struct {
	store   TargetStore
	indexer LinkIndexer
	logger  *zap.Logger
}

func NewImporter(store TargetStore, indexer LinkIndexer, logger *zap.Logger) *Importer {
	return &Importer{store: store, indexer: indexer, logger: logger}
}

func mustJSON(v interface{}) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(b)
}

func importMetadata(jobID string) datatypes.JSON {
	return mustJSON(map[string]interface{}{
		"imported":      true,
		"import_job_id": jobID,
	})
}

// generatedShortURL mints a short URL on the service's default domain.
func generatedShortURL() string {
	return fmt.Sprintf("lab.et/%s", uuid.New().String()[:8])
}

// ProcessLinksImport writes link rows. Rows that failed validation are still
// attempted; a per-record persistence failure increments the error count and
// processing continues with the next record.
func (im *Importer) ProcessLinksImport(records []RawRecord, jobID string, skipDuplicates bool) ImportCounts {
	counts := ImportCounts{}

	for i, record := range records {
		row := i + 1

		originalURL := stringField(record, "original_url")
		if originalURL == "" {
			counts.record(row, outcomeFailed, fmt.Errorf("original_url is missing"))
			continue
		}

		if skipDuplicates {
			existing, err := im.store.FindLinkByOriginalURL(originalURL)
			if err != nil {
				counts.record(row, outcomeFailed, err)
				continue
			}
			if existing != nil {
				counts.record(row, outcomeSkipped, nil)
				continue
			}
		}

		shortURL := stringField(record, "short_url")
		if shortURL == "" {
			shortURL = generatedShortURL()
		}
		title := stringField(record, "title")
		if title == "" {
			title = "Imported Link"
		}
		category := stringField(record, "category")
		if category == "" {
			category = "General"
		}
		userID := stringField(record, "user_id")
		if userID == "" {
			userID = "1" // Default user
		}

		link := models.Link{
			ID:           uuid.New(),
			OriginalURL:  originalURL,
			ShortURL:     shortURL,
			Title:        title,
			Description:  stringField(record, "description"),
			Category:     category,
			Tags:         mustJSON(listField(record, "tags")),
			CustomDomain: stringField(record, "custom_domain"),
			IsActive:     boolField(record, "is_active", true),
			Clicks:       intField(record, "clicks", 0),
			UserID:       userID,
			UserEmail:    stringField(record, "user_email"),
			Metadata:     importMetadata(jobID),
		}

		if err := im.store.CreateLink(&link); err != nil {
			im.logger.Error("Error processing link record", zap.Int("row", row), zap.Error(err))
			counts.record(row, outcomeFailed, err)
			continue
		}
		counts.record(row, outcomeSuccess, nil)

		if im.indexer != nil {
			if err := im.indexer.IndexSingleLink(link); err != nil {
				im.logger.Warn("Error indexing imported link",
					zap.String("link_id", link.ID.String()), zap.Error(err))
			}
		}
	}

	return counts
}

// ProcessUsersImport writes user rows. A missing password is generated when
// autoGeneratePasswords is set, and every password is bcrypt-hashed before
// it reaches the store. Duplicate emails are always skipped.
func (im *Importer) ProcessUsersImport(records []RawRecord, jobID string, autoGeneratePasswords bool) ImportCounts {
	counts := ImportCounts{}

	for i, record := range records {
		row := i + 1

		name := stringField(record, "name")
		email := stringField(record, "email")
		if name == "" || email == "" {
			counts.record(row, outcomeFailed, fmt.Errorf("name and email are required"))
			continue
		}

		existing, err := im.store.FindUserByEmail(email)
		if err != nil {
			counts.record(row, outcomeFailed, err)
			continue
		}
		if existing != nil {
			counts.record(row, outcomeSkipped, nil)
			continue
		}

		password := stringField(record, "password")
		if password == "" && autoGeneratePasswords {
			password = uuid.New().String()[:12]
		}
		hashedPassword := ""
		if password != "" {
			hashedPassword, err = HashPassword(password)
			if err != nil {
				counts.record(row, outcomeFailed, err)
				continue
			}
		}

		userType := stringField(record, "user_type")
		if userType == "" {
			userType = "customer"
		}
		plan := stringField(record, "plan")
		if plan == "" {
			plan = "Basic"
		}
		status := stringField(record, "status")
		if status == "" {
			status = "active"
		}

		user := models.User{
			ID:            uuid.New(),
			Name:          name,
			Email:         email,
			Password:      hashedPassword,
			UserType:      userType,
			Plan:          plan,
			Status:        status,
			Phone:         stringField(record, "phone"),
			Company:       stringField(record, "company"),
			CustomDomains: mustJSON(listField(record, "custom_domains")),
			Metadata:      importMetadata(jobID),
		}

		if err := im.store.CreateUser(&user); err != nil {
			im.logger.Error("Error processing user record", zap.Int("row", row), zap.Error(err))
			counts.record(row, outcomeFailed, err)
			continue
		}
		counts.record(row, outcomeSuccess, nil)
	}

	return counts
}

// ProcessAnalyticsImport writes analytics rows. There is no natural key, so
// no duplicate detection happens here.
func (im *Importer) ProcessAnalyticsImport(records []RawRecord, jobID string) ImportCounts {
	counts := ImportCounts{}

	for i, record := range records {
		row := i + 1

		clickDate := stringField(record, "click_date")
		if clickDate == "" {
			counts.record(row, outcomeFailed, fmt.Errorf("click_date is missing"))
			continue
		}

		event := models.AnalyticsEvent{
			ID:           uuid.New(),
			LinkID:       stringField(record, "link_id"),
			ShortURL:     stringField(record, "short_url"),
			OriginalURL:  stringField(record, "original_url"),
			Clicks:       intField(record, "clicks", 0),
			UniqueClicks: intField(record, "unique_clicks", 0),
			ClickDate:    clickDate,
			Country:      stringField(record, "country"),
			City:         stringField(record, "city"),
			DeviceType:   stringField(record, "device_type"),
			Browser:      stringField(record, "browser"),
			OS:           stringField(record, "os"),
			Referrer:     stringField(record, "referrer"),
			UserAgent:    stringField(record, "user_agent"),
			IPAddress:    stringField(record, "ip_address"),
			Metadata:     importMetadata(jobID),
		}

		if err := im.store.CreateAnalyticsEvent(&event); err != nil {
			im.logger.Error("Error processing analytics record", zap.Int("row", row), zap.Error(err))
			counts.record(row, outcomeFailed, err)
			continue
		}
		counts.record(row, outcomeSuccess, nil)
	}

	return counts
}

// ProcessDomainsImport writes custom-domain rows, skipping names that
// already exist.
func (im *Importer) ProcessDomainsImport(records []RawRecord, jobID string) ImportCounts {
	counts := ImportCounts{}

	for i, record := range records {
		row := i + 1

		name := stringField(record, "domain")
		if name == "" {
			counts.record(row, outcomeFailed, fmt.Errorf("domain is missing"))
			continue
		}

		existing, err := im.store.FindDomainByName(name)
		if err != nil {
			counts.record(row, outcomeFailed, err)
			continue
		}
		if existing != nil {
			counts.record(row, outcomeSkipped, nil)
			continue
		}

		domain := models.Domain{
			ID:          uuid.New(),
			Domain:      name,
			IsActive:    boolField(record, "is_active", true),
			SSLEnabled:  boolField(record, "ssl_enabled", true),
			DNSVerified: boolField(record, "dns_verified", false),
			OwnerUserID: stringField(record, "owner_user_id"),
			OwnerEmail:  stringField(record, "owner_email"),
			Settings:    mustJSON(map[string]interface{}{}),
			Metadata:    importMetadata(jobID),
		}

		if err := im.store.CreateDomain(&domain); err != nil {
			im.logger.Error("Error processing domain record", zap.Int("row", row), zap.Error(err))
			counts.record(row, outcomeFailed, err)
			continue
		}
		counts.record(row, outcomeSuccess, nil)
	}

	return counts
}

// ProcessContactsImport writes contact rows, skipping duplicate emails.
func (im *Importer) ProcessContactsImport(records []RawRecord, jobID string) ImportCounts {
	counts := ImportCounts{}

	for i, record := range records {
		row := i + 1

		name := stringField(record, "name")
		email := stringField(record, "email")
		if name == "" || email == "" {
			counts.record(row, outcomeFailed, fmt.Errorf("name and email are required"))
			continue
		}

		existing, err := im.store.FindContactByEmail(email)
		if err != nil {
			counts.record(row, outcomeFailed, err)
			continue
		}
		if existing != nil {
			counts.record(row, outcomeSkipped, nil)
			continue
		}

		contact := models.Contact{
			ID:       uuid.New(),
			Name:     name,
			Email:    email,
			Phone:    stringField(record, "phone"),
			Company:  stringField(record, "company"),
			Position: stringField(record, "position"),
			Tags:     mustJSON(listField(record, "tags")),
			Notes:    stringField(record, "notes"),
			Source:   stringField(record, "source"),
			Status:   firstNonEmpty(stringField(record, "status"), "active"),
			Metadata: importMetadata(jobID),
		}

		if err := im.store.CreateContact(&contact); err != nil {
			im.logger.Error("Error processing contact record", zap.Int("row", row), zap.Error(err))
			counts.record(row, outcomeFailed, err)
			continue
		}
		counts.record(row, outcomeSuccess, nil)
	}

	return counts
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
