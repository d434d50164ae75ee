package repositories

import (
	"errors"

	"linkabet-backend/db/models"
	"linkabet-backend/imports/services"

	"gorm.io/gorm"
)

// targetRepository satisfies the importer's TargetStore over GORM.
type targetRepository struct {
	db *gorm.DB
}

func NewTargetRepository(db *gorm.DB) services.TargetStore {
	return &targetRepository{db: db}
}

func (r *targetRepository) FindLinkByOriginalURL(originalURL string) (*models.Link, error) {
	var link models.Link
	err := r.db.Where("original_url = ?", originalURL).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *targetRepository) CreateLink(link *models.Link) error {
	return r.db.Create(link).Error
}

func (r *targetRepository) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *targetRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *targetRepository) CreateAnalyticsEvent(event *models.AnalyticsEvent) error {
	return r.db.Create(event).Error
}

func (r *targetRepository) FindDomainByName(domain string) (*models.Domain, error) {
	var d models.Domain
	err := r.db.Where("domain = ?", domain).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *targetRepository) CreateDomain(domain *models.Domain) error {
	return r.db.Create(domain).Error
}

func (r *targetRepository) FindContactByEmail(email string) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.Where("email = ?", email).First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *targetRepository) CreateContact(contact *models.Contact) error {
	return r.db.Create(contact).Error
}
