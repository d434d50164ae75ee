package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultBitlyBaseURL     = "https://api-ssl.bitly.com"
	defaultRebrandlyBaseURL = "https://api.rebrandly.com"
)

// MigrationCredentials carries whatever the external platform needs; Bitly
// wants a bearer token, Rebrandly an API key.
type MigrationCredentials struct {
	APIKey      string
	AccessToken string
}

// PlatformMigrationService pulls link pages from third-party shorteners and
// maps them onto the same raw-record shape the file importers consume.
type PlatformMigrationService struct {
	client           *http.Client
	limiter          *rate.Limiter
	logger           *zap.Logger
	bitlyBaseURL     string
	rebrandlyBaseURL string
}

func NewPlatformMigrationService(logger *zap.Logger) *PlatformMigrationService {
	return &PlatformMigrationService{
		client:           &http.Client{Timeout: 30 * time.Second},
		limiter:          rate.NewLimiter(rate.Every(time.Second), 2),
		logger:           logger,
		bitlyBaseURL:     defaultBitlyBaseURL,
		rebrandlyBaseURL: defaultRebrandlyBaseURL,
	}
}

// MigrateFromPlatform dispatches to a platform integration. A platform with
// no integration returns an explicit error rather than silently succeeding.
func (s *PlatformMigrationService) MigrateFromPlatform(ctx context.Context, platform string, creds MigrationCredentials) ([]RawRecord, error) {
	switch strings.ToLower(platform) {
	case "bitly":
		return s.MigrateFromBitly(ctx, creds)
	case "rebrandly":
		return s.MigrateFromRebrandly(ctx, creds)
	}
	return nil, fmt.Errorf("platform %s not supported", platform)
}

type bitlyLink struct {
	LongURL   string   `json:"long_url"`
	Link      string   `json:"link"`
	Title     string   `json:"title"`
	CreatedAt string   `json:"created_at"`
	Clicks    int      `json:"clicks"`
	Tags      []string `json:"tags"`
}

type bitlyLinksResponse struct {
	Links []bitlyLink `json:"links"`
}

// MigrateFromBitly fetches one page of links from the Bitly v4 API.
func (s *PlatformMigrationService) MigrateFromBitly(ctx context.Context, creds MigrationCredentials) ([]RawRecord, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.bitlyBaseURL+"/v4/links?size=50", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bitly request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bitly API error: %d", resp.StatusCode)
	}

	var payload bitlyLinksResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("bitly response decode failed: %w", err)
	}

	records := make([]RawRecord, 0, len(payload.Links))
	for _, link := range payload.Links {
		records = append(records, RawRecord{
			"original_url": link.LongURL,
			"short_url":    link.Link,
			"title":        link.Title,
			"created_at":   link.CreatedAt,
			"clicks":       link.Clicks,
			"tags":         link.Tags,
		})
	}
	return records, nil
}

type rebrandlyLink struct {
	Destination string `json:"destination"`
	DomainName  string `json:"domainName"`
	Slashtag    string `json:"slashtag"`
	Title       string `json:"title"`
	CreatedAt   string `json:"createdAt"`
	Clicks      int    `json:"clicks"`
}

// MigrateFromRebrandly fetches one page of links from the Rebrandly v1 API.
func (s *PlatformMigrationService) MigrateFromRebrandly(ctx context.Context, creds MigrationCredentials) ([]RawRecord, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.rebrandlyBaseURL+"/v1/links?limit=25", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", creds.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rebrandly request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rebrandly API error: %d", resp.StatusCode)
	}

	var links []rebrandlyLink
	if err := json.NewDecoder(resp.Body).Decode(&links); err != nil {
		return nil, fmt.Errorf("rebrandly response decode failed: %w", err)
	}

	records := make([]RawRecord, 0, len(links))
	for _, link := range links {
		records = append(records, RawRecord{
			"original_url": link.Destination,
			"short_url":    fmt.Sprintf("https://%s/%s", link.DomainName, link.Slashtag),
			"title":        link.Title,
			"created_at":   link.CreatedAt,
			"clicks":       link.Clicks,
		})
	}
	return records, nil
}
