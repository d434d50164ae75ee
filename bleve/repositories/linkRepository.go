package repositories

import (
	"fmt"

	bleveindex "linkabet-backend/bleve/services"
	"linkabet-backend/db/models"

	"github.com/blevesearch/bleve/v2"
)

const linkIndexName = "links"

// LinkDocument is the searchable projection of a link.
type LinkDocument struct {
	ID          string `json:"id"`
	OriginalURL string `json:"original_url"`
	ShortURL    string `json:"short_url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type LinkIndexRepositoryInterface interface {
	IndexSingleLink(link models.Link) error
	DeleteLink(linkID string) error
	SearchLinks(q string, size int) ([]LinkDocument, error)
}

type LinkIndexRepository struct {
	indexer *bleveindex.IndexingService
}

func NewLinkIndexRepository(indexer *bleveindex.IndexingService) *LinkIndexRepository {
	return &LinkIndexRepository{indexer: indexer}
}

func (r *LinkIndexRepository) IndexSingleLink(link models.Link) error {
	doc := LinkDocument{
		ID:          link.ID.String(),
		OriginalURL: link.OriginalURL,
		ShortURL:    link.ShortURL,
		Title:       link.Title,
		Description: link.Description,
		Category:    link.Category,
	}
	return r.indexer.IndexDocument(linkIndexName, doc.ID, doc)
}

func (r *LinkIndexRepository) DeleteLink(linkID string) error {
	return r.indexer.DeleteDocument(linkIndexName, linkID)
}

func (r *LinkIndexRepository) SearchLinks(q string, size int) ([]LinkDocument, error) {
	query := bleve.NewQueryStringQuery(q)
	result, err := r.indexer.SearchIndex(linkIndexName, query, size)
	if err != nil {
		return nil, err
	}

	docs := make([]LinkDocument, 0, len(result.Hits))
	for _, hit := range result.Hits {
		docs = append(docs, LinkDocument{
			ID:          hit.ID,
			OriginalURL: stringHitField(hit.Fields, "original_url"),
			ShortURL:    stringHitField(hit.Fields, "short_url"),
			Title:       stringHitField(hit.Fields, "title"),
			Description: stringHitField(hit.Fields, "description"),
			Category:    stringHitField(hit.Fields, "category"),
		})
	}
	return docs, nil
}

func stringHitField(fields map[string]interface{}, key string) string {
	if v, ok := fields[key]; ok && v != nil {
		return fmt.Sprintf("%v", v)
	}
	return ""
}
