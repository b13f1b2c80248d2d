package search

import (
	"fmt"
	"strings"

	"safinaland-api/internal/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/meilisearch/meilisearch-go"
)

type SearchClient struct {
	client *meilisearch.Client
	index  string
}

// Document is the shape indexed per property. Descriptions are stored as
// plain text so HTML markup from the editor never matches queries.
type Document struct {
	ID           uint    `json:"id"`
	Title        string  `json:"title"`
	Slug         string  `json:"slug"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Location     string  `json:"location"`
	Status       string  `json:"status"`
	CategoryName string  `json:"category_name"`
	Featured     bool    `json:"featured"`
	CreatedAt    int64   `json:"created_at"`
}

func NewSearchClient(host, apiKey string) *SearchClient {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})

	return &SearchClient{
		client: client,
		index:  "properties",
	}
}

// InitIndex initializes the Meilisearch index
func (s *SearchClient) InitIndex() error {
	_, err := s.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        s.index,
		PrimaryKey: "id",
	})
	// Ignore error if index already exists
	if err != nil && err.Error() != "index already exists" {
		return err
	}

	_, err = s.client.Index(s.index).UpdateSearchableAttributes(&[]string{
		"title",
		"description",
		"location",
		"category_name",
	})
	if err != nil {
		return err
	}

	_, err = s.client.Index(s.index).UpdateFilterableAttributes(&[]string{
		"id",
		"status",
		"category_name",
		"featured",
	})
	if err != nil {
		return err
	}

	_, err = s.client.Index(s.index).UpdateSortableAttributes(&[]string{
		"created_at",
	})
	return err
}

// BuildDocument converts a property row into its index document.
func BuildDocument(p *models.Property, categoryName string) Document {
	return Document{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Description:  StripHTML(p.Description),
		Price:        p.Price,
		Location:     p.Location,
		Status:       string(p.Status),
		CategoryName: categoryName,
		Featured:     p.Featured,
		CreatedAt:    p.CreatedAt.Unix(),
	}
}

// StripHTML flattens rich-text markup to plain text. Non-HTML input passes
// through unchanged.
func StripHTML(html string) string {
	if !strings.Contains(html, "<") {
		return html
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// IndexProperty upserts a single property document.
func (s *SearchClient) IndexProperty(doc Document) error {
	_, err := s.client.Index(s.index).AddDocuments([]Document{doc})
	return err
}

// IndexProperties upserts many documents at once, used by reindexing.
func (s *SearchClient) IndexProperties(docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := s.client.Index(s.index).AddDocuments(docs)
	return err
}

// RemoveProperty drops a deleted property from the index.
func (s *SearchClient) RemoveProperty(id uint) error {
	_, err := s.client.Index(s.index).DeleteDocument(fmt.Sprintf("%d", id))
	return err
}

// Search returns matching property IDs, best first.
func (s *SearchClient) Search(query string, limit int64) ([]uint, error) {
	if limit == 0 {
		limit = 20
	}
	searchRes, err := s.client.Index(s.index).Search(query, &meilisearch.SearchRequest{
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(searchRes.Hits))
	for _, hit := range searchRes.Hits {
		hitMap, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		if id, ok := hitMap["id"].(float64); ok {
			ids = append(ids, uint(id))
		}
	}
	return ids, nil
}
