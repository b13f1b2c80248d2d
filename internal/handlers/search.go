package handlers

import (
	"log"
	"net/http"
	"strconv"

	"safinaland-api/internal/database"
	"safinaland-api/internal/search"

	"github.com/gin-gonic/gin"
)

// SearchHandler serves free-text search. With no Meilisearch configured it
// falls back to the SQL LIKE filter of the listing service.
type SearchHandler struct {
	db     *database.GormDB
	client *search.SearchClient
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(db *database.GormDB, client *search.SearchClient) *SearchHandler {
	return &SearchHandler{db: db, client: client}
}

// Search handles GET /api/search?q&limit.
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	if h.client == nil {
		h.fallbackSearch(c, query)
		return
	}

	ids, err := h.client.Search(query, limit)
	if err != nil {
		log.Printf("Search: Meilisearch query failed, falling back to SQL: %v", err)
		h.fallbackSearch(c, query)
		return
	}

	results := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		detail, err := h.db.GetPropertyDetail(id)
		if err != nil {
			// Index can lag behind deletes.
			continue
		}
		results = append(results, detail)
	}

	c.JSON(http.StatusOK, gin.H{"data": results, "count": len(results)})
}

func (h *SearchHandler) fallbackSearch(c *gin.Context, query string) {
	page, err := h.db.ListProperties(database.PropertyFilters{Search: query})
	if err != nil {
		log.Printf("Search: Fallback query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": page.Data, "count": len(page.Data)})
}

// Reindex handles POST /api/search/reindex (bearer): rebuild the whole
// index from the database.
func (h *SearchHandler) Reindex(c *gin.Context) {
	if h.client == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Search is not configured"})
		return
	}

	properties, err := h.db.AllProperties()
	if err != nil {
		log.Printf("Search: Reindex load failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	docs := make([]search.Document, 0, len(properties))
	for i := range properties {
		categoryName := ""
		if name := h.db.CategoryNameByID(properties[i].CategoryID); name != nil {
			categoryName = *name
		}
		docs = append(docs, search.BuildDocument(&properties[i], categoryName))
	}

	if err := h.client.IndexProperties(docs); err != nil {
		log.Printf("Search: Reindex failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	log.Printf("Search: Reindexed %d properties", len(docs))
	c.JSON(http.StatusOK, gin.H{"message": "Reindex completed", "count": len(docs)})
}
