package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"safinaland-api/internal/database"
	"safinaland-api/internal/models"
	"safinaland-api/internal/search"
	"safinaland-api/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PropertyHandler handles listing reads and admin CRUD, including multipart
// gallery uploads. The search client is nil when Meilisearch is disabled.
type PropertyHandler struct {
	db        *database.GormDB
	store     *storage.Store
	remover   *storage.Remover
	search    *search.SearchClient
	maxImages int
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(db *database.GormDB, store *storage.Store, remover *storage.Remover, sc *search.SearchClient, maxImages int) *PropertyHandler {
	return &PropertyHandler{
		db:        db,
		store:     store,
		remover:   remover,
		search:    sc,
		maxImages: maxImages,
	}
}

// List handles GET /api/properties with page, category_id and search query
// params.
func (h *PropertyHandler) List(c *gin.Context) {
	filters := database.PropertyFilters{
		Search: c.Query("search"),
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filters.Page = page
	}
	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			categoryID := uint(id)
			filters.CategoryID = &categoryID
		}
	}

	result, err := h.db.ListProperties(filters)
	if err != nil {
		log.Printf("Properties: List failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get handles GET /api/properties/:id.
func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	detail, err := h.db.GetPropertyDetail(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Property not found"})
			return
		}
		log.Printf("Properties: Get failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Create handles POST /api/properties (bearer, multipart).
func (h *PropertyHandler) Create(c *gin.Context) {
	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	imageURLs, ok := h.saveUploads(c)
	if !ok {
		return
	}

	property, err := h.db.CreateProperty(input, imageURLs)
	if err != nil {
		log.Printf("Properties: Create failed: %v", err)
		// The transaction rolled back; the files it referenced are orphans.
		h.remover.Enqueue(imageURLs...)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	h.indexProperty(property)
	c.JSON(http.StatusCreated, property)
}

// Update handles PUT /api/properties/:id (bearer, multipart). Attaching
// files replaces the whole gallery; omitting them leaves it untouched.
func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	imageURLs, ok := h.saveUploads(c)
	if !ok {
		return
	}

	replaced, err := h.db.UpdateProperty(id, input, imageURLs)
	if err != nil {
		log.Printf("Properties: Update failed: %v", err)
		h.remover.Enqueue(imageURLs...)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	h.remover.Enqueue(replaced...)

	if detail, err := h.db.GetPropertyDetail(id); err == nil {
		h.indexProperty(&detail.Property)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property updated"})
}

// Delete handles DELETE /api/properties/:id (bearer).
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	removed, err := h.db.DeleteProperty(id)
	if err != nil {
		log.Printf("Properties: Delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	h.remover.Enqueue(removed...)

	if h.search != nil {
		if err := h.search.RemoveProperty(id); err != nil {
			log.Printf("Properties: Search remove failed for id=%d: %v", id, err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}

// DeleteGalleryImage handles DELETE /api/property-galleries/:id (bearer).
func (h *PropertyHandler) DeleteGalleryImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	imageURL, err := h.db.DeleteGalleryImage(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Image not found"})
			return
		}
		log.Printf("Properties: Gallery delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	h.remover.Enqueue(imageURL)

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}

// bindInput reads the multipart form fields of a create/update request.
func (h *PropertyHandler) bindInput(c *gin.Context) (database.PropertyInput, bool) {
	input := database.PropertyInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Location:    c.PostForm("location"),
		Size:        c.PostForm("size"),
		Status:      models.PropertyStatus(c.PostForm("status")),
	}
	if input.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title is required"})
		return input, false
	}

	if raw := c.PostForm("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid price"})
			return input, false
		}
		input.Price = price
	}
	if raw := c.PostForm("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category_id"})
			return input, false
		}
		categoryID := uint(id)
		input.CategoryID = &categoryID
	}
	if raw := c.PostForm("featured"); raw != "" {
		input.Featured = raw == "true" || raw == "1"
	}

	return input, true
}

// saveUploads stores every attached "images" file and returns their URLs in
// upload order. Answers the request itself on failure.
func (h *PropertyHandler) saveUploads(c *gin.Context) ([]string, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		// No multipart body at all means no files.
		return nil, true
	}

	files := form.File["images"]
	if len(files) == 0 {
		return nil, true
	}
	if len(files) > h.maxImages {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Too many images"})
		return nil, false
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := h.store.Save(file)
		if err != nil {
			log.Printf("Properties: Upload save failed: %v", err)
			h.remover.Enqueue(urls...)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return nil, false
		}
		urls = append(urls, url)
	}
	return urls, true
}

// indexProperty upserts the search document, best effort.
func (h *PropertyHandler) indexProperty(p *models.Property) {
	if h.search == nil {
		return
	}
	categoryName := ""
	if name := h.db.CategoryNameByID(p.CategoryID); name != nil {
		categoryName = *name
	}
	if err := h.search.IndexProperty(search.BuildDocument(p, categoryName)); err != nil {
		log.Printf("Properties: Search index failed for id=%d: %v", p.ID, err)
	}
}
