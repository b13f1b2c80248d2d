package database

import (
	"safinaland-api/internal/models"
	"safinaland-api/internal/slug"

	"gorm.io/gorm"
)

// PageSize is the fixed storefront page size.
const PageSize = 10

// PropertyFilters narrows a storefront listing query. Category and search
// combine with AND; the search term matches title, description and location
// case-insensitively (OR across the three columns).
type PropertyFilters struct {
	Page       int
	CategoryID *uint
	Search     string
}

func (f PropertyFilters) apply(tx *gorm.DB) *gorm.DB {
	if f.CategoryID != nil {
		tx = tx.Where("properties.category_id = ?", *f.CategoryID)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		// LOWER on both sides keeps the match case-insensitive on every
		// dialect; plain LIKE is case-sensitive on PostgreSQL.
		tx = tx.Where("(LOWER(properties.title) LIKE LOWER(?) OR LOWER(properties.description) LIKE LOWER(?) OR LOWER(properties.location) LIKE LOWER(?))",
			pattern, pattern, pattern)
	}
	return tx
}

// PropertyListItem is one row of a listing page: the property plus its
// category name and cover image resolved by the query.
type PropertyListItem struct {
	models.Property
	CategoryName *string `json:"category_name"`
	PrimaryImage *string `json:"primary_image"`
}

// Pagination describes one page of a counted result set.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// PropertyPage is the paginated listing response body.
type PropertyPage struct {
	Data       []PropertyListItem `json:"data"`
	Pagination Pagination         `json:"pagination"`
}

// ListProperties returns one page of filtered listings, newest first. The
// total is counted in a separate query under the same predicate so the page
// count stays correct regardless of the page requested.
func (gdb *GormDB) ListProperties(filters PropertyFilters) (*PropertyPage, error) {
	page := filters.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * PageSize

	var total int64
	if err := filters.apply(gdb.db.Model(&models.Property{})).Count(&total).Error; err != nil {
		return nil, err
	}

	items := make([]PropertyListItem, 0, PageSize)
	err := filters.apply(gdb.db.Model(&models.Property{})).
		Select("properties.*, categories.name AS category_name, "+
			"(SELECT image_url FROM property_galleries "+
			"WHERE property_galleries.property_id = properties.id AND property_galleries.is_primary = ? "+
			"LIMIT 1) AS primary_image", true).
		Joins("LEFT JOIN categories ON categories.id = properties.category_id").
		Order("properties.created_at DESC").
		Limit(PageSize).
		Offset(offset).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}

	totalPages := int((total + PageSize - 1) / PageSize)

	return &PropertyPage{
		Data: items,
		Pagination: Pagination{
			Page:       page,
			Limit:      PageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// PropertyDetail is a single listing with its category name and the full
// gallery, primary image first.
type PropertyDetail struct {
	models.Property
	CategoryName *string                  `json:"category_name"`
	Galleries    []models.PropertyGallery `gorm:"-" json:"galleries"`
}

// GetPropertyDetail retrieves a property with its gallery. Returns
// gorm.ErrRecordNotFound when the id does not exist.
func (gdb *GormDB) GetPropertyDetail(id uint) (*PropertyDetail, error) {
	var detail PropertyDetail
	err := gdb.db.Model(&models.Property{}).
		Select("properties.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = properties.category_id").
		Where("properties.id = ?", id).
		First(&detail).Error
	if err != nil {
		return nil, err
	}

	err = gdb.db.Where("property_id = ?", id).
		Order("is_primary DESC, created_at ASC").
		Find(&detail.Galleries).Error
	if err != nil {
		return nil, err
	}

	return &detail, nil
}

// PropertyInput carries the mutable fields of a listing.
type PropertyInput struct {
	CategoryID  *uint
	Title       string
	Description string
	Price       float64
	Location    string
	Size        string
	Status      models.PropertyStatus
	Featured    bool
}

// CreateProperty inserts the listing and its gallery rows in one
// transaction. imageURLs follow upload order; the first becomes primary.
func (gdb *GormDB) CreateProperty(in PropertyInput, imageURLs []string) (*models.Property, error) {
	status := in.Status
	if status == "" {
		status = models.PropertyStatusAvailable
	}

	property := &models.Property{
		CategoryID:  in.CategoryID,
		Title:       in.Title,
		Slug:        slug.Make(in.Title),
		Description: in.Description,
		Price:       in.Price,
		Location:    in.Location,
		Size:        in.Size,
		Status:      status,
		Featured:    in.Featured,
	}

	err := gdb.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(property).Error; err != nil {
			return err
		}
		return createGalleries(tx, property.ID, imageURLs)
	})
	if err != nil {
		return nil, err
	}
	return property, nil
}

// UpdateProperty rewrites the listing row unconditionally. When imageURLs is
// non-empty the whole gallery is replaced in the same transaction; partial
// gallery updates are not supported. The returned slice holds the image URLs
// whose files are no longer referenced and should be removed from storage.
func (gdb *GormDB) UpdateProperty(id uint, in PropertyInput, imageURLs []string) ([]string, error) {
	var replaced []string

	err := gdb.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"category_id": in.CategoryID,
			"title":       in.Title,
			"slug":        slug.Make(in.Title),
			"description": in.Description,
			"price":       in.Price,
			"location":    in.Location,
			"size":        in.Size,
			"status":      in.Status,
			"featured":    in.Featured,
		}
		if err := tx.Model(&models.Property{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		if len(imageURLs) == 0 {
			return nil
		}

		if err := tx.Model(&models.PropertyGallery{}).
			Where("property_id = ?", id).
			Pluck("image_url", &replaced).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.PropertyGallery{}).Error; err != nil {
			return err
		}
		return createGalleries(tx, id, imageURLs)
	})
	if err != nil {
		return nil, err
	}
	return replaced, nil
}

// DeleteProperty removes the gallery rows and the property row in one
// transaction and returns the image URLs whose files should be removed.
func (gdb *GormDB) DeleteProperty(id uint) ([]string, error) {
	var removed []string

	err := gdb.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PropertyGallery{}).
			Where("property_id = ?", id).
			Pluck("image_url", &removed).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.PropertyGallery{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Property{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// DeleteGalleryImage removes a single gallery row. When the deleted row was
// the primary image, the oldest remaining image of the property is promoted
// so the listing keeps a cover. Returns the image URL for file removal, or
// gorm.ErrRecordNotFound when the row is absent.
func (gdb *GormDB) DeleteGalleryImage(id uint) (string, error) {
	var imageURL string

	err := gdb.db.Transaction(func(tx *gorm.DB) error {
		var gallery models.PropertyGallery
		if err := tx.First(&gallery, id).Error; err != nil {
			return err
		}
		imageURL = gallery.ImageURL

		if err := tx.Delete(&gallery).Error; err != nil {
			return err
		}

		if !gallery.IsPrimary {
			return nil
		}

		var next models.PropertyGallery
		err := tx.Where("property_id = ?", gallery.PropertyID).
			Order("created_at ASC, id ASC").
			First(&next).Error
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Model(&next).Update("is_primary", true).Error
	})
	if err != nil {
		return "", err
	}
	return imageURL, nil
}

func createGalleries(tx *gorm.DB, propertyID uint, imageURLs []string) error {
	if len(imageURLs) == 0 {
		return nil
	}
	rows := make([]models.PropertyGallery, 0, len(imageURLs))
	for i, url := range imageURLs {
		rows = append(rows, models.PropertyGallery{
			PropertyID: propertyID,
			ImageURL:   url,
			IsPrimary:  i == 0,
		})
	}
	return tx.Create(&rows).Error
}

// AllGalleryImageURLs returns every image URL currently referenced by a
// gallery row. Used by the orphaned-upload sweep.
func (gdb *GormDB) AllGalleryImageURLs() ([]string, error) {
	var urls []string
	err := gdb.db.Model(&models.PropertyGallery{}).Pluck("image_url", &urls).Error
	return urls, err
}

// AllProperties returns every listing, newest first. Used by the search
// reindex.
func (gdb *GormDB) AllProperties() ([]models.Property, error) {
	var properties []models.Property
	err := gdb.db.Order("created_at DESC").Find(&properties).Error
	return properties, err
}

// CategoryNameByID resolves a category name, returning nil when the id is
// nil or the category is gone.
func (gdb *GormDB) CategoryNameByID(id *uint) *string {
	if id == nil {
		return nil
	}
	var category models.Category
	if err := gdb.db.First(&category, *id).Error; err != nil {
		return nil
	}
	return &category.Name
}
