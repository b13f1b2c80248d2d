package database

import (
	"safinaland-api/internal/models"
	"safinaland-api/internal/slug"

	"gorm.io/gorm"
)

// ListCategories retrieves all categories, newest first.
func (gdb *GormDB) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	err := gdb.db.Order("created_at DESC").Find(&categories).Error
	return categories, err
}

// GetCategoryByID retrieves a category by ID.
func (gdb *GormDB) GetCategoryByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := gdb.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory inserts a category with a slug derived from its name.
func (gdb *GormDB) CreateCategory(name, description string) (*models.Category, error) {
	category := &models.Category{
		Name:        name,
		Slug:        slug.Make(name),
		Description: description,
	}
	if err := gdb.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory rewrites name, description and the slug derived from the
// new name. The update is unconditional: no row diff is reported.
func (gdb *GormDB) UpdateCategory(id uint, name, description string) error {
	return gdb.db.Model(&models.Category{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":        name,
		"slug":        slug.Make(name),
		"description": description,
	}).Error
}

// DeleteCategory removes the category and clears category_id on properties
// that still reference it, in one transaction, so listings never point at a
// dead row.
func (gdb *GormDB) DeleteCategory(id uint) error {
	return gdb.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Property{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, id).Error
	})
}
