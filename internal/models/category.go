package models

import "time"

// Category groups properties for storefront browsing.
type Category struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string    `gorm:"type:varchar(255);not null;index" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index:idx_categories_created_at,sort:desc" json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}
