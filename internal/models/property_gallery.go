package models

import "time"

// PropertyGallery is one image of a listing. The first image of an upload
// batch is flagged primary and used as the cover everywhere.
type PropertyGallery struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID uint      `gorm:"not null;index" json:"property_id"`
	ImageURL   string    `gorm:"type:varchar(500);not null" json:"image_url"`
	IsPrimary  bool      `gorm:"not null;default:false;index" json:"is_primary"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PropertyGallery) TableName() string {
	return "property_galleries"
}
