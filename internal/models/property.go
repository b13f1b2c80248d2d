package models

import "time"

// Property is a single listing. CategoryID is nullable: listings keep
// working when their category is deleted (LEFT JOIN semantics everywhere).
type Property struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID  *uint          `gorm:"index" json:"category_id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Slug        string         `gorm:"type:varchar(255);not null;index" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"type:decimal(15,2);not null;default:0" json:"price"`
	Location    string         `gorm:"type:varchar(255)" json:"location"`
	Size        string         `gorm:"type:varchar(100)" json:"size"`
	Status      PropertyStatus `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`
	Featured    bool           `gorm:"not null;default:false" json:"featured"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index:idx_properties_created_at,sort:desc" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// PropertyStatus is the sales state of a listing.
type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "available"
	PropertyStatusBooked    PropertyStatus = "booked"
	PropertyStatusSold      PropertyStatus = "sold"
)

func (Property) TableName() string {
	return "properties"
}

// IsAvailable reports whether the listing can still be booked.
func (p *Property) IsAvailable() bool {
	return p.Status == PropertyStatusAvailable
}
