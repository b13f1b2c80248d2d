package search

import (
	"testing"
	"time"

	"safinaland-api/internal/models"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Rumah dekat stasiun", "Rumah dekat stasiun"},
		{"simple tags", "<p>Rumah <b>mewah</b> dekat stasiun</p>", "Rumah mewah dekat stasiun"},
		{"nested markup", "<div><ul><li>3 kamar</li><li>2 kamar mandi</li></ul></div>", "3 kamar 2 kamar mandi"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripHTML(tt.input); got != tt.want {
				t.Errorf("StripHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildDocument(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p := &models.Property{
		Title:       "Rumah Subsidi",
		Slug:        "rumah-subsidi",
		Description: "<p>Siap huni</p>",
		Price:       185_000_000,
		Location:    "Bandung",
		Status:      models.PropertyStatusAvailable,
		Featured:    true,
	}
	p.ID = 42
	p.CreatedAt = created

	doc := BuildDocument(p, "Rumah")

	if doc.ID != 42 || doc.Title != "Rumah Subsidi" || doc.CategoryName != "Rumah" {
		t.Errorf("doc = %+v", doc)
	}
	if doc.Description != "Siap huni" {
		t.Errorf("description = %q, want markup stripped", doc.Description)
	}
	if doc.Status != "available" || !doc.Featured {
		t.Errorf("status=%q featured=%v", doc.Status, doc.Featured)
	}
	if doc.Price != 185_000_000 {
		t.Errorf("price = %v, want 185000000", doc.Price)
	}
	if doc.CreatedAt != created.Unix() {
		t.Errorf("created_at = %d", doc.CreatedAt)
	}
}
