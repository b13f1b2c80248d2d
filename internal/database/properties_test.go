package database

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"safinaland-api/internal/models"

	"gorm.io/gorm"
)

func seedProperties(t *testing.T, gdb *GormDB, n int) {
	t.Helper()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		p := models.Property{
			Title:     fmt.Sprintf("Listing %02d", i),
			Slug:      fmt.Sprintf("listing-%02d", i),
			Status:    models.PropertyStatusAvailable,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := gdb.DB().Create(&p).Error; err != nil {
			t.Fatalf("seed property %d: %v", i, err)
		}
	}
}

func TestListPropertiesPagination(t *testing.T) {
	gdb := newTestDB(t)
	seedProperties(t, gdb, 25)

	page1, err := gdb.ListProperties(PropertyFilters{Page: 1})
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if page1.Pagination.Total != 25 {
		t.Errorf("total = %d, want 25", page1.Pagination.Total)
	}
	if page1.Pagination.TotalPages != 3 {
		t.Errorf("totalPages = %d, want 3", page1.Pagination.TotalPages)
	}
	if len(page1.Data) != 10 {
		t.Errorf("page 1 rows = %d, want 10", len(page1.Data))
	}
	// Newest first.
	if page1.Data[0].Title != "Listing 24" {
		t.Errorf("first row = %q, want newest listing", page1.Data[0].Title)
	}

	page3, err := gdb.ListProperties(PropertyFilters{Page: 3})
	if err != nil {
		t.Fatalf("page 3: %v", err)
	}
	if len(page3.Data) != 5 {
		t.Errorf("page 3 rows = %d, want 5", len(page3.Data))
	}

	// Page defaults to 1 when out of range.
	page0, err := gdb.ListProperties(PropertyFilters{Page: 0})
	if err != nil {
		t.Fatalf("page 0: %v", err)
	}
	if len(page0.Data) != 10 {
		t.Errorf("page 0 rows = %d, want 10", len(page0.Data))
	}
}

func TestListPropertiesFilters(t *testing.T) {
	gdb := newTestDB(t)

	cat, err := gdb.CreateCategory("Rumah", "")
	if err != nil {
		t.Fatal(err)
	}
	other, err := gdb.CreateCategory("Tanah", "")
	if err != nil {
		t.Fatal(err)
	}

	rows := []models.Property{
		{CategoryID: &cat.ID, Title: "Villa Dago", Location: "Bandung", Status: models.PropertyStatusAvailable},
		{CategoryID: &cat.ID, Title: "Rumah Minimalis", Description: "dekat kampus BANDUNG", Status: models.PropertyStatusAvailable},
		{CategoryID: &other.ID, Title: "Kavling Bandung", Status: models.PropertyStatusAvailable},
		{CategoryID: &other.ID, Title: "Kavling Bogor", Location: "Bogor", Status: models.PropertyStatusAvailable},
	}
	for i := range rows {
		rows[i].Slug = fmt.Sprintf("row-%d", i)
		if err := gdb.DB().Create(&rows[i]).Error; err != nil {
			t.Fatal(err)
		}
	}

	// Search alone: case-insensitive OR across title/description/location.
	res, err := gdb.ListProperties(PropertyFilters{Page: 1, Search: "bandung"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Pagination.Total != 3 {
		t.Errorf("search total = %d, want 3", res.Pagination.Total)
	}

	// Case of the term must not matter either; LOWER is applied to both
	// sides of the LIKE so the behavior holds on case-sensitive dialects.
	res, err = gdb.ListProperties(PropertyFilters{Page: 1, Search: "BANDUNG"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Pagination.Total != 3 {
		t.Errorf("uppercase search total = %d, want 3", res.Pagination.Total)
	}

	// Category alone.
	res, err = gdb.ListProperties(PropertyFilters{Page: 1, CategoryID: &cat.ID})
	if err != nil {
		t.Fatal(err)
	}
	if res.Pagination.Total != 2 {
		t.Errorf("category total = %d, want 2", res.Pagination.Total)
	}
	if res.Data[0].CategoryName == nil || *res.Data[0].CategoryName != "Rumah" {
		t.Errorf("category_name not joined: %+v", res.Data[0].CategoryName)
	}

	// Both: AND composition.
	res, err = gdb.ListProperties(PropertyFilters{Page: 1, CategoryID: &other.ID, Search: "bandung"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Pagination.Total != 1 {
		t.Errorf("combined total = %d, want 1", res.Pagination.Total)
	}
	if res.Data[0].Title != "Kavling Bandung" {
		t.Errorf("combined row = %q", res.Data[0].Title)
	}
}

func TestListPropertiesPrimaryImage(t *testing.T) {
	gdb := newTestDB(t)

	p, err := gdb.CreateProperty(PropertyInput{Title: "With Cover"}, []string{
		"/uploads/cover.jpg",
		"/uploads/extra.jpg",
	})
	if err != nil {
		t.Fatal(err)
	}

	res, err := gdb.ListProperties(PropertyFilters{Page: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Data) != 1 {
		t.Fatalf("rows = %d, want 1", len(res.Data))
	}
	if res.Data[0].PrimaryImage == nil || *res.Data[0].PrimaryImage != "/uploads/cover.jpg" {
		t.Errorf("primary_image = %v, want /uploads/cover.jpg", res.Data[0].PrimaryImage)
	}

	detail, err := gdb.GetPropertyDetail(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Galleries) != 2 {
		t.Fatalf("galleries = %d, want 2", len(detail.Galleries))
	}
	if !detail.Galleries[0].IsPrimary {
		t.Error("detail galleries not ordered primary first")
	}
}

func TestCreatePropertyDefaultsAndGallery(t *testing.T) {
	gdb := newTestDB(t)

	urls := []string{"/uploads/a.jpg", "/uploads/b.jpg", "/uploads/c.jpg"}
	p, err := gdb.CreateProperty(PropertyInput{Title: "Rumah Mewah!!"}, urls)
	if err != nil {
		t.Fatal(err)
	}

	if p.Slug != "rumah-mewah" {
		t.Errorf("slug = %q, want rumah-mewah", p.Slug)
	}
	if p.Status != models.PropertyStatusAvailable {
		t.Errorf("status = %q, want available", p.Status)
	}
	if p.Featured {
		t.Error("featured should default to false")
	}

	var galleries []models.PropertyGallery
	if err := gdb.DB().Where("property_id = ?", p.ID).Order("id ASC").Find(&galleries).Error; err != nil {
		t.Fatal(err)
	}
	if len(galleries) != len(urls) {
		t.Fatalf("gallery rows = %d, want %d", len(galleries), len(urls))
	}
	for i, g := range galleries {
		wantPrimary := i == 0
		if g.IsPrimary != wantPrimary {
			t.Errorf("gallery %d primary = %v, want %v", i, g.IsPrimary, wantPrimary)
		}
		if g.ImageURL != urls[i] {
			t.Errorf("gallery %d url = %q, want %q", i, g.ImageURL, urls[i])
		}
	}
}

func TestUpdatePropertyReplacesGallery(t *testing.T) {
	gdb := newTestDB(t)

	p, err := gdb.CreateProperty(PropertyInput{Title: "Old Title"}, []string{
		"/uploads/old1.jpg", "/uploads/old2.jpg",
	})
	if err != nil {
		t.Fatal(err)
	}

	newURLs := []string{"/uploads/new1.jpg", "/uploads/new2.jpg", "/uploads/new3.jpg"}
	replaced, err := gdb.UpdateProperty(p.ID, PropertyInput{
		Title:  "New Title",
		Status: models.PropertyStatusBooked,
	}, newURLs)
	if err != nil {
		t.Fatal(err)
	}

	if len(replaced) != 2 {
		t.Errorf("replaced urls = %v, want the two old files", replaced)
	}

	var galleries []models.PropertyGallery
	if err := gdb.DB().Where("property_id = ?", p.ID).Order("id ASC").Find(&galleries).Error; err != nil {
		t.Fatal(err)
	}
	if len(galleries) != 3 {
		t.Fatalf("gallery rows = %d, want 3", len(galleries))
	}
	for i, g := range galleries {
		if g.ImageURL != newURLs[i] {
			t.Errorf("gallery %d url = %q, want %q", i, g.ImageURL, newURLs[i])
		}
		if g.IsPrimary != (i == 0) {
			t.Errorf("gallery %d primary = %v", i, g.IsPrimary)
		}
	}

	detail, err := gdb.GetPropertyDetail(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if detail.Title != "New Title" || detail.Slug != "new-title" {
		t.Errorf("row not updated: title=%q slug=%q", detail.Title, detail.Slug)
	}
	if detail.Status != models.PropertyStatusBooked {
		t.Errorf("status = %q, want booked", detail.Status)
	}
}

func TestUpdatePropertyWithoutFilesKeepsGallery(t *testing.T) {
	gdb := newTestDB(t)

	p, err := gdb.CreateProperty(PropertyInput{Title: "Keep"}, []string{"/uploads/keep.jpg"})
	if err != nil {
		t.Fatal(err)
	}

	replaced, err := gdb.UpdateProperty(p.ID, PropertyInput{Title: "Keep", Status: models.PropertyStatusAvailable}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(replaced) != 0 {
		t.Errorf("replaced = %v, want none", replaced)
	}

	var count int64
	gdb.DB().Model(&models.PropertyGallery{}).Where("property_id = ?", p.ID).Count(&count)
	if count != 1 {
		t.Errorf("gallery rows = %d, want 1", count)
	}
}

func TestDeletePropertyCascade(t *testing.T) {
	gdb := newTestDB(t)

	p, err := gdb.CreateProperty(PropertyInput{Title: "Doomed"}, []string{
		"/uploads/d1.jpg", "/uploads/d2.jpg",
	})
	if err != nil {
		t.Fatal(err)
	}

	removed, err := gdb.DeleteProperty(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(removed) != 2 {
		t.Errorf("removed urls = %v, want 2 entries", removed)
	}

	var galleryCount, propertyCount int64
	gdb.DB().Model(&models.PropertyGallery{}).Where("property_id = ?", p.ID).Count(&galleryCount)
	gdb.DB().Model(&models.Property{}).Where("id = ?", p.ID).Count(&propertyCount)
	if galleryCount != 0 {
		t.Errorf("orphan gallery rows = %d", galleryCount)
	}
	if propertyCount != 0 {
		t.Errorf("property row still present")
	}
}

func TestGetPropertyDetailNotFound(t *testing.T) {
	gdb := newTestDB(t)
	_, err := gdb.GetPropertyDetail(9999)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("err = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestDeleteGalleryImage(t *testing.T) {
	gdb := newTestDB(t)

	p, err := gdb.CreateProperty(PropertyInput{Title: "Gallery"}, []string{
		"/uploads/primary.jpg", "/uploads/second.jpg", "/uploads/third.jpg",
	})
	if err != nil {
		t.Fatal(err)
	}

	var galleries []models.PropertyGallery
	if err := gdb.DB().Where("property_id = ?", p.ID).Order("id ASC").Find(&galleries).Error; err != nil {
		t.Fatal(err)
	}

	// Deleting the primary promotes the oldest remaining image.
	url, err := gdb.DeleteGalleryImage(galleries[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if url != "/uploads/primary.jpg" {
		t.Errorf("deleted url = %q", url)
	}

	var remaining []models.PropertyGallery
	if err := gdb.DB().Where("property_id = ?", p.ID).Order("id ASC").Find(&remaining).Error; err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 2 {
		t.Fatalf("remaining rows = %d, want 2", len(remaining))
	}
	if !remaining[0].IsPrimary {
		t.Error("oldest remaining image was not promoted to primary")
	}
	if remaining[1].IsPrimary {
		t.Error("more than one primary after re-election")
	}

	// Deleting a non-primary leaves the primary alone.
	if _, err := gdb.DeleteGalleryImage(remaining[1].ID); err != nil {
		t.Fatal(err)
	}
	var last models.PropertyGallery
	if err := gdb.DB().Where("property_id = ?", p.ID).First(&last).Error; err != nil {
		t.Fatal(err)
	}
	if !last.IsPrimary {
		t.Error("surviving image lost its primary flag")
	}

	// Missing row reports not found.
	if _, err := gdb.DeleteGalleryImage(424242); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("err = %v, want gorm.ErrRecordNotFound", err)
	}
}
