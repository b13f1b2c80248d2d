package database

import (
	"sync"

	"safinaland-api/internal/models"
)

// DashboardStats are the admin landing-page counters.
type DashboardStats struct {
	TotalProperties     int64 `json:"totalProperties"`
	TotalCategories     int64 `json:"totalCategories"`
	AvailableProperties int64 `json:"availableProperties"`
	SoldProperties      int64 `json:"soldProperties"`
}

// GetDashboardStats runs the four counts concurrently and assembles one
// result. Nothing is cached; every request counts fresh.
func (gdb *GormDB) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	counts := []struct {
		dest  *int64
		query func(dest *int64) error
	}{
		{&stats.TotalProperties, func(dest *int64) error {
			return gdb.db.Model(&models.Property{}).Count(dest).Error
		}},
		{&stats.TotalCategories, func(dest *int64) error {
			return gdb.db.Model(&models.Category{}).Count(dest).Error
		}},
		{&stats.AvailableProperties, func(dest *int64) error {
			return gdb.db.Model(&models.Property{}).
				Where("status = ?", models.PropertyStatusAvailable).Count(dest).Error
		}},
		{&stats.SoldProperties, func(dest *int64) error {
			return gdb.db.Model(&models.Property{}).
				Where("status = ?", models.PropertyStatusSold).Count(dest).Error
		}},
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, c := range counts {
		wg.Add(1)
		go func(dest *int64, query func(*int64) error) {
			defer wg.Done()
			if err := query(dest); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(c.dest, c.query)
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return stats, nil
}
