package database

import (
	"sync"

	"safinaland-api/internal/models"

	"gorm.io/gorm/clause"
)

// GetAllSettings folds every settings row into a single key/value map.
// There is no defined key set; whatever rows exist are returned.
func (gdb *GormDB) GetAllSettings() (map[string]string, error) {
	var rows []models.Setting
	if err := gdb.db.Find(&rows).Error; err != nil {
		return nil, err
	}

	settings := make(map[string]string, len(rows))
	for _, row := range rows {
		settings[row.SettingKey] = row.SettingValue
	}
	return settings, nil
}

// UpsertSettings writes each key concurrently: insert, or overwrite the
// value on key conflict. The call fails if any single upsert fails, but
// upserts that already completed are not rolled back; there is no
// atomicity across keys.
func (gdb *GormDB) UpsertSettings(values map[string]string) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for key, value := range values {
		wg.Add(1)
		go func(key, value string) {
			defer wg.Done()
			err := gdb.db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "setting_key"}},
				DoUpdates: clause.AssignmentColumns([]string{"setting_value"}),
			}).Create(&models.Setting{SettingKey: key, SettingValue: value}).Error
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(key, value)
	}

	wg.Wait()
	return firstErr
}
