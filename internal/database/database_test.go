package database

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database. A single connection keeps
// the memory store alive and serializes the concurrent writers under test.
func newTestDB(t *testing.T) *GormDB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	gdb := NewGormDBFromDB(db)
	if err := gdb.InitSchema(); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	t.Cleanup(func() { gdb.Close() })
	return gdb
}
