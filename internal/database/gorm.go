package database

import (
	"fmt"
	"time"

	"safinaland-api/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormDB owns the database handle. It is opened once at process start,
// closed at shutdown and injected into every handler and service.
type GormDB struct {
	db *gorm.DB
}

// NewMySQL opens a MySQL-backed handle.
func NewMySQL(host, port, user, password, dbname string) (*GormDB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, password, host, port, dbname)
	return open(mysql.Open(dsn))
}

// NewPostgres opens a PostgreSQL-backed handle.
func NewPostgres(host, port, user, password, dbname, sslmode string) (*GormDB, error) {
	if sslmode == "" {
		sslmode = "disable"
	}
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
	return open(postgres.Open(dsn))
}

func open(dialector gorm.Dialector) (*GormDB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	})
	if err != nil {
		return nil, err
	}

	// Test connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	return &GormDB{db: db}, nil
}

// NewGormDBFromDB creates a GormDB wrapper from an existing gorm.DB instance
func NewGormDBFromDB(db *gorm.DB) *GormDB {
	return &GormDB{db: db}
}

// DB returns the underlying gorm.DB instance
func (gdb *GormDB) DB() *gorm.DB {
	return gdb.db
}

func (gdb *GormDB) Close() error {
	sqlDB, err := gdb.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InitSchema creates tables using GORM AutoMigrate
func (gdb *GormDB) InitSchema() error {
	return gdb.db.AutoMigrate(
		&models.Admin{},
		&models.Category{},
		&models.Property{},
		&models.PropertyGallery{},
		&models.Setting{},
	)
}

// SeedAdmin inserts an initial back-office account when the admin table is
// empty. passwordHash must already be a bcrypt hash.
func (gdb *GormDB) SeedAdmin(username, passwordHash string) error {
	var count int64
	if err := gdb.db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return gdb.db.Create(&models.Admin{Username: username, Password: passwordHash}).Error
}

// GetAdminByUsername looks up a back-office account for login.
func (gdb *GormDB) GetAdminByUsername(username string) (*models.Admin, error) {
	var admin models.Admin
	if err := gdb.db.Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}
