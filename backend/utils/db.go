package utils

import (
	"errors"
	"fmt"
	"unichance/backend/config"
	"unichance/backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the database and migrates the schema. Postgres is used when
// DB_HOST is set; otherwise a local sqlite file keeps the server
// self-contained.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	if cfg.DBHost != "" {
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	} else {
		db, err = gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	}
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Lesson{},
		&models.File{},
	); err != nil {
		return nil, err
	}

	return db, nil
}

// EnsureSuperadmin provisions the bootstrap superadmin account on first
// startup. If the account already exists this is a no-op.
func EnsureSuperadmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.SuperadminEmail == "" || cfg.SuperadminPassword == "" {
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", cfg.SuperadminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := HashPassword(cfg.SuperadminPassword)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:         "Unichance",
		Surname:      "Admin",
		Email:        cfg.SuperadminEmail,
		PasswordHash: hash,
		Status:       models.StatusSuperadmin,
		Subject:      models.SubjectUnichance,
	}
	return db.Create(&admin).Error
}
