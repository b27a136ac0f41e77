package models

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// InitDB initializes the MySQL database connection and migrates the schema.
func InitDB(config DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(config.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate runs the schema migration for every vaccination entity.
// Split out from InitDB so tests can migrate an arbitrary *gorm.DB.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&VaccineType{},
		&VaccinationRecord{},
		&VaccinationSchedule{},
		&VaccinationAlert{},
	)
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	DSN string
}
