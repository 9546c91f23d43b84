package database

import (
	"backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM.
func NewConnection(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// Migrate auto-migrates the core models. CrediScoreMetrics has no table:
// it is derived, never stored.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Invoice{},
		&model.InvoiceItem{},
		&model.Receipt{},
		&model.ClientFeedback{},
		&model.FinancialGoal{},
	)
}
