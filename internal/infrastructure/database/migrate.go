package database

import (
	"fmt"
	"log"

	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"gorm.io/gorm"
)

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Catalog
		&entity.Component{},
		&entity.ComponentModel{},

		// Parties and quotations
		&entity.Party{},
		&entity.Quotation{},
		&entity.QuotationItem{},

		// System entities
		&entity.Counter{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}
