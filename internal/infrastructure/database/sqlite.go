package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLiteDB opens a SQLite database. dsn may be a file path or a
// file: URI such as "file:test?mode=memory&cache=shared".
func NewSQLiteDB(dsn string, debug bool) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig(debug))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	// SQLite serialises writers; one connection avoids "database is locked".
	sqlDB.SetMaxOpenConns(1)

	log.Printf("Opened SQLite database %s", dsn)
	return db, nil
}

// OpenInMemory opens a private, migrated in-memory SQLite database. Each
// distinct name gets its own database.
func OpenInMemory(name string) (*gorm.DB, error) {
	db, err := NewSQLiteDB("file:"+name+"?mode=memory&cache=shared", false)
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
