package database

import (
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL dialect
	_ "github.com/jinzhu/gorm/dialects/sqlite"   // SQLite dialect
	_ "github.com/lib/pq"                        // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"              // SQLite driver

	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/models"
)

// Open connects to the configured database dialect and migrates the
// inventory schema. Supported dialects are sqlite3 and postgres.
func Open(dialect, dsn string) (*gorm.DB, error) {
	switch dialect {
	case "sqlite3", "postgres":
	default:
		return nil, fmt.Errorf("unsupported database dialect %q", dialect)
	}

	db, err := gorm.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}

	if err := db.AutoMigrate(&models.InventoryItem{}).Error; err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return db, nil
}
