package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // registers the cgo-free "sqlite" driver

	"ugandaserve/internal/domain/auth"
	"ugandaserve/internal/domain/booking"
	"ugandaserve/internal/domain/catalog"
	"ugandaserve/internal/domain/subscription"
)

func Connect(dsn string) (*gorm.DB, error) {
	// TranslateError maps driver duplicate-key errors to
	// gorm.ErrDuplicatedKey on both backends; booking reference retries
	// depend on it under sqlite.
	cfg := &gorm.Config{TranslateError: true}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
}

// Migrate creates or updates the schema for every domain entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&auth.User{},
		&catalog.Listing{},
		&booking.Booking{},
		&subscription.Subscription{},
	)
}
