package database

import (
	"log"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// ConnectWithRetry retries Connect with exponential backoff. The catalog
// store may come up after the service does (compose startup ordering), so
// the first attempts are expected to fail sometimes.
func ConnectWithRetry(dsn string, maxRetries int, retryDelay time.Duration) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("Attempting to connect to database (attempt %d/%d)...", attempt, maxRetries)
		db, err = Connect(dsn)
		if err == nil {
			return db, nil
		}

		log.Printf("Failed to connect to database: %v", err)
		if attempt < maxRetries {
			log.Printf("Retrying in %s...", retryDelay)
			time.Sleep(retryDelay)
			retryDelay *= 2
		}
	}

	log.Println("Max retries reached. Database initialization failed.")
	return nil, err
}
