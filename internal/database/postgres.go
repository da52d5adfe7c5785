package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
)

// ConnectPostgres opens a PostgreSQL pool and creates the document table.
func ConnectPostgres(postgresURI string) (*sql.DB, error) {
	db, err := sql.Open("postgres", postgresURI)
	if err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	log.Println("✅ Connected to PostgreSQL")

	if err = InitPostgresTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// InitPostgresTables creates all necessary tables if they don't exist
func InitPostgresTables(db *sql.DB) error {
	queries := []string{
		// One row per ledger document; body holds users, goals and activities
		`CREATE TABLE IF NOT EXISTS ledger_documents (
			name VARCHAR(64) PRIMARY KEY,
			body JSONB NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	log.Println("✅ PostgreSQL tables initialized")
	return nil
}
