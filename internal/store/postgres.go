package store

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresBackend stores the document as a JSONB row of ledger_documents.
// The table is created by database.InitPostgresTables.
type PostgresBackend struct {
	db   *sql.DB
	name string
}

func NewPostgresBackend(db *sql.DB, name string) *PostgresBackend {
	return &PostgresBackend{db: db, name: name}
}

func (b *PostgresBackend) Name() string { return "postgres:" + b.name }

func (b *PostgresBackend) Load(ctx context.Context) ([]byte, error) {
	var body string
	err := b.db.QueryRowContext(ctx,
		`SELECT body::text FROM ledger_documents WHERE name = $1`,
		b.name,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, err
	}
	return []byte(body), nil
}

func (b *PostgresBackend) Save(ctx context.Context, data []byte) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO ledger_documents (name, body, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = NOW()
	`, b.name, string(data))
	return err
}

// Close is a no-op; the connection pool is owned by the caller.
func (b *PostgresBackend) Close() error { return nil }
