package database

import (
	"context"
	"fmt"
)

// statements are ordered so that referenced tables exist before their
// foreign keys. reviews carries the composite primary key that backs the
// one-review-per-user-per-book guarantee.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         UUID PRIMARY KEY,
		username   TEXT NOT NULL UNIQUE,
		hash       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id     UUID PRIMARY KEY,
		isbn   VARCHAR(20) NOT NULL UNIQUE,
		title  TEXT NOT NULL,
		author TEXT NOT NULL,
		year   INT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		user_id     UUID NOT NULL REFERENCES users(id),
		book_id     UUID NOT NULL REFERENCES books(id),
		rating      INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
		description VARCHAR(500) NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, book_id)
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id         UUID PRIMARY KEY,
		user_id    UUID NOT NULL REFERENCES users(id),
		token      UUID NOT NULL UNIQUE,
		expires_at TIMESTAMPTZ NOT NULL,
		revoked_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_token ON sessions (token)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_book ON reviews (book_id)`,
}

// Migrate applies the table bootstrap. Safe to run repeatedly.
func Migrate(ctx context.Context, db PgxIface) error {
	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}
