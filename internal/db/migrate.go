package db

import (
	"context"
	"fmt"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS users (
    id text PRIMARY KEY,
    username text UNIQUE,
    email text UNIQUE,
    password_hash text,
    external_id text UNIQUE,
    external_display_name text,
    created_at bigint NOT NULL
);

CREATE TABLE IF NOT EXISTS grids (
    account_id text PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    cells text NOT NULL,
    last_updated bigint NOT NULL
);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT UNIQUE,
    email TEXT UNIQUE,
    password_hash TEXT,
    external_id TEXT UNIQUE,
    external_display_name TEXT,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS grids (
    account_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    cells TEXT NOT NULL,
    last_updated INTEGER NOT NULL
);
`

// Migrate applies the idempotent schema for the active driver.
func (d *DB) Migrate(ctx context.Context) error {
	schema := sqliteSchema
	if d.DriverName() == DriverPostgres {
		schema = postgresSchema
	}

	if _, err := d.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("db: migrate: %w", err)
	}
	return nil
}
