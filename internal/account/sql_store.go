package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bingo-service/internal/db"

	"github.com/google/uuid"
)

const columns = `id, username, email, password_hash, external_id, external_display_name, created_at`

type row struct {
	ID                  string         `db:"id"`
	Username            sql.NullString `db:"username"`
	Email               sql.NullString `db:"email"`
	PasswordHash        sql.NullString `db:"password_hash"`
	ExternalID          sql.NullString `db:"external_id"`
	ExternalDisplayName sql.NullString `db:"external_display_name"`
	CreatedAt           int64          `db:"created_at"`
}

func (r row) account() *Account {
	return &Account{
		ID:                  r.ID,
		Username:            r.Username.String,
		Email:               r.Email.String,
		PasswordHash:        r.PasswordHash.String,
		ExternalID:          r.ExternalID.String,
		ExternalDisplayName: r.ExternalDisplayName.String,
		CreatedAt:           time.UnixMilli(r.CreatedAt).UTC(),
	}
}

// SQLStore is the Store backed by the users table.
type SQLStore struct {
	db *db.DB
}

func NewSQLStore(db *db.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) FindByID(ctx context.Context, id string) (*Account, error) {
	return s.get(ctx, `SELECT `+columns+` FROM users WHERE id = ?`, id)
}

func (s *SQLStore) FindByUsernameOrEmail(ctx context.Context, key string) (*Account, error) {
	return s.get(ctx, `
		SELECT `+columns+`
		FROM users
		WHERE username = ? OR email = ?
		ORDER BY CASE WHEN username = ? THEN 0 ELSE 1 END
		LIMIT 1
	`, key, key, key)
}

func (s *SQLStore) FindByExternalID(ctx context.Context, externalID string) (*Account, error) {
	return s.get(ctx, `SELECT `+columns+` FROM users WHERE external_id = ?`, externalID)
}

func (s *SQLStore) InsertLocal(
	ctx context.Context,
	username string,
	email string,
	passwordHash string,
) (*Account, error) {

	if username == "" || passwordHash == "" {
		return nil, errors.New("account: local insert needs username and password hash")
	}

	return s.get(ctx, `
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING `+columns,
		uuid.NewString(),
		username,
		nullString(email),
		passwordHash,
		time.Now().UTC().UnixMilli(),
	)
}

func (s *SQLStore) InsertExternal(
	ctx context.Context,
	externalID string,
	displayName string,
) (*Account, error) {

	if externalID == "" {
		return nil, errors.New("account: external insert needs external id")
	}

	return s.get(ctx, `
		INSERT INTO users (id, external_id, external_display_name, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING `+columns,
		uuid.NewString(),
		externalID,
		nullString(displayName),
		time.Now().UTC().UnixMilli(),
	)
}

func (s *SQLStore) BindExternalID(
	ctx context.Context,
	accountID string,
	externalID string,
	displayName string,
) (*Account, error) {

	if externalID == "" {
		return nil, errors.New("account: bind needs external id")
	}

	return s.get(ctx, `
		UPDATE users
		SET external_id = ?,
		    external_display_name = COALESCE(?, external_display_name)
		WHERE id = ?
		RETURNING `+columns,
		externalID,
		nullString(displayName),
		accountID,
	)
}

// get runs a single-row statement and maps driver errors onto the
// package sentinels.
func (s *SQLStore) get(ctx context.Context, query string, args ...any) (*Account, error) {
	var r row
	err := s.db.GetContext(ctx, &r, s.db.Rebind(query), args...)
	switch {
	case err == nil:
		return r.account(), nil
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrNotFound
	case db.IsUniqueViolation(err):
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	default:
		return nil, fmt.Errorf("account: query: %w", err)
	}
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
