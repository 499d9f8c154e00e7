package grid

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bingo-service/internal/apperr"
	"bingo-service/internal/db"
)

type SQLStore struct {
	db  *db.DB
	now func() time.Time
}

func NewSQLStore(db *db.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

func (s *SQLStore) Load(ctx context.Context, accountID string) (Grid, error) {
	var r struct {
		Cells       string `db:"cells"`
		LastUpdated int64  `db:"last_updated"`
	}

	err := s.db.GetContext(ctx, &r, s.db.Rebind(`
		SELECT cells, last_updated
		FROM grids
		WHERE account_id = ?
	`), accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return Empty(), nil
	}
	if err != nil {
		return Grid{}, fmt.Errorf("grid: load: %w", err)
	}

	var cells []bool
	if err := json.Unmarshal([]byte(r.Cells), &cells); err != nil {
		return Grid{}, fmt.Errorf("grid: decode cells: %w", err)
	}
	if len(cells) != Size {
		return Grid{}, fmt.Errorf("grid: stored grid has %d cells", len(cells))
	}

	return Grid{
		Cells:       cells,
		LastUpdated: time.UnixMilli(r.LastUpdated).UTC(),
	}, nil
}

func (s *SQLStore) Save(ctx context.Context, accountID string, cells []bool) error {
	if len(cells) != Size {
		return apperr.Validation(fmt.Sprintf("grid must have exactly %d cells", Size))
	}

	encoded, err := json.Marshal(cells)
	if err != nil {
		return fmt.Errorf("grid: encode cells: %w", err)
	}

	_, err = s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO grids (account_id, cells, last_updated)
		VALUES (?, ?, ?)
		ON CONFLICT (account_id) DO UPDATE
		SET cells = excluded.cells,
		    last_updated = excluded.last_updated
	`), accountID, string(encoded), s.now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("grid: save: %w", err)
	}
	return nil
}
