package grid

import (
	"context"
	"time"
)

// Size is the number of cells in every grid.
const Size = 25

// Grid is one account's saved board.
type Grid struct {
	Cells       []bool
	LastUpdated time.Time // zero when never saved
}

// Empty returns the default all-false grid.
func Empty() Grid {
	return Grid{Cells: make([]bool, Size)}
}

// Store persists one grid per account. Save replaces the whole grid.
type Store interface {
	Load(ctx context.Context, accountID string) (Grid, error)
	Save(ctx context.Context, accountID string, cells []bool) error
}
