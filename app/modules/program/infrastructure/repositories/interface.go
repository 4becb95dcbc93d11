package programdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for program persistence.
type Repository interface {
	Create(ctx context.Context, db bun.IDB, p *Program) error
	GetByID(ctx context.Context, db bun.IDB, id int64) (*Program, error)

	// List returns programs by sequence, then start time (unscheduled last), then id.
	List(ctx context.Context, db bun.IDB) ([]Program, error)
	Update(ctx context.Context, db bun.IDB, p *Program) error
	Delete(ctx context.Context, db bun.IDB, id int64) error

	// MaxSequence returns the highest sequence in use, or 0 when there are no programs.
	MaxSequence(ctx context.Context, db bun.IDB) (int, error)

	// CountExisting returns how many of ids refer to stored programs.
	CountExisting(ctx context.Context, db bun.IDB, ids []int64) (int, error)
	SetSequence(ctx context.Context, db bun.IDB, id int64, sequence int) error
}
