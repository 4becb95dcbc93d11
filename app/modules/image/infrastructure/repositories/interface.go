package imagedb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for image persistence.
type Repository interface {
	// Create returns ErrDuplicateLabel when the label is taken.
	Create(ctx context.Context, db bun.IDB, img *Image) error
	GetByID(ctx context.Context, db bun.IDB, id int64) (*Image, error)
	GetByLabel(ctx context.Context, db bun.IDB, label string) (*Image, error)
	List(ctx context.Context, db bun.IDB) ([]Image, error)

	// Update returns ErrDuplicateLabel when the new label is taken.
	Update(ctx context.Context, db bun.IDB, img *Image) error
	Delete(ctx context.Context, db bun.IDB, id int64) error
}
