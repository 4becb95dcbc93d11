package authdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for admin account persistence.
type Repository interface {
	// Create inserts a new admin. Returns ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, db bun.IDB, admin *Admin) error

	// GetByEmail retrieves an admin by normalized email.
	GetByEmail(ctx context.Context, db bun.IDB, email string) (*Admin, error)

	// List returns all admins ordered by email.
	List(ctx context.Context, db bun.IDB) ([]Admin, error)

	// Delete removes an admin by id.
	Delete(ctx context.Context, db bun.IDB, id int64) error
}
