package registrationdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for registration persistence.
type Repository interface {
	Create(ctx context.Context, db bun.IDB, reg *Registration) error
	GetByID(ctx context.Context, db bun.IDB, id int64) (*Registration, error)

	// List returns all registrations, newest first.
	List(ctx context.Context, db bun.IDB) ([]Registration, error)

	// Update writes the editable profile, preference and payment columns.
	Update(ctx context.Context, db bun.IDB, reg *Registration) error

	// UpdatePayment sets the payment status and, when amount is non-nil, the amount.
	UpdatePayment(ctx context.Context, db bun.IDB, id int64, paid bool, amount *float64) (*Registration, error)

	// SetSeatAssigned flips the seat-assigned flag.
	SetSeatAssigned(ctx context.Context, db bun.IDB, id int64, assigned bool) error

	// UpsertBySyncKey inserts or updates the registration identified by reg.SyncKey and sets reg.ID.
	UpsertBySyncKey(ctx context.Context, db bun.IDB, reg *Registration) error

	// SumPaid totals payment_amount over paid registrations.
	SumPaid(ctx context.Context, db bun.IDB) (float64, error)
}
