package seatingdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for seat persistence.
type Repository interface {
	// CreateTable inserts seats 1..count for a table, skipping positions that already exist.
	// It returns how many seats were actually created.
	CreateTable(ctx context.Context, db bun.IDB, tableNumber, count int) (int, error)

	// List returns every seat with its occupant, ordered by table then seat.
	List(ctx context.Context, db bun.IDB) ([]Seat, error)
	ListAvailable(ctx context.Context, db bun.IDB) ([]Seat, error)
	GetByID(ctx context.Context, db bun.IDB, id int64) (*Seat, error)
	GetByPosition(ctx context.Context, db bun.IDB, tableNumber, seatNumber int) (*Seat, error)
	ListByRegistration(ctx context.Context, db bun.IDB, registrationID int64) ([]Seat, error)

	// Claim links the seat to the registration only if the seat is free or already theirs.
	// It reports whether the claim took effect.
	Claim(ctx context.Context, db bun.IDB, seatID, registrationID int64) (bool, error)

	// Release clears the occupant of a seat.
	Release(ctx context.Context, db bun.IDB, seatID int64) error

	// ReleaseOthers frees every seat held by the registration except keepSeatID.
	ReleaseOthers(ctx context.Context, db bun.IDB, registrationID, keepSeatID int64) (int, error)

	// UpsertPosition points the seat at (table, seat) at the registration, creating the seat if needed.
	UpsertPosition(ctx context.Context, db bun.IDB, tableNumber, seatNumber int, registrationID int64) (*Seat, error)

	Delete(ctx context.Context, db bun.IDB, id int64) error

	// DeleteTable removes every seat at the table and returns the removed seats.
	DeleteTable(ctx context.Context, db bun.IDB, tableNumber int) ([]Seat, error)
}
