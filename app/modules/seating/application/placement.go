package seatingservice

import (
	"context"
	"errors"
	"fmt"

	registrationdb "github.com/Black-And-White-Club/gala-night/app/modules/registration/infrastructure/repositories"
	seatingdb "github.com/Black-And-White-Club/gala-night/app/modules/seating/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// Place seats a registration at (table, seat), creating the seat when it does not exist yet.
// The registration keeps a single seat; its previous seat and any guest displaced from the
// target seat are released, and both seat-assigned flags are refreshed. Callers provide the
// transaction.
func Place(
	ctx context.Context,
	db bun.IDB,
	seats seatingdb.Repository,
	regs registrationdb.Repository,
	tableNumber, seatNumber int,
	registrationID int64,
) (*seatingdb.Seat, error) {
	var displaced *int64
	existing, err := seats.GetByPosition(ctx, db, tableNumber, seatNumber)
	switch {
	case err == nil:
		if existing.RegistrationID != nil && *existing.RegistrationID != registrationID {
			displaced = existing.RegistrationID
		}
	case !errors.Is(err, seatingdb.ErrNotFound):
		return nil, err
	}

	seat, err := seats.UpsertPosition(ctx, db, tableNumber, seatNumber, registrationID)
	if err != nil {
		return nil, err
	}
	if _, err := seats.ReleaseOthers(ctx, db, registrationID, seat.ID); err != nil {
		return nil, err
	}
	if err := regs.SetSeatAssigned(ctx, db, registrationID, true); err != nil {
		return nil, fmt.Errorf("failed to flag registration %d: %w", registrationID, err)
	}
	if displaced != nil {
		if err := RefreshAssigned(ctx, db, seats, regs, *displaced); err != nil {
			return nil, err
		}
	}
	return seat, nil
}

// RefreshAssigned recomputes a registration's seat-assigned flag from the seats it holds.
func RefreshAssigned(ctx context.Context, db bun.IDB, seats seatingdb.Repository, regs registrationdb.Repository, registrationID int64) error {
	held, err := seats.ListByRegistration(ctx, db, registrationID)
	if err != nil {
		return err
	}
	if err := regs.SetSeatAssigned(ctx, db, registrationID, len(held) > 0); err != nil && !errors.Is(err, registrationdb.ErrNotFound) {
		return fmt.Errorf("failed to refresh registration %d: %w", registrationID, err)
	}
	return nil
}
