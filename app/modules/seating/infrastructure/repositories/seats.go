package seatingdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a seat is not found.
var ErrNotFound = errors.New("seat not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new seat repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) CreateTable(ctx context.Context, db bun.IDB, tableNumber, count int) (int, error) {
	if count <= 0 {
		return 0, nil
	}
	db = r.resolveDB(db)
	now := time.Now().UTC()
	seats := make([]Seat, 0, count)
	for n := 1; n <= count; n++ {
		seats = append(seats, Seat{TableNumber: tableNumber, SeatNumber: n, CreatedAt: now, UpdatedAt: now})
	}
	res, err := db.NewInsert().
		Model(&seats).
		On("CONFLICT (table_number, seat_number) DO NOTHING").
		Returning("NULL").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to create seats for table %d: %w", tableNumber, err)
	}
	created, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(created), nil
}

func (r *Impl) List(ctx context.Context, db bun.IDB) ([]Seat, error) {
	db = r.resolveDB(db)
	var seats []Seat
	err := db.NewSelect().
		Model(&seats).
		Relation("Registration").
		OrderExpr("s.table_number ASC, s.seat_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list seats: %w", err)
	}
	return seats, nil
}

func (r *Impl) ListAvailable(ctx context.Context, db bun.IDB) ([]Seat, error) {
	db = r.resolveDB(db)
	var seats []Seat
	err := db.NewSelect().
		Model(&seats).
		Where("s.registration_id IS NULL").
		OrderExpr("s.table_number ASC, s.seat_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list available seats: %w", err)
	}
	return seats, nil
}

func (r *Impl) GetByID(ctx context.Context, db bun.IDB, id int64) (*Seat, error) {
	db = r.resolveDB(db)
	seat := new(Seat)
	err := db.NewSelect().
		Model(seat).
		Relation("Registration").
		Where("s.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get seat: %w", err)
	}
	return seat, nil
}

func (r *Impl) GetByPosition(ctx context.Context, db bun.IDB, tableNumber, seatNumber int) (*Seat, error) {
	db = r.resolveDB(db)
	seat := new(Seat)
	err := db.NewSelect().
		Model(seat).
		Where("s.table_number = ?", tableNumber).
		Where("s.seat_number = ?", seatNumber).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get seat by position: %w", err)
	}
	return seat, nil
}

func (r *Impl) ListByRegistration(ctx context.Context, db bun.IDB, registrationID int64) ([]Seat, error) {
	db = r.resolveDB(db)
	var seats []Seat
	err := db.NewSelect().
		Model(&seats).
		Where("s.registration_id = ?", registrationID).
		OrderExpr("s.table_number ASC, s.seat_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list seats for registration: %w", err)
	}
	return seats, nil
}

func (r *Impl) Claim(ctx context.Context, db bun.IDB, seatID, registrationID int64) (bool, error) {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*Seat)(nil)).
		Set("registration_id = ?", registrationID).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", seatID).
		WhereGroup(" AND ", func(q *bun.UpdateQuery) *bun.UpdateQuery {
			return q.Where("registration_id IS NULL").WhereOr("registration_id = ?", registrationID)
		}).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to claim seat: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows == 1, nil
}

func (r *Impl) Release(ctx context.Context, db bun.IDB, seatID int64) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*Seat)(nil)).
		Set("registration_id = NULL").
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", seatID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to release seat: %w", err)
	}
	return requireOneRow(res)
}

func (r *Impl) ReleaseOthers(ctx context.Context, db bun.IDB, registrationID, keepSeatID int64) (int, error) {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*Seat)(nil)).
		Set("registration_id = NULL").
		Set("updated_at = ?", time.Now().UTC()).
		Where("registration_id = ?", registrationID).
		Where("id <> ?", keepSeatID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to release other seats: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(rows), nil
}

func (r *Impl) UpsertPosition(ctx context.Context, db bun.IDB, tableNumber, seatNumber int, registrationID int64) (*Seat, error) {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	seat := &Seat{
		TableNumber:    tableNumber,
		SeatNumber:     seatNumber,
		RegistrationID: &registrationID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	_, err := db.NewInsert().
		Model(seat).
		On("CONFLICT (table_number, seat_number) DO UPDATE").
		Set("registration_id = EXCLUDED.registration_id").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("id").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert seat %d/%d: %w", tableNumber, seatNumber, err)
	}
	return seat, nil
}

func (r *Impl) Delete(ctx context.Context, db bun.IDB, id int64) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*Seat)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete seat: %w", err)
	}
	return requireOneRow(res)
}

func (r *Impl) DeleteTable(ctx context.Context, db bun.IDB, tableNumber int) ([]Seat, error) {
	db = r.resolveDB(db)
	var seats []Seat
	if err := db.NewSelect().
		Model(&seats).
		Where("s.table_number = ?", tableNumber).
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to load table %d: %w", tableNumber, err)
	}
	if len(seats) == 0 {
		return nil, ErrNotFound
	}
	if _, err := db.NewDelete().
		Model((*Seat)(nil)).
		Where("table_number = ?", tableNumber).
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete table %d: %w", tableNumber, err)
	}
	return seats, nil
}

func requireOneRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
