package registrationdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a registration is not found.
var ErrNotFound = errors.New("registration not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new registration repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) Create(ctx context.Context, db bun.IDB, reg *Registration) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	reg.CreatedAt = now
	reg.UpdatedAt = now
	if _, err := db.NewInsert().Model(reg).Returning("id").Exec(ctx); err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

func (r *Impl) GetByID(ctx context.Context, db bun.IDB, id int64) (*Registration, error) {
	db = r.resolveDB(db)
	reg := new(Registration)
	err := db.NewSelect().
		Model(reg).
		Where("r.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return reg, nil
}

func (r *Impl) List(ctx context.Context, db bun.IDB) ([]Registration, error) {
	db = r.resolveDB(db)
	var regs []Registration
	err := db.NewSelect().
		Model(&regs).
		OrderExpr("r.created_at DESC, r.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return regs, nil
}

func (r *Impl) Update(ctx context.Context, db bun.IDB, reg *Registration) error {
	db = r.resolveDB(db)
	reg.UpdatedAt = time.Now().UTC()
	res, err := db.NewUpdate().
		Model(reg).
		Column(
			"name", "email", "phone",
			"payment_amount", "payment_status",
			"table_preference", "seat_preference",
			"quote", "bio", "involvement", "image_url",
			"updated_at",
		).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update registration: %w", err)
	}
	return requireOneRow(res)
}

func (r *Impl) UpdatePayment(ctx context.Context, db bun.IDB, id int64, paid bool, amount *float64) (*Registration, error) {
	db = r.resolveDB(db)
	q := db.NewUpdate().
		Model((*Registration)(nil)).
		Set("payment_status = ?", paid).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id)
	if amount != nil {
		q = q.Set("payment_amount = ?", *amount)
	}
	res, err := q.Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}
	if err := requireOneRow(res); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, db, id)
}

func (r *Impl) SetSeatAssigned(ctx context.Context, db bun.IDB, id int64, assigned bool) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*Registration)(nil)).
		Set("seat_assigned_status = ?", assigned).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set seat assigned status: %w", err)
	}
	return requireOneRow(res)
}

func (r *Impl) UpsertBySyncKey(ctx context.Context, db bun.IDB, reg *Registration) error {
	if reg.SyncKey == nil || *reg.SyncKey == "" {
		return fmt.Errorf("upsert requires a sync key")
	}
	db = r.resolveDB(db)
	now := time.Now().UTC()
	reg.CreatedAt = now
	reg.UpdatedAt = now
	_, err := db.NewInsert().
		Model(reg).
		On("CONFLICT (sync_key) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("email = EXCLUDED.email").
		Set("quote = EXCLUDED.quote").
		Set("bio = EXCLUDED.bio").
		Set("involvement = EXCLUDED.involvement").
		Set("image_url = EXCLUDED.image_url").
		Set("table_preference = EXCLUDED.table_preference").
		Set("seat_preference = EXCLUDED.seat_preference").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert registration: %w", err)
	}
	return nil
}

func (r *Impl) SumPaid(ctx context.Context, db bun.IDB) (float64, error) {
	db = r.resolveDB(db)
	// SUM is NULL with no paid rows; sqlite may also hand back an integer
	var total sql.NullFloat64
	err := db.NewSelect().
		Model((*Registration)(nil)).
		ColumnExpr("SUM(r.payment_amount)").
		Where("r.payment_status = ?", true).
		Scan(ctx, &total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum paid registrations: %w", err)
	}
	return total.Float64, nil
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
