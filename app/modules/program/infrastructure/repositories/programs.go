package programdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a program is not found.
var ErrNotFound = errors.New("program not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new program repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) Create(ctx context.Context, db bun.IDB, p *Program) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	normalizeTimes(p)
	if _, err := db.NewInsert().Model(p).Returning("id").Exec(ctx); err != nil {
		return fmt.Errorf("failed to create program: %w", err)
	}
	return nil
}

func (r *Impl) GetByID(ctx context.Context, db bun.IDB, id int64) (*Program, error) {
	db = r.resolveDB(db)
	p := new(Program)
	err := db.NewSelect().Model(p).Where("p.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get program: %w", err)
	}
	return p, nil
}

func (r *Impl) List(ctx context.Context, db bun.IDB) ([]Program, error) {
	db = r.resolveDB(db)
	var programs []Program
	err := db.NewSelect().
		Model(&programs).
		OrderExpr("p.sequence ASC").
		OrderExpr("CASE WHEN p.start_time IS NULL THEN 1 ELSE 0 END ASC").
		OrderExpr("p.start_time ASC").
		OrderExpr("p.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	return programs, nil
}

func (r *Impl) Update(ctx context.Context, db bun.IDB, p *Program) error {
	db = r.resolveDB(db)
	p.UpdatedAt = time.Now().UTC()
	normalizeTimes(p)
	res, err := db.NewUpdate().
		Model(p).
		Column(
			"title", "description", "type", "start_time", "end_time", "location",
			"speaker_name", "speaker_title", "speaker_image_url", "external_link", "updated_at",
		).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update program: %w", err)
	}
	return requireOneRow(res)
}

func (r *Impl) Delete(ctx context.Context, db bun.IDB, id int64) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*Program)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete program: %w", err)
	}
	return requireOneRow(res)
}

func (r *Impl) MaxSequence(ctx context.Context, db bun.IDB) (int, error) {
	db = r.resolveDB(db)
	var max int
	err := db.NewSelect().
		Model((*Program)(nil)).
		ColumnExpr("COALESCE(MAX(p.sequence), 0)").
		Scan(ctx, &max)
	if err != nil {
		return 0, fmt.Errorf("failed to get max program sequence: %w", err)
	}
	return max, nil
}

func (r *Impl) CountExisting(ctx context.Context, db bun.IDB, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	db = r.resolveDB(db)
	n, err := db.NewSelect().
		Model((*Program)(nil)).
		Where("p.id IN (?)", bun.In(ids)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count programs: %w", err)
	}
	return n, nil
}

func (r *Impl) SetSequence(ctx context.Context, db bun.IDB, id int64, sequence int) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*Program)(nil)).
		Set("sequence = ?", sequence).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set program sequence: %w", err)
	}
	return requireOneRow(res)
}

func normalizeTimes(p *Program) {
	if p.StartTime != nil {
		t := p.StartTime.UTC()
		p.StartTime = &t
	}
	if p.EndTime != nil {
		t := p.EndTime.UTC()
		p.EndTime = &t
	}
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
