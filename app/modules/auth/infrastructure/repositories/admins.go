package authdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/gala-night/app/shared/dberr"
	"github.com/uptrace/bun"
)

var (
	// ErrNotFound is returned when an admin is not found.
	ErrNotFound = errors.New("admin not found")

	// ErrDuplicateEmail is returned when an admin with the email already exists.
	ErrDuplicateEmail = errors.New("admin email already exists")
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new admin repository.
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

func (r *Impl) Create(ctx context.Context, db bun.IDB, admin *Admin) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(admin).
		Column("email", "password_hash").
		Returning("id, created_at").
		Exec(ctx)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

func (r *Impl) GetByEmail(ctx context.Context, db bun.IDB, email string) (*Admin, error) {
	db = r.resolveDB(db)
	admin := new(Admin)
	err := db.NewSelect().
		Model(admin).
		Where("email = ?", email).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}
	return admin, nil
}

func (r *Impl) List(ctx context.Context, db bun.IDB) ([]Admin, error) {
	db = r.resolveDB(db)
	var admins []Admin
	err := db.NewSelect().
		Model(&admins).
		OrderExpr("email ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return admins, nil
}

func (r *Impl) Delete(ctx context.Context, db bun.IDB, id int64) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*Admin)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete admin: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
