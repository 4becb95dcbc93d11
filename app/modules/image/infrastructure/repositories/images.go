package imagedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Black-And-White-Club/gala-night/app/shared/dberr"
	"github.com/uptrace/bun"
)

var (
	// ErrNotFound is returned when an image is not found.
	ErrNotFound = errors.New("image not found")
	// ErrDuplicateLabel is returned when another image already uses the label.
	ErrDuplicateLabel = errors.New("image label already exists")
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new image repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) Create(ctx context.Context, db bun.IDB, img *Image) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	img.CreatedAt = now
	img.UpdatedAt = now
	if _, err := db.NewInsert().Model(img).Returning("id").Exec(ctx); err != nil {
		if dberr.IsUniqueViolation(err) {
			return ErrDuplicateLabel
		}
		return fmt.Errorf("failed to create image: %w", err)
	}
	img.URL = img.ViewURL()
	return nil
}

func (r *Impl) GetByID(ctx context.Context, db bun.IDB, id int64) (*Image, error) {
	return r.getOne(ctx, db, "img.id = ?", id)
}

func (r *Impl) GetByLabel(ctx context.Context, db bun.IDB, label string) (*Image, error) {
	return r.getOne(ctx, db, "img.label = ?", label)
}

func (r *Impl) getOne(ctx context.Context, db bun.IDB, where string, arg any) (*Image, error) {
	db = r.resolveDB(db)
	img := new(Image)
	if err := db.NewSelect().Model(img).Where(where, arg).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	img.URL = img.ViewURL()
	return img, nil
}

func (r *Impl) List(ctx context.Context, db bun.IDB) ([]Image, error) {
	db = r.resolveDB(db)
	var images []Image
	if err := db.NewSelect().Model(&images).OrderExpr("img.label ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	for i := range images {
		images[i].URL = images[i].ViewURL()
	}
	return images, nil
}

func (r *Impl) Update(ctx context.Context, db bun.IDB, img *Image) error {
	db = r.resolveDB(db)
	img.UpdatedAt = time.Now().UTC()
	res, err := db.NewUpdate().
		Model(img).
		Column("label", "file_id", "alt", "type", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return ErrDuplicateLabel
		}
		return fmt.Errorf("failed to update image: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	img.URL = img.ViewURL()
	return nil
}

func (r *Impl) Delete(ctx context.Context, db bun.IDB, id int64) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().Model((*Image)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
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
