package imageservice

import (
	"context"

	imagedb "github.com/Black-And-White-Club/gala-night/app/modules/image/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// FakeImageRepo is a programmable fake for imagedb.Repository.
type FakeImageRepo struct {
	trace []string

	CreateFunc     func(ctx context.Context, db bun.IDB, img *imagedb.Image) error
	GetByIDFunc    func(ctx context.Context, db bun.IDB, id int64) (*imagedb.Image, error)
	GetByLabelFunc func(ctx context.Context, db bun.IDB, label string) (*imagedb.Image, error)
	ListFunc       func(ctx context.Context, db bun.IDB) ([]imagedb.Image, error)
	UpdateFunc     func(ctx context.Context, db bun.IDB, img *imagedb.Image) error
	DeleteFunc     func(ctx context.Context, db bun.IDB, id int64) error
}

func NewFakeImageRepo() *FakeImageRepo {
	return &FakeImageRepo{trace: []string{}}
}

func (f *FakeImageRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeImageRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeImageRepo) Create(ctx context.Context, db bun.IDB, img *imagedb.Image) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, img)
	}
	img.ID = 1
	img.URL = img.ViewURL()
	return nil
}

func (f *FakeImageRepo) GetByID(ctx context.Context, db bun.IDB, id int64) (*imagedb.Image, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, id)
	}
	return nil, imagedb.ErrNotFound
}

func (f *FakeImageRepo) GetByLabel(ctx context.Context, db bun.IDB, label string) (*imagedb.Image, error) {
	f.record("GetByLabel")
	if f.GetByLabelFunc != nil {
		return f.GetByLabelFunc(ctx, db, label)
	}
	return nil, imagedb.ErrNotFound
}

func (f *FakeImageRepo) List(ctx context.Context, db bun.IDB) ([]imagedb.Image, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeImageRepo) Update(ctx context.Context, db bun.IDB, img *imagedb.Image) error {
	f.record("Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, db, img)
	}
	return nil
}

func (f *FakeImageRepo) Delete(ctx context.Context, db bun.IDB, id int64) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, id)
	}
	return nil
}
