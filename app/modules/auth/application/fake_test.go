package authservice

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/gala-night/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/gala-night/app/modules/auth/infrastructure/jwt"
	authdb "github.com/Black-And-White-Club/gala-night/app/modules/auth/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake JWT Provider
// ------------------------

type FakeJWTProvider struct {
	trace []string

	GenerateTokenFunc func(claims *authdomain.Claims, ttl time.Duration) (string, error)
	ValidateTokenFunc func(tokenString string) (*authdomain.Claims, error)
}

func (f *FakeJWTProvider) Trace() []string {
	return f.trace
}

func (f *FakeJWTProvider) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeJWTProvider) GenerateToken(claims *authdomain.Claims, ttl time.Duration) (string, error) {
	f.record("GenerateToken")
	if f.GenerateTokenFunc != nil {
		return f.GenerateTokenFunc(claims, ttl)
	}
	return "fake-token", nil
}

func (f *FakeJWTProvider) ValidateToken(tokenString string) (*authdomain.Claims, error) {
	f.record("ValidateToken")
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(tokenString)
	}
	return &authdomain.Claims{
		Email:     "admin@gala.local",
		Source:    authdomain.SourceStatic,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

var _ authjwt.Provider = (*FakeJWTProvider)(nil)

// ------------------------
// Fake Admin Repo
// ------------------------

type FakeAdminRepo struct {
	trace []string

	CreateFunc     func(ctx context.Context, db bun.IDB, admin *authdb.Admin) error
	GetByEmailFunc func(ctx context.Context, db bun.IDB, email string) (*authdb.Admin, error)
	ListFunc       func(ctx context.Context, db bun.IDB) ([]authdb.Admin, error)
	DeleteFunc     func(ctx context.Context, db bun.IDB, id int64) error
}

func NewFakeAdminRepo() *FakeAdminRepo {
	return &FakeAdminRepo{trace: []string{}}
}

func (f *FakeAdminRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeAdminRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeAdminRepo) Create(ctx context.Context, db bun.IDB, admin *authdb.Admin) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, admin)
	}
	admin.ID = 1
	return nil
}

func (f *FakeAdminRepo) GetByEmail(ctx context.Context, db bun.IDB, email string) (*authdb.Admin, error) {
	f.record("GetByEmail")
	if f.GetByEmailFunc != nil {
		return f.GetByEmailFunc(ctx, db, email)
	}
	return nil, authdb.ErrNotFound
}

func (f *FakeAdminRepo) List(ctx context.Context, db bun.IDB) ([]authdb.Admin, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeAdminRepo) Delete(ctx context.Context, db bun.IDB, id int64) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, id)
	}
	return nil
}

var _ authdb.Repository = (*FakeAdminRepo)(nil)
