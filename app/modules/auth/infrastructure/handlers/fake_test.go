package authhandlers

import (
	"context"
	"time"

	authservice "github.com/Black-And-White-Club/gala-night/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/gala-night/app/modules/auth/domain"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	LoginFunc           func(ctx context.Context, email, password string) (*authservice.LoginResponse, error)
	ValidateSessionFunc func(ctx context.Context, token string) (*authdomain.Claims, error)
	CreateAdminFunc     func(ctx context.Context, email, password string) (*authservice.AdminInfo, error)
	ListAdminsFunc      func(ctx context.Context) ([]authservice.AdminInfo, error)
	DeleteAdminFunc     func(ctx context.Context, requester *authdomain.Claims, id int64) error
}

func (f *FakeService) Login(ctx context.Context, email, password string) (*authservice.LoginResponse, error) {
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, email, password)
	}
	return nil, authservice.ErrInvalidCredentials
}

func (f *FakeService) ValidateSession(ctx context.Context, token string) (*authdomain.Claims, error) {
	if f.ValidateSessionFunc != nil {
		return f.ValidateSessionFunc(ctx, token)
	}
	if token == "" {
		return nil, authservice.ErrMissingToken
	}
	return &authdomain.Claims{Email: "admin@gala.local", Source: authdomain.SourceStatic, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (f *FakeService) CreateAdmin(ctx context.Context, email, password string) (*authservice.AdminInfo, error) {
	if f.CreateAdminFunc != nil {
		return f.CreateAdminFunc(ctx, email, password)
	}
	return &authservice.AdminInfo{ID: 1, Email: email, Source: authdomain.SourceAccount}, nil
}

func (f *FakeService) ListAdmins(ctx context.Context) ([]authservice.AdminInfo, error) {
	if f.ListAdminsFunc != nil {
		return f.ListAdminsFunc(ctx)
	}
	return nil, nil
}

func (f *FakeService) DeleteAdmin(ctx context.Context, requester *authdomain.Claims, id int64) error {
	if f.DeleteAdminFunc != nil {
		return f.DeleteAdminFunc(ctx, requester, id)
	}
	return nil
}

var _ authservice.Service = (*FakeService)(nil)
