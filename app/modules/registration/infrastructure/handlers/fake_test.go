package registrationhandlers

import (
	"context"

	registrationservice "github.com/Black-And-White-Club/gala-night/app/modules/registration/application"
	registrationdb "github.com/Black-And-White-Club/gala-night/app/modules/registration/infrastructure/repositories"
)

type FakeService struct {
	RegisterFunc           func(ctx context.Context, in registrationservice.RegisterInput) (*registrationdb.Registration, error)
	GetRegistrationFunc    func(ctx context.Context, id int64) (*registrationdb.Registration, error)
	ListRegistrationsFunc  func(ctx context.Context) ([]registrationdb.Registration, error)
	ListByTableFunc        func(ctx context.Context) ([]registrationservice.TableGroup, error)
	UpdateRegistrationFunc func(ctx context.Context, id int64, in registrationservice.UpdateInput) (*registrationdb.Registration, error)
	UpdatePaymentFunc      func(ctx context.Context, id int64, paid bool, amount *float64) (*registrationdb.Registration, error)
}

func (f *FakeService) Register(ctx context.Context, in registrationservice.RegisterInput) (*registrationdb.Registration, error) {
	if f.RegisterFunc != nil {
		return f.RegisterFunc(ctx, in)
	}
	return &registrationdb.Registration{ID: 1, Name: in.Name, Email: in.Email}, nil
}

func (f *FakeService) GetRegistration(ctx context.Context, id int64) (*registrationdb.Registration, error) {
	if f.GetRegistrationFunc != nil {
		return f.GetRegistrationFunc(ctx, id)
	}
	return nil, registrationdb.ErrNotFound
}

func (f *FakeService) ListRegistrations(ctx context.Context) ([]registrationdb.Registration, error) {
	if f.ListRegistrationsFunc != nil {
		return f.ListRegistrationsFunc(ctx)
	}
	return []registrationdb.Registration{}, nil
}

func (f *FakeService) ListByTable(ctx context.Context) ([]registrationservice.TableGroup, error) {
	if f.ListByTableFunc != nil {
		return f.ListByTableFunc(ctx)
	}
	return []registrationservice.TableGroup{}, nil
}

func (f *FakeService) UpdateRegistration(ctx context.Context, id int64, in registrationservice.UpdateInput) (*registrationdb.Registration, error) {
	if f.UpdateRegistrationFunc != nil {
		return f.UpdateRegistrationFunc(ctx, id, in)
	}
	return nil, registrationdb.ErrNotFound
}

func (f *FakeService) UpdatePayment(ctx context.Context, id int64, paid bool, amount *float64) (*registrationdb.Registration, error) {
	if f.UpdatePaymentFunc != nil {
		return f.UpdatePaymentFunc(ctx, id, paid, amount)
	}
	return nil, registrationdb.ErrNotFound
}

var _ registrationservice.Service = (*FakeService)(nil)
