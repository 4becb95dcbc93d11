package registrationservice

import (
	"context"

	registrationdb "github.com/Black-And-White-Club/gala-night/app/modules/registration/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// FakeRegistrationRepo is a programmable fake for registrationdb.Repository.
type FakeRegistrationRepo struct {
	trace []string

	CreateFunc          func(ctx context.Context, db bun.IDB, reg *registrationdb.Registration) error
	GetByIDFunc         func(ctx context.Context, db bun.IDB, id int64) (*registrationdb.Registration, error)
	ListFunc            func(ctx context.Context, db bun.IDB) ([]registrationdb.Registration, error)
	UpdateFunc          func(ctx context.Context, db bun.IDB, reg *registrationdb.Registration) error
	UpdatePaymentFunc   func(ctx context.Context, db bun.IDB, id int64, paid bool, amount *float64) (*registrationdb.Registration, error)
	SetSeatAssignedFunc func(ctx context.Context, db bun.IDB, id int64, assigned bool) error
	UpsertBySyncKeyFunc func(ctx context.Context, db bun.IDB, reg *registrationdb.Registration) error
	SumPaidFunc         func(ctx context.Context, db bun.IDB) (float64, error)
}

func NewFakeRegistrationRepo() *FakeRegistrationRepo {
	return &FakeRegistrationRepo{trace: []string{}}
}

func (f *FakeRegistrationRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRegistrationRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRegistrationRepo) Create(ctx context.Context, db bun.IDB, reg *registrationdb.Registration) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, reg)
	}
	reg.ID = 1
	return nil
}

func (f *FakeRegistrationRepo) GetByID(ctx context.Context, db bun.IDB, id int64) (*registrationdb.Registration, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, id)
	}
	return nil, registrationdb.ErrNotFound
}

func (f *FakeRegistrationRepo) List(ctx context.Context, db bun.IDB) ([]registrationdb.Registration, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeRegistrationRepo) Update(ctx context.Context, db bun.IDB, reg *registrationdb.Registration) error {
	f.record("Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, db, reg)
	}
	return nil
}

func (f *FakeRegistrationRepo) UpdatePayment(ctx context.Context, db bun.IDB, id int64, paid bool, amount *float64) (*registrationdb.Registration, error) {
	f.record("UpdatePayment")
	if f.UpdatePaymentFunc != nil {
		return f.UpdatePaymentFunc(ctx, db, id, paid, amount)
	}
	return nil, registrationdb.ErrNotFound
}

func (f *FakeRegistrationRepo) SetSeatAssigned(ctx context.Context, db bun.IDB, id int64, assigned bool) error {
	f.record("SetSeatAssigned")
	if f.SetSeatAssignedFunc != nil {
		return f.SetSeatAssignedFunc(ctx, db, id, assigned)
	}
	return nil
}

func (f *FakeRegistrationRepo) UpsertBySyncKey(ctx context.Context, db bun.IDB, reg *registrationdb.Registration) error {
	f.record("UpsertBySyncKey")
	if f.UpsertBySyncKeyFunc != nil {
		return f.UpsertBySyncKeyFunc(ctx, db, reg)
	}
	return nil
}

func (f *FakeRegistrationRepo) SumPaid(ctx context.Context, db bun.IDB) (float64, error) {
	f.record("SumPaid")
	if f.SumPaidFunc != nil {
		return f.SumPaidFunc(ctx, db)
	}
	return 0, nil
}

var _ registrationdb.Repository = (*FakeRegistrationRepo)(nil)
