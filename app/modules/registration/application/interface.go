package registrationservice

import (
	"context"

	registrationdb "github.com/Black-And-White-Club/gala-night/app/modules/registration/infrastructure/repositories"
)

// Service defines the registration service interface.
type Service interface {
	Register(ctx context.Context, in RegisterInput) (*registrationdb.Registration, error)
	GetRegistration(ctx context.Context, id int64) (*registrationdb.Registration, error)
	ListRegistrations(ctx context.Context) ([]registrationdb.Registration, error)

	// ListByTable buckets registrations by table preference for the seating planner.
	ListByTable(ctx context.Context) ([]TableGroup, error)

	UpdateRegistration(ctx context.Context, id int64, in UpdateInput) (*registrationdb.Registration, error)
	UpdatePayment(ctx context.Context, id int64, paid bool, amount *float64) (*registrationdb.Registration, error)
}

// RegisterInput is what a guest submits from the public form.
type RegisterInput struct {
	Name            string
	Email           string
	Phone           string
	PaymentAmount   float64
	TablePreference *int
	SeatPreference  *int
	Quote           *string
	Bio             *string
	Involvement     *string
	ImageURL        *string
}

// UpdateInput is an admin edit; it replaces every editable field.
type UpdateInput struct {
	RegisterInput
	PaymentStatus bool
}

// TableGroup is one bucket of ListByTable. TableNumber is nil for guests without a preference.
type TableGroup struct {
	TableNumber   *int                          `json:"tableNumber"`
	Registrations []registrationdb.Registration `json:"registrations"`
}
