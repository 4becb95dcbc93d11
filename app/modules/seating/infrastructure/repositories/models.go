package seatingdb

import (
	"time"

	registrationdb "github.com/Black-And-White-Club/gala-night/app/modules/registration/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// Seat is one place at a table. The occupant's details live on the linked registration.
type Seat struct {
	bun.BaseModel `bun:"table:seats,alias:s"`

	ID             int64     `bun:"id,pk,autoincrement"`
	TableNumber    int       `bun:"table_number,notnull,unique:seat_position"`
	SeatNumber     int       `bun:"seat_number,notnull,unique:seat_position"`
	RegistrationID *int64    `bun:"registration_id"`
	CreatedAt      time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt      time.Time `bun:"updated_at,notnull,default:current_timestamp"`

	Registration *registrationdb.Registration `bun:"rel:belongs-to,join:registration_id=id"`
}
