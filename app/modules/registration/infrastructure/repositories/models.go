package registrationdb

import (
	"time"

	"github.com/uptrace/bun"
)

// Registration is a guest's sign-up record. It is the source of truth for the guest's
// profile; seats only point at it.
type Registration struct {
	bun.BaseModel `bun:"table:registrations,alias:r"`

	ID                 int64     `bun:"id,pk,autoincrement" json:"id"`
	Name               string    `bun:"name,notnull" json:"name"`
	Email              string    `bun:"email,notnull" json:"email"`
	Phone              string    `bun:"phone,notnull,default:''" json:"phone"`
	PaymentAmount      float64   `bun:"payment_amount,notnull,default:0" json:"paymentAmount"`
	PaymentStatus      bool      `bun:"payment_status,notnull,default:false" json:"paymentStatus"`
	TablePreference    *int      `bun:"table_preference" json:"tablePreference"`
	SeatPreference     *int      `bun:"seat_preference" json:"seatPreference"`
	SeatAssignedStatus bool      `bun:"seat_assigned_status,notnull,default:false" json:"seatAssignedStatus"`
	Quote              *string   `bun:"quote" json:"quote"`
	Bio                *string   `bun:"bio" json:"bio"`
	Involvement        *string   `bun:"involvement" json:"involvement"`
	ImageURL           *string   `bun:"image_url" json:"imageUrl"`
	SyncKey            *string   `bun:"sync_key,unique" json:"-"`
	CreatedAt          time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt          time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}
