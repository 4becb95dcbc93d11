package registrationmigrations

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

type registrationV1 struct {
	bun.BaseModel `bun:"table:registrations"`

	ID                 int64     `bun:"id,pk,autoincrement"`
	Name               string    `bun:"name,notnull"`
	Email              string    `bun:"email,notnull"`
	Phone              string    `bun:"phone,notnull,default:''"`
	PaymentAmount      float64   `bun:"payment_amount,notnull,default:0"`
	PaymentStatus      bool      `bun:"payment_status,notnull,default:false"`
	TablePreference    *int      `bun:"table_preference"`
	SeatPreference     *int      `bun:"seat_preference"`
	SeatAssignedStatus bool      `bun:"seat_assigned_status,notnull,default:false"`
	Quote              *string   `bun:"quote"`
	Bio                *string   `bun:"bio"`
	Involvement        *string   `bun:"involvement"`
	ImageURL           *string   `bun:"image_url"`
	SyncKey            *string   `bun:"sync_key,unique"`
	CreatedAt          time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt          time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating registrations table...")

		if _, err := db.NewCreateTable().
			Model((*registrationV1)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create registrations table: %w", err)
		}

		if _, err := db.NewCreateIndex().
			Model((*registrationV1)(nil)).
			Index("idx_registrations_table_preference").
			Column("table_preference", "seat_preference").
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create registrations index: %w", err)
		}

		fmt.Println("Registrations table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping registrations table...")

		if _, err := db.NewDropTable().
			Model((*registrationV1)(nil)).
			IfExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop registrations table: %w", err)
		}
		return nil
	})
}
