package seatingmigrations

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

type seatV1 struct {
	bun.BaseModel `bun:"table:seats"`

	ID             int64     `bun:"id,pk,autoincrement"`
	TableNumber    int       `bun:"table_number,notnull,unique:seat_position"`
	SeatNumber     int       `bun:"seat_number,notnull,unique:seat_position"`
	RegistrationID *int64    `bun:"registration_id"`
	CreatedAt      time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt      time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating seats table...")

		if _, err := db.NewCreateTable().
			Model((*seatV1)(nil)).
			IfNotExists().
			ForeignKey(`("registration_id") REFERENCES "registrations" ("id") ON DELETE SET NULL`).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create seats table: %w", err)
		}

		if _, err := db.NewCreateIndex().
			Model((*seatV1)(nil)).
			Index("idx_seats_registration_id").
			Column("registration_id").
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create seats index: %w", err)
		}

		fmt.Println("Seats table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping seats table...")

		if _, err := db.NewDropTable().
			Model((*seatV1)(nil)).
			IfExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop seats table: %w", err)
		}
		return nil
	})
}
