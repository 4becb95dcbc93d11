package authmigrations

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// Schema frozen as first deployed.
type adminV1 struct {
	bun.BaseModel `bun:"table:admins"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating admins table...")

		if _, err := db.NewCreateTable().
			Model((*adminV1)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create admins table: %w", err)
		}

		fmt.Println("Admins table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping admins table...")

		if _, err := db.NewDropTable().
			Model((*adminV1)(nil)).
			IfExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop admins table: %w", err)
		}
		return nil
	})
}
