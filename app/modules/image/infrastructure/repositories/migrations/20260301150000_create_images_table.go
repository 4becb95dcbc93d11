package imagemigrations

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

type imageV1 struct {
	bun.BaseModel `bun:"table:images"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Label     string    `bun:"label,notnull,unique"`
	FileID    string    `bun:"file_id,notnull"`
	Alt       string    `bun:"alt,notnull,default:''"`
	Type      string    `bun:"type,notnull,default:''"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating images table...")

		if _, err := db.NewCreateTable().
			Model((*imageV1)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create images table: %w", err)
		}

		fmt.Println("Images table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping images table...")

		if _, err := db.NewDropTable().
			Model((*imageV1)(nil)).
			IfExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop images table: %w", err)
		}
		return nil
	})
}
