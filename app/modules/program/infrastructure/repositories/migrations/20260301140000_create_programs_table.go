package programmigrations

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

type programV1 struct {
	bun.BaseModel `bun:"table:programs"`

	ID              int64      `bun:"id,pk,autoincrement"`
	Title           string     `bun:"title,notnull"`
	Description     string     `bun:"description,notnull,default:''"`
	Type            string     `bun:"type,notnull,default:''"`
	StartTime       *time.Time `bun:"start_time"`
	EndTime         *time.Time `bun:"end_time"`
	Location        *string    `bun:"location"`
	SpeakerName     *string    `bun:"speaker_name"`
	SpeakerTitle    *string    `bun:"speaker_title"`
	SpeakerImageURL *string    `bun:"speaker_image_url"`
	ExternalLink    *string    `bun:"external_link"`
	Sequence        int        `bun:"sequence,notnull,default:0"`
	CreatedAt       time.Time  `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt       time.Time  `bun:"updated_at,notnull,default:current_timestamp"`
}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating programs table...")

		if _, err := db.NewCreateTable().
			Model((*programV1)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create programs table: %w", err)
		}

		if _, err := db.NewCreateIndex().
			Model((*programV1)(nil)).
			Index("idx_programs_sequence").
			Column("sequence", "start_time").
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create programs index: %w", err)
		}

		fmt.Println("Programs table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping programs table...")

		if _, err := db.NewDropTable().
			Model((*programV1)(nil)).
			IfExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop programs table: %w", err)
		}
		return nil
	})
}
