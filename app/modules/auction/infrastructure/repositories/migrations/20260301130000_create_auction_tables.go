package auctionmigrations

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

type auctionItemV1 struct {
	bun.BaseModel `bun:"table:auction_items"`

	ID            int64      `bun:"id,pk,autoincrement"`
	Title         string     `bun:"title,notnull"`
	Description   string     `bun:"description,notnull,default:''"`
	ImageURL      *string    `bun:"image_url"`
	StartingBid   float64    `bun:"starting_bid,notnull,default:0"`
	CurrentBid    float64    `bun:"current_bid,notnull,default:0"`
	CurrentBidder *string    `bun:"current_bidder"`
	EndTime       *time.Time `bun:"end_time"`
	IsActive      bool       `bun:"is_active,notnull,default:true"`
	CreatedAt     time.Time  `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt     time.Time  `bun:"updated_at,notnull,default:current_timestamp"`
}

type bidV1 struct {
	bun.BaseModel `bun:"table:bids"`

	ID            int64     `bun:"id,pk,autoincrement"`
	AuctionItemID int64     `bun:"auction_item_id,notnull"`
	BidderName    string    `bun:"bidder_name,notnull"`
	Amount        float64   `bun:"amount,notnull"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating auction tables...")

		if _, err := db.NewCreateTable().
			Model((*auctionItemV1)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create auction_items table: %w", err)
		}

		if _, err := db.NewCreateTable().
			Model((*bidV1)(nil)).
			IfNotExists().
			ForeignKey(`("auction_item_id") REFERENCES "auction_items" ("id") ON DELETE CASCADE`).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create bids table: %w", err)
		}

		if _, err := db.NewCreateIndex().
			Model((*bidV1)(nil)).
			Index("idx_bids_auction_item_id").
			Column("auction_item_id", "created_at").
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create bids index: %w", err)
		}

		fmt.Println("Auction tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping auction tables...")

		for _, model := range []any{(*bidV1)(nil), (*auctionItemV1)(nil)} {
			if _, err := db.NewDropTable().
				Model(model).
				IfExists().
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop auction tables: %w", err)
			}
		}
		return nil
	})
}
