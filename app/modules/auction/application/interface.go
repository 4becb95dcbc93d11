package auctionservice

import (
	"context"
	"time"

	auctiondb "github.com/Black-And-White-Club/gala-night/app/modules/auction/infrastructure/repositories"
)

// Service defines the auction service interface.
type Service interface {
	CreateItem(ctx context.Context, in ItemInput) (*auctiondb.AuctionItem, error)
	UpdateItem(ctx context.Context, id int64, in ItemInput) (*auctiondb.AuctionItem, error)
	DeleteItem(ctx context.Context, id int64) error
	SetActive(ctx context.Context, id int64, active bool) (*auctiondb.AuctionItem, error)
	GetItem(ctx context.Context, id int64) (*auctiondb.AuctionItem, error)
	ListItems(ctx context.Context) ([]auctiondb.AuctionItem, error)

	// PlaceBid accepts a public bid.
	PlaceBid(ctx context.Context, itemID int64, bidder string, amount float64) (*BidResult, error)

	// AdminPlaceBid records a bid on a guest's behalf, optionally backdated to placedAt.
	AdminPlaceBid(ctx context.Context, itemID int64, bidder string, amount float64, placedAt *time.Time) (*BidResult, error)

	ListBids(ctx context.Context, itemID int64) ([]auctiondb.Bid, error)
	ListAllBids(ctx context.Context) ([]auctiondb.Bid, error)
	Leaderboard(ctx context.Context) ([]auctiondb.AuctionItem, error)

	// BidChart renders the item's bid history as a PNG.
	BidChart(ctx context.Context, itemID int64) ([]byte, error)
}

// ItemInput is an admin create or full update of an auction item.
type ItemInput struct {
	Title       string
	Description string
	ImageURL    *string
	StartingBid float64

	// EndTime is RFC3339 or natural language in the event timezone; nil or blank means no end.
	EndTime *string

	// IsActive defaults to true on create and is left unchanged on update when nil.
	IsActive *bool
}

// BidResult is the item state after an accepted bid plus the stored bid.
type BidResult struct {
	Item *auctiondb.AuctionItem `json:"item"`
	Bid  *auctiondb.Bid         `json:"bid"`
}

// CloseScheduler arranges for an item to be closed at its end time.
type CloseScheduler interface {
	ScheduleClose(ctx context.Context, itemID int64, endsAt time.Time) error
}

// NoopScheduler is used when the job queue is disabled.
type NoopScheduler struct{}

func (NoopScheduler) ScheduleClose(context.Context, int64, time.Time) error { return nil }
