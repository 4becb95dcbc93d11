package auctiondb

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Repository defines the contract for auction persistence.
type Repository interface {
	CreateItem(ctx context.Context, db bun.IDB, item *AuctionItem) error
	GetItem(ctx context.Context, db bun.IDB, id int64) (*AuctionItem, error)
	ListItems(ctx context.Context, db bun.IDB) ([]AuctionItem, error)

	// UpdateItem writes the admin-editable columns, including current_bid.
	UpdateItem(ctx context.Context, db bun.IDB, item *AuctionItem) error
	DeleteItem(ctx context.Context, db bun.IDB, id int64) error
	SetActive(ctx context.Context, db bun.IDB, id int64, active bool) error

	// RaiseBid atomically sets the item's current bid and bidder when the item is active,
	// not ended at the given instant, and the amount beats the current bid. It reports
	// whether the row was updated.
	RaiseBid(ctx context.Context, db bun.IDB, id int64, amount float64, bidder string, at time.Time) (bool, error)

	// CloseIfEnded deactivates the item when its end time is at or before now.
	CloseIfEnded(ctx context.Context, db bun.IDB, id int64, now time.Time) (bool, error)

	InsertBid(ctx context.Context, db bun.IDB, bid *Bid) error
	CountBids(ctx context.Context, db bun.IDB, itemID int64) (int, error)

	// ListBids returns an item's bids, newest first.
	ListBids(ctx context.Context, db bun.IDB, itemID int64) ([]Bid, error)

	// ListAllBids returns every bid with its item title, newest first.
	ListAllBids(ctx context.Context, db bun.IDB) ([]Bid, error)

	// Leaderboard returns items with their bid counts, highest current bid first.
	Leaderboard(ctx context.Context, db bun.IDB) ([]AuctionItem, error)

	// SumWinningBids totals current_bid over items that received at least one bid.
	SumWinningBids(ctx context.Context, db bun.IDB) (float64, error)
}
