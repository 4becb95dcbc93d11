package auctiondb

import (
	"time"

	"github.com/uptrace/bun"
)

// AuctionItem is a lot in the silent auction. CurrentBid starts at StartingBid and only
// rises through accepted bids.
type AuctionItem struct {
	bun.BaseModel `bun:"table:auction_items,alias:ai"`

	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	Title         string     `bun:"title,notnull" json:"title"`
	Description   string     `bun:"description,notnull,default:''" json:"description"`
	ImageURL      *string    `bun:"image_url" json:"imageUrl"`
	StartingBid   float64    `bun:"starting_bid,notnull,default:0" json:"startingBid"`
	CurrentBid    float64    `bun:"current_bid,notnull,default:0" json:"currentBid"`
	CurrentBidder *string    `bun:"current_bidder" json:"currentBidder"`
	EndTime       *time.Time `bun:"end_time" json:"endTime"`
	IsActive      bool       `bun:"is_active,notnull" json:"isActive"`
	CreatedAt     time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt     time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`

	BidCount int `bun:"bid_count,scanonly" json:"bidCount"`
}

// Ended reports whether the item's end time is at or before now.
func (i *AuctionItem) Ended(now time.Time) bool {
	return i.EndTime != nil && !i.EndTime.After(now)
}

// Bid is an accepted bid. Bids are append-only.
type Bid struct {
	bun.BaseModel `bun:"table:bids,alias:b"`

	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	AuctionItemID int64     `bun:"auction_item_id,notnull" json:"auctionItemId"`
	BidderName    string    `bun:"bidder_name,notnull" json:"bidderName"`
	Amount        float64   `bun:"amount,notnull" json:"amount"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`

	ItemTitle string `bun:"item_title,scanonly" json:"itemTitle,omitempty"`
}
