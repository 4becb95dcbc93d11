package auctionqueue

import "time"

// AuctionCloseJob closes an auction item once its end time has passed.
type AuctionCloseJob struct {
	ItemID int64     `json:"item_id"`
	EndsAt time.Time `json:"ends_at"`
}

// Kind returns the job type identifier for River
func (AuctionCloseJob) Kind() string { return "auction_close" }
