package auctionservice

import "errors"

var (
	ErrItemNotFound   = errors.New("auction item not found")
	ErrItemInactive   = errors.New("auction item is not accepting bids")
	ErrAuctionEnded   = errors.New("auction has ended for this item")
	ErrBidTooLow      = errors.New("bid must be higher than the current bid")
	ErrInvalidBid     = errors.New("bid requires a bidder name and a positive amount")
	ErrInvalidItem    = errors.New("title is required and starting bid must not be negative")
	ErrInvalidEndTime = errors.New("end time could not be understood")
)
