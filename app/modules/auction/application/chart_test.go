package auctionservice

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	auctiondb "github.com/Black-And-White-Club/gala-night/app/modules/auction/infrastructure/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBidHistory(t *testing.T) {
	start := time.Date(2026, 11, 14, 19, 0, 0, 0, time.UTC)
	item := &auctiondb.AuctionItem{Title: "Cabin", StartingBid: 100, CurrentBid: 180, CreatedAt: start}

	tests := []struct {
		name string
		bids []auctiondb.Bid
	}{
		{name: "no bids draws the placeholder", bids: nil},
		{name: "single bid", bids: []auctiondb.Bid{
			{AuctionItemID: 1, BidderName: "Ann", Amount: 150, CreatedAt: start.Add(10 * time.Minute)},
		}},
		{name: "several bids", bids: []auctiondb.Bid{
			{AuctionItemID: 1, BidderName: "Ann", Amount: 150, CreatedAt: start.Add(10 * time.Minute)},
			{AuctionItemID: 1, BidderName: "Bob", Amount: 180, CreatedAt: start.Add(25 * time.Minute)},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := RenderBidHistory(item, tt.bids, DefaultPalette)
			require.NoError(t, err)

			img, err := png.Decode(bytes.NewReader(out))
			require.NoError(t, err)
			assert.Positive(t, img.Bounds().Dx())
			assert.Positive(t, img.Bounds().Dy())
		})
	}
}
