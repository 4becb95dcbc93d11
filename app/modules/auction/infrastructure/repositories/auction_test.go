package auctiondb

import (
	"context"
	"testing"
	"time"

	"github.com/Black-And-White-Club/gala-night/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(t *testing.T, repo Repository, title string, start float64, end *time.Time) *AuctionItem {
	t.Helper()
	item := &AuctionItem{Title: title, StartingBid: start, CurrentBid: start, EndTime: end, IsActive: true}
	require.NoError(t, repo.CreateItem(context.Background(), nil, item))
	require.NotZero(t, item.ID)
	return item
}

func TestAuctionRepository_CreateInactiveItem(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testutils.NewSQLiteDB(t))

	item := &AuctionItem{Title: "Wine crate", StartingBid: 50, CurrentBid: 50, IsActive: false}
	require.NoError(t, repo.CreateItem(ctx, nil, item))

	got, err := repo.GetItem(ctx, nil, item.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, 50.0, got.CurrentBid)
}

func TestAuctionRepository_SumWinningBidsWithoutBids(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testutils.NewSQLiteDB(t))

	total, err := repo.SumWinningBids(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, total)

	newItem(t, repo, "Quilt", 75, nil)
	total, err = repo.SumWinningBids(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, total, "items without bids do not count")
}

func TestAuctionRepository_RaiseBid(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testutils.NewSQLiteDB(t))
	now := time.Date(2026, 11, 14, 20, 0, 0, 0, time.UTC)
	end := now.Add(time.Hour)
	item := newItem(t, repo, "Weekend cabin", 100, &end)

	ok, err := repo.RaiseBid(ctx, nil, item.ID, 100, "Ann", now)
	require.NoError(t, err)
	assert.False(t, ok, "equal to current bid")

	ok, err = repo.RaiseBid(ctx, nil, item.ID, 120, "Ann", now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.RaiseBid(ctx, nil, item.ID, 110, "Bob", now)
	require.NoError(t, err)
	assert.False(t, ok, "lower than current bid")

	ok, err = repo.RaiseBid(ctx, nil, item.ID, 500, "Bob", end)
	require.NoError(t, err)
	assert.False(t, ok, "at end time")

	require.NoError(t, repo.SetActive(ctx, nil, item.ID, false))
	ok, err = repo.RaiseBid(ctx, nil, item.ID, 500, "Bob", now)
	require.NoError(t, err)
	assert.False(t, ok, "inactive")

	got, err := repo.GetItem(ctx, nil, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 120.0, got.CurrentBid)
	require.NotNil(t, got.CurrentBidder)
	assert.Equal(t, "Ann", *got.CurrentBidder)
}

func TestAuctionRepository_CloseIfEnded(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testutils.NewSQLiteDB(t))
	end := time.Date(2026, 11, 14, 22, 0, 0, 0, time.UTC)
	item := newItem(t, repo, "Painting", 10, &end)
	open := newItem(t, repo, "Open ended", 10, nil)

	closed, err := repo.CloseIfEnded(ctx, nil, item.ID, end.Add(-time.Second))
	require.NoError(t, err)
	assert.False(t, closed)

	closed, err = repo.CloseIfEnded(ctx, nil, item.ID, end)
	require.NoError(t, err)
	assert.True(t, closed)

	closed, err = repo.CloseIfEnded(ctx, nil, open.ID, end)
	require.NoError(t, err)
	assert.False(t, closed)
}

func TestAuctionRepository_BidsAndTotals(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testutils.NewSQLiteDB(t))
	base := time.Date(2026, 11, 14, 19, 0, 0, 0, time.UTC)

	cabin := newItem(t, repo, "Cabin", 100, nil)
	quilt := newItem(t, repo, "Quilt", 40, nil)
	newItem(t, repo, "Unloved vase", 25, nil)

	for i, b := range []struct {
		item   int64
		amount float64
	}{{cabin.ID, 150}, {quilt.ID, 45}, {cabin.ID, 200}} {
		ok, err := repo.RaiseBid(ctx, nil, b.item, b.amount, "bidder", base)
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, repo.InsertBid(ctx, nil, &Bid{
			AuctionItemID: b.item,
			BidderName:    "bidder",
			Amount:        b.amount,
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}))
	}

	count, err := repo.CountBids(ctx, nil, cabin.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	bids, err := repo.ListBids(ctx, nil, cabin.ID)
	require.NoError(t, err)
	require.Len(t, bids, 2)
	assert.Equal(t, 200.0, bids[0].Amount, "newest first")

	all, err := repo.ListAllBids(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Cabin", all[0].ItemTitle)

	board, err := repo.Leaderboard(ctx, nil)
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, "Cabin", board[0].Title)
	assert.Equal(t, 2, board[0].BidCount)
	assert.Equal(t, "Quilt", board[1].Title)
	assert.Equal(t, 0, board[2].BidCount)

	total, err := repo.SumWinningBids(ctx, nil)
	require.NoError(t, err)
	assert.InDelta(t, 245.0, total, 0.001)

	require.NoError(t, repo.DeleteItem(ctx, nil, cabin.ID))
	_, err = repo.GetItem(ctx, nil, cabin.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	all, err = repo.ListAllBids(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1, "bids cascade with their item")
}
