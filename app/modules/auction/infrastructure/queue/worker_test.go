package auctionqueue

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	auctiondb "github.com/Black-And-White-Club/gala-night/app/modules/auction/infrastructure/repositories"
	"github.com/Black-And-White-Club/gala-night/internal/testutils"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseWorker_Work(t *testing.T) {
	ctx := context.Background()
	end := time.Date(2026, 11, 14, 22, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		now        time.Time
		active     bool
		wantActive bool
	}{
		{name: "closes after end time", now: end.Add(time.Second), active: true, wantActive: false},
		{name: "extended end time is left open", now: end.Add(-time.Hour), active: true, wantActive: true},
		{name: "already paused", now: end.Add(time.Second), active: false, wantActive: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := auctiondb.NewRepository(testutils.NewSQLiteDB(t))
			item := &auctiondb.AuctionItem{Title: "Cabin", StartingBid: 10, CurrentBid: 10, EndTime: &end, IsActive: tt.active}
			require.NoError(t, repo.CreateItem(ctx, nil, item))

			w := NewCloseWorker(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
			w.now = func() time.Time { return tt.now }

			err := w.Work(ctx, &river.Job[AuctionCloseJob]{
				JobRow: &rivertype.JobRow{ID: 1},
				Args:   AuctionCloseJob{ItemID: item.ID, EndsAt: end},
			})
			require.NoError(t, err)

			got, err := repo.GetItem(ctx, nil, item.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantActive, got.IsActive)
		})
	}
}

func TestCloseWorker_MissingItem(t *testing.T) {
	repo := auctiondb.NewRepository(testutils.NewSQLiteDB(t))
	w := NewCloseWorker(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := w.Work(context.Background(), &river.Job[AuctionCloseJob]{
		JobRow: &rivertype.JobRow{ID: 2},
		Args:   AuctionCloseJob{ItemID: 99, EndsAt: time.Now()},
	})
	assert.NoError(t, err)
}

func TestAuctionCloseJob_Kind(t *testing.T) {
	assert.Equal(t, "auction_close", AuctionCloseJob{}.Kind())
}
