package auctionservice

import (
	"context"
	"sync"
	"time"

	auctiondb "github.com/Black-And-White-Club/gala-night/app/modules/auction/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// FakeAuctionRepo is a programmable fake for auctiondb.Repository.
type FakeAuctionRepo struct {
	trace []string

	CreateItemFunc     func(ctx context.Context, db bun.IDB, item *auctiondb.AuctionItem) error
	GetItemFunc        func(ctx context.Context, db bun.IDB, id int64) (*auctiondb.AuctionItem, error)
	ListItemsFunc      func(ctx context.Context, db bun.IDB) ([]auctiondb.AuctionItem, error)
	UpdateItemFunc     func(ctx context.Context, db bun.IDB, item *auctiondb.AuctionItem) error
	DeleteItemFunc     func(ctx context.Context, db bun.IDB, id int64) error
	SetActiveFunc      func(ctx context.Context, db bun.IDB, id int64, active bool) error
	RaiseBidFunc       func(ctx context.Context, db bun.IDB, id int64, amount float64, bidder string, at time.Time) (bool, error)
	CloseIfEndedFunc   func(ctx context.Context, db bun.IDB, id int64, now time.Time) (bool, error)
	InsertBidFunc      func(ctx context.Context, db bun.IDB, bid *auctiondb.Bid) error
	CountBidsFunc      func(ctx context.Context, db bun.IDB, itemID int64) (int, error)
	ListBidsFunc       func(ctx context.Context, db bun.IDB, itemID int64) ([]auctiondb.Bid, error)
	ListAllBidsFunc    func(ctx context.Context, db bun.IDB) ([]auctiondb.Bid, error)
	LeaderboardFunc    func(ctx context.Context, db bun.IDB) ([]auctiondb.AuctionItem, error)
	SumWinningBidsFunc func(ctx context.Context, db bun.IDB) (float64, error)
}

func NewFakeAuctionRepo() *FakeAuctionRepo {
	return &FakeAuctionRepo{trace: []string{}}
}

func (f *FakeAuctionRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeAuctionRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeAuctionRepo) CreateItem(ctx context.Context, db bun.IDB, item *auctiondb.AuctionItem) error {
	f.record("CreateItem")
	if f.CreateItemFunc != nil {
		return f.CreateItemFunc(ctx, db, item)
	}
	item.ID = 1
	return nil
}

func (f *FakeAuctionRepo) GetItem(ctx context.Context, db bun.IDB, id int64) (*auctiondb.AuctionItem, error) {
	f.record("GetItem")
	if f.GetItemFunc != nil {
		return f.GetItemFunc(ctx, db, id)
	}
	return nil, auctiondb.ErrNotFound
}

func (f *FakeAuctionRepo) ListItems(ctx context.Context, db bun.IDB) ([]auctiondb.AuctionItem, error) {
	f.record("ListItems")
	if f.ListItemsFunc != nil {
		return f.ListItemsFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeAuctionRepo) UpdateItem(ctx context.Context, db bun.IDB, item *auctiondb.AuctionItem) error {
	f.record("UpdateItem")
	if f.UpdateItemFunc != nil {
		return f.UpdateItemFunc(ctx, db, item)
	}
	return nil
}

func (f *FakeAuctionRepo) DeleteItem(ctx context.Context, db bun.IDB, id int64) error {
	f.record("DeleteItem")
	if f.DeleteItemFunc != nil {
		return f.DeleteItemFunc(ctx, db, id)
	}
	return nil
}

func (f *FakeAuctionRepo) SetActive(ctx context.Context, db bun.IDB, id int64, active bool) error {
	f.record("SetActive")
	if f.SetActiveFunc != nil {
		return f.SetActiveFunc(ctx, db, id, active)
	}
	return nil
}

func (f *FakeAuctionRepo) RaiseBid(ctx context.Context, db bun.IDB, id int64, amount float64, bidder string, at time.Time) (bool, error) {
	f.record("RaiseBid")
	if f.RaiseBidFunc != nil {
		return f.RaiseBidFunc(ctx, db, id, amount, bidder, at)
	}
	return false, nil
}

func (f *FakeAuctionRepo) CloseIfEnded(ctx context.Context, db bun.IDB, id int64, now time.Time) (bool, error) {
	f.record("CloseIfEnded")
	if f.CloseIfEndedFunc != nil {
		return f.CloseIfEndedFunc(ctx, db, id, now)
	}
	return false, nil
}

func (f *FakeAuctionRepo) InsertBid(ctx context.Context, db bun.IDB, bid *auctiondb.Bid) error {
	f.record("InsertBid")
	if f.InsertBidFunc != nil {
		return f.InsertBidFunc(ctx, db, bid)
	}
	bid.ID = 1
	return nil
}

func (f *FakeAuctionRepo) CountBids(ctx context.Context, db bun.IDB, itemID int64) (int, error) {
	f.record("CountBids")
	if f.CountBidsFunc != nil {
		return f.CountBidsFunc(ctx, db, itemID)
	}
	return 0, nil
}

func (f *FakeAuctionRepo) ListBids(ctx context.Context, db bun.IDB, itemID int64) ([]auctiondb.Bid, error) {
	f.record("ListBids")
	if f.ListBidsFunc != nil {
		return f.ListBidsFunc(ctx, db, itemID)
	}
	return nil, nil
}

func (f *FakeAuctionRepo) ListAllBids(ctx context.Context, db bun.IDB) ([]auctiondb.Bid, error) {
	f.record("ListAllBids")
	if f.ListAllBidsFunc != nil {
		return f.ListAllBidsFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeAuctionRepo) Leaderboard(ctx context.Context, db bun.IDB) ([]auctiondb.AuctionItem, error) {
	f.record("Leaderboard")
	if f.LeaderboardFunc != nil {
		return f.LeaderboardFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeAuctionRepo) SumWinningBids(ctx context.Context, db bun.IDB) (float64, error) {
	f.record("SumWinningBids")
	if f.SumWinningBidsFunc != nil {
		return f.SumWinningBidsFunc(ctx, db)
	}
	return 0, nil
}

var _ auctiondb.Repository = (*FakeAuctionRepo)(nil)

// FakeScheduler records ScheduleClose calls.
type FakeScheduler struct {
	mu    sync.Mutex
	Calls []ScheduledClose
	Err   error
}

type ScheduledClose struct {
	ItemID int64
	EndsAt time.Time
}

func (f *FakeScheduler) ScheduleClose(_ context.Context, itemID int64, endsAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, ScheduledClose{ItemID: itemID, EndsAt: endsAt})
	return f.Err
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
