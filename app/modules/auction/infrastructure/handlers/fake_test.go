package auctionhandlers

import (
	"context"
	"time"

	auctionservice "github.com/Black-And-White-Club/gala-night/app/modules/auction/application"
	auctiondb "github.com/Black-And-White-Club/gala-night/app/modules/auction/infrastructure/repositories"
)

type FakeService struct {
	CreateItemFunc    func(ctx context.Context, in auctionservice.ItemInput) (*auctiondb.AuctionItem, error)
	UpdateItemFunc    func(ctx context.Context, id int64, in auctionservice.ItemInput) (*auctiondb.AuctionItem, error)
	DeleteItemFunc    func(ctx context.Context, id int64) error
	SetActiveFunc     func(ctx context.Context, id int64, active bool) (*auctiondb.AuctionItem, error)
	GetItemFunc       func(ctx context.Context, id int64) (*auctiondb.AuctionItem, error)
	ListItemsFunc     func(ctx context.Context) ([]auctiondb.AuctionItem, error)
	PlaceBidFunc      func(ctx context.Context, itemID int64, bidder string, amount float64) (*auctionservice.BidResult, error)
	AdminPlaceBidFunc func(ctx context.Context, itemID int64, bidder string, amount float64, placedAt *time.Time) (*auctionservice.BidResult, error)
	ListBidsFunc      func(ctx context.Context, itemID int64) ([]auctiondb.Bid, error)
	ListAllBidsFunc   func(ctx context.Context) ([]auctiondb.Bid, error)
	LeaderboardFunc   func(ctx context.Context) ([]auctiondb.AuctionItem, error)
	BidChartFunc      func(ctx context.Context, itemID int64) ([]byte, error)
}

func (f *FakeService) CreateItem(ctx context.Context, in auctionservice.ItemInput) (*auctiondb.AuctionItem, error) {
	if f.CreateItemFunc != nil {
		return f.CreateItemFunc(ctx, in)
	}
	return &auctiondb.AuctionItem{ID: 1, Title: in.Title, StartingBid: in.StartingBid, CurrentBid: in.StartingBid, IsActive: true}, nil
}

func (f *FakeService) UpdateItem(ctx context.Context, id int64, in auctionservice.ItemInput) (*auctiondb.AuctionItem, error) {
	if f.UpdateItemFunc != nil {
		return f.UpdateItemFunc(ctx, id, in)
	}
	return &auctiondb.AuctionItem{ID: id, Title: in.Title}, nil
}

func (f *FakeService) DeleteItem(ctx context.Context, id int64) error {
	if f.DeleteItemFunc != nil {
		return f.DeleteItemFunc(ctx, id)
	}
	return nil
}

func (f *FakeService) SetActive(ctx context.Context, id int64, active bool) (*auctiondb.AuctionItem, error) {
	if f.SetActiveFunc != nil {
		return f.SetActiveFunc(ctx, id, active)
	}
	return &auctiondb.AuctionItem{ID: id, IsActive: active}, nil
}

func (f *FakeService) GetItem(ctx context.Context, id int64) (*auctiondb.AuctionItem, error) {
	if f.GetItemFunc != nil {
		return f.GetItemFunc(ctx, id)
	}
	return &auctiondb.AuctionItem{ID: id}, nil
}

func (f *FakeService) ListItems(ctx context.Context) ([]auctiondb.AuctionItem, error) {
	if f.ListItemsFunc != nil {
		return f.ListItemsFunc(ctx)
	}
	return []auctiondb.AuctionItem{}, nil
}

func (f *FakeService) PlaceBid(ctx context.Context, itemID int64, bidder string, amount float64) (*auctionservice.BidResult, error) {
	if f.PlaceBidFunc != nil {
		return f.PlaceBidFunc(ctx, itemID, bidder, amount)
	}
	return &auctionservice.BidResult{
		Item: &auctiondb.AuctionItem{ID: itemID, CurrentBid: amount},
		Bid:  &auctiondb.Bid{ID: 1, AuctionItemID: itemID, BidderName: bidder, Amount: amount},
	}, nil
}

func (f *FakeService) AdminPlaceBid(ctx context.Context, itemID int64, bidder string, amount float64, placedAt *time.Time) (*auctionservice.BidResult, error) {
	if f.AdminPlaceBidFunc != nil {
		return f.AdminPlaceBidFunc(ctx, itemID, bidder, amount, placedAt)
	}
	return f.PlaceBid(ctx, itemID, bidder, amount)
}

func (f *FakeService) ListBids(ctx context.Context, itemID int64) ([]auctiondb.Bid, error) {
	if f.ListBidsFunc != nil {
		return f.ListBidsFunc(ctx, itemID)
	}
	return []auctiondb.Bid{}, nil
}

func (f *FakeService) ListAllBids(ctx context.Context) ([]auctiondb.Bid, error) {
	if f.ListAllBidsFunc != nil {
		return f.ListAllBidsFunc(ctx)
	}
	return []auctiondb.Bid{}, nil
}

func (f *FakeService) Leaderboard(ctx context.Context) ([]auctiondb.AuctionItem, error) {
	if f.LeaderboardFunc != nil {
		return f.LeaderboardFunc(ctx)
	}
	return []auctiondb.AuctionItem{}, nil
}

func (f *FakeService) BidChart(ctx context.Context, itemID int64) ([]byte, error) {
	if f.BidChartFunc != nil {
		return f.BidChartFunc(ctx, itemID)
	}
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

var _ auctionservice.Service = (*FakeService)(nil)
