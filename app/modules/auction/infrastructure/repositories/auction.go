package auctiondb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// ErrNotFound is returned when an auction item is not found.
var ErrNotFound = errors.New("auction item not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new auction repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) CreateItem(ctx context.Context, db bun.IDB, item *AuctionItem) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	item.EndTime = utcPtr(item.EndTime)
	_, err := db.NewInsert().
		Model(item).
		Returning("id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create auction item: %w", err)
	}
	return nil
}

func (r *Impl) GetItem(ctx context.Context, db bun.IDB, id int64) (*AuctionItem, error) {
	db = r.resolveDB(db)
	item := new(AuctionItem)
	err := db.NewSelect().
		Model(item).
		Where("ai.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get auction item: %w", err)
	}
	return item, nil
}

func (r *Impl) ListItems(ctx context.Context, db bun.IDB) ([]AuctionItem, error) {
	db = r.resolveDB(db)
	var items []AuctionItem
	err := db.NewSelect().
		Model(&items).
		ColumnExpr("ai.*").
		ColumnExpr(bidCountExpr).
		OrderExpr("ai.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list auction items: %w", err)
	}
	return items, nil
}

func (r *Impl) UpdateItem(ctx context.Context, db bun.IDB, item *AuctionItem) error {
	db = r.resolveDB(db)
	item.UpdatedAt = time.Now().UTC()
	item.EndTime = utcPtr(item.EndTime)
	res, err := db.NewUpdate().
		Model(item).
		Column(
			"title", "description", "image_url",
			"starting_bid", "current_bid",
			"end_time", "is_active", "updated_at",
		).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update auction item: %w", err)
	}
	return requireOneRow(res)
}

func (r *Impl) DeleteItem(ctx context.Context, db bun.IDB, id int64) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*AuctionItem)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete auction item: %w", err)
	}
	return requireOneRow(res)
}

func (r *Impl) SetActive(ctx context.Context, db bun.IDB, id int64, active bool) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*AuctionItem)(nil)).
		Set("is_active = ?", active).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set auction item active: %w", err)
	}
	return requireOneRow(res)
}

func (r *Impl) RaiseBid(ctx context.Context, db bun.IDB, id int64, amount float64, bidder string, at time.Time) (bool, error) {
	db = r.resolveDB(db)
	at = at.UTC()
	res, err := db.NewUpdate().
		Model((*AuctionItem)(nil)).
		Set("current_bid = ?", amount).
		Set("current_bidder = ?", bidder).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Where("is_active = ?", true).
		WhereGroup(" AND ", func(q *bun.UpdateQuery) *bun.UpdateQuery {
			return q.Where("end_time IS NULL").WhereOr("end_time > ?", at)
		}).
		Where("current_bid < ?", amount).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to raise bid: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows == 1, nil
}

func (r *Impl) CloseIfEnded(ctx context.Context, db bun.IDB, id int64, now time.Time) (bool, error) {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*AuctionItem)(nil)).
		Set("is_active = ?", false).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Where("is_active = ?", true).
		Where("end_time IS NOT NULL").
		Where("end_time <= ?", now.UTC()).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to close auction item: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows == 1, nil
}

func (r *Impl) InsertBid(ctx context.Context, db bun.IDB, bid *Bid) error {
	db = r.resolveDB(db)
	if bid.CreatedAt.IsZero() {
		bid.CreatedAt = time.Now()
	}
	bid.CreatedAt = bid.CreatedAt.UTC()
	if _, err := db.NewInsert().Model(bid).Returning("id").Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert bid: %w", err)
	}
	return nil
}

func (r *Impl) CountBids(ctx context.Context, db bun.IDB, itemID int64) (int, error) {
	db = r.resolveDB(db)
	n, err := db.NewSelect().
		Model((*Bid)(nil)).
		Where("b.auction_item_id = ?", itemID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count bids: %w", err)
	}
	return n, nil
}

func (r *Impl) ListBids(ctx context.Context, db bun.IDB, itemID int64) ([]Bid, error) {
	db = r.resolveDB(db)
	var bids []Bid
	err := db.NewSelect().
		Model(&bids).
		Where("b.auction_item_id = ?", itemID).
		OrderExpr("b.created_at DESC, b.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}
	return bids, nil
}

func (r *Impl) ListAllBids(ctx context.Context, db bun.IDB) ([]Bid, error) {
	db = r.resolveDB(db)
	var bids []Bid
	err := db.NewSelect().
		Model(&bids).
		ColumnExpr("b.*").
		ColumnExpr("ai.title AS item_title").
		Join("JOIN auction_items AS ai ON ai.id = b.auction_item_id").
		OrderExpr("b.created_at DESC, b.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list all bids: %w", err)
	}
	return bids, nil
}

func (r *Impl) Leaderboard(ctx context.Context, db bun.IDB) ([]AuctionItem, error) {
	db = r.resolveDB(db)
	var items []AuctionItem
	err := db.NewSelect().
		Model(&items).
		ColumnExpr("ai.*").
		ColumnExpr(bidCountExpr).
		OrderExpr("ai.current_bid DESC, ai.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load auction leaderboard: %w", err)
	}
	return items, nil
}

func (r *Impl) SumWinningBids(ctx context.Context, db bun.IDB) (float64, error) {
	db = r.resolveDB(db)
	var total sql.NullFloat64
	err := db.NewSelect().
		Model((*AuctionItem)(nil)).
		ColumnExpr("SUM(ai.current_bid)").
		Where("EXISTS (SELECT 1 FROM bids AS b WHERE b.auction_item_id = ai.id)").
		Scan(ctx, &total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum winning bids: %w", err)
	}
	return total.Float64, nil
}

const bidCountExpr = "(SELECT COUNT(*) FROM bids AS b WHERE b.auction_item_id = ai.id) AS bid_count"

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func requireOneRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
