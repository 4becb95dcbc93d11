package auctionservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	auctiondb "github.com/Black-And-White-Club/gala-night/app/modules/auction/infrastructure/repositories"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/attr"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/metrics"
	"github.com/Black-And-White-Club/gala-night/app/shared/results"
	"github.com/Black-And-White-Club/gala-night/app/shared/timeparse"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "AuctionService"

// AuctionService manages auction items and bids.
type AuctionService struct {
	repo      auctiondb.Repository
	times     *timeparse.Parser
	clock     timeparse.Clock
	scheduler CloseScheduler
	logger    *slog.Logger
	metrics   metrics.OperationMetrics
	tracer    trace.Tracer
	db        *bun.DB
}

// NewAuctionService creates a new AuctionService. A nil scheduler disables close jobs.
func NewAuctionService(
	repo auctiondb.Repository,
	times *timeparse.Parser,
	clock timeparse.Clock,
	scheduler CloseScheduler,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *AuctionService {
	if clock == nil {
		clock = timeparse.RealClock()
	}
	if times == nil {
		times = timeparse.New(time.UTC, clock)
	}
	if scheduler == nil {
		scheduler = NoopScheduler{}
	}
	return &AuctionService{
		repo:      repo,
		times:     times,
		clock:     clock,
		scheduler: scheduler,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		db:        db,
	}
}

// CreateItem stores a new item whose current bid starts at the starting bid.
func (s *AuctionService) CreateItem(ctx context.Context, in ItemInput) (*auctiondb.AuctionItem, error) {
	result, err := withTelemetry(s, ctx, "CreateItem", strings.TrimSpace(in.Title), func(ctx context.Context) (results.OperationResult[*auctiondb.AuctionItem, error], error) {
		item := &auctiondb.AuctionItem{IsActive: true}
		if failure := s.applyInput(item, in); failure != nil {
			return results.FailureResult[*auctiondb.AuctionItem, error](failure), nil
		}
		item.CurrentBid = item.StartingBid

		res, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*auctiondb.AuctionItem, error], error) {
			if err := s.repo.CreateItem(ctx, db, item); err != nil {
				return results.OperationResult[*auctiondb.AuctionItem, error]{}, err
			}
			return results.SuccessResult[*auctiondb.AuctionItem, error](item), nil
		})
		if err == nil && res.IsSuccess() {
			s.scheduleClose(ctx, item)
		}
		return res, err
	})
	return unwrap(result, err)
}

// UpdateItem replaces the editable fields. The current bid follows a changed starting bid
// only while the item has no bids.
func (s *AuctionService) UpdateItem(ctx context.Context, id int64, in ItemInput) (*auctiondb.AuctionItem, error) {
	result, err := withTelemetry(s, ctx, "UpdateItem", strconv.FormatInt(id, 10), func(ctx context.Context) (results.OperationResult[*auctiondb.AuctionItem, error], error) {
		res, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*auctiondb.AuctionItem, error], error) {
			item, err := s.repo.GetItem(ctx, db, id)
			if err != nil {
				return itemNotFoundOr[*auctiondb.AuctionItem](err)
			}
			previousStart := item.StartingBid
			if failure := s.applyInput(item, in); failure != nil {
				return results.FailureResult[*auctiondb.AuctionItem, error](failure), nil
			}

			count, err := s.repo.CountBids(ctx, db, id)
			if err != nil {
				return results.OperationResult[*auctiondb.AuctionItem, error]{}, err
			}
			item.BidCount = count
			if count == 0 && item.StartingBid != previousStart {
				item.CurrentBid = item.StartingBid
			}

			if err := s.repo.UpdateItem(ctx, db, item); err != nil {
				return itemNotFoundOr[*auctiondb.AuctionItem](err)
			}
			return results.SuccessResult[*auctiondb.AuctionItem, error](item), nil
		})
		if err == nil && res.IsSuccess() {
			s.scheduleClose(ctx, *res.Success)
		}
		return res, err
	})
	return unwrap(result, err)
}

// DeleteItem removes an item and, through the foreign key, its bids.
func (s *AuctionService) DeleteItem(ctx context.Context, id int64) error {
	result, err := withTelemetry(s, ctx, "DeleteItem", strconv.FormatInt(id, 10), func(ctx context.Context) (results.OperationResult[bool, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
			if err := s.repo.DeleteItem(ctx, db, id); err != nil {
				return itemNotFoundOr[bool](err)
			}
			return results.SuccessResult[bool, error](true), nil
		})
	})
	_, err = unwrap(result, err)
	return err
}

// SetActive pauses or resumes bidding on an item.
func (s *AuctionService) SetActive(ctx context.Context, id int64, active bool) (*auctiondb.AuctionItem, error) {
	result, err := withTelemetry(s, ctx, "SetActive", strconv.FormatInt(id, 10), func(ctx context.Context) (results.OperationResult[*auctiondb.AuctionItem, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*auctiondb.AuctionItem, error], error) {
			if err := s.repo.SetActive(ctx, db, id, active); err != nil {
				return itemNotFoundOr[*auctiondb.AuctionItem](err)
			}
			item, err := s.repo.GetItem(ctx, db, id)
			if err != nil {
				return itemNotFoundOr[*auctiondb.AuctionItem](err)
			}
			return results.SuccessResult[*auctiondb.AuctionItem, error](item), nil
		})
	})
	return unwrap(result, err)
}

func (s *AuctionService) GetItem(ctx context.Context, id int64) (*auctiondb.AuctionItem, error) {
	result, err := withTelemetry(s, ctx, "GetItem", strconv.FormatInt(id, 10), func(ctx context.Context) (results.OperationResult[*auctiondb.AuctionItem, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*auctiondb.AuctionItem, error], error) {
			item, err := s.repo.GetItem(ctx, db, id)
			if err != nil {
				return itemNotFoundOr[*auctiondb.AuctionItem](err)
			}
			count, err := s.repo.CountBids(ctx, db, id)
			if err != nil {
				return results.OperationResult[*auctiondb.AuctionItem, error]{}, err
			}
			item.BidCount = count
			return results.SuccessResult[*auctiondb.AuctionItem, error](item), nil
		})
	})
	return unwrap(result, err)
}

func (s *AuctionService) ListItems(ctx context.Context) ([]auctiondb.AuctionItem, error) {
	result, err := withTelemetry(s, ctx, "ListItems", "all", func(ctx context.Context) (results.OperationResult[[]auctiondb.AuctionItem, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]auctiondb.AuctionItem, error], error) {
			items, err := s.repo.ListItems(ctx, db)
			if err != nil {
				return results.OperationResult[[]auctiondb.AuctionItem, error]{}, err
			}
			return results.SuccessResult[[]auctiondb.AuctionItem, error](nonNil(items)), nil
		})
	})
	return unwrap(result, err)
}

func (s *AuctionService) PlaceBid(ctx context.Context, itemID int64, bidder string, amount float64) (*BidResult, error) {
	result, err := withTelemetry(s, ctx, "PlaceBid", strconv.FormatInt(itemID, 10), func(ctx context.Context) (results.OperationResult[*BidResult, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*BidResult, error], error) {
			return s.placeBidLogic(ctx, db, itemID, bidder, amount, s.clock.Now())
		})
	})
	return unwrap(result, err)
}

func (s *AuctionService) AdminPlaceBid(ctx context.Context, itemID int64, bidder string, amount float64, placedAt *time.Time) (*BidResult, error) {
	at := s.clock.Now()
	if placedAt != nil {
		at = *placedAt
	}
	result, err := withTelemetry(s, ctx, "AdminPlaceBid", strconv.FormatInt(itemID, 10), func(ctx context.Context) (results.OperationResult[*BidResult, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*BidResult, error], error) {
			return s.placeBidLogic(ctx, db, itemID, bidder, amount, at)
		})
	})
	return unwrap(result, err)
}

// placeBidLogic raises the item's current bid with a single conditional update and only
// then appends the bid row, so concurrent bidders serialize on the item row and the
// stored current bid is always the highest accepted amount.
func (s *AuctionService) placeBidLogic(ctx context.Context, db bun.IDB, itemID int64, bidder string, amount float64, at time.Time) (results.OperationResult[*BidResult, error], error) {
	bidder = strings.TrimSpace(bidder)
	if bidder == "" || amount <= 0 {
		return results.FailureResult[*BidResult, error](ErrInvalidBid), nil
	}

	raised, err := s.repo.RaiseBid(ctx, db, itemID, amount, bidder, at)
	if err != nil {
		return results.OperationResult[*BidResult, error]{}, err
	}
	if !raised {
		return s.classifyRejectedBid(ctx, db, itemID, at)
	}

	bid := &auctiondb.Bid{AuctionItemID: itemID, BidderName: bidder, Amount: amount, CreatedAt: at}
	if err := s.repo.InsertBid(ctx, db, bid); err != nil {
		return results.OperationResult[*BidResult, error]{}, err
	}

	item, err := s.repo.GetItem(ctx, db, itemID)
	if err != nil {
		return results.OperationResult[*BidResult, error]{}, err
	}

	s.logger.InfoContext(ctx, "Bid accepted",
		attr.ExtractCorrelationID(ctx),
		attr.Int64("item_id", itemID),
		attr.Float64("amount", amount),
	)
	return results.SuccessResult[*BidResult, error](&BidResult{Item: item, Bid: bid}), nil
}

func (s *AuctionService) classifyRejectedBid(ctx context.Context, db bun.IDB, itemID int64, at time.Time) (results.OperationResult[*BidResult, error], error) {
	item, err := s.repo.GetItem(ctx, db, itemID)
	if err != nil {
		return itemNotFoundOr[*BidResult](err)
	}
	switch {
	case !item.IsActive:
		return results.FailureResult[*BidResult, error](ErrItemInactive), nil
	case item.Ended(at):
		return results.FailureResult[*BidResult, error](ErrAuctionEnded), nil
	default:
		return results.FailureResult[*BidResult, error](ErrBidTooLow), nil
	}
}

func (s *AuctionService) ListBids(ctx context.Context, itemID int64) ([]auctiondb.Bid, error) {
	result, err := withTelemetry(s, ctx, "ListBids", strconv.FormatInt(itemID, 10), func(ctx context.Context) (results.OperationResult[[]auctiondb.Bid, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]auctiondb.Bid, error], error) {
			if _, err := s.repo.GetItem(ctx, db, itemID); err != nil {
				return itemNotFoundOr[[]auctiondb.Bid](err)
			}
			bids, err := s.repo.ListBids(ctx, db, itemID)
			if err != nil {
				return results.OperationResult[[]auctiondb.Bid, error]{}, err
			}
			return results.SuccessResult[[]auctiondb.Bid, error](nonNil(bids)), nil
		})
	})
	return unwrap(result, err)
}

func (s *AuctionService) ListAllBids(ctx context.Context) ([]auctiondb.Bid, error) {
	result, err := withTelemetry(s, ctx, "ListAllBids", "all", func(ctx context.Context) (results.OperationResult[[]auctiondb.Bid, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]auctiondb.Bid, error], error) {
			bids, err := s.repo.ListAllBids(ctx, db)
			if err != nil {
				return results.OperationResult[[]auctiondb.Bid, error]{}, err
			}
			return results.SuccessResult[[]auctiondb.Bid, error](nonNil(bids)), nil
		})
	})
	return unwrap(result, err)
}

func (s *AuctionService) Leaderboard(ctx context.Context) ([]auctiondb.AuctionItem, error) {
	result, err := withTelemetry(s, ctx, "Leaderboard", "all", func(ctx context.Context) (results.OperationResult[[]auctiondb.AuctionItem, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]auctiondb.AuctionItem, error], error) {
			items, err := s.repo.Leaderboard(ctx, db)
			if err != nil {
				return results.OperationResult[[]auctiondb.AuctionItem, error]{}, err
			}
			return results.SuccessResult[[]auctiondb.AuctionItem, error](nonNil(items)), nil
		})
	})
	return unwrap(result, err)
}

func (s *AuctionService) BidChart(ctx context.Context, itemID int64) ([]byte, error) {
	result, err := withTelemetry(s, ctx, "BidChart", strconv.FormatInt(itemID, 10), func(ctx context.Context) (results.OperationResult[[]byte, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]byte, error], error) {
			item, err := s.repo.GetItem(ctx, db, itemID)
			if err != nil {
				return itemNotFoundOr[[]byte](err)
			}
			bids, err := s.repo.ListBids(ctx, db, itemID)
			if err != nil {
				return results.OperationResult[[]byte, error]{}, err
			}
			png, err := RenderBidHistory(item, bids, DefaultPalette)
			if err != nil {
				return results.OperationResult[[]byte, error]{}, fmt.Errorf("failed to render bid chart: %w", err)
			}
			return results.SuccessResult[[]byte, error](png), nil
		})
	})
	return unwrap(result, err)
}

func (s *AuctionService) applyInput(item *auctiondb.AuctionItem, in ItemInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" || in.StartingBid < 0 {
		return ErrInvalidItem
	}
	end, err := s.times.ParseOptional(in.EndTime)
	if err != nil {
		return ErrInvalidEndTime
	}
	item.Title = title
	item.Description = strings.TrimSpace(in.Description)
	item.ImageURL = in.ImageURL
	item.StartingBid = in.StartingBid
	item.EndTime = end
	if in.IsActive != nil {
		item.IsActive = *in.IsActive
	}
	return nil
}

func (s *AuctionService) scheduleClose(ctx context.Context, item *auctiondb.AuctionItem) {
	if item.EndTime == nil || !item.IsActive {
		return
	}
	if err := s.scheduler.ScheduleClose(ctx, item.ID, *item.EndTime); err != nil {
		s.logger.WarnContext(ctx, "Failed to schedule auction close",
			attr.ExtractCorrelationID(ctx),
			attr.Int64("item_id", item.ID),
			attr.Error(err),
		)
	}
}

func itemNotFoundOr[S any](err error) (results.OperationResult[S, error], error) {
	if errors.Is(err, auctiondb.ErrNotFound) {
		return results.FailureResult[S, error](ErrItemNotFound), nil
	}
	return results.OperationResult[S, error]{}, err
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func unwrap[S any](result results.OperationResult[S, error], err error) (S, error) {
	var zero S
	if err != nil {
		return zero, err
	}
	if result.IsFailure() {
		return zero, *result.Failure
	}
	return *result.Success, nil
}

// -----------------------------------------------------------------------------
// Generic Helpers
// -----------------------------------------------------------------------------

type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *AuctionService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
		}
	}()

	s.logger.InfoContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *AuctionService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})
	return result, err
}

var _ Service = (*AuctionService)(nil)
