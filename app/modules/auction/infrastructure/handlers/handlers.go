package auctionhandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	auctionservice "github.com/Black-And-White-Club/gala-night/app/modules/auction/application"
	"github.com/Black-And-White-Club/gala-night/app/shared/httpjson"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/attr"
	"github.com/Black-And-White-Club/gala-night/app/shared/timeparse"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Bid rejection codes. All are returned with 409.
const (
	CodeItemInactive = "ITEM_INACTIVE"
	CodeAuctionEnded = "AUCTION_ENDED"
	CodeBidTooLow    = "BID_TOO_LOW"
)

// AuctionHandlers implements the Handlers interface.
type AuctionHandlers struct {
	service auctionservice.Service
	times   *timeparse.Parser
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewAuctionHandlers creates a new AuctionHandlers instance. times resolves admin backdated bid times.
func NewAuctionHandlers(service auctionservice.Service, times *timeparse.Parser, logger *slog.Logger, tracer trace.Tracer) Handlers {
	return &AuctionHandlers{service: service, times: times, logger: logger, tracer: tracer}
}

type itemRequest struct {
	Title       string  `json:"title" validate:"notblank,max=200"`
	Description string  `json:"description" validate:"max=4000"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,max=2000"`
	StartingBid float64 `json:"startingBid" validate:"gte=0"`
	EndTime     *string `json:"endTime"`
	IsActive    *bool   `json:"isActive"`
}

func (req itemRequest) input() auctionservice.ItemInput {
	return auctionservice.ItemInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		StartingBid: req.StartingBid,
		EndTime:     req.EndTime,
		IsActive:    req.IsActive,
	}
}

type bidRequest struct {
	BidderName string  `json:"bidderName" validate:"notblank,max=200"`
	Amount     float64 `json:"amount" validate:"gt=0"`
}

type adminBidRequest struct {
	bidRequest
	PlacedAt *string `json:"placedAt"`
}

type activeRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

func (h *AuctionHandlers) HandleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListItems(r.Context())
	if err != nil {
		h.writeError(w, r, "ListItems", err)
		return
	}
	httpjson.OK(w, http.StatusOK, items)
}

func (h *AuctionHandlers) HandleGetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := httpjson.ParamIDOrFail(w, r, "id")
	if !ok {
		return
	}
	item, err := h.service.GetItem(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "GetItem", err)
		return
	}
	httpjson.OK(w, http.StatusOK, item)
}

func (h *AuctionHandlers) HandleListBids(w http.ResponseWriter, r *http.Request) {
	id, ok := httpjson.ParamIDOrFail(w, r, "id")
	if !ok {
		return
	}
	bids, err := h.service.ListBids(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "ListBids", err)
		return
	}
	httpjson.OK(w, http.StatusOK, bids)
}

func (h *AuctionHandlers) HandlePlaceBid(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AuctionHandlers.HandlePlaceBid")
	defer span.End()

	id, ok := httpjson.ParamIDOrFail(w, r, "id")
	if !ok {
		return
	}
	var req bidRequest
	if !httpjson.DecodeOrFail(w, r, &req) {
		return
	}
	span.SetAttributes(attribute.Int64("item_id", id), attribute.Float64("amount", req.Amount))

	res, err := h.service.PlaceBid(ctx, id, req.BidderName, req.Amount)
	if err != nil {
		h.writeError(w, r, "PlaceBid", err)
		return
	}
	httpjson.OK(w, http.StatusCreated, res)
}

func (h *AuctionHandlers) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Leaderboard(r.Context())
	if err != nil {
		h.writeError(w, r, "Leaderboard", err)
		return
	}
	httpjson.OK(w, http.StatusOK, items)
}

func (h *AuctionHandlers) HandleBidChart(w http.ResponseWriter, r *http.Request) {
	id, ok := httpjson.ParamIDOrFail(w, r, "id")
	if !ok {
		return
	}
	png, err := h.service.BidChart(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "BidChart", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h *AuctionHandlers) HandleCreateItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AuctionHandlers.HandleCreateItem")
	defer span.End()

	var req itemRequest
	if !httpjson.DecodeOrFail(w, r, &req) {
		return
	}
	item, err := h.service.CreateItem(ctx, req.input())
	if err != nil {
		h.writeError(w, r, "CreateItem", err)
		return
	}
	httpjson.OK(w, http.StatusCreated, item)
}

func (h *AuctionHandlers) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := httpjson.ParamIDOrFail(w, r, "id")
	if !ok {
		return
	}
	var req itemRequest
	if !httpjson.DecodeOrFail(w, r, &req) {
		return
	}
	item, err := h.service.UpdateItem(r.Context(), id, req.input())
	if err != nil {
		h.writeError(w, r, "UpdateItem", err)
		return
	}
	httpjson.OK(w, http.StatusOK, item)
}

func (h *AuctionHandlers) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := httpjson.ParamIDOrFail(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		h.writeError(w, r, "DeleteItem", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuctionHandlers) HandleSetActive(w http.ResponseWriter, r *http.Request) {
	id, ok := httpjson.ParamIDOrFail(w, r, "id")
	if !ok {
		return
	}
	var req activeRequest
	if !httpjson.DecodeOrFail(w, r, &req) {
		return
	}
	item, err := h.service.SetActive(r.Context(), id, *req.IsActive)
	if err != nil {
		h.writeError(w, r, "SetActive", err)
		return
	}
	httpjson.OK(w, http.StatusOK, item)
}

func (h *AuctionHandlers) HandleAdminPlaceBid(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AuctionHandlers.HandleAdminPlaceBid")
	defer span.End()

	id, ok := httpjson.ParamIDOrFail(w, r, "id")
	if !ok {
		return
	}
	var req adminBidRequest
	if !httpjson.DecodeOrFail(w, r, &req) {
		return
	}
	placedAt, err := h.times.ParseOptional(req.PlacedAt)
	if err != nil {
		httpjson.Fail(w, http.StatusBadRequest, httpjson.CodeValidation, "placedAt: "+err.Error())
		return
	}

	res, err := h.service.AdminPlaceBid(ctx, id, req.BidderName, req.Amount, placedAt)
	if err != nil {
		h.writeError(w, r, "AdminPlaceBid", err)
		return
	}
	httpjson.OK(w, http.StatusCreated, res)
}

func (h *AuctionHandlers) HandleListAllBids(w http.ResponseWriter, r *http.Request) {
	bids, err := h.service.ListAllBids(r.Context())
	if err != nil {
		h.writeError(w, r, "ListAllBids", err)
		return
	}
	httpjson.OK(w, http.StatusOK, bids)
}

func (h *AuctionHandlers) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, auctionservice.ErrItemNotFound):
		httpjson.Fail(w, http.StatusNotFound, httpjson.CodeNotFound, err.Error())
	case errors.Is(err, auctionservice.ErrItemInactive):
		httpjson.Fail(w, http.StatusConflict, CodeItemInactive, err.Error())
	case errors.Is(err, auctionservice.ErrAuctionEnded):
		httpjson.Fail(w, http.StatusConflict, CodeAuctionEnded, err.Error())
	case errors.Is(err, auctionservice.ErrBidTooLow):
		httpjson.Fail(w, http.StatusConflict, CodeBidTooLow, err.Error())
	case errors.Is(err, auctionservice.ErrInvalidBid),
		errors.Is(err, auctionservice.ErrInvalidItem),
		errors.Is(err, auctionservice.ErrInvalidEndTime):
		httpjson.Fail(w, http.StatusBadRequest, httpjson.CodeValidation, err.Error())
	default:
		ctx := r.Context()
		h.logger.ErrorContext(ctx, "Auction request failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", op),
			attr.Error(err),
		)
		httpjson.Internal(w)
	}
}
