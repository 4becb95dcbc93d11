package sheetsservice

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	registrationdb "github.com/Black-And-White-Club/gala-night/app/modules/registration/infrastructure/repositories"
	seatingservice "github.com/Black-And-White-Club/gala-night/app/modules/seating/application"
	seatingdb "github.com/Black-And-White-Club/gala-night/app/modules/seating/infrastructure/repositories"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/attr"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/metrics"
	"github.com/Black-And-White-Club/gala-night/app/shared/results"
	"github.com/Black-And-White-Club/gala-night/config"
	"github.com/uptrace/bun"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "SheetsService"

// SheetsService exports registrations and seating to spreadsheets and syncs the
// seating layout back from one.
type SheetsService struct {
	client   SheetClient
	cfg      config.SheetsConfig
	regRepo  registrationdb.Repository
	seatRepo seatingdb.Repository
	logger   *slog.Logger
	metrics  metrics.OperationMetrics
	tracer   trace.Tracer
	db       *bun.DB
}

// NewSheetsService creates a new SheetsService. A nil client disables the
// spreadsheet operations; XLSX downloads keep working.
func NewSheetsService(
	client SheetClient,
	cfg config.SheetsConfig,
	regRepo registrationdb.Repository,
	seatRepo seatingdb.Repository,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *SheetsService {
	return &SheetsService{
		client:   client,
		cfg:      cfg,
		regRepo:  regRepo,
		seatRepo: seatRepo,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		db:       db,
	}
}

func (s *SheetsService) ExportRegistrations(ctx context.Context) (*ExportResult, error) {
	return s.export(ctx, "ExportRegistrations", config.SheetRegistrations, s.registrationRows)
}

func (s *SheetsService) ExportSeating(ctx context.Context) (*ExportResult, error) {
	return s.export(ctx, "ExportSeating", config.SheetSeating, s.seatingRows)
}

func (s *SheetsService) export(
	ctx context.Context,
	op, purpose string,
	build func(ctx context.Context) ([][]any, error),
) (*ExportResult, error) {
	result, err := withTelemetry(s, ctx, op, purpose, func(ctx context.Context) (results.OperationResult[*ExportResult, error], error) {
		spreadsheetID, ok := s.target(purpose)
		if !ok {
			return results.FailureResult[*ExportResult, error](ErrNotConfigured), nil
		}
		rows, err := build(ctx)
		if err != nil {
			return results.OperationResult[*ExportResult, error]{}, err
		}
		if err := s.client.Clear(ctx, spreadsheetID, ClearRange); err != nil {
			return results.OperationResult[*ExportResult, error]{}, fmt.Errorf("failed to clear sheet: %w", err)
		}
		if err := s.client.Write(ctx, spreadsheetID, WriteRange, rows); err != nil {
			return results.OperationResult[*ExportResult, error]{}, fmt.Errorf("failed to write sheet: %w", err)
		}

		s.logger.InfoContext(ctx, "Sheet exported",
			attr.ExtractCorrelationID(ctx),
			attr.String("purpose", purpose),
			attr.String("spreadsheet_id", spreadsheetID),
			attr.Int("rows", len(rows)-1),
		)
		return results.SuccessResult[*ExportResult, error](&ExportResult{
			SpreadsheetID: spreadsheetID,
			Rows:          len(rows) - 1,
		}), nil
	})
	return unwrap(result, err)
}

// Sync reads the seating layout from the sync spreadsheet and applies it in one
// transaction: each row upserts its guest by sync key, then places that guest in the
// row's seat. Later rows win over earlier ones.
func (s *SheetsService) Sync(ctx context.Context) (*SyncResult, error) {
	result, err := withTelemetry(s, ctx, "Sync", config.SheetSync, func(ctx context.Context) (results.OperationResult[*SyncResult, error], error) {
		spreadsheetID, ok := s.target(config.SheetSync)
		if !ok {
			return results.FailureResult[*SyncResult, error](ErrNotConfigured), nil
		}
		values, err := s.client.Read(ctx, spreadsheetID, ClearRange)
		if err != nil {
			return results.OperationResult[*SyncResult, error]{}, fmt.Errorf("failed to read sheet: %w", err)
		}

		res := &SyncResult{}
		var parsed []syncRow
		for i, cells := range values {
			if i == 0 {
				continue // header
			}
			res.Rows++
			row, ok := parseSyncRow(cells)
			if !ok {
				res.Skipped++
				continue
			}
			parsed = append(parsed, row)
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*SyncResult, error], error) {
			for _, row := range parsed {
				key := SyncKey(row.Name, row.Email)
				table, seat := row.Table, row.Seat
				reg := &registrationdb.Registration{
					Name:            row.Name,
					Email:           row.Email,
					TablePreference: &table,
					SeatPreference:  &seat,
					Quote:           row.Quote,
					Bio:             row.Bio,
					Involvement:     row.Involvement,
					ImageURL:        row.ImageURL,
					SyncKey:         &key,
				}
				if err := s.regRepo.UpsertBySyncKey(ctx, db, reg); err != nil {
					return results.OperationResult[*SyncResult, error]{}, err
				}
				res.RegistrationsUpserted++

				if _, err := seatingservice.Place(ctx, db, s.seatRepo, s.regRepo, row.Table, row.Seat, reg.ID); err != nil {
					return results.OperationResult[*SyncResult, error]{}, fmt.Errorf("failed to place row %d/%d: %w", row.Table, row.Seat, err)
				}
				res.SeatsUpserted++
			}

			s.logger.InfoContext(ctx, "Sheet synced",
				attr.ExtractCorrelationID(ctx),
				attr.String("spreadsheet_id", spreadsheetID),
				attr.Int("rows", res.Rows),
				attr.Int("skipped", res.Skipped),
			)
			return results.SuccessResult[*SyncResult, error](res), nil
		})
	})
	return unwrap(result, err)
}

func (s *SheetsService) WriteRegistrationsXLSX(ctx context.Context, w io.Writer) error {
	return s.writeXLSX(ctx, "WriteRegistrationsXLSX", w, s.registrationRows)
}

func (s *SheetsService) WriteSeatingXLSX(ctx context.Context, w io.Writer) error {
	return s.writeXLSX(ctx, "WriteSeatingXLSX", w, s.seatingRows)
}

func (s *SheetsService) writeXLSX(ctx context.Context, op string, w io.Writer, build func(ctx context.Context) ([][]any, error)) error {
	result, err := withTelemetry(s, ctx, op, "xlsx", func(ctx context.Context) (results.OperationResult[bool, error], error) {
		rows, err := build(ctx)
		if err != nil {
			return results.OperationResult[bool, error]{}, err
		}
		if err := WriteWorkbook(w, rows); err != nil {
			return results.OperationResult[bool, error]{}, err
		}
		return results.SuccessResult[bool, error](true), nil
	})
	_, err = unwrap(result, err)
	return err
}

// WriteWorkbook renders rows into a single-sheet XLSX workbook.
func WriteWorkbook(w io.Writer, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	for i := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to resolve cell: %w", err)
		}
		if err := f.SetSheetRow(SheetName, cellName, &rows[i]); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (s *SheetsService) registrationRows(ctx context.Context) ([][]any, error) {
	regs, err := s.regRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].ID < regs[j].ID })
	return registrationRows(regs), nil
}

func (s *SheetsService) seatingRows(ctx context.Context) ([][]any, error) {
	seats, err := s.seatRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	return seatingRows(seats), nil
}

func (s *SheetsService) target(purpose string) (string, bool) {
	id := s.cfg.SpreadsheetID(purpose)
	return id, s.client != nil && id != ""
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

type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *SheetsService,
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

func runInTx[S any, F any](
	s *SheetsService,
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

var _ Service = (*SheetsService)(nil)
