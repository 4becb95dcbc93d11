package sheetsservice

import (
	"context"
	"io"
)

// Service defines the spreadsheet export and sync interface.
type Service interface {
	ExportRegistrations(ctx context.Context) (*ExportResult, error)
	ExportSeating(ctx context.Context) (*ExportResult, error)
	Sync(ctx context.Context) (*SyncResult, error)

	// WriteRegistrationsXLSX and WriteSeatingXLSX write the same rows as the sheet exports.
	WriteRegistrationsXLSX(ctx context.Context, w io.Writer) error
	WriteSeatingXLSX(ctx context.Context, w io.Writer) error
}

// SheetClient is the narrow slice of the spreadsheet API the service needs.
type SheetClient interface {
	Clear(ctx context.Context, spreadsheetID, rng string) error
	Write(ctx context.Context, spreadsheetID, rng string, rows [][]any) error
	Read(ctx context.Context, spreadsheetID, rng string) ([][]any, error)
}

// ExportResult reports one export run.
type ExportResult struct {
	SpreadsheetID string `json:"spreadsheetId"`
	Rows          int    `json:"rows"`
}

// SyncResult reports one sync run. Rows counts data rows, excluding the header.
type SyncResult struct {
	Rows                  int `json:"rows"`
	RegistrationsUpserted int `json:"registrationsUpserted"`
	SeatsUpserted         int `json:"seatsUpserted"`
	Skipped               int `json:"skipped"`
}
