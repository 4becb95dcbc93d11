package sheetshandlers

import (
	"context"
	"io"

	sheetsservice "github.com/Black-And-White-Club/gala-night/app/modules/sheets/application"
)

type FakeService struct {
	ExportRegistrationsFunc    func(ctx context.Context) (*sheetsservice.ExportResult, error)
	ExportSeatingFunc          func(ctx context.Context) (*sheetsservice.ExportResult, error)
	SyncFunc                   func(ctx context.Context) (*sheetsservice.SyncResult, error)
	WriteRegistrationsXLSXFunc func(ctx context.Context, w io.Writer) error
	WriteSeatingXLSXFunc       func(ctx context.Context, w io.Writer) error
}

func (f *FakeService) ExportRegistrations(ctx context.Context) (*sheetsservice.ExportResult, error) {
	if f.ExportRegistrationsFunc != nil {
		return f.ExportRegistrationsFunc(ctx)
	}
	return &sheetsservice.ExportResult{}, nil
}

func (f *FakeService) ExportSeating(ctx context.Context) (*sheetsservice.ExportResult, error) {
	if f.ExportSeatingFunc != nil {
		return f.ExportSeatingFunc(ctx)
	}
	return &sheetsservice.ExportResult{}, nil
}

func (f *FakeService) Sync(ctx context.Context) (*sheetsservice.SyncResult, error) {
	if f.SyncFunc != nil {
		return f.SyncFunc(ctx)
	}
	return &sheetsservice.SyncResult{}, nil
}

func (f *FakeService) WriteRegistrationsXLSX(ctx context.Context, w io.Writer) error {
	if f.WriteRegistrationsXLSXFunc != nil {
		return f.WriteRegistrationsXLSXFunc(ctx, w)
	}
	return nil
}

func (f *FakeService) WriteSeatingXLSX(ctx context.Context, w io.Writer) error {
	if f.WriteSeatingXLSXFunc != nil {
		return f.WriteSeatingXLSXFunc(ctx, w)
	}
	return nil
}

var _ sheetsservice.Service = (*FakeService)(nil)
