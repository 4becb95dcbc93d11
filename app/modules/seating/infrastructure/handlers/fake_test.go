package seatinghandlers

import (
	"context"

	seatingservice "github.com/Black-And-White-Club/gala-night/app/modules/seating/application"
)

type FakeService struct {
	AddTableFunc      func(ctx context.Context, tableNumber, seatCount int) (*seatingservice.AddTableResult, error)
	GetChartFunc      func(ctx context.Context) ([]seatingservice.TableView, error)
	ListAvailableFunc func(ctx context.Context) ([]seatingservice.SeatView, error)
	AssignSeatFunc    func(ctx context.Context, seatID, registrationID int64) (*seatingservice.SeatView, error)
	UnassignSeatFunc  func(ctx context.Context, seatID int64) (*seatingservice.SeatView, error)
	DeleteSeatFunc    func(ctx context.Context, seatID int64) error
	DeleteTableFunc   func(ctx context.Context, tableNumber int) (int, error)
}

func (f *FakeService) AddTable(ctx context.Context, tableNumber, seatCount int) (*seatingservice.AddTableResult, error) {
	if f.AddTableFunc != nil {
		return f.AddTableFunc(ctx, tableNumber, seatCount)
	}
	return &seatingservice.AddTableResult{TableNumber: tableNumber, Created: seatCount}, nil
}

func (f *FakeService) GetChart(ctx context.Context) ([]seatingservice.TableView, error) {
	if f.GetChartFunc != nil {
		return f.GetChartFunc(ctx)
	}
	return []seatingservice.TableView{}, nil
}

func (f *FakeService) ListAvailable(ctx context.Context) ([]seatingservice.SeatView, error) {
	if f.ListAvailableFunc != nil {
		return f.ListAvailableFunc(ctx)
	}
	return []seatingservice.SeatView{}, nil
}

func (f *FakeService) AssignSeat(ctx context.Context, seatID, registrationID int64) (*seatingservice.SeatView, error) {
	if f.AssignSeatFunc != nil {
		return f.AssignSeatFunc(ctx, seatID, registrationID)
	}
	return &seatingservice.SeatView{ID: seatID, RegistrationID: &registrationID}, nil
}

func (f *FakeService) UnassignSeat(ctx context.Context, seatID int64) (*seatingservice.SeatView, error) {
	if f.UnassignSeatFunc != nil {
		return f.UnassignSeatFunc(ctx, seatID)
	}
	return &seatingservice.SeatView{ID: seatID}, nil
}

func (f *FakeService) DeleteSeat(ctx context.Context, seatID int64) error {
	if f.DeleteSeatFunc != nil {
		return f.DeleteSeatFunc(ctx, seatID)
	}
	return nil
}

func (f *FakeService) DeleteTable(ctx context.Context, tableNumber int) (int, error) {
	if f.DeleteTableFunc != nil {
		return f.DeleteTableFunc(ctx, tableNumber)
	}
	return 0, seatingservice.ErrTableNotFound
}

var _ seatingservice.Service = (*FakeService)(nil)
