package seatingservice

import (
	"context"

	registrationdb "github.com/Black-And-White-Club/gala-night/app/modules/registration/infrastructure/repositories"
	seatingdb "github.com/Black-And-White-Club/gala-night/app/modules/seating/infrastructure/repositories"
)

// Service defines the seating service interface.
type Service interface {
	AddTable(ctx context.Context, tableNumber, seatCount int) (*AddTableResult, error)
	GetChart(ctx context.Context) ([]TableView, error)
	ListAvailable(ctx context.Context) ([]SeatView, error)
	AssignSeat(ctx context.Context, seatID, registrationID int64) (*SeatView, error)
	UnassignSeat(ctx context.Context, seatID int64) (*SeatView, error)
	DeleteSeat(ctx context.Context, seatID int64) error
	DeleteTable(ctx context.Context, tableNumber int) (int, error)
}

// AddTableResult reports how many requested seats were new and how many already existed.
type AddTableResult struct {
	TableNumber int `json:"tableNumber"`
	Created     int `json:"created"`
	Skipped     int `json:"skipped"`
}

// TableView is one table of the seating chart.
type TableView struct {
	TableNumber int        `json:"tableNumber"`
	Seats       []SeatView `json:"seats"`
}

// SeatView is a seat as shown on the chart.
type SeatView struct {
	ID             int64     `json:"id"`
	TableNumber    int       `json:"tableNumber"`
	SeatNumber     int       `json:"seatNumber"`
	RegistrationID *int64    `json:"registrationId"`
	Occupant       *Occupant `json:"occupant"`
}

// Occupant carries the public profile of the guest in a seat.
type Occupant struct {
	Name        string  `json:"name"`
	Quote       *string `json:"quote"`
	Bio         *string `json:"bio"`
	Involvement *string `json:"involvement"`
	ImageURL    *string `json:"imageUrl"`
}

func toSeatView(s *seatingdb.Seat) SeatView {
	v := SeatView{
		ID:             s.ID,
		TableNumber:    s.TableNumber,
		SeatNumber:     s.SeatNumber,
		RegistrationID: s.RegistrationID,
	}
	if s.RegistrationID != nil && s.Registration != nil {
		v.Occupant = toOccupant(s.Registration)
	}
	return v
}

func toOccupant(r *registrationdb.Registration) *Occupant {
	return &Occupant{
		Name:        r.Name,
		Quote:       r.Quote,
		Bio:         r.Bio,
		Involvement: r.Involvement,
		ImageURL:    r.ImageURL,
	}
}

// BuildChart groups seats, already ordered by table then seat, into tables.
func BuildChart(seats []seatingdb.Seat) []TableView {
	tables := []TableView{}
	for i := range seats {
		s := &seats[i]
		if n := len(tables); n == 0 || tables[n-1].TableNumber != s.TableNumber {
			tables = append(tables, TableView{TableNumber: s.TableNumber})
		}
		last := &tables[len(tables)-1]
		last.Seats = append(last.Seats, toSeatView(s))
	}
	return tables
}
