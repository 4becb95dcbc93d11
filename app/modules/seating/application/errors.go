package seatingservice

import "errors"

var (
	ErrSeatNotFound         = errors.New("seat not found")
	ErrTableNotFound        = errors.New("table not found")
	ErrSeatOccupied         = errors.New("seat is already assigned to another guest")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrInvalidTable         = errors.New("table number must be positive and seat count between 1 and 50")
)
