package programservice

import "errors"

var (
	ErrProgramNotFound = errors.New("program not found")
	ErrInvalidProgram  = errors.New("title is required and end time must not precede start time")
	ErrInvalidTime     = errors.New("program time could not be understood")
	ErrInvalidReorder  = errors.New("reorder requires at least one entry and unique ids")
)
