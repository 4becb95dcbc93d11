package imageservice

import "errors"

var (
	ErrImageNotFound  = errors.New("image not found")
	ErrDuplicateLabel = errors.New("image label already exists")
	ErrInvalidImage   = errors.New("label and file id are required")
)
