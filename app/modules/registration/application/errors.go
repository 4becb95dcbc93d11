package registrationservice

import "errors"

// ErrInvalidRegistration is returned when required guest fields are missing.
var ErrInvalidRegistration = errors.New("name and email are required")
