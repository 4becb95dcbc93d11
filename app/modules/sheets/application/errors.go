package sheetsservice

import "errors"

var ErrNotConfigured = errors.New("spreadsheet integration is not configured")
