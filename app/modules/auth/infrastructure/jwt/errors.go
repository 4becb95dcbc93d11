package authjwt

import "errors"

// Session token rejections. The auth service only tells an expired session apart from
// the rest; the finer split is kept for logs and tests.
var (
	ErrExpiredToken        = errors.New("session token expired")
	ErrSignatureMismatch   = errors.New("session token signed with a different secret")
	ErrUnexpectedAlgorithm = errors.New("session token is not HS256")
	ErrInvalidToken        = errors.New("session token rejected")
)
