package gateway

import "errors"

var (
	// ErrUnavailable marks transport-level failures: the server could not
	// be reached at all. Callers treat it as "stay offline, retry later".
	ErrUnavailable = errors.New("gateway: server unavailable")
	// ErrUnauthorized marks a rejected or expired token.
	ErrUnauthorized = errors.New("gateway: unauthorized")
)
