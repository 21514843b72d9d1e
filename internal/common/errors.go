// Package common defines shared constants and sentinel errors used across
// the client and server layers of Noteflow. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Validation failures rejected at the controller boundary, before any
	// storage mutation happens.
	ErrValidation = errors.New("validation error")

	// Auth errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	ErrLoginAlreadyExists = errors.New("login already exists")
)
