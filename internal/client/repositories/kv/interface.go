// Package kv stores small addressable values on the device: the theme
// preference and the fired-reminder journal live here, next to the record
// tables but outside them.
package kv

import "context"

// Repository is a flat key/value store. Get returns nil (no error) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
