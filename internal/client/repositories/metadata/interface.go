// Package metadata persists small client-side preferences (owner id, user
// default items) as key-value pairs in the local database.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyOwnerID      = "owner_id"
	KeyDefaultItems = "default_items"
)

// Repository is a byte-valued key-value store. Get returns (nil, nil) for an
// absent key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
