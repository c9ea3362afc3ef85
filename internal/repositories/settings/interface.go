package settings

import (
	"context"
	"encoding/json"
)

// Repository stores JSON-encoded settings.
type Repository interface {
	// Get returns (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Set(ctx context.Context, key string, value json.RawMessage) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]json.RawMessage, error)
}
