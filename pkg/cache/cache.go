package cache

import (
	"context"
	"time"
)

// Response is a replayable HTTP response stored under an idempotency key.
type Response struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// IdempotencyCache defines the interface for caching responses of
// non-idempotent requests. Get returns (nil, nil) on a miss.
type IdempotencyCache interface {
	Get(ctx context.Context, key string) (*Response, error)
	Set(ctx context.Context, key string, resp *Response, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
