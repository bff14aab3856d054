package session

import (
	"context"
	"errors"
)

// ErrStoreUnavailable is returned by stores that cannot currently be reached.
var ErrStoreUnavailable = errors.New("session store unavailable")

// Store persists string values per session id.
type Store interface {
	Get(ctx context.Context, sid, key string) (string, bool, error)
	Set(ctx context.Context, sid, key, value string) error
	Delete(ctx context.Context, sid string, keys ...string) error
}
