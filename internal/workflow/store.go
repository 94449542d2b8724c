package workflow

import (
	"context"
	"errors"
)

// ErrSessionNotFound is returned by stores when the session does not exist or
// its TTL has elapsed.
var ErrSessionNotFound = errors.New("session not found")

// Store keeps session snapshots between facade calls. Implementations live in
// the session package; the engine only depends on this interface.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	Close() error
}
