package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/dvrhub/internal/domain/model"
)

// ErrConnection is wrapped by adapters when the store cannot be opened:
// authentication failed, the backing document does not exist, or the
// service rejected the session.
var ErrConnection = errors.New("store connection failed")

// ErrSchema is wrapped by adapters when the store's header row does not carry
// the expected record columns.
var ErrSchema = errors.New("store schema mismatch")

// RecordStore is the driven port that mediates every read and write against the
// shared credential store. All store access goes through this interface so a
// future adapter can add optimistic concurrency without touching callers.
type RecordStore interface {
	// LoadAll returns every record in store row order. An empty store yields an
	// empty slice and a nil error.
	LoadAll(ctx context.Context) ([]model.Record, error)

	// Append adds one record after the last row. No validation is performed.
	Append(ctx context.Context, record model.Record) error
}
