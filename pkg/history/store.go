package history

import (
	"context"
	"time"
)

// Query filters List results. The zero value lists every record.
type Query struct {
	// Limit caps the number of records returned. 0 means no limit.
	Limit int

	// Since keeps only records created at or after this time.
	Since time.Time

	// ErrorsOnly keeps only runs that produced diagnostics.
	ErrorsOnly bool
}

// Store persists classification runs. List returns newest first.
type Store interface {
	Save(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context, q Query) ([]*Record, error)
	Count(ctx context.Context) (int64, error)

	// DeleteBefore removes records created before cutoff.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteOldest removes all but the newest keep records.
	DeleteOldest(ctx context.Context, keep int64) (int64, error)

	Ping(ctx context.Context) error
	Close() error
}
