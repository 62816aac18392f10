package ports

import (
	"context"
	"errors"

	"github.com/ewhitmore/trackbox/internal/core/domain"
)

// ErrNoSnapshot indicates no usable cached snapshot exists. A corrupt payload
// is reported the same way; the caller treats both as cache-absent.
var ErrNoSnapshot = errors.New("no snapshot")

// SnapshotStore persists the enriched library as a single keyed snapshot.
type SnapshotStore interface {
	Save(ctx context.Context, lib domain.Library) error
	Load(ctx context.Context) (domain.Library, error)
	Close() error
}
