package ports

import (
	"context"
	"errors"

	"github.com/ewhitmore/trackbox/internal/core/domain"
)

// ErrPermissionDenied indicates the media library root is not readable.
var ErrPermissionDenied = errors.New("media access denied")

// MediaScanner enumerates local audio assets in deterministic scan order.
// Returned tracks carry identifier, filename and URI; metadata fields are unset.
type MediaScanner interface {
	Scan(ctx context.Context) ([]domain.Track, error)
}
