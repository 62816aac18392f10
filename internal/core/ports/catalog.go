package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/ewhitmore/trackbox/internal/core/domain"
)

// ErrNoMatch indicates the catalog returned zero results for a query.
var ErrNoMatch = errors.New("no catalog match")

// NoMatchError provides context for a failed track lookup.
type NoMatchError struct {
	Query string
}

func (e NoMatchError) Error() string {
	if e.Query == "" {
		return ErrNoMatch.Error()
	}
	return fmt.Sprintf("no catalog match for query %q", e.Query)
}

func (e NoMatchError) Is(target error) bool {
	return target == ErrNoMatch
}

// CatalogProvider looks up metadata for a single track using a session bearer
// token. Implementations request at most one match and never retry.
type CatalogProvider interface {
	Lookup(ctx context.Context, token, filename string) (domain.TrackMetadata, error)
}
