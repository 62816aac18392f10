package ports

import "context"

// ConnectivityChecker reports whether the catalog host is reachable.
// The provider samples it once at initialization.
type ConnectivityChecker interface {
	Online(ctx context.Context) bool
}
