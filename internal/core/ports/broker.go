package ports

import "context"

// TokenBroker exchanges static client credentials for a short-lived bearer
// token. One attempt per provider lifecycle; expiry is not tracked.
type TokenBroker interface {
	Token(ctx context.Context) (string, error)
}
