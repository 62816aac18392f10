package spotify

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/ewhitmore/trackbox/internal/core/ports"
)

const defaultTokenURL = "https://accounts.spotify.com/api/token"

// Broker exchanges a client id/secret pair for a bearer token via the
// client-credentials grant. The credentials travel as an HTTP Basic header
// (base64 of id:secret) with a grant_type=client_credentials form body.
type Broker struct {
	conf       *clientcredentials.Config
	httpClient *http.Client
}

// compile-time interface assertion
var _ ports.TokenBroker = (*Broker)(nil)

// NewBroker constructs a token broker. tokenURL is overridable for tests;
// empty means the production endpoint.
func NewBroker(httpClient *http.Client, clientID, clientSecret, tokenURL string) *Broker {
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}
	return &Broker{
		conf: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		httpClient: httpClient,
	}
}

// Token performs a single token request. Any transport or non-2xx failure is
// returned as an error; the caller treats it as "enrichment unavailable this
// session" rather than a fatal condition. No retry, no refresh.
func (b *Broker) Token(ctx context.Context) (string, error) {
	if b.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, b.httpClient)
	}

	tok, err := b.conf.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("spotify adapter: token request failed: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("spotify adapter: token response missing access_token")
	}

	return tok.AccessToken, nil
}
