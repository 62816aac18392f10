// Package netcheck probes catalog reachability for the offline gate.
package netcheck

import (
	"context"
	"net/http"
	"time"

	"github.com/ewhitmore/trackbox/internal/core/ports"
)

const probeTimeout = 5 * time.Second

// Checker reports whether the catalog host answers a single HEAD request.
// The provider samples it once at initialization; any response counts as
// online, any transport error as offline.
type Checker struct {
	httpClient *http.Client
	probeURL   string
}

// compile-time interface assertion
var _ ports.ConnectivityChecker = (*Checker)(nil)

// NewChecker constructs a checker against probeURL.
func NewChecker(httpClient *http.Client, probeURL string) *Checker {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: probeTimeout}
	}
	return &Checker{httpClient: httpClient, probeURL: probeURL}
}

// Online performs the probe. The status code is irrelevant: a 4xx from the
// catalog still proves the network path works.
func (c *Checker) Online(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.probeURL, nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()

	return true
}
