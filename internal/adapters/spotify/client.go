package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/ewhitmore/trackbox/internal/core/domain"
	"github.com/ewhitmore/trackbox/internal/core/ports"
)

const defaultAPIURL = "https://api.spotify.com/v1"

// Client queries the Spotify catalog search endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// compile-time interface assertion
var _ ports.CatalogProvider = (*Client)(nil)

// NewClient constructs a catalog client. baseURL is overridable for tests;
// empty means the production API.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = defaultAPIURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the catalog base URL; the connectivity gate probes it.
func (c *Client) BaseURL() string { return c.baseURL }

// Lookup searches the catalog for a single track using the asset filename
// (extension stripped) as the query, requesting at most one match. A lookup
// is a single attempt; per-track failures are the caller's to absorb.
func (c *Client) Lookup(ctx context.Context, token, filename string) (domain.TrackMetadata, error) {
	searchURL, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return domain.TrackMetadata{}, fmt.Errorf("spotify adapter: invalid search url: %w", err)
	}

	q := searchQuery(filename)
	query := searchURL.Query()
	query.Set("q", q)
	query.Set("type", "track")
	query.Set("limit", "1")
	searchURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return domain.TrackMetadata{}, fmt.Errorf("spotify adapter: failed to create search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.TrackMetadata{}, fmt.Errorf("spotify adapter: search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.TrackMetadata{}, fmt.Errorf("spotify adapter: search status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.TrackMetadata{}, fmt.Errorf("spotify adapter: search decode error: %w", err)
	}

	if len(body.Tracks.Items) == 0 {
		return domain.TrackMetadata{}, fmt.Errorf("spotify adapter: %w", &ports.NoMatchError{Query: q})
	}

	return mapMetadata(body.Tracks.Items[0]), nil
}

// searchQuery strips the file extension; URL escaping happens when the query
// string is encoded.
func searchQuery(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
