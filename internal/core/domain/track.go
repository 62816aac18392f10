package domain

// Track represents one local audio asset, optionally enriched with catalog metadata.
type Track struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	URI        string `json:"uri"`
	CoverURL   string `json:"coverUrl,omitempty"`
	Artist     string `json:"artist,omitempty"`
	Album      string `json:"album,omitempty"`
	DurationMs int    `json:"durationMs,omitempty"`
	Enriched   bool   `json:"enriched,omitempty"`
}

// TrackMetadata is the subset of catalog data merged into a scanned track.
type TrackMetadata struct {
	CoverURL string
	Artist   string
	Album    string
}

// Merge copies catalog metadata into the track and marks it enriched.
// A track is merged at most once per refresh cycle.
func (t *Track) Merge(m TrackMetadata) {
	t.CoverURL = m.CoverURL
	t.Artist = m.Artist
	t.Album = m.Album
	t.Enriched = true
}
