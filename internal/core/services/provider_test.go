package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ewhitmore/trackbox/internal/core/domain"
	"github.com/ewhitmore/trackbox/internal/core/ports"
)

// --- Mocks ---

type mockBroker struct {
	token string
	err   error
	calls int
}

func (m *mockBroker) Token(ctx context.Context) (string, error) {
	m.calls++
	return m.token, m.err
}

type lookupResult struct {
	meta  domain.TrackMetadata
	err   error
	delay time.Duration
}

type mockCatalog struct {
	mu      sync.Mutex
	calls   int
	results map[string]lookupResult
}

func (m *mockCatalog) Lookup(ctx context.Context, token, filename string) (domain.TrackMetadata, error) {
	m.mu.Lock()
	m.calls++
	res, ok := m.results[filename]
	m.mu.Unlock()

	if res.delay > 0 {
		time.Sleep(res.delay)
	}
	if !ok {
		return domain.TrackMetadata{}, fmt.Errorf("unexpected lookup for %q", filename)
	}
	return res.meta, res.err
}

func (m *mockCatalog) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockScanner struct {
	tracks []domain.Track
	err    error
	calls  int
}

func (m *mockScanner) Scan(ctx context.Context) ([]domain.Track, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Track, len(m.tracks))
	copy(out, m.tracks)
	return out, nil
}

type mockStore struct {
	mu      sync.Mutex
	saved   *domain.Library
	saveErr error
	lib     domain.Library
	loadErr error
}

func (m *mockStore) Save(ctx context.Context, lib domain.Library) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	clone := lib.Clone()
	m.saved = &clone
	return nil
}

func (m *mockStore) Load(ctx context.Context) (domain.Library, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return domain.Library{}, m.loadErr
	}
	return m.lib.Clone(), nil
}

func (m *mockStore) Close() error { return nil }

func (m *mockStore) savedLibrary() *domain.Library {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved
}

type mockChecker struct {
	online bool
}

func (m *mockChecker) Online(ctx context.Context) bool { return m.online }

func scannedTrack(n int) domain.Track {
	return domain.Track{
		ID:       fmt.Sprintf("asset-%02d", n),
		Filename: fmt.Sprintf("track-%02d.mp3", n),
		URI:      fmt.Sprintf("file:///music/track-%02d.mp3", n),
	}
}

// --- Tests ---

// TestRefreshPreservesScanOrder verifies that the result keeps device scan
// order even when later lookups resolve before earlier ones.
func TestRefreshPreservesScanOrder(t *testing.T) {
	const n = 8

	var tracks []domain.Track
	results := map[string]lookupResult{}
	for i := 0; i < n; i++ {
		tr := scannedTrack(i)
		tracks = append(tracks, tr)
		// Earlier tracks resolve last.
		results[tr.Filename] = lookupResult{
			meta:  domain.TrackMetadata{Artist: fmt.Sprintf("artist-%02d", i)},
			delay: time.Duration(n-i) * 5 * time.Millisecond,
		}
	}

	catalog := &mockCatalog{results: results}
	store := &mockStore{}
	p := NewProvider(
		&mockBroker{token: "tok"},
		catalog,
		&mockScanner{tracks: tracks},
		store,
		&mockChecker{online: true},
	)

	lib := p.Refresh(context.Background(), "tok")

	if lib.Len() != n {
		t.Fatalf("expected %d tracks, got %d", n, lib.Len())
	}
	for i, tr := range lib.Tracks {
		if tr.ID != fmt.Sprintf("asset-%02d", i) {
			t.Errorf("position %d: got %s, scan order not preserved", i, tr.ID)
		}
		if tr.Artist != fmt.Sprintf("artist-%02d", i) {
			t.Errorf("position %d: artist %q merged into wrong track", i, tr.Artist)
		}
	}
	if got := catalog.callCount(); got != n {
		t.Errorf("expected %d lookups, got %d", n, got)
	}
	if store.savedLibrary() == nil {
		t.Error("expected enriched library to be persisted")
	}
}

// TestRefreshPermissionDenied verifies the empty-library degrade: no error
// escapes, no lookups run.
func TestRefreshPermissionDenied(t *testing.T) {
	catalog := &mockCatalog{}
	p := NewProvider(
		&mockBroker{token: "tok"},
		catalog,
		&mockScanner{err: fmt.Errorf("mediastore: /music: %w", ports.ErrPermissionDenied)},
		&mockStore{},
		&mockChecker{online: true},
	)

	lib := p.Refresh(context.Background(), "tok")

	if !lib.Empty() {
		t.Fatalf("expected empty library, got %d tracks", lib.Len())
	}
	if got := catalog.callCount(); got != 0 {
		t.Errorf("expected no lookups after denied scan, got %d", got)
	}
}

// TestRefreshWithoutToken verifies a missing token suppresses the merge but
// not the scan or the persist.
func TestRefreshWithoutToken(t *testing.T) {
	tracks := []domain.Track{scannedTrack(0), scannedTrack(1)}
	catalog := &mockCatalog{}
	store := &mockStore{}
	p := NewProvider(
		&mockBroker{},
		catalog,
		&mockScanner{tracks: tracks},
		store,
		&mockChecker{online: true},
	)

	lib := p.Refresh(context.Background(), "")

	if lib.Len() != 2 {
		t.Fatalf("expected 2 tracks, got %d", lib.Len())
	}
	for i, tr := range lib.Tracks {
		if tr.Enriched || tr.Artist != "" || tr.Album != "" || tr.CoverURL != "" {
			t.Errorf("track %d: expected metadata unset, got %+v", i, tr)
		}
	}
	if got := catalog.callCount(); got != 0 {
		t.Errorf("expected no lookups without a token, got %d", got)
	}
	saved := store.savedLibrary()
	if saved == nil || !saved.Equal(lib) {
		t.Error("expected unenriched library to be persisted")
	}
}

// TestInitOfflineServesCache verifies the offline fallback: cached tracks are
// served verbatim and no scan or catalog traffic happens.
func TestInitOfflineServesCache(t *testing.T) {
	cached := domain.Library{Tracks: []domain.Track{
		{ID: "a", Filename: "a.mp3", URI: "file:///music/a.mp3", Artist: "A", Enriched: true},
		{ID: "b", Filename: "b.mp3", URI: "file:///music/b.mp3"},
		{ID: "c", Filename: "c.mp3", URI: "file:///music/c.mp3", Album: "C"},
	}}

	catalog := &mockCatalog{}
	scanner := &mockScanner{tracks: []domain.Track{scannedTrack(0)}}
	p := NewProvider(
		&mockBroker{token: "tok"},
		catalog,
		scanner,
		&mockStore{lib: cached},
		&mockChecker{online: false},
	)

	p.Init(context.Background())

	if !p.Library().Equal(cached) {
		t.Errorf("expected cached library to be served, got %+v", p.Library())
	}
	if scanner.calls != 0 {
		t.Errorf("expected no scan while offline, got %d", scanner.calls)
	}
	if got := catalog.callCount(); got != 0 {
		t.Errorf("expected no lookups while offline, got %d", got)
	}
	if p.Loading() {
		t.Error("expected loading flag cleared after Init")
	}
}

// TestInitOfflineNoCache verifies the empty degrade when offline with no
// snapshot.
func TestInitOfflineNoCache(t *testing.T) {
	p := NewProvider(
		&mockBroker{token: "tok"},
		&mockCatalog{},
		&mockScanner{tracks: []domain.Track{scannedTrack(0)}},
		&mockStore{loadErr: ports.ErrNoSnapshot},
		&mockChecker{online: false},
	)

	p.Init(context.Background())

	if !p.Library().Empty() {
		t.Errorf("expected empty library, got %d tracks", p.Library().Len())
	}
	if p.Loading() {
		t.Error("expected loading flag cleared after Init")
	}
}

// TestInitPartialEnrichment covers the mixed scenario: one asset matches,
// one does not; both stay in scan order.
func TestInitPartialEnrichment(t *testing.T) {
	tracks := []domain.Track{
		{ID: "a", Filename: "known song.mp3", URI: "file:///music/known song.mp3"},
		{ID: "b", Filename: "garage demo.mp3", URI: "file:///music/garage demo.mp3"},
	}
	catalog := &mockCatalog{results: map[string]lookupResult{
		"known song.mp3":  {meta: domain.TrackMetadata{CoverURL: "http://img.test/k.jpg", Artist: "Known", Album: "Knowns"}},
		"garage demo.mp3": {err: fmt.Errorf("spotify adapter: %w", &ports.NoMatchError{Query: "garage demo"})},
	}}
	store := &mockStore{}
	p := NewProvider(
		&mockBroker{token: "tok"},
		catalog,
		&mockScanner{tracks: tracks},
		store,
		&mockChecker{online: true},
	)

	p.Init(context.Background())

	lib := p.Library()
	if lib.Len() != 2 {
		t.Fatalf("expected 2 tracks, got %d", lib.Len())
	}

	first, second := lib.Tracks[0], lib.Tracks[1]
	if first.ID != "a" || second.ID != "b" {
		t.Fatalf("scan order not preserved: %s, %s", first.ID, second.ID)
	}
	if !first.Enriched || first.Artist != "Known" || first.Album != "Knowns" || first.CoverURL != "http://img.test/k.jpg" {
		t.Errorf("expected first track enriched, got %+v", first)
	}
	if second.Enriched || second.Artist != "" || second.Album != "" || second.CoverURL != "" {
		t.Errorf("expected second track unenriched, got %+v", second)
	}
	if saved := store.savedLibrary(); saved == nil || !saved.Equal(lib) {
		t.Error("expected served library to match the persisted snapshot")
	}
}

// TestInitTokenFailure simulates a rejected credential exchange: the scan
// still runs and every asset appears unenriched.
func TestInitTokenFailure(t *testing.T) {
	tracks := []domain.Track{scannedTrack(0), scannedTrack(1), scannedTrack(2)}
	catalog := &mockCatalog{}
	p := NewProvider(
		&mockBroker{err: errors.New("spotify adapter: token request failed: 401")},
		catalog,
		&mockScanner{tracks: tracks},
		&mockStore{},
		&mockChecker{online: true},
	)

	p.Init(context.Background())

	lib := p.Library()
	if lib.Len() != 3 {
		t.Fatalf("expected 3 unenriched tracks, got %d", lib.Len())
	}
	for i, tr := range lib.Tracks {
		if tr.Enriched {
			t.Errorf("track %d: expected unenriched, got %+v", i, tr)
		}
	}
	if got := catalog.callCount(); got != 0 {
		t.Errorf("expected no lookups without a token, got %d", got)
	}
	if p.Loading() {
		t.Error("expected loading flag cleared after Init")
	}
}

// TestInitRunsOnce verifies the fire-once lifecycle.
func TestInitRunsOnce(t *testing.T) {
	scanner := &mockScanner{tracks: []domain.Track{scannedTrack(0)}}
	broker := &mockBroker{}
	p := NewProvider(broker, &mockCatalog{}, scanner, &mockStore{}, &mockChecker{online: true})

	p.Init(context.Background())
	p.Init(context.Background())

	if scanner.calls != 1 {
		t.Errorf("expected exactly one scan, got %d", scanner.calls)
	}
	if broker.calls != 1 {
		t.Errorf("expected exactly one token exchange, got %d", broker.calls)
	}
}

// TestLoadCachedCorrupt treats an undecodable snapshot as cache-absent.
func TestLoadCachedCorrupt(t *testing.T) {
	p := NewProvider(
		&mockBroker{},
		&mockCatalog{},
		&mockScanner{},
		&mockStore{loadErr: fmt.Errorf("corrupt snapshot payload: %w", ports.ErrNoSnapshot)},
		&mockChecker{},
	)

	if _, ok := p.LoadCached(context.Background()); ok {
		t.Error("expected corrupt snapshot to read as absent")
	}
}

// TestMarkStale verifies the staleness flag flips without touching the library.
func TestMarkStale(t *testing.T) {
	p := NewProvider(&mockBroker{}, &mockCatalog{}, &mockScanner{}, &mockStore{}, &mockChecker{})

	if p.Stale() {
		t.Fatal("expected provider to start fresh")
	}
	p.MarkStale()
	if !p.Stale() {
		t.Error("expected provider to report stale")
	}
	if !p.Library().Empty() {
		t.Error("expected library untouched by staleness")
	}
}
