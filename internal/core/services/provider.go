// Package services holds the audio provider orchestration: one fire-once
// initialization that obtains credentials, gates on connectivity, scans the
// local library, enriches it from the catalog and persists the result.
package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/ewhitmore/trackbox/internal/core/domain"
	"github.com/ewhitmore/trackbox/internal/core/ports"
)

// Provider owns the enriched library for one lifecycle. All dependencies are
// injected; there is no process-global state.
type Provider struct {
	broker  ports.TokenBroker
	catalog ports.CatalogProvider
	scanner ports.MediaScanner
	store   ports.SnapshotStore
	checker ports.ConnectivityChecker

	initOnce sync.Once

	mu      sync.RWMutex
	library domain.Library
	loading bool
	stale   bool
}

// NewProvider constructs a Provider. The loading flag starts set and is
// cleared when Init settles, whatever the outcome.
func NewProvider(
	broker ports.TokenBroker,
	catalog ports.CatalogProvider,
	scanner ports.MediaScanner,
	store ports.SnapshotStore,
	checker ports.ConnectivityChecker,
) *Provider {
	return &Provider{
		broker:  broker,
		catalog: catalog,
		scanner: scanner,
		store:   store,
		checker: checker,
		loading: true,
	}
}

// Init runs the pipeline exactly once per Provider lifetime. Offline with a
// cached snapshot serves the cache and makes no catalog calls; online runs a
// fresh refresh (a missing token only suppresses the metadata merge);
// offline with no cache leaves the library empty. Every failure mode
// degrades locally — Init never returns an error to the consumer boundary.
func (p *Provider) Init(ctx context.Context) {
	p.initOnce.Do(func() {
		defer p.setLoading(false)

		token, err := p.broker.Token(ctx)
		if err != nil {
			log.Printf("WARN service: token unavailable, enrichment disabled this session: %v", err)
			token = ""
		}

		if !p.checker.Online(ctx) {
			if cached, ok := p.LoadCached(ctx); ok {
				log.Printf("DEBUG service: offline, serving cached snapshot of %d tracks", cached.Len())
				p.setLibrary(cached)
				return
			}
			log.Printf("WARN service: offline with no cached snapshot, library is empty")
			return
		}

		p.setLibrary(p.Refresh(ctx, token))
	})
}

// Refresh scans the device library, enriches every track concurrently and
// persists the result. It always returns a library; failures degrade to
// empty results or unset fields, never to an error.
func (p *Provider) Refresh(ctx context.Context, token string) domain.Library {
	tracks, err := p.scanner.Scan(ctx)
	if err != nil {
		if errors.Is(err, ports.ErrPermissionDenied) {
			log.Printf("WARN service: media access denied, serving empty library")
		} else {
			log.Printf("WARN service: scan failed: %v", err)
		}
		return domain.Library{}
	}

	lib := domain.Library{Tracks: tracks}

	if token == "" {
		log.Printf("WARN service: no access token, skipping metadata merge")
	} else {
		p.enrich(ctx, token, lib.Tracks)
	}

	if err := p.store.Save(ctx, lib); err != nil {
		log.Printf("WARN service: failed to persist snapshot: %v", err)
	}

	return lib
}

// enrich fires one lookup per track and joins when all have settled. Each
// goroutine owns its own index, so scan order survives arbitrary completion
// order and per-track failures leave only that track unenriched.
func (p *Provider) enrich(ctx context.Context, token string, tracks []domain.Track) {
	var wg sync.WaitGroup
	for i := range tracks {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			meta, err := p.catalog.Lookup(ctx, token, tracks[i].Filename)
			if err != nil {
				if errors.Is(err, ports.ErrNoMatch) {
					log.Printf("DEBUG service: no catalog match for %s", tracks[i].Filename)
				} else {
					log.Printf("WARN service: lookup failed for %s: %v", tracks[i].Filename, err)
				}
				return
			}
			tracks[i].Merge(meta)
		}(i)
	}
	wg.Wait()
}

// LoadCached returns the last persisted snapshot, or false when none exists
// or the payload cannot be decoded.
func (p *Provider) LoadCached(ctx context.Context) (domain.Library, bool) {
	lib, err := p.store.Load(ctx)
	if err != nil {
		if errors.Is(err, ports.ErrNoSnapshot) {
			log.Printf("DEBUG service: no usable cached snapshot: %v", err)
		} else {
			log.Printf("WARN service: failed to load snapshot: %v", err)
		}
		return domain.Library{}, false
	}
	return lib, true
}

// Library returns a copy of the current enriched library.
func (p *Provider) Library() domain.Library {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.library.Clone()
}

// Loading reports whether initialization is still in flight.
func (p *Provider) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

// Stale reports whether the library root changed after the initial scan.
func (p *Provider) Stale() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stale
}

// MarkStale flags the served library as out of date. It never triggers a
// re-enrichment; the pipeline is single-shot per lifetime.
func (p *Provider) MarkStale() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stale = true
}

func (p *Provider) setLibrary(lib domain.Library) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.library = lib
}

func (p *Provider) setLoading(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = v
}
