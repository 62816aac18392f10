package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ewhitmore/trackbox/internal/adapters/mediastore"
	"github.com/ewhitmore/trackbox/internal/adapters/netcheck"
	"github.com/ewhitmore/trackbox/internal/adapters/rest"
	"github.com/ewhitmore/trackbox/internal/adapters/spotify"
	"github.com/ewhitmore/trackbox/internal/adapters/sqlite"
	"github.com/ewhitmore/trackbox/internal/config"
	"github.com/ewhitmore/trackbox/internal/core/services"
	"github.com/ewhitmore/trackbox/internal/worker"
)

func main() {
	// 1. Configuration (Environment Variables)
	// Crash early if required config is missing.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	// 2. Initialize "Driven" Adapters (The Tools)
	// -- Snapshot Store
	store, err := sqlite.NewStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	defer store.Close()

	// -- Spotify Adapters
	broker := spotify.NewBroker(nil, cfg.SpotifyClientID, cfg.SpotifyClientSecret, cfg.TokenURL)
	catalog := spotify.NewClient(nil, cfg.APIURL)

	// -- Media Scanner (with MP3 duration probing)
	pool := worker.NewPool(cfg.ProbeWorkers)
	scanner := mediastore.NewScanner(cfg.MusicDir, pool)

	// -- Connectivity Gate
	checker := netcheck.NewChecker(nil, catalog.BaseURL())

	// 3. Initialize Core Logic (The Driver)
	// Dependency Injection: the agnostic provider gets the concrete adapters.
	provider := services.NewProvider(broker, catalog, scanner, store, checker)

	// Optional staleness watcher. It only flags the served library as out of
	// date; the enrichment pipeline stays single-shot.
	if cfg.Watch {
		watcher, err := mediastore.WatchRoot(cfg.MusicDir, provider.MarkStale)
		if err != nil {
			log.Printf("WARN main: library watcher disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The pipeline runs once in the background; the exposure serves the
	// loading flag until it settles.
	go provider.Init(ctx)

	// 4. Initialize "Driving" Adapter (The Interface)
	handler := rest.NewHandler(provider)

	// 5. Start the Server
	log.Println("------------------------------------------------")
	log.Printf("🎶 Trackbox is running on http://localhost%s", cfg.Addr)
	log.Println("------------------------------------------------")

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
