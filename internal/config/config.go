// Package config loads environment-backed configuration for the service.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries everything the composition root needs to wire the pipeline.
type Config struct {
	SpotifyClientID     string // required
	SpotifyClientSecret string // required
	MusicDir            string // library root scanned for audio assets
	DBPath              string // SQLite snapshot database
	Addr                string // HTTP listen address
	Watch               bool   // watch the library root for staleness
	ProbeWorkers        int    // duration probe worker count
	TokenURL            string // override for tests; empty = production endpoint
	APIURL              string // override for tests; empty = production endpoint
}

// Load reads configuration from the environment, consulting a .env file if
// one is present. Missing credentials are an error; everything else defaults.
func Load() (*Config, error) {
	// Best effort: absence of a .env file is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		SpotifyClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
		MusicDir:            getEnv("TRACKBOX_MUSIC_DIR", defaultMusicDir()),
		DBPath:              getEnv("TRACKBOX_DB_PATH", "trackbox.db"),
		Addr:                getEnv("TRACKBOX_ADDR", ":8080"),
		Watch:               getEnvBool("TRACKBOX_WATCH", true),
		ProbeWorkers:        getEnvInt("TRACKBOX_PROBE_WORKERS", 2),
		TokenURL:            os.Getenv("SPOTIFY_TOKEN_URL"),
		APIURL:              os.Getenv("SPOTIFY_API_URL"),
	}

	if cfg.SpotifyClientID == "" || cfg.SpotifyClientSecret == "" {
		return nil, fmt.Errorf("SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET environment variables are required")
	}

	return cfg, nil
}

func defaultMusicDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "music"
	}
	return filepath.Join(home, "Music")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 1 {
		return fallback
	}
	return parsed
}
