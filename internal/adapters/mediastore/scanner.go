// Package mediastore enumerates local audio assets for the enrichment pipeline.
package mediastore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ewhitmore/trackbox/internal/core/domain"
	"github.com/ewhitmore/trackbox/internal/core/ports"
	"github.com/ewhitmore/trackbox/internal/worker"
)

var audioExtensions = map[string]struct{}{
	".aac":  {},
	".flac": {},
	".m4a":  {},
	".mp3":  {},
	".ogg":  {},
	".wav":  {},
}

// Scanner walks the music library root and maps each audio file to a Track.
// Walk order is lexical and therefore stable across rescans of an unchanged tree.
type Scanner struct {
	root string
	pool *worker.Pool
}

// compile-time interface assertion
var _ ports.MediaScanner = (*Scanner)(nil)

// NewScanner constructs a scanner over root. pool may be nil to skip
// duration probing.
func NewScanner(root string, pool *worker.Pool) *Scanner {
	return &Scanner{root: root, pool: pool}
}

// Scan enumerates audio assets under the root. Tracks carry a stable opaque
// identifier, the base filename and a file:// locator; metadata fields stay
// unset until the catalog merge. A root denied by the OS maps to
// ports.ErrPermissionDenied; a missing root yields an empty result.
func (s *Scanner) Scan(ctx context.Context) ([]domain.Track, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("mediastore: %s: %w", s.root, ports.ErrPermissionDenied)
		}
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("WARN mediastore: library root %s does not exist", s.root)
			return nil, nil
		}
		return nil, fmt.Errorf("mediastore: stat %s: %w", s.root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("mediastore: %s is not a directory", s.root)
	}

	var tracks []domain.Track
	var paths []string

	err = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				// Unreadable subtree: skip it, keep the rest of the scan.
				log.Printf("WARN mediastore: skipping %s: %v", path, walkErr)
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := audioExtensions[strings.ToLower(filepath.Ext(d.Name()))]; !ok {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		uri := "file://" + filepath.ToSlash(abs)

		tracks = append(tracks, domain.Track{
			ID:       uuid.NewSHA1(uuid.NameSpaceURL, []byte(uri)).String(),
			Filename: d.Name(),
			URI:      uri,
		})
		paths = append(paths, abs)
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("mediastore: %s: %w", s.root, ports.ErrPermissionDenied)
		}
		return nil, fmt.Errorf("mediastore: walk %s: %w", s.root, err)
	}

	s.probeDurations(ctx, tracks, paths)

	return tracks, nil
}

func (s *Scanner) probeDurations(ctx context.Context, tracks []domain.Track, paths []string) {
	if s.pool == nil || len(tracks) == 0 {
		return
	}

	jobs := make([]worker.Job, len(paths))
	for i, path := range paths {
		jobs[i] = worker.Job{Index: i, Path: path}
	}

	durations := make([]int, len(tracks))
	s.pool.Process(ctx, jobs, durations)

	for i := range tracks {
		tracks[i].DurationMs = durations[i]
	}
}
