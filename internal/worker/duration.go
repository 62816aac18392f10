package worker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/go-mp3"
)

// probeDuration decodes a local MP3 file far enough to compute its playback
// length. Non-MP3 assets are skipped (zero duration, no error).
func probeDuration(path string) (time.Duration, error) {
	if strings.ToLower(filepath.Ext(path)) != ".mp3" {
		return 0, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("probe open failed: %w", err)
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return 0, fmt.Errorf("probe decode failed: %w", err)
	}

	sampleRate := decoder.SampleRate()
	if sampleRate <= 0 {
		return 0, fmt.Errorf("probe reported sample rate %d", sampleRate)
	}

	// Length is the decoded stream size; 4 bytes per stereo 16-bit sample.
	samples := decoder.Length() / 4
	return time.Duration(samples) * time.Second / time.Duration(sampleRate), nil
}

// ProbeFunc computes the playback duration of a local audio file.
type ProbeFunc func(path string) (time.Duration, error)

// ProbeDurationFunc allows tests to override the probe implementation.
var ProbeDurationFunc ProbeFunc = probeDuration
