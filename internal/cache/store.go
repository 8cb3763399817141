// Package cache persists the aggregate result as a single JSON artifact on
// disk. The artifact's modification time is the freshness clock.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"stockanalyzer/internal/stocks"
)

// Store reads and writes the cache artifact.
type Store struct {
	path   string
	expiry time.Duration
	log    zerolog.Logger
}

// New creates a store for the artifact at path with the given expiry window.
func New(path string, expiry time.Duration, log zerolog.Logger) *Store {
	return &Store{
		path:   path,
		expiry: expiry,
		log:    log.With().Str("component", "cache").Logger(),
	}
}

// Fresh reports whether an artifact exists and is younger than the expiry
// window.
func (s *Store) Fresh() bool {
	age, ok := s.Age()
	return ok && age < s.expiry
}

// Age returns the artifact's age from its modification time. The second
// return value is false when no artifact exists.
func (s *Store) Age() (time.Duration, bool) {
	info, err := os.Stat(s.path)
	if err != nil {
		return 0, false
	}
	return time.Since(info.ModTime()), true
}

// AgeString returns a humanized artifact age for display, or an empty string
// when no artifact exists.
func (s *Store) AgeString() string {
	age, ok := s.Age()
	if !ok {
		return ""
	}
	return FormatAge(age)
}

// Load reads the cached aggregate. A missing, unreadable or corrupt artifact
// is reported as absent, never as an error: the caller falls back to a
// refresh.
func (s *Store) Load() (*stocks.Aggregate, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("cache unreadable, treating as absent")
		}
		return nil, false
	}

	var agg stocks.Aggregate
	if err := json.Unmarshal(data, &agg); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("cache corrupt, treating as absent")
		return nil, false
	}
	return &agg, true
}

// Save replaces the artifact wholesale. The write goes to a temp file in the
// same directory followed by a rename, so a concurrent reader never observes
// a half-written artifact.
func (s *Store) Save(agg *stocks.Aggregate) error {
	data, err := json.MarshalIndent(agg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal aggregate: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace artifact: %w", err)
	}

	s.log.Info().Str("path", s.path).Int("stocks", len(agg.AllStocks)).Msg("aggregate cached")
	return nil
}

// FormatAge renders a duration the way the cache-age badge displays it.
func FormatAge(d time.Duration) string {
	secs := int(d.Seconds())
	switch {
	case secs < 60:
		return fmt.Sprintf("%d seconds", secs)
	case secs < 3600:
		return fmt.Sprintf("%d minutes", secs/60)
	case secs < 86400:
		return fmt.Sprintf("%d hours", secs/3600)
	default:
		return fmt.Sprintf("%d days", secs/86400)
	}
}
