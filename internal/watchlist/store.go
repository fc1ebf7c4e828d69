package watchlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"stockeye/pkg/logger"
)

// fileFormat is the persisted document.
type fileFormat struct {
	Symbols   []string  `json:"symbols"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store persists the watchlist as a JSON file. Writes go through a
// temp-file rename so a crashed save never corrupts the list.
type Store struct {
	path   string
	logger *logger.Logger
}

// NewStore creates a store backed by the file at path.
func NewStore(path string, log *logger.Logger) *Store {
	return &Store{path: path, logger: log}
}

// Load reads the watchlist, preserving order. A missing file is an
// empty watchlist, not an error.
func (s *Store) Load() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read watchlist: %w", err)
	}

	var doc fileFormat
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse watchlist: %w", err)
	}
	return dedup(doc.Symbols), nil
}

// Save writes the symbols atomically, deduplicated in first-seen order.
func (s *Store) Save(symbols []string) error {
	doc := fileFormat{
		Symbols:   dedup(symbols),
		UpdatedAt: time.Now().UTC(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode watchlist: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create watchlist dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write watchlist: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace watchlist: %w", err)
	}

	s.logger.WithField("count", len(doc.Symbols)).Debug("Watchlist saved")
	return nil
}

// Add appends symbols not already present and saves. Returns the number
// actually added.
func (s *Store) Add(symbols ...string) (int, error) {
	current, err := s.Load()
	if err != nil {
		return 0, err
	}

	seen := make(map[string]struct{}, len(current))
	for _, sym := range current {
		seen[sym] = struct{}{}
	}

	added := 0
	for _, sym := range symbols {
		sym = normalize(sym)
		if sym == "" {
			continue
		}
		if _, ok := seen[sym]; ok {
			continue
		}
		seen[sym] = struct{}{}
		current = append(current, sym)
		added++
	}

	if added == 0 {
		return 0, nil
	}
	return added, s.Save(current)
}

// Remove drops symbols from the list and saves. Returns the number
// actually removed.
func (s *Store) Remove(symbols ...string) (int, error) {
	current, err := s.Load()
	if err != nil {
		return 0, err
	}

	drop := make(map[string]struct{}, len(symbols))
	for _, sym := range symbols {
		drop[normalize(sym)] = struct{}{}
	}

	kept := current[:0]
	removed := 0
	for _, sym := range current {
		if _, ok := drop[sym]; ok {
			removed++
			continue
		}
		kept = append(kept, sym)
	}

	if removed == 0 {
		return 0, nil
	}
	return removed, s.Save(kept)
}

func dedup(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		sym = normalize(sym)
		if sym == "" {
			continue
		}
		if _, ok := seen[sym]; ok {
			continue
		}
		seen[sym] = struct{}{}
		out = append(out, sym)
	}
	return out
}

func normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
