package score

import (
	"fmt"
	"sort"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	scoresObject   = "scores"
	scoresProperty = "table"

	// maxStoredEntries bounds the persisted table size. Browser storage
	// quotas are small, and nothing below rank 100 is ever displayed.
	maxStoredEntries = 100
)

// GdataStore persists the score table through gdata, which maps to
// localStorage in browsers and a per-user data directory on desktops.
// With a nil manager the store degrades to in-memory only: scores survive
// the session but not a restart.
type GdataStore struct {
	manager *gdata.Manager
	entries []storedEntry
	nextID  int64
}

type storedEntry struct {
	Score     int       `yaml:"score"`
	Wave      int       `yaml:"wave"`
	CreatedAt time.Time `yaml:"createdAt"`
}

// NewGdataStore creates a score store backed by the given gdata manager.
// A nil manager is allowed and produces a degraded in-memory store.
func NewGdataStore(manager *gdata.Manager) *GdataStore {
	s := &GdataStore{manager: manager, nextID: 1}
	s.load()
	return s
}

// load reads the persisted table. Errors leave the store empty; a broken
// score table must never prevent the game from starting.
func (s *GdataStore) load() {
	if s.manager == nil {
		return
	}
	if !s.manager.ObjectPropExists(scoresObject, scoresProperty) {
		return
	}

	data, err := s.manager.LoadObjectProp(scoresObject, scoresProperty)
	if err != nil {
		return
	}

	var entries []storedEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return
	}
	s.entries = entries
}

// flush writes the current table back to gdata.
func (s *GdataStore) flush() error {
	if s.manager == nil {
		return nil
	}

	data, err := yaml.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("score: cannot marshal score table: %w", err)
	}
	if err := s.manager.SaveObjectProp(scoresObject, scoresProperty, data); err != nil {
		return fmt.Errorf("score: cannot save score table: %w", err)
	}
	return nil
}

// SaveScore records a finished run and persists the trimmed table.
func (s *GdataStore) SaveScore(scoreValue, wave int) (int64, error) {
	s.entries = append(s.entries, storedEntry{
		Score:     scoreValue,
		Wave:      wave,
		CreatedAt: time.Now(),
	})
	s.sortEntries()
	if len(s.entries) > maxStoredEntries {
		s.entries = s.entries[:maxStoredEntries]
	}

	id := s.nextID
	s.nextID++
	return id, s.flush()
}

// TopScores retrieves the best scores, ordered descending.
func (s *GdataStore) TopScores(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	if limit > len(s.entries) {
		limit = len(s.entries)
	}

	out := make([]Entry, 0, limit)
	for i := 0; i < limit; i++ {
		e := s.entries[i]
		out = append(out, Entry{
			Score:     e.Score,
			Wave:      e.Wave,
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}

// HighScore returns the best recorded score, or 0 if none exist.
func (s *GdataStore) HighScore() (int, error) {
	if len(s.entries) == 0 {
		return 0, nil
	}
	return s.entries[0].Score, nil
}

// Clear deletes all recorded scores.
func (s *GdataStore) Clear() error {
	s.entries = nil
	return s.flush()
}

// Close is a no-op for the gdata backend.
func (s *GdataStore) Close() error {
	return nil
}

func (s *GdataStore) sortEntries() {
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].Score > s.entries[j].Score
	})
}

var _ Store = (*GdataStore)(nil)
