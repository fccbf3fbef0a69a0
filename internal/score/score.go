// Package score provides persistence for high-score tables.
//
// The native build stores scores in a SQLite database using the pure-Go
// modernc.org/sqlite driver. The browser build cannot link SQLite, so it
// falls back to a gdata-backed table (localStorage under wasm). Both
// implementations satisfy the Store interface; the platform shell picks one.
package score

import "time"

// Entry represents a single high score record.
type Entry struct {
	ID        int64
	Score     int
	Wave      int
	CreatedAt time.Time
}

// Store manages high score persistence.
type Store interface {
	// SaveScore records a finished run. Returns the ID of the inserted
	// record where the backend has one, 0 otherwise.
	SaveScore(score, wave int) (int64, error)

	// TopScores retrieves the best scores, ordered descending.
	TopScores(limit int) ([]Entry, error)

	// HighScore returns the single best score, or 0 if none exist.
	HighScore() (int, error)

	// Clear deletes all recorded scores.
	Clear() error

	// Close releases backend resources.
	Close() error
}

// DefaultTopLimit is the table size used when a caller passes limit <= 0.
const DefaultTopLimit = 10
