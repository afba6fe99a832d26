// Package journal provides SQLite-based recording of the affect time
// series. The journal is write-only telemetry: the simulation never
// restores state from it.
package journal

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/temperament/internal/engine"
)

// DB wraps a SQLite connection for affect telemetry.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite journal at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tick INTEGER NOT NULL,
		agent TEXT NOT NULL,
		age REAL NOT NULL,
		maturity REAL NOT NULL,
		mood TEXT NOT NULL,
		mood_intensity REAL NOT NULL,
		emotion TEXT NOT NULL,
		emotion_intensity REAL NOT NULL,
		traits_json TEXT NOT NULL,
		blended_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tick INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_tick ON snapshots(tick);
	CREATE INDEX IF NOT EXISTS idx_events_tick ON events(tick);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RecordSnapshot appends one tick's affect state to the journal.
func (db *DB) RecordSnapshot(snap engine.Snapshot) error {
	traitsJSON, _ := json.Marshal(snap.Traits)
	blendedJSON, _ := json.Marshal(snap.Emotion.Blended)

	_, err := db.conn.Exec(`INSERT INTO snapshots
		(tick, agent, age, maturity, mood, mood_intensity,
		 emotion, emotion_intensity, traits_json, blended_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.Tick, snap.Name, snap.Age, snap.Maturity,
		snap.Mood.Mood, snap.Mood.Intensity,
		snap.Emotion.Dominant, snap.Emotion.Intensity,
		string(traitsJSON), string(blendedJSON),
	)
	if err != nil {
		return fmt.Errorf("insert snapshot tick %d: %w", snap.Tick, err)
	}
	return nil
}

// Event is a notable occurrence worth keeping alongside the time series.
type Event struct {
	Tick        uint64 `json:"tick" db:"tick"`
	Description string `json:"description" db:"description"`
	Category    string `json:"category" db:"category"`
}

// RecordEvent appends a notable event to the journal.
func (db *DB) RecordEvent(e Event) error {
	_, err := db.conn.Exec(
		"INSERT INTO events (tick, description, category) VALUES (?, ?, ?)",
		e.Tick, e.Description, e.Category,
	)
	return err
}

// Row is one journaled snapshot, flattened for queries.
type Row struct {
	Tick             uint64  `json:"tick" db:"tick"`
	Agent            string  `json:"agent" db:"agent"`
	Age              float64 `json:"age" db:"age"`
	Maturity         float64 `json:"maturity" db:"maturity"`
	Mood             string  `json:"mood" db:"mood"`
	MoodIntensity    float64 `json:"mood_intensity" db:"mood_intensity"`
	Emotion          string  `json:"emotion" db:"emotion"`
	EmotionIntensity float64 `json:"emotion_intensity" db:"emotion_intensity"`
}

// RecentSnapshots returns the most recent N journaled rows, newest first.
func (db *DB) RecentSnapshots(limit int) ([]Row, error) {
	var rows []Row
	err := db.conn.Select(&rows, `SELECT
		tick, agent, age, maturity, mood, mood_intensity,
		emotion, emotion_intensity
		FROM snapshots ORDER BY id DESC LIMIT ?`, limit)
	return rows, err
}

// RecentEvents returns the most recent N events, newest first.
func (db *DB) RecentEvents(limit int) ([]Event, error) {
	var events []Event
	err := db.conn.Select(&events,
		"SELECT tick, description, category FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}

// Prune trims the snapshot table to the most recent keep rows.
func (db *DB) Prune(keep int) error {
	_, err := db.conn.Exec(`DELETE FROM snapshots WHERE id NOT IN
		(SELECT id FROM snapshots ORDER BY id DESC LIMIT ?)`, keep)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	slog.Debug("journal pruned", "keep", keep)
	return nil
}
