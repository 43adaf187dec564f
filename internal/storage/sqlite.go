// Package storage provides a SQLite journal of completed drag gestures.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// The journal is write-mostly: the playground appends one row per drag-end
// notification and the CLI reads it back for inspection. Nothing here is used
// to restore an element's position.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const sqliteTimeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for the gesture journal.
type Store struct {
	db *sql.DB
}

// Gesture is one completed drag as seen by the drag-end notification.
type Gesture struct {
	ID         int64
	SceneID    string
	SessionID  string
	EndX       float64 // Release position
	EndY       float64
	TranslateX float64 // Cumulative translation after the gesture
	TranslateY float64
	Clamped    bool // Whether the gesture ran with a boundary
	Alt        bool
	Ctrl       bool
	Shift      bool
	CreatedAt  time.Time
}

// SceneStats contains aggregated statistics for one scene.
type SceneStats struct {
	SceneID      string
	Gestures     int
	Sessions     int
	ClampedCount int
	LastDragged  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS gestures (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scene_id TEXT NOT NULL,
			session_id TEXT NOT NULL,
			end_x REAL NOT NULL,
			end_y REAL NOT NULL,
			translate_x REAL NOT NULL,
			translate_y REAL NOT NULL,
			clamped INTEGER NOT NULL DEFAULT 0,
			alt INTEGER NOT NULL DEFAULT 0,
			ctrl INTEGER NOT NULL DEFAULT 0,
			shift INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_gestures_scene ON gestures(scene_id, id DESC);
		CREATE INDEX IF NOT EXISTS idx_gestures_session ON gestures(session_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGesture appends a gesture to the journal.
// Returns the ID of the inserted record.
func (s *Store) SaveGesture(g Gesture) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO gestures
		 (scene_id, session_id, end_x, end_y, translate_x, translate_y, clamped, alt, ctrl, shift)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.SceneID, g.SessionID,
		g.EndX, g.EndY,
		g.TranslateX, g.TranslateY,
		g.Clamped, g.Alt, g.Ctrl, g.Shift,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save gesture: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentGestures retrieves the latest gestures for a scene, newest first.
func (s *Store) RecentGestures(sceneID string, limit int) ([]Gesture, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, scene_id, session_id, end_x, end_y, translate_x, translate_y,
		        clamped, alt, ctrl, shift, created_at
		 FROM gestures
		 WHERE scene_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		sceneID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query gestures: %w", err)
	}
	defer rows.Close()

	var gestures []Gesture
	for rows.Next() {
		var g Gesture
		var createdAt any
		if err := rows.Scan(
			&g.ID, &g.SceneID, &g.SessionID,
			&g.EndX, &g.EndY, &g.TranslateX, &g.TranslateY,
			&g.Clamped, &g.Alt, &g.Ctrl, &g.Shift,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		g.CreatedAt = parseTime(createdAt)
		gestures = append(gestures, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return gestures, nil
}

// SceneStats retrieves aggregated statistics for a scene.
func (s *Store) SceneStats(sceneID string) (*SceneStats, error) {
	stats := &SceneStats{SceneID: sceneID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT session_id), COALESCE(SUM(clamped), 0)
		 FROM gestures WHERE scene_id = ?`,
		sceneID,
	).Scan(&stats.Gestures, &stats.Sessions, &stats.ClampedCount)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scene stats: %w", err)
	}

	var lastDragged any
	err = s.db.QueryRow(
		`SELECT created_at FROM gestures WHERE scene_id = ? ORDER BY id DESC LIMIT 1`,
		sceneID,
	).Scan(&lastDragged)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last gesture: %w", err)
	}
	if err == nil {
		stats.LastDragged = parseTime(lastDragged)
	}

	return stats, nil
}

// ClearGestures deletes all gestures recorded for a scene.
func (s *Store) ClearGestures(sceneID string) error {
	_, err := s.db.Exec("DELETE FROM gestures WHERE scene_id = ?", sceneID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear gestures: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTimeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
