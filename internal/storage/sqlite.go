// Package storage provides SQLite-based persistence for the index of
// generated tasks. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/lineclear/internal/engine"
)

// DefaultPath is where the CLI keeps the task index.
const DefaultPath = "~/.lineclear/tasks.db"

// Store manages the SQLite database connection for the task index.
type Store struct {
	db *sql.DB
}

// TaskRecord is one generated task as indexed in the database.
type TaskRecord struct {
	ID           int64
	TaskID       string // e.g. "tetris_0007"
	OutputDir    string // Task directory, empty if nothing was written
	Difficulty   string
	Seed         int64
	Width        int
	Height       int
	LinesCleared int
	Placements   string // e.g. "T@(3,1) O@(2,1)"
	Initial      engine.Snapshot
	Final        engine.Snapshot
	CreatedAt    time.Time
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			task_id TEXT NOT NULL,
			output_dir TEXT NOT NULL DEFAULT '',
			difficulty TEXT NOT NULL,
			seed INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			lines_cleared INTEGER NOT NULL DEFAULT 0,
			placements TEXT NOT NULL DEFAULT '',
			initial_board TEXT NOT NULL,
			final_board TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (task_id, output_dir)
		);
		CREATE INDEX IF NOT EXISTS idx_tasks_difficulty ON tasks(difficulty);
		CREATE INDEX IF NOT EXISTS idx_tasks_created ON tasks(created_at DESC);
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

// SaveTask records a generated task. Writing the same task id into the same
// output directory again replaces the earlier record.
// Returns the ID of the stored record.
func (s *Store) SaveTask(r TaskRecord) (int64, error) {
	var id int64
	err := s.db.QueryRow(
		`INSERT INTO tasks (task_id, output_dir, difficulty, seed, width, height,
		                    lines_cleared, placements, initial_board, final_board)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (task_id, output_dir) DO UPDATE SET
		     difficulty = excluded.difficulty,
		     seed = excluded.seed,
		     width = excluded.width,
		     height = excluded.height,
		     lines_cleared = excluded.lines_cleared,
		     placements = excluded.placements,
		     initial_board = excluded.initial_board,
		     final_board = excluded.final_board,
		     created_at = CURRENT_TIMESTAMP
		 RETURNING id`,
		r.TaskID, r.OutputDir, r.Difficulty, r.Seed, r.Width, r.Height,
		r.LinesCleared, r.Placements, r.Initial.String(), r.Final.String(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save task: %w", err)
	}

	return id, nil
}

const taskColumns = `id, task_id, output_dir, difficulty, seed, width, height,
	lines_cleared, placements, initial_board, final_board, created_at`

// RecentTasks retrieves the most recently generated tasks, newest first.
func (s *Store) RecentTasks(limit int) ([]TaskRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryTasks(
		`SELECT `+taskColumns+`
		 FROM tasks
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

// TasksByDifficulty retrieves the most recent tasks of one difficulty.
func (s *Store) TasksByDifficulty(difficulty string, limit int) ([]TaskRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryTasks(
		`SELECT `+taskColumns+`
		 FROM tasks
		 WHERE difficulty = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		difficulty, limit,
	)
}

// TaskByID retrieves the latest record of a task id.
// Returns nil if the task was never indexed.
func (s *Store) TaskByID(taskID string) (*TaskRecord, error) {
	rows, err := s.queryTasks(
		`SELECT `+taskColumns+`
		 FROM tasks
		 WHERE task_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`,
		taskID,
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// ClearTasks deletes every indexed task.
func (s *Store) ClearTasks() error {
	_, err := s.db.Exec("DELETE FROM tasks")
	if err != nil {
		return fmt.Errorf("storage: cannot clear tasks: %w", err)
	}
	return nil
}

func (s *Store) queryTasks(query string, args ...any) ([]TaskRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query tasks: %w", err)
	}
	defer rows.Close()

	var records []TaskRecord
	for rows.Next() {
		var r TaskRecord
		var initial, final string
		var createdAt any
		if err := rows.Scan(&r.ID, &r.TaskID, &r.OutputDir, &r.Difficulty, &r.Seed, &r.Width, &r.Height,
			&r.LinesCleared, &r.Placements, &initial, &final, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		if r.Initial, err = parseBoard(initial); err != nil {
			return nil, fmt.Errorf("storage: task %s: initial board: %w", r.TaskID, err)
		}
		if r.Final, err = parseBoard(final); err != nil {
			return nil, fmt.Errorf("storage: task %s: final board: %w", r.TaskID, err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// DifficultyStats contains aggregated statistics for one difficulty.
type DifficultyStats struct {
	Difficulty    string
	TaskCount     int
	ClearingTasks int // Tasks that cleared at least one line
	TotalLines    int64
	AvgLines      float64
	LastGenerated time.Time
}

// ClearRate returns the share of tasks that cleared at least one line.
func (d DifficultyStats) ClearRate() float64 {
	if d.TaskCount == 0 {
		return 0
	}
	return float64(d.ClearingTasks) / float64(d.TaskCount)
}

// Stats retrieves statistics for every difficulty that has indexed tasks.
func (s *Store) Stats() (map[string]*DifficultyStats, error) {
	rows, err := s.db.Query(
		`SELECT difficulty, COUNT(*), SUM(CASE WHEN lines_cleared > 0 THEN 1 ELSE 0 END),
		        SUM(lines_cleared), AVG(lines_cleared), MAX(created_at)
		 FROM tasks
		 GROUP BY difficulty`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get task stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*DifficultyStats)
	for rows.Next() {
		var d DifficultyStats
		var lastGenerated any
		if err := rows.Scan(&d.Difficulty, &d.TaskCount, &d.ClearingTasks, &d.TotalLines, &d.AvgLines, &lastGenerated); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		d.LastGenerated = parseTime(lastGenerated)
		stats[d.Difficulty] = &d
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func parseBoard(text string) (engine.Snapshot, error) {
	if text == "" {
		return engine.Snapshot{}, errors.New("empty board")
	}
	b, err := engine.ParseBoard(strings.Split(text, "\n"))
	if err != nil {
		return engine.Snapshot{}, err
	}
	return b.Snapshot(), nil
}
