// Package store handles SQLite persistence for texts and results.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/typeflow/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// seedTexts are inserted when the texts table is empty.
var seedTexts = []model.Text{
	{Duration: 60, Content: "Short 60s paragraph. Warm up and find rhythm.", Active: true},
	{Duration: 90, Content: "Medium 90s paragraph. Balance speed and accuracy.", Active: true},
	{Duration: 120, Content: "Long 120s paragraph. Maintain form and consistency.", Active: true},
}

// Store wraps SQLite access for texts and results.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database, applies migrations and seeds
// demo texts into an empty database.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	if err := store.seed(context.Background()); err != nil {
		if cerr := db.Close(); cerr != nil {
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS texts (
			id INTEGER PRIMARY KEY,
			duration INTEGER NOT NULL,
			content TEXT NOT NULL,
			active INTEGER NOT NULL DEFAULT 1
		);`,
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY,
			user_id TEXT,
			duration INTEGER NOT NULL,
			wpm INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			correct_chars INTEGER NOT NULL,
			raw_keystrokes INTEGER NOT NULL,
			text_id INTEGER NOT NULL REFERENCES texts(id),
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_texts_duration ON texts(duration, active);`,
		`CREATE INDEX IF NOT EXISTS idx_results_duration_wpm ON results(duration, wpm DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) seed(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM texts`).Scan(&count); err != nil {
		return fmt.Errorf("count texts: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, t := range seedTexts {
		if _, err := s.InsertText(ctx, t); err != nil {
			return fmt.Errorf("seed texts: %w", err)
		}
	}
	return nil
}

// InsertText stores a text and returns its id.
func (s *Store) InsertText(ctx context.Context, t model.Text) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO texts (duration, content, active) VALUES (?, ?, ?)`,
		t.Duration, t.Content, t.Active,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetText returns a text by id.
func (s *Store) GetText(ctx context.Context, id int64) (model.Text, error) {
	var t model.Text
	err := s.db.QueryRowContext(ctx,
		`SELECT id, duration, content, active FROM texts WHERE id = ?`, id,
	).Scan(&t.ID, &t.Duration, &t.Content, &t.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Text{}, ErrNotFound
	}
	if err != nil {
		return model.Text{}, err
	}
	return t, nil
}

// ListActiveTexts returns the active texts for a duration.
func (s *Store) ListActiveTexts(ctx context.Context, duration int) ([]model.Text, error) {
	return s.queryTexts(ctx,
		`SELECT id, duration, content, active FROM texts WHERE duration = ? AND active = 1 ORDER BY id`,
		duration,
	)
}

// ListTexts returns every text.
func (s *Store) ListTexts(ctx context.Context) ([]model.Text, error) {
	return s.queryTexts(ctx, `SELECT id, duration, content, active FROM texts ORDER BY id`)
}

func (s *Store) queryTexts(ctx context.Context, query string, args ...any) ([]model.Text, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var texts []model.Text
	for rows.Next() {
		var t model.Text
		if err := rows.Scan(&t.ID, &t.Duration, &t.Content, &t.Active); err != nil {
			return nil, err
		}
		texts = append(texts, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return texts, nil
}

// DeleteText removes a text by id.
func (s *Store) DeleteText(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM texts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertResult stores a session result stamped with the current UTC time.
func (s *Store) InsertResult(ctx context.Context, r model.SessionResult) (model.StoredResult, error) {
	createdAt := s.now().UTC()
	var userID sql.NullString
	if r.UserID != nil {
		userID = sql.NullString{String: *r.UserID, Valid: true}
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO results (user_id, duration, wpm, accuracy, correct_chars, raw_keystrokes, text_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		userID,
		r.Duration,
		r.WPM,
		r.Accuracy,
		r.CorrectChars,
		r.RawKeystrokes,
		r.TextID,
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return model.StoredResult{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.StoredResult{}, err
	}
	return model.StoredResult{ID: id, SessionResult: r, CreatedAt: createdAt}, nil
}

// TopResults returns results for a duration ordered by wpm descending.
func (s *Store) TopResults(ctx context.Context, duration, limit int) ([]model.StoredResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, duration, wpm, accuracy, correct_chars, raw_keystrokes, text_id, created_at
		 FROM results
		 WHERE duration = ?
		 ORDER BY wpm DESC, id ASC
		 LIMIT ?`,
		duration, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var results []model.StoredResult
	for rows.Next() {
		var r model.StoredResult
		var userID sql.NullString
		var createdAt string
		if err := rows.Scan(&r.ID, &userID, &r.Duration, &r.WPM, &r.Accuracy, &r.CorrectChars, &r.RawKeystrokes, &r.TextID, &createdAt); err != nil {
			return nil, err
		}
		if userID.Valid {
			u := userID.String
			r.UserID = &u
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		r.CreatedAt = parsed
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
