// internal/history/store.go
//
// Board of finished rounds.
//
// Backed by SQLite in shared in-memory mode: the board lives exactly as long
// as the process, matching the rest of the server's state. The schema is
// embedded (assets/schema.sql) and applied on Open.

package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guesstheword/apps/go-server/assets"
	"github.com/robalobadob/guesstheword/apps/go-server/internal/game"
)

const (
	defaultLimit = 20
	MaxLimit     = 100
)

// Round is one row of the board.
type Round struct {
	GameID     string    `json:"gameId"`
	Score      int       `json:"score"`
	Correct    int       `json:"correct"`
	Skipped    int       `json:"skipped"`
	FinishedAt time.Time `json:"finishedAt"`
}

type Store struct{ db *sql.DB }

// Open creates the in-memory database called name and applies the schema.
// Distinct names give independent boards.
func Open(name string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// One long-lived connection keeps the in-memory database alive.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	ddl, err := assets.Schema()
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	log.Info().Str("migration", "schema.sql").Msg("applied")
	return nil
}

// Close releases the database; the board is gone afterwards.
func (s *Store) Close() error { return s.db.Close() }

// Record inserts a finished round. Recording the same game twice is ignored.
func (s *Store) Record(ctx context.Context, r game.Result) error {
	at := r.FinishedAt
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO rounds (game_id, score, correct, skipped, finished_at)
        VALUES (?, ?, ?, ?, ?)`,
		r.GameID, r.Score, r.Correct, r.Skipped, at.UnixNano(),
	)
	return err
}

// Top returns the best rounds: highest score first, earlier finish on ties.
// A non-positive limit means 20; limits above MaxLimit are clamped.
func (s *Store) Top(ctx context.Context, limit int) ([]Round, error) {
	switch {
	case limit <= 0:
		limit = defaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT game_id, score, correct, skipped, finished_at
        FROM rounds
        ORDER BY score DESC, finished_at ASC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Round{}
	for rows.Next() {
		var r Round
		var at int64
		if err := rows.Scan(&r.GameID, &r.Score, &r.Correct, &r.Skipped, &at); err != nil {
			return nil, err
		}
		r.FinishedAt = time.Unix(0, at).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}
