package daily

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrAlreadyRecorded is returned when the owner already has a solution for the date.
var ErrAlreadyRecorded = errors.New("solution already recorded")

// Solution is a solved puzzle.
type Solution struct {
	Owner      string `json:"owner"`
	Date       string `json:"date"`
	GameNumber int    `json:"gameNumber"`
	Word       string `json:"word"`
	Rounds     int    `json:"rounds"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

// Store persists solutions in the solutions table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record inserts s. One row per (owner, date); a second insert returns ErrAlreadyRecorded.
func (s *Store) Record(ctx context.Context, sol Solution) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO solutions(owner, date, game_number, word, rounds)
		 VALUES(?,?,?,?,?)`,
		sol.Owner, sol.Date, sol.GameNumber, sol.Word, sol.Rounds,
	)
	if err != nil {
		return fmt.Errorf("insert solution: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrAlreadyRecorded
	}
	return nil
}

// ByDate lists solutions for a date, fewest rounds first.
func (s *Store) ByDate(ctx context.Context, date string, limit int) ([]Solution, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.query(ctx,
		`SELECT owner, date, game_number, word, rounds, created_at
		 FROM solutions
		 WHERE date=?
		 ORDER BY rounds ASC, created_at ASC, id ASC
		 LIMIT ?`, date, limit)
}

// ByOwner lists an owner's solutions, newest first.
func (s *Store) ByOwner(ctx context.Context, owner string, limit int) ([]Solution, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.query(ctx,
		`SELECT owner, date, game_number, word, rounds, created_at
		 FROM solutions
		 WHERE owner=?
		 ORDER BY date DESC
		 LIMIT ?`, owner, limit)
}

// ClaimOwner moves all solutions of from to to (anonymous history after login).
func (s *Store) ClaimOwner(ctx context.Context, from, to string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE OR IGNORE solutions SET owner=? WHERE owner=?`, to, from)
	return err
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]Solution, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Solution{}
	for rows.Next() {
		var r Solution
		if err := rows.Scan(&r.Owner, &r.Date, &r.GameNumber, &r.Word, &r.Rounds, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
