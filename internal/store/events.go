package store

import (
	"context"
	"fmt"
	"time"
)

// Review event kinds.
const (
	EventFlashcard = "flashcard"
	EventQuiz      = "quiz"
)

// ReviewEventData captures one review outcome for the event log.
type ReviewEventData struct {
	SessionID string
	EntryID   string
	Kind      string
	Correct   bool
}

// ReviewEventRecord is a persisted review event.
type ReviewEventRecord struct {
	ID        int64
	SessionID string
	EntryID   string
	Kind      string
	Correct   bool
	CreatedAt time.Time
}

// SessionSummary aggregates the events of one review session.
type SessionSummary struct {
	SessionID string
	Kind      string
	Total     int
	Correct   int
	StartedAt time.Time
}

// AppendReviewEvent records one review outcome.
func (s *Store) AppendReviewEvent(ctx context.Context, data ReviewEventData) error {
	correct := 0
	if data.Correct {
		correct = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO review_events (session_id, entry_id, kind, correct, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		data.SessionID, data.EntryID, data.Kind, correct,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("append review event: %w", err)
	}
	return nil
}

// RecentSessions returns summaries of the most recent review sessions,
// newest first.
func (s *Store) RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, kind, COUNT(*), SUM(correct), MIN(created_at)
		 FROM review_events
		 GROUP BY session_id, kind
		 ORDER BY MIN(created_at) DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var sum SessionSummary
		var started string
		if err := rows.Scan(&sum.SessionID, &sum.Kind, &sum.Total, &sum.Correct, &started); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, started); err == nil {
			sum.StartedAt = t
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// EntryEvents returns the events recorded for one entry, newest first.
func (s *Store) EntryEvents(ctx context.Context, entryID string, limit int) ([]ReviewEventRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, entry_id, kind, correct, created_at
		 FROM review_events WHERE entry_id = ?
		 ORDER BY id DESC LIMIT ?`, entryID, limit)
	if err != nil {
		return nil, fmt.Errorf("query entry events: %w", err)
	}
	defer rows.Close()

	var out []ReviewEventRecord
	for rows.Next() {
		var rec ReviewEventRecord
		var correct int
		var created string
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.EntryID, &rec.Kind, &correct, &created); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		rec.Correct = correct != 0
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			rec.CreatedAt = t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// TodayFlashcardCount returns how many flashcard outcomes were
// recorded since midnight UTC. Drives the daily goal display.
func (s *Store) TodayFlashcardCount(ctx context.Context) (int, error) {
	midnight := time.Now().UTC().Truncate(24 * time.Hour).Format(time.RFC3339)
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM review_events WHERE kind = ? AND created_at >= ?`,
		EventFlashcard, midnight).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count today's reviews: %w", err)
	}
	return n, nil
}

// ClearReviewEvents deletes the whole event log. Used by bulk reset.
func (s *Store) ClearReviewEvents(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM review_events`)
	if err != nil {
		return fmt.Errorf("clear review events: %w", err)
	}
	return nil
}
