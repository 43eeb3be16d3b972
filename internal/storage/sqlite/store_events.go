package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/emberhollow/stockpile/internal/event"
	"github.com/emberhollow/stockpile/internal/storage/integrity"
)

// EventStore methods (append-only journal)

// AppendEvent atomically appends an event and returns it with sequence and
// hash set. Sequence numbers are per aggregate, start at 1, and never have
// gaps; the counter row and the event insert share one transaction.
func (s *Store) AppendEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	if err := ctx.Err(); err != nil {
		return event.Event{}, err
	}
	if s == nil || s.sqlDB == nil {
		return event.Event{}, fmt.Errorf("storage is not configured")
	}
	if !evt.Type.IsValid() {
		return event.Event{}, fmt.Errorf("event type is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return event.Event{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	evt.Timestamp = evt.Timestamp.UTC().Truncate(time.Millisecond)

	if _, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO event_seq (aggregate_id, next_seq) VALUES (?, 1)",
		evt.AggregateID,
	); err != nil {
		return event.Event{}, fmt.Errorf("init event seq: %w", err)
	}

	var seq int64
	row := tx.QueryRowContext(ctx,
		"SELECT next_seq FROM event_seq WHERE aggregate_id = ?", evt.AggregateID)
	if err := row.Scan(&seq); err != nil {
		return event.Event{}, fmt.Errorf("get event seq: %w", err)
	}
	evt.Seq = uint64(seq)

	if _, err := tx.ExecContext(ctx,
		"UPDATE event_seq SET next_seq = next_seq + 1 WHERE aggregate_id = ?",
		evt.AggregateID,
	); err != nil {
		return event.Event{}, fmt.Errorf("increment event seq: %w", err)
	}

	hash, err := integrity.EventHash(evt)
	if err != nil {
		return event.Event{}, fmt.Errorf("compute event hash: %w", err)
	}
	evt.Hash = hash

	payload := evt.PayloadJSON
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	if _, err := tx.ExecContext(ctx, `
INSERT INTO events (aggregate_id, seq, event_hash, event_type, timestamp, player_id, entity_type, entity_id, payload)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		evt.AggregateID, int64(evt.Seq), evt.Hash, string(evt.Type),
		toMillis(evt.Timestamp), evt.PlayerID, evt.EntityType, evt.EntityID,
		string(payload),
	); err != nil {
		if isConstraintError(err) {
			return event.Event{}, fmt.Errorf("append event: sequence %d already written: %w", evt.Seq, err)
		}
		return event.Event{}, fmt.Errorf("append event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return event.Event{}, fmt.Errorf("commit append: %w", err)
	}
	return evt, nil
}

// ListEvents returns an aggregate's journal in sequence order, starting
// after afterSeq, up to limit events. A limit of zero means no bound.
func (s *Store) ListEvents(ctx context.Context, aggregateID string, afterSeq uint64, limit int) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	query := `
SELECT aggregate_id, seq, event_hash, event_type, timestamp, player_id, entity_type, entity_id, payload
FROM events WHERE aggregate_id = ? AND seq > ? ORDER BY seq`
	args := []any{aggregateID, int64(afterSeq)}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		evt, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read event rows: %w", err)
	}
	return events, nil
}

// CountEvents returns the journal length for an aggregate.
func (s *Store) CountEvents(ctx context.Context, aggregateID string) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}

	var count int64
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM events WHERE aggregate_id = ?", aggregateID)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return uint64(count), nil
}

func scanEvent(rows *sql.Rows) (event.Event, error) {
	var (
		evt       event.Event
		seq       int64
		eventType string
		timestamp int64
		payload   string
	)
	if err := rows.Scan(&evt.AggregateID, &seq, &evt.Hash, &eventType, &timestamp,
		&evt.PlayerID, &evt.EntityType, &evt.EntityID, &payload); err != nil {
		return event.Event{}, fmt.Errorf("scan event row: %w", err)
	}
	evt.Seq = uint64(seq)
	evt.Type = event.Type(eventType)
	evt.Timestamp = fromMillis(timestamp)
	evt.PayloadJSON = []byte(payload)
	return evt, nil
}

func isConstraintError(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func isUniqueViolation(err error) bool {
	return isConstraintError(err)
}
