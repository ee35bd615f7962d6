package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"fitx/internal/modules/activity/domain"
	activityout "fitx/internal/modules/activity/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteEventStore struct {
	db *sql.DB
}

func NewSQLiteEventStore(dbPath string) (activityout.EventStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// modernc serializes writers per file; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	store := &SQLiteEventStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteEventStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS activity_log (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id TEXT NOT NULL,
  kind TEXT NOT NULL,
  occurred_at INTEGER NOT NULL,
  payload TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_activity_log_user_time ON activity_log(user_id, occurred_at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create activity_log table: %w", err)
	}
	return nil
}

func (s *SQLiteEventStore) AppendWorkout(ctx context.Context, event domain.WorkoutEvent) error {
	return s.append(ctx, event.UserID, kindWorkout, event.Timestamp.UnixNano(), event)
}

func (s *SQLiteEventStore) AppendMeal(ctx context.Context, event domain.MealEvent) error {
	return s.append(ctx, event.UserID, kindMeal, event.Timestamp.UnixNano(), event)
}

func (s *SQLiteEventStore) append(ctx context.Context, userID, kind string, at int64, event any) error {
	payload, err := encodePayload(event)
	if err != nil {
		return err
	}
	const stmt = `INSERT INTO activity_log (user_id, kind, occurred_at, payload) VALUES (?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, stmt, userID, kind, at, payload); err != nil {
		return unavailable("append "+kind, err)
	}
	return nil
}

func (s *SQLiteEventStore) Window(ctx context.Context, userID string, window domain.Window) (domain.History, error) {
	const query = `
SELECT kind, payload FROM activity_log
WHERE user_id = ? AND occurred_at >= ? AND occurred_at <= ?
ORDER BY occurred_at, seq`
	rows, err := s.db.QueryContext(ctx, query, userID, window.From.UnixNano(), window.To.UnixNano())
	if err != nil {
		return domain.History{}, unavailable("query window", err)
	}
	defer rows.Close()
	return scanHistory(rows, userID, window)
}

func (s *SQLiteEventStore) Close() error {
	return s.db.Close()
}
