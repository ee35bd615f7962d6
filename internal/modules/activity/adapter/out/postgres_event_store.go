package out

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fitx/internal/modules/activity/domain"
	activityout "fitx/internal/modules/activity/port/out"

	_ "github.com/lib/pq"
)

type PostgresEventStore struct {
	db *sql.DB
}

func NewPostgresEventStore(ctx context.Context, dsn string) (activityout.EventStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, unavailable("ping postgres", err)
	}
	store := &PostgresEventStore{db: db}
	if err := store.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *PostgresEventStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS activity_log (
  seq BIGSERIAL PRIMARY KEY,
  user_id TEXT NOT NULL,
  kind TEXT NOT NULL,
  occurred_at TIMESTAMPTZ NOT NULL,
  payload JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_activity_log_user_time ON activity_log(user_id, occurred_at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create activity_log table: %w", err)
	}
	return nil
}

func (s *PostgresEventStore) AppendWorkout(ctx context.Context, event domain.WorkoutEvent) error {
	return s.append(ctx, event.UserID, kindWorkout, event.Timestamp, event)
}

func (s *PostgresEventStore) AppendMeal(ctx context.Context, event domain.MealEvent) error {
	return s.append(ctx, event.UserID, kindMeal, event.Timestamp, event)
}

func (s *PostgresEventStore) append(ctx context.Context, userID, kind string, at time.Time, event any) error {
	payload, err := encodePayload(event)
	if err != nil {
		return err
	}
	const stmt = `INSERT INTO activity_log (user_id, kind, occurred_at, payload) VALUES ($1, $2, $3, $4)`
	if _, err := s.db.ExecContext(ctx, stmt, userID, kind, at.UTC(), payload); err != nil {
		return unavailable("append "+kind, err)
	}
	return nil
}

func (s *PostgresEventStore) Window(ctx context.Context, userID string, window domain.Window) (domain.History, error) {
	const query = `
SELECT kind, payload::text FROM activity_log
WHERE user_id = $1 AND occurred_at >= $2 AND occurred_at <= $3
ORDER BY occurred_at, seq`
	rows, err := s.db.QueryContext(ctx, query, userID, window.From.UTC(), window.To.UTC())
	if err != nil {
		return domain.History{}, unavailable("query window", err)
	}
	defer rows.Close()
	return scanHistory(rows, userID, window)
}

func (s *PostgresEventStore) Close() error {
	return s.db.Close()
}
