package out

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"fitx/internal/modules/activity/domain"
	apperrors "fitx/internal/platform/errors"
)

const (
	kindWorkout = "workout"
	kindMeal    = "meal"
)

type envelope struct {
	Version int             `json:"v"`
	Event   json.RawMessage `json:"event"`
}

func encodePayload(event any) (string, error) {
	raw, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("encode event: %w", err)
	}
	out, err := json.Marshal(envelope{Version: domain.SchemaVersion, Event: raw})
	if err != nil {
		return "", fmt.Errorf("encode envelope: %w", err)
	}
	return string(out), nil
}

func decodePayload(payload string, target any) error {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if env.Version > domain.SchemaVersion {
		return fmt.Errorf("unsupported event schema version %d", env.Version)
	}
	if err := json.Unmarshal(env.Event, target); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	return nil
}

// scanHistory reads (kind, payload) rows that are already ordered.
func scanHistory(rows *sql.Rows, userID string, window domain.Window) (domain.History, error) {
	history := domain.History{UserID: userID, From: window.From, To: window.To}
	for rows.Next() {
		var kind, payload string
		if err := rows.Scan(&kind, &payload); err != nil {
			return domain.History{}, unavailable("scan row", err)
		}
		switch kind {
		case kindWorkout:
			var e domain.WorkoutEvent
			if err := decodePayload(payload, &e); err != nil {
				return domain.History{}, err
			}
			history.Workouts = append(history.Workouts, e)
		case kindMeal:
			var e domain.MealEvent
			if err := decodePayload(payload, &e); err != nil {
				return domain.History{}, err
			}
			history.Meals = append(history.Meals, e)
		}
	}
	if err := rows.Err(); err != nil {
		return domain.History{}, unavailable("iterate rows", err)
	}
	return history, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", apperrors.ErrStorageUnavailable, op, err)
}
