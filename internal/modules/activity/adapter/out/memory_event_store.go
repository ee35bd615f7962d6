package out

import (
	"context"
	"fmt"
	"sync"

	"fitx/internal/modules/activity/domain"
	activityout "fitx/internal/modules/activity/port/out"
	apperrors "fitx/internal/platform/errors"
)

type MemoryEventStore struct {
	mu       sync.RWMutex
	workouts []domain.WorkoutEvent
	meals    []domain.MealEvent
	closed   bool
}

func NewMemoryEventStore() activityout.EventStore {
	return &MemoryEventStore{}
}

func (s *MemoryEventStore) AppendWorkout(_ context.Context, event domain.WorkoutEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("%w: memory store closed", apperrors.ErrStorageUnavailable)
	}
	s.workouts = append(s.workouts, event)
	return nil
}

func (s *MemoryEventStore) AppendMeal(_ context.Context, event domain.MealEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("%w: memory store closed", apperrors.ErrStorageUnavailable)
	}
	event.Items = append([]string{}, event.Items...)
	s.meals = append(s.meals, event)
	return nil
}

func (s *MemoryEventStore) Window(_ context.Context, userID string, window domain.Window) (domain.History, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return domain.History{}, fmt.Errorf("%w: memory store closed", apperrors.ErrStorageUnavailable)
	}
	history := domain.History{UserID: userID, From: window.From, To: window.To}
	for _, e := range s.workouts {
		if e.UserID == userID && window.Contains(e.Timestamp) {
			history.Workouts = append(history.Workouts, e)
		}
	}
	for _, e := range s.meals {
		if e.UserID == userID && window.Contains(e.Timestamp) {
			e.Items = append([]string{}, e.Items...)
			history.Meals = append(history.Meals, e)
		}
	}
	history.Sort()
	return history, nil
}

func (s *MemoryEventStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
