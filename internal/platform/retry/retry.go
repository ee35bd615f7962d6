package retry

import (
	"context"
	"errors"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	apperrors "fitx/internal/platform/errors"
)

// Policy retries operations that fail with apperrors.ErrStorageUnavailable.
// Any other error is returned immediately.
type Policy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

func Default() Policy {
	return Policy{Attempts: 3, BaseDelay: 50 * time.Millisecond, MaxDelay: time.Second}
}

func (p Policy) Do(ctx context.Context, logger hclog.Logger, op string, fn func(context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	delay := p.BaseDelay
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn(ctx)
		if err == nil || !errors.Is(err, apperrors.ErrStorageUnavailable) {
			return err
		}
		if logger != nil {
			logger.Warn("storage operation failed", "op", op, "attempt", attempt, "of", attempts, "error", err)
		}
		if attempt == attempts {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Join(err, ctx.Err())
		case <-timer.C:
		}
		delay *= 2
		if p.MaxDelay > 0 && delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
	return err
}
