package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
)

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// ledgerError tags a store failure as LedgerUnavailable, and as Timeout too
// when the lookup ran out of time.
func ledgerError(which string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s %w: %w: %v", which, models.ErrLedgerUnavailable, models.ErrTimeout, err)
	}
	return fmt.Errorf("%s %w: %w", which, models.ErrLedgerUnavailable, err)
}
