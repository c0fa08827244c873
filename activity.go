package ledger

import (
	"context"
	"fmt"

	"github.com/hdriqi/paras-backend/activity"
)

// AddActivity awards jittered points for a scored action and returns
// the points granted. Reserved system accounts earn nothing.
func (l *Ledger) AddActivity(ctx context.Context, accountID string, action activity.Action) (int, error) {
	if accountID == "" {
		return 0, ValidationError{Field: "accountID", Message: "must not be empty"}
	}
	if IsReservedAccount(accountID) {
		return 0, nil
	}
	base, ok := activity.BasePoint(action)
	if !ok {
		return 0, ValidationError{Field: "action", Message: fmt.Sprintf("unknown action %q", action)}
	}

	point := l.jitter(base, 1)
	entry := activity.NewHistoryEntry(accountID, action, activity.DirectionAdd, point)
	if err := l.store.AddPoints(ctx, entry); err != nil {
		return 0, fmt.Errorf("add points for %s: %w", accountID, err)
	}

	l.hooks.EmitPointsChanged(ctx, accountID, action, activity.DirectionAdd, point)
	return point, nil
}

// SlashActivity deducts jittered points for a scored action, flooring
// the balance at zero. Slashing an account already at zero is a no-op
// that records no history and returns zero.
func (l *Ledger) SlashActivity(ctx context.Context, accountID string, action activity.Action) (int, error) {
	if accountID == "" {
		return 0, ValidationError{Field: "accountID", Message: "must not be empty"}
	}
	if IsReservedAccount(accountID) {
		return 0, nil
	}
	base, ok := activity.BasePoint(action)
	if !ok {
		return 0, ValidationError{Field: "action", Message: fmt.Sprintf("unknown action %q", action)}
	}

	point := l.jitter(base, 0)
	entry := activity.NewHistoryEntry(accountID, action, activity.DirectionSlash, point)
	applied, err := l.store.SlashPoints(ctx, entry)
	if err != nil {
		return 0, fmt.Errorf("slash points for %s: %w", accountID, err)
	}
	if !applied {
		return 0, nil
	}

	// The store caps entry.Point at the available balance, so report
	// what actually came off rather than the jittered draw.
	l.hooks.EmitPointsChanged(ctx, accountID, action, activity.DirectionSlash, entry.Point)
	return entry.Point, nil
}

// ActivityPoints returns an account's current point balance.
func (l *Ledger) ActivityPoints(ctx context.Context, accountID string) (int, error) {
	if accountID == "" {
		return 0, ValidationError{Field: "accountID", Message: "must not be empty"}
	}
	return l.store.PointsOf(ctx, accountID)
}

// ActivityHistory returns an account's point history, newest first.
func (l *Ledger) ActivityHistory(ctx context.Context, accountID string) ([]*activity.HistoryEntry, error) {
	if accountID == "" {
		return nil, ValidationError{Field: "accountID", Message: "must not be empty"}
	}
	return l.store.ActivityHistory(ctx, accountID)
}

// ResetActivityPoints zeroes every account's point balance. History is
// preserved. Disbursement calls this after a successful epoch.
func (l *Ledger) ResetActivityPoints(ctx context.Context) error {
	return l.store.ResetPoints(ctx)
}
