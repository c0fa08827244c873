// Package hook provides an extensible hook system for the ledger. Hooks
// observe lifecycle events after they commit; they can never veto or mutate
// a ledger operation.
package hook

import (
	"context"

	"github.com/hdriqi/paras-backend/activity"
	"github.com/hdriqi/paras-backend/reward"
	"github.com/hdriqi/paras-backend/txlog"
)

// Hook is the base interface that all hooks must implement.
type Hook interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the engine starts.
type OnInit interface {
	Hook
	OnInit(ctx context.Context, engine interface{}) error
}

// OnShutdown is called when the engine is shutting down.
type OnShutdown interface {
	Hook
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Ledger event hooks
// ──────────────────────────────────────────────────

// OnTransfer is called after a transfer commits, with the full log entry so
// display text is derivable from the tag.
type OnTransfer interface {
	Hook
	OnTransfer(ctx context.Context, e *txlog.Entry) error
}

// OnMint is called after new supply is minted.
type OnMint interface {
	Hook
	OnMint(ctx context.Context, e *txlog.Entry) error
}

// OnBurn is called after supply is burned.
type OnBurn interface {
	Hook
	OnBurn(ctx context.Context, e *txlog.Entry) error
}

// OnPointsChanged is called after an activity point balance changes.
type OnPointsChanged interface {
	Hook
	OnPointsChanged(ctx context.Context, accountID string, action activity.Action, dir activity.Direction, point int) error
}

// OnDisbursed is called after an epoch disbursement completes.
type OnDisbursed interface {
	Hook
	OnDisbursed(ctx context.Context, epochKey string, payouts []reward.Payout) error
}

// OnBatchFailed is called when a fan-out batch exhausts its retries. The
// batch is escalated to operators; no payout is silently dropped.
type OnBatchFailed interface {
	Hook
	OnBatchFailed(ctx context.Context, op string, err error) error
}
