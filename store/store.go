// Package store defines the unified storage interface for the ledger.
package store

import (
	"context"

	"github.com/hdriqi/paras-backend/activity"
	"github.com/hdriqi/paras-backend/ranking"
	"github.com/hdriqi/paras-backend/resource"
	"github.com/hdriqi/paras-backend/stake"
	"github.com/hdriqi/paras-backend/txlog"
	"github.com/hdriqi/paras-backend/types"
)

// Store is the unified storage interface for all ledger state. Methods are
// declared explicitly instead of embedding sub-interfaces to avoid naming
// conflicts.
//
// Mutations to a single account's balance are serialized by the
// implementation: ApplyTransfer, Mint and Burn each commit their debit,
// credit and log append as one atomic unit, or fail without mutation.
// Implementations signal an optimistic-update collision with
// ledger.ErrConcurrencyConflict; callers retry with bounded attempts.
type Store interface {
	// Balance methods
	BalanceOf(ctx context.Context, accountID string) (types.Amount, error)
	ApplyTransfer(ctx context.Context, e *txlog.Entry) error
	Mint(ctx context.Context, e *txlog.Entry) error
	Burn(ctx context.Context, e *txlog.Entry) error
	TotalSupply(ctx context.Context) (types.Amount, error)

	// Transaction log methods
	Transactions(ctx context.Context, accountID string, skip, limit int64) ([]*txlog.Entry, error)
	TipperTotals(ctx context.Context, resourceID string) ([]txlog.TipperTotal, error)

	// Stake methods
	GetStake(ctx context.Context, resourceID, accountID string) (types.Amount, error)
	StakesByResource(ctx context.Context, resourceID string) ([]*stake.Stake, error)
	TotalStake(ctx context.Context, resourceID string) (types.Amount, error)
	IncrementStake(ctx context.Context, resourceID, accountID string, delta types.Amount) error
	DecrementStake(ctx context.Context, resourceID, accountID string, delta types.Amount) error

	// Activity point methods
	PointsOf(ctx context.Context, accountID string) (int, error)
	ActivePoints(ctx context.Context) ([]activity.Point, error)
	AddPoints(ctx context.Context, e *activity.HistoryEntry) error
	SlashPoints(ctx context.Context, e *activity.HistoryEntry) (bool, error)
	ResetPoints(ctx context.Context) error
	ActivityHistory(ctx context.Context, accountID string) ([]*activity.HistoryEntry, error)

	// Ranking methods
	GetScore(ctx context.Context, resourceID string) (*ranking.PostScore, error)
	UpsertScore(ctx context.Context, s *ranking.PostScore) error

	// Resource methods (read-only: content CRUD lives elsewhere)
	GetResource(ctx context.Context, resourceID string) (*resource.Resource, error)

	// Epoch methods
	ClaimEpoch(ctx context.Context, key string) error

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
