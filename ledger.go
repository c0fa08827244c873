package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/hdriqi/paras-backend/activity"
	"github.com/hdriqi/paras-backend/hook"
	"github.com/hdriqi/paras-backend/store"
	"github.com/hdriqi/paras-backend/types"
)

// ─────────────────────────────────────────────────────────────
// Reserved accounts
// ─────────────────────────────────────────────────────────────

// ReservedPrefix marks system-owned pseudo accounts. User-facing
// operations never register activity for, or validate the existence
// of, accounts under this namespace.
const ReservedPrefix = "paras::"

// DisburseAccount is the pseudo account that freshly minted epoch
// rewards pass through before fan-out to recipients.
const DisburseAccount = ReservedPrefix + "disburse"

// IsReservedAccount reports whether accountID lives in the system
// namespace.
func IsReservedAccount(accountID string) bool {
	return strings.HasPrefix(accountID, ReservedPrefix)
}

// LockedAccount returns the escrow account holding stake deposits for
// a resource.
func LockedAccount(resourceID string) string {
	return ReservedPrefix + "locked::" + resourceID
}

// ─────────────────────────────────────────────────────────────
// Economic parameters
// ─────────────────────────────────────────────────────────────

const (
	// DepositFeePercent is charged on top of every stake deposit and
	// immediately distributed as income on the staked resource.
	DepositFeePercent = 10

	// OwnerIncomeShare is the resource owner's cut of distributed
	// income, in percent. The remainder is split across stakers.
	OwnerIncomeShare = 60

	// OwnerPieceShare is the resource owner's cut of a tip when the
	// resource has prior tippers, in percent.
	OwnerPieceShare = 80

	// CollectionShare is the fraction of the owner's tip cut that is
	// redirected to the resource's collection, in percent.
	CollectionShare = 25
)

// DefaultEpochInterval is how often the background worker attempts a
// reward disbursement.
const DefaultEpochInterval = 24 * time.Hour

const (
	defaultRetryAttempts = 3
	defaultRetryBackoff  = 50 * time.Millisecond
)

// DefaultRewardPerAccount is minted per qualifying account each epoch.
func DefaultRewardPerAccount() types.Amount { return types.Tokens(100) }

// AccountChecker reports whether an account exists. When configured,
// transfers to unknown non-reserved accounts are rejected.
type AccountChecker func(ctx context.Context, accountID string) (bool, error)

// ─────────────────────────────────────────────────────────────
// Ledger
// ─────────────────────────────────────────────────────────────

// Ledger is the engine facade. All methods are safe for concurrent
// use provided the underlying store is.
type Ledger struct {
	store  store.Store
	hooks  *hook.Registry
	logger *slog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand

	accountCheck AccountChecker

	epochInterval    time.Duration
	rewardPerAccount types.Amount

	ownerIncomeShare int64
	ownerPieceShare  int64
	collectionShare  int64

	retryAttempts int
	retryBackoff  time.Duration

	disburseMu sync.Mutex

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithHook registers a hook at construction time. Registration errors
// (duplicate names) are logged and the hook is skipped.
func WithHook(h hook.Hook) Option {
	return func(l *Ledger) {
		if err := l.hooks.Register(h); err != nil {
			l.logger.Warn("hook registration failed", "hook", h.Name(), "error", err)
		}
	}
}

// WithRand sets the randomness source used for activity point jitter.
// Pass a seeded source for deterministic tests.
func WithRand(rng *rand.Rand) Option {
	return func(l *Ledger) {
		if rng != nil {
			l.rng = rng
		}
	}
}

// WithEpochInterval sets how often the background worker attempts a
// disbursement. The epoch idempotency key follows the interval, so a
// sub-daily interval mints once per boundary rather than once per day.
func WithEpochInterval(d time.Duration) Option {
	return func(l *Ledger) {
		if d > 0 {
			l.epochInterval = d
		}
	}
}

// WithRewardPerAccount sets the amount minted per qualifying account
// each epoch.
func WithRewardPerAccount(a types.Amount) Option {
	return func(l *Ledger) {
		if a.IsPositive() {
			l.rewardPerAccount = a
		}
	}
}

// WithShares overrides the income, piece and collection split
// percentages. Values outside [0, 100] are ignored.
func WithShares(ownerIncome, ownerPiece, collection int64) Option {
	return func(l *Ledger) {
		if ownerIncome >= 0 && ownerIncome <= 100 {
			l.ownerIncomeShare = ownerIncome
		}
		if ownerPiece >= 0 && ownerPiece <= 100 {
			l.ownerPieceShare = ownerPiece
		}
		if collection >= 0 && collection <= 100 {
			l.collectionShare = collection
		}
	}
}

// WithRetryConfig tunes retries of transfers that fail with a
// concurrency conflict.
func WithRetryConfig(attempts int, backoff time.Duration) Option {
	return func(l *Ledger) {
		if attempts > 0 {
			l.retryAttempts = attempts
		}
		if backoff > 0 {
			l.retryBackoff = backoff
		}
	}
}

// WithAccountChecker enables destination account validation on
// user-facing transfers.
func WithAccountChecker(check AccountChecker) Option {
	return func(l *Ledger) { l.accountCheck = check }
}

// New constructs a Ledger backed by s.
func New(s store.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:            s,
		hooks:            hook.NewRegistry(),
		logger:           slog.Default(),
		rng:              rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		epochInterval:    DefaultEpochInterval,
		rewardPerAccount: DefaultRewardPerAccount(),
		ownerIncomeShare: OwnerIncomeShare,
		ownerPieceShare:  OwnerPieceShare,
		collectionShare:  CollectionShare,
		retryAttempts:    defaultRetryAttempts,
		retryBackoff:     defaultRetryBackoff,
		stopChan:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.hooks.WithLogger(l.logger)
	return l
}

// Hooks exposes the hook registry for registration after construction.
func (l *Ledger) Hooks() *hook.Registry { return l.hooks }

// Start migrates the store, notifies hooks and launches the epoch
// disbursement worker.
func (l *Ledger) Start(ctx context.Context) error {
	if err := l.store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate store: %w", err)
	}
	l.hooks.EmitInit(ctx, l)

	l.wg.Add(1)
	go l.epochWorker()

	l.logger.Info("ledger started",
		"epoch_interval", l.epochInterval,
		"reward_per_account", l.rewardPerAccount.String(),
		"hooks", l.hooks.Count())
	return nil
}

// Stop halts the epoch worker, notifies hooks and closes the store.
func (l *Ledger) Stop(ctx context.Context) error {
	l.stopOnce.Do(func() { close(l.stopChan) })
	l.wg.Wait()
	l.hooks.EmitShutdown(ctx)
	if err := l.store.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	l.logger.Info("ledger stopped")
	return nil
}

// epochWorker runs Disburse on a fixed interval until Stop.
func (l *Ledger) epochWorker() {
	defer l.wg.Done()

	ticker := time.NewTicker(l.epochInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			_, err := l.Disburse(ctx)
			cancel()
			switch {
			case err == nil:
			case IsAlreadyMinted(err):
				l.logger.Debug("epoch already disbursed")
			default:
				l.logger.Error("epoch disbursement failed", "error", err)
			}
		}
	}
}

// withRetry runs fn, retrying with linear backoff while the error is
// a transient concurrency conflict.
func (l *Ledger) withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= l.retryAttempts; attempt++ {
		err = fn()
		if err == nil || !IsRetryable(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.retryBackoff * time.Duration(attempt)):
		}
	}
	return err
}

// jitter draws the randomized point award for a base point value.
func (l *Ledger) jitter(base, lowerBound int) int {
	l.rngMu.Lock()
	defer l.rngMu.Unlock()
	return activity.Jitter(l.rng, base, lowerBound)
}
