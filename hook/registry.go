package hook

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hdriqi/paras-backend/activity"
	"github.com/hdriqi/paras-backend/reward"
	"github.com/hdriqi/paras-backend/txlog"
)

// Registry manages all registered hooks and provides efficient dispatch.
// Hook interfaces are cached at registration so emission is a slice walk.
type Registry struct {
	mu     sync.RWMutex
	hooks  []Hook
	logger *slog.Logger

	onInit          []OnInit
	onShutdown      []OnShutdown
	onTransfer      []OnTransfer
	onMint          []OnMint
	onBurn          []OnBurn
	onPointsChanged []OnPointsChanged
	onDisbursed     []OnDisbursed
	onBatchFailed   []OnBatchFailed
}

// NewRegistry creates a new hook registry.
func NewRegistry() *Registry {
	return &Registry{logger: slog.Default()}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a hook to the registry and caches its interfaces.
func (r *Registry) Register(h Hook) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.hooks {
		if existing.Name() == h.Name() {
			return fmt.Errorf("hook: duplicate registration: %s", h.Name())
		}
	}
	r.hooks = append(r.hooks, h)

	if v, ok := h.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := h.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := h.(OnTransfer); ok {
		r.onTransfer = append(r.onTransfer, v)
	}
	if v, ok := h.(OnMint); ok {
		r.onMint = append(r.onMint, v)
	}
	if v, ok := h.(OnBurn); ok {
		r.onBurn = append(r.onBurn, v)
	}
	if v, ok := h.(OnPointsChanged); ok {
		r.onPointsChanged = append(r.onPointsChanged, v)
	}
	if v, ok := h.(OnDisbursed); ok {
		r.onDisbursed = append(r.onDisbursed, v)
	}
	if v, ok := h.(OnBatchFailed); ok {
		r.onBatchFailed = append(r.onBatchFailed, v)
	}

	r.logger.Info("hook registered", "name", h.Name())
	return nil
}

// Get returns a hook by name.
func (r *Registry) Get(name string) Hook {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.hooks {
		if h.Name() == name {
			return h
		}
	}
	return nil
}

// Count returns the number of registered hooks.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hooks)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all hooks that implement it.
func (r *Registry) EmitInit(ctx context.Context, engine interface{}) {
	r.mu.RLock()
	hooks := r.onInit
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnInit(ctx, engine)
		}); err != nil {
			r.logger.Warn("hook OnInit failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitShutdown calls OnShutdown for all hooks that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	hooks := r.onShutdown
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("hook OnShutdown failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitTransfer emits a committed transfer event.
func (r *Registry) EmitTransfer(ctx context.Context, e *txlog.Entry) {
	r.mu.RLock()
	hooks := r.onTransfer
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnTransfer(ctx, e)
		}); err != nil {
			r.logger.Warn("hook OnTransfer failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitMint emits a mint event.
func (r *Registry) EmitMint(ctx context.Context, e *txlog.Entry) {
	r.mu.RLock()
	hooks := r.onMint
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnMint(ctx, e)
		}); err != nil {
			r.logger.Warn("hook OnMint failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitBurn emits a burn event.
func (r *Registry) EmitBurn(ctx context.Context, e *txlog.Entry) {
	r.mu.RLock()
	hooks := r.onBurn
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnBurn(ctx, e)
		}); err != nil {
			r.logger.Warn("hook OnBurn failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitPointsChanged emits an activity point change event.
func (r *Registry) EmitPointsChanged(ctx context.Context, accountID string, action activity.Action, dir activity.Direction, point int) {
	r.mu.RLock()
	hooks := r.onPointsChanged
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnPointsChanged(ctx, accountID, action, dir, point)
		}); err != nil {
			r.logger.Warn("hook OnPointsChanged failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitDisbursed emits an epoch disbursement event.
func (r *Registry) EmitDisbursed(ctx context.Context, epochKey string, payouts []reward.Payout) {
	r.mu.RLock()
	hooks := r.onDisbursed
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnDisbursed(ctx, epochKey, payouts)
		}); err != nil {
			r.logger.Warn("hook OnDisbursed failed", "hook", h.Name(), "error", err)
		}
	}
}

// EmitBatchFailed emits a fan-out batch failure event.
func (r *Registry) EmitBatchFailed(ctx context.Context, op string, batchErr error) {
	r.mu.RLock()
	hooks := r.onBatchFailed
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.callWithTimeout(ctx, h.Name(), func() error {
			return h.OnBatchFailed(ctx, op, batchErr)
		}); err != nil {
			r.logger.Warn("hook OnBatchFailed failed", "hook", h.Name(), "error", err)
		}
	}
}

// callWithTimeout calls a hook function with a timeout.
// Hooks should never block the ledger pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, hookName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("hook timeout: %s", hookName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
