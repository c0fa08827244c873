package ledger

import (
	"context"
	"fmt"

	"github.com/hdriqi/paras-backend/activity"
	"github.com/hdriqi/paras-backend/txlog"
	"github.com/hdriqi/paras-backend/types"
)

// BalanceOf returns the current balance of an account. Accounts that
// never received tokens have a zero balance.
func (l *Ledger) BalanceOf(ctx context.Context, accountID string) (types.Amount, error) {
	if accountID == "" {
		return types.ZeroAmount(), ValidationError{Field: "accountID", Message: "must not be empty"}
	}
	return l.store.BalanceOf(ctx, accountID)
}

// TotalSupply returns circulating supply: everything minted minus
// everything burned.
func (l *Ledger) TotalSupply(ctx context.Context) (types.Amount, error) {
	return l.store.TotalSupply(ctx)
}

// Transactions returns an account's log entries, newest first, for both
// directions. A non-positive limit applies the default page size of 5.
func (l *Ledger) Transactions(ctx context.Context, accountID string, skip, limit int64) ([]*txlog.Entry, error) {
	if accountID == "" {
		return nil, ValidationError{Field: "accountID", Message: "must not be empty"}
	}
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 5
	}
	return l.store.Transactions(ctx, accountID, skip, limit)
}

// Transfer moves value from one user account to another. The tag is
// caller-supplied free text and is sanitized so it can never collide
// with system tags. A successful transfer registers transfer activity
// for the sender and returns the sender's new balance.
func (l *Ledger) Transfer(ctx context.Context, from, to string, value types.Amount, tag string) (types.Amount, error) {
	if err := l.validateTransfer(ctx, from, to, value); err != nil {
		return types.ZeroAmount(), err
	}

	entry := txlog.New(from, to, value, txlog.Sanitize(tag))
	if err := l.apply(ctx, entry); err != nil {
		return types.ZeroAmount(), err
	}

	if from != to && !IsReservedAccount(from) {
		if _, err := l.AddActivity(ctx, from, activity.ActionTransfer); err != nil {
			l.logger.Warn("transfer activity not recorded", "account", from, "error", err)
		}
	}

	return l.store.BalanceOf(ctx, from)
}

// InternalTransfer moves value between accounts with a structured
// system tag, bypassing tag sanitization, destination validation and
// activity registration. Distribution fan-outs are built on it.
func (l *Ledger) InternalTransfer(ctx context.Context, from, to string, value types.Amount, tag string) error {
	if from == "" || to == "" {
		return ValidationError{Field: "account", Message: "must not be empty"}
	}
	if !value.IsPositive() {
		return ValidationError{Field: "value", Message: "must be positive"}
	}
	return l.apply(ctx, txlog.New(from, to, value, tag))
}

// Burn permanently removes value from an account and from circulating
// supply.
func (l *Ledger) Burn(ctx context.Context, accountID string, value types.Amount) error {
	if accountID == "" {
		return ValidationError{Field: "accountID", Message: "must not be empty"}
	}
	if !value.IsPositive() {
		return ValidationError{Field: "value", Message: "must be positive"}
	}

	entry := txlog.New(accountID, "", value, txlog.SystemTag(txlog.KindBurn, ""))
	err := l.withRetry(ctx, func() error { return l.store.Burn(ctx, entry) })
	if err != nil {
		return fmt.Errorf("burn %s from %s: %w", value, accountID, err)
	}

	l.hooks.EmitBurn(ctx, entry)
	l.logger.Info("tokens burned", "account", accountID, "value", value.String())
	return nil
}

// apply commits a transfer entry with bounded retries and emits the
// transfer event on success.
func (l *Ledger) apply(ctx context.Context, entry *txlog.Entry) error {
	err := l.withRetry(ctx, func() error { return l.store.ApplyTransfer(ctx, entry) })
	if err != nil {
		return fmt.Errorf("transfer %s from %s to %s: %w", entry.Value, entry.From, entry.To, err)
	}
	l.hooks.EmitTransfer(ctx, entry)
	return nil
}

func (l *Ledger) validateTransfer(ctx context.Context, from, to string, value types.Amount) error {
	if from == "" {
		return ValidationError{Field: "from", Message: "must not be empty"}
	}
	if to == "" {
		return ValidationError{Field: "to", Message: "must not be empty"}
	}
	if !value.IsPositive() {
		return ValidationError{Field: "value", Message: "must be positive"}
	}
	if l.accountCheck != nil && !IsReservedAccount(to) {
		exists, err := l.accountCheck(ctx, to)
		if err != nil {
			return fmt.Errorf("check account %s: %w", to, err)
		}
		if !exists {
			return fmt.Errorf("transfer to %s: %w", to, ErrAccountNotFound)
		}
	}
	return nil
}
