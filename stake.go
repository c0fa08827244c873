package ledger

import (
	"context"
	"fmt"

	"github.com/hdriqi/paras-backend/activity"
	"github.com/hdriqi/paras-backend/resource"
	"github.com/hdriqi/paras-backend/stake"
	"github.com/hdriqi/paras-backend/txlog"
	"github.com/hdriqi/paras-backend/types"
)

// Deposit locks value behind a resource as stake. A fee of
// DepositFeePercent on top of the deposit is charged and immediately
// distributed as income on that resource, so the account needs
// value plus fee available. Returns the account's new balance.
func (l *Ledger) Deposit(ctx context.Context, accountID, resourceID string, value types.Amount) (types.Amount, error) {
	if err := validateStakeArgs(accountID, resourceID, value); err != nil {
		return types.ZeroAmount(), err
	}

	res, err := l.store.GetResource(ctx, resourceID)
	if err != nil {
		return types.ZeroAmount(), fmt.Errorf("deposit to %s: %w", resourceID, err)
	}

	fee := value.Percent(DepositFeePercent)
	need := value.Add(fee)
	balance, err := l.store.BalanceOf(ctx, accountID)
	if err != nil {
		return types.ZeroAmount(), err
	}
	if balance.LessThan(need) {
		return types.ZeroAmount(), fmt.Errorf("deposit needs %s (incl. fee %s), have %s: %w",
			need, fee, balance, ErrInsufficientFunds)
	}

	lockTag := txlog.SystemTag(txlog.KindLock, resourceID)
	if err := l.InternalTransfer(ctx, accountID, LockedAccount(resourceID), value, lockTag); err != nil {
		return types.ZeroAmount(), err
	}

	// Fee splits over the stakes as they were before this deposit, so
	// none of it flows straight back to the depositor.
	if fee.IsPositive() {
		feeTag := txlog.SystemTag(txlog.KindFee, resourceID)
		if err := l.distributeIncome(ctx, accountID, res, fee, feeTag); err != nil {
			return types.ZeroAmount(), fmt.Errorf("distribute deposit fee: %w", err)
		}
	}

	err = l.withRetry(ctx, func() error {
		return l.store.IncrementStake(ctx, resourceID, accountID, value)
	})
	if err != nil {
		// The lock transfer already committed. Give the tokens back so
		// the locked balance never exceeds the recorded stakes.
		unlockTag := txlog.SystemTag(txlog.KindUnlock, resourceID)
		if uerr := l.InternalTransfer(ctx, LockedAccount(resourceID), accountID, value, unlockTag); uerr != nil {
			l.logger.Error("stake rollback failed",
				"account", accountID, "resource", resourceID,
				"value", value.String(), "error", uerr)
			return types.ZeroAmount(), fmt.Errorf("record stake for %s on %s (rollback failed: %v): %w",
				accountID, resourceID, uerr, err)
		}
		return types.ZeroAmount(), fmt.Errorf("record stake for %s on %s: %w", accountID, resourceID, err)
	}

	if !IsReservedAccount(accountID) {
		if _, err := l.AddActivity(ctx, accountID, activity.ActionDepositMemento); err != nil {
			l.logger.Warn("deposit activity not recorded", "account", accountID, "error", err)
		}
	}

	l.logger.Info("stake deposited",
		"account", accountID, "resource", resourceID,
		"value", value.String(), "fee", fee.String())
	return l.store.BalanceOf(ctx, accountID)
}

// Withdraw releases previously staked value back to the account. No
// fee is charged on the way out. Returns the account's new balance.
func (l *Ledger) Withdraw(ctx context.Context, accountID, resourceID string, value types.Amount) (types.Amount, error) {
	if err := validateStakeArgs(accountID, resourceID, value); err != nil {
		return types.ZeroAmount(), err
	}

	staked, err := l.store.GetStake(ctx, resourceID, accountID)
	if err != nil {
		return types.ZeroAmount(), err
	}
	if staked.LessThan(value) {
		return types.ZeroAmount(), fmt.Errorf("withdraw %s with %s staked: %w",
			value, staked, ErrInsufficientStake)
	}

	unlockTag := txlog.SystemTag(txlog.KindUnlock, resourceID)
	if err := l.InternalTransfer(ctx, LockedAccount(resourceID), accountID, value, unlockTag); err != nil {
		return types.ZeroAmount(), err
	}
	err = l.withRetry(ctx, func() error {
		return l.store.DecrementStake(ctx, resourceID, accountID, value)
	})
	if err != nil {
		// The unlock transfer already committed. Re-lock the tokens so
		// the recorded stakes never exceed the locked balance.
		relockTag := txlog.SystemTag(txlog.KindLock, resourceID)
		if rerr := l.InternalTransfer(ctx, accountID, LockedAccount(resourceID), value, relockTag); rerr != nil {
			l.logger.Error("unstake rollback failed",
				"account", accountID, "resource", resourceID,
				"value", value.String(), "error", rerr)
			return types.ZeroAmount(), fmt.Errorf("record unstake for %s on %s (rollback failed: %v): %w",
				accountID, resourceID, rerr, err)
		}
		return types.ZeroAmount(), fmt.Errorf("record unstake for %s on %s: %w", accountID, resourceID, err)
	}

	l.logger.Info("stake withdrawn",
		"account", accountID, "resource", resourceID, "value", value.String())
	return l.store.BalanceOf(ctx, accountID)
}

// GetStake returns the stake an account holds on a resource.
func (l *Ledger) GetStake(ctx context.Context, resourceID, accountID string) (types.Amount, error) {
	if accountID == "" || resourceID == "" {
		return types.ZeroAmount(), ValidationError{Field: "accountID/resourceID", Message: "must not be empty"}
	}
	return l.store.GetStake(ctx, resourceID, accountID)
}

// Stakes returns every stake currently held on a resource.
func (l *Ledger) Stakes(ctx context.Context, resourceID string) ([]*stake.Stake, error) {
	if resourceID == "" {
		return nil, ValidationError{Field: "resourceID", Message: "must not be empty"}
	}
	return l.store.StakesByResource(ctx, resourceID)
}

// DistributeIncome splits value paid by an account across a resource's
// owner and stakers: the owner takes OwnerIncomeShare percent, the rest
// is divided across stakers proportional to stake. With no stake on the
// resource the owner takes everything. Truncation dust goes to the
// owner, so exactly value leaves the payer.
func (l *Ledger) DistributeIncome(ctx context.Context, payer, resourceID string, value types.Amount) error {
	if err := validateStakeArgs(payer, resourceID, value); err != nil {
		return err
	}
	res, err := l.store.GetResource(ctx, resourceID)
	if err != nil {
		return fmt.Errorf("distribute income on %s: %w", resourceID, err)
	}
	return l.distributeIncome(ctx, payer, res, value, txlog.SystemTag(txlog.KindIncome, resourceID))
}

// distributeIncome fans value out from payer across res's owner and
// stakers. Individual payout failures are retried, then collected into
// a BatchError rather than silently dropped.
func (l *Ledger) distributeIncome(ctx context.Context, payer string, res *resource.Resource, value types.Amount, tag string) error {
	totalStake, err := l.store.TotalStake(ctx, res.ID)
	if err != nil {
		return fmt.Errorf("total stake on %s: %w", res.ID, err)
	}

	if totalStake.IsZero() {
		return l.InternalTransfer(ctx, payer, res.Owner, value, tag)
	}

	ownerCut := value.Percent(l.ownerIncomeShare)
	stakerPool := value.Sub(ownerCut)

	stakes, err := l.store.StakesByResource(ctx, res.ID)
	if err != nil {
		return fmt.Errorf("stakes on %s: %w", res.ID, err)
	}

	batch := &BatchError{Op: "distributeIncome"}
	paid := types.ZeroAmount()
	for _, st := range stakes {
		share := stakerPool.ScaleBy(st.Value, totalStake)
		if !share.IsPositive() {
			continue
		}
		paid = paid.Add(share)
		if err := l.InternalTransfer(ctx, payer, st.AccountID, share, tag); err != nil {
			batch.Add(fmt.Errorf("staker %s: %w", st.AccountID, err))
		}
	}

	// Rounding dust from truncated staker shares folds into the owner
	// payout so the full value leaves the payer.
	ownerCut = ownerCut.Add(stakerPool.Sub(paid))
	if ownerCut.IsPositive() {
		if err := l.InternalTransfer(ctx, payer, res.Owner, ownerCut, tag); err != nil {
			batch.Add(fmt.Errorf("owner %s: %w", res.Owner, err))
		}
	}

	if batch.HasErrors() {
		l.hooks.EmitBatchFailed(ctx, batch.Op, batch)
		return batch
	}
	return nil
}

func validateStakeArgs(accountID, resourceID string, value types.Amount) error {
	if accountID == "" {
		return ValidationError{Field: "accountID", Message: "must not be empty"}
	}
	if resourceID == "" {
		return ValidationError{Field: "resourceID", Message: "must not be empty"}
	}
	if !value.IsPositive() {
		return ValidationError{Field: "value", Message: "must be positive"}
	}
	return nil
}
