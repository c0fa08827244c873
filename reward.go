package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/hdriqi/paras-backend/reward"
	"github.com/hdriqi/paras-backend/txlog"
	"github.com/hdriqi/paras-backend/types"
)

// EpochKey returns the idempotency key for the disbursement epoch
// containing t: t truncated to the epoch boundary in UTC. Day-aligned
// epochs keep the plain calendar-date form, shorter ones carry the
// full boundary timestamp. One mint per key, ever.
func EpochKey(t time.Time, interval time.Duration) string {
	if interval <= 0 {
		interval = DefaultEpochInterval
	}
	boundary := t.UTC().Truncate(interval)
	if interval%(24*time.Hour) == 0 {
		return boundary.Format("2006-01-02")
	}
	return boundary.Format(time.RFC3339)
}

// Disburse runs one epoch reward round: rank accounts by capped
// activity points, mint RewardPerAccount tokens per qualifying
// account into the disburse pseudo-account, fan the mint out along the
// reward curve, then reset all point balances.
//
// The epoch claim is durable: a retried run for the same key returns
// ErrEpochAlreadyMinted and never mints twice. A concurrent run in the
// same process returns ErrDisburseInProgress. Partial fan-out failures
// after the mint surface as a BatchError for operator resolution; the
// epoch stays claimed.
func (l *Ledger) Disburse(ctx context.Context) ([]reward.Payout, error) {
	if !l.disburseMu.TryLock() {
		return nil, ErrDisburseInProgress
	}
	defer l.disburseMu.Unlock()

	epochKey := EpochKey(time.Now(), l.epochInterval)
	if err := l.store.ClaimEpoch(ctx, epochKey); err != nil {
		return nil, fmt.Errorf("claim epoch %s: %w", epochKey, err)
	}

	points, err := l.store.ActivePoints(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active points: %w", err)
	}
	eligible := points[:0]
	for _, p := range points {
		if !IsReservedAccount(p.AccountID) {
			eligible = append(eligible, p)
		}
	}
	ranked := reward.Rank(eligible)

	n := len(ranked)
	if n == 0 {
		l.logger.Info("epoch disbursed", "epoch", epochKey, "accounts", 0)
		return nil, l.store.ResetPoints(ctx)
	}

	totalMinted := l.rewardPerAccount.Mul(int64(n))
	shares := reward.Split(totalMinted, n)

	// Shares must reproduce the mint exactly before any tokens move.
	if !types.SumAmounts(shares...).Equal(totalMinted) {
		return nil, fmt.Errorf("epoch %s: share sum diverges from mint %s: %w",
			epochKey, totalMinted, ErrFatalConsistency)
	}

	mintTag := txlog.SystemTag(txlog.KindRewardDisburse, "")
	mint := txlog.New("", DisburseAccount, totalMinted, mintTag)
	if err := l.withRetry(ctx, func() error { return l.store.Mint(ctx, mint) }); err != nil {
		return nil, fmt.Errorf("mint epoch reward %s: %w", epochKey, err)
	}
	l.hooks.EmitMint(ctx, mint)

	batch := &BatchError{Op: "disburse"}
	payouts := make([]reward.Payout, 0, n)
	for i, p := range ranked {
		if err := l.InternalTransfer(ctx, DisburseAccount, p.AccountID, shares[i], mintTag); err != nil {
			batch.Add(fmt.Errorf("payout %s: %w", p.AccountID, err))
			continue
		}
		payouts = append(payouts, reward.Payout{
			AccountID: p.AccountID,
			Point:     p.Point,
			Tokens:    shares[i],
		})
	}

	if batch.HasErrors() {
		l.hooks.EmitBatchFailed(ctx, batch.Op, batch)
		return payouts, batch
	}

	if err := l.store.ResetPoints(ctx); err != nil {
		return payouts, fmt.Errorf("reset points after epoch %s: %w", epochKey, err)
	}

	l.hooks.EmitDisbursed(ctx, epochKey, payouts)
	l.logger.Info("epoch disbursed",
		"epoch", epochKey, "accounts", n, "minted", totalMinted.String())
	return payouts, nil
}
