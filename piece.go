package ledger

import (
	"context"
	"fmt"

	"github.com/hdriqi/paras-backend/ranking"
	"github.com/hdriqi/paras-backend/resource"
	"github.com/hdriqi/paras-backend/txlog"
	"github.com/hdriqi/paras-backend/types"
)

// Piece tips value to a resource. The first tip goes entirely to the
// owner; later tips give the owner OwnerPieceShare percent and split
// the rest across prior tippers proportional to their cumulative
// contribution. When the resource belongs to a collection,
// CollectionShare percent of the owner's cut is redirected to the
// collection as income. Truncation dust folds into the owner's cut, so
// exactly value leaves the tipper. Returns the tipper's new balance.
func (l *Ledger) Piece(ctx context.Context, tipper, resourceID string, value types.Amount) (types.Amount, error) {
	if err := validateStakeArgs(tipper, resourceID, value); err != nil {
		return types.ZeroAmount(), err
	}

	res, err := l.store.GetResource(ctx, resourceID)
	if err != nil {
		return types.ZeroAmount(), fmt.Errorf("piece to %s: %w", resourceID, err)
	}

	balance, err := l.store.BalanceOf(ctx, tipper)
	if err != nil {
		return types.ZeroAmount(), err
	}
	if balance.LessThan(value) {
		return types.ZeroAmount(), fmt.Errorf("piece %s with balance %s: %w",
			value, balance, ErrInsufficientFunds)
	}

	// Snapshot prior tippers before this tip lands in the log.
	totals, err := l.store.TipperTotals(ctx, resourceID)
	if err != nil {
		return types.ZeroAmount(), fmt.Errorf("tipper totals for %s: %w", resourceID, err)
	}

	batch := &BatchError{Op: "piece"}
	supporterTag := txlog.SystemTag(txlog.KindPieceSupporter, resourceID)

	ownerCut := value
	if len(totals) > 0 {
		ownerCut = value.Percent(l.ownerPieceShare)
		pool := value.Sub(ownerCut)

		allTotal := types.ZeroAmount()
		for _, t := range totals {
			allTotal = allTotal.Add(t.Total)
		}

		paid := types.ZeroAmount()
		for _, t := range totals {
			cut := pool.ScaleBy(t.Total, allTotal)
			if !cut.IsPositive() {
				continue
			}
			paid = paid.Add(cut)
			if err := l.InternalTransfer(ctx, tipper, t.AccountID, cut, supporterTag); err != nil {
				batch.Add(fmt.Errorf("supporter %s: %w", t.AccountID, err))
			}
		}
		ownerCut = ownerCut.Add(pool.Sub(paid))
	}

	// A resource inside a collection forwards part of the owner's cut
	// to the collection as regular income.
	if res.CollectionID != "" {
		colCut := ownerCut.Percent(l.collectionShare)
		if colCut.IsPositive() {
			ownerCut = ownerCut.Sub(colCut)
			col, err := l.store.GetResource(ctx, res.CollectionID)
			if err != nil {
				batch.Add(fmt.Errorf("collection %s: %w", res.CollectionID, err))
			} else {
				colTag := txlog.SystemTag(txlog.KindIncome, res.CollectionID)
				if err := l.distributeIncome(ctx, tipper, col, colCut, colTag); err != nil {
					batch.Add(fmt.Errorf("collection %s: %w", res.CollectionID, err))
				}
			}
		}
	}

	if ownerCut.IsPositive() {
		ownerTag := txlog.SystemTag(txlog.KindPiece, resourceID)
		if err := l.InternalTransfer(ctx, tipper, res.Owner, ownerCut, ownerTag); err != nil {
			batch.Add(fmt.Errorf("owner %s: %w", res.Owner, err))
		}
	}

	if batch.HasErrors() {
		l.hooks.EmitBatchFailed(ctx, batch.Op, batch)
		return types.ZeroAmount(), batch
	}

	if err := l.updateScore(ctx, res, value, totals, tipper); err != nil {
		// Score is derived state; a failed update never fails the tip.
		l.logger.Warn("score update failed", "resource", resourceID, "error", err)
	}

	return l.store.BalanceOf(ctx, tipper)
}

// updateScore folds a new tip into the resource's hotness score. The
// score only ever moves up.
func (l *Ledger) updateScore(ctx context.Context, res *resource.Resource, value types.Amount, priorTotals []txlog.TipperTotal, tipper string) error {
	score, err := l.store.GetScore(ctx, res.ID)
	if err != nil && !IsNotFound(err) {
		return err
	}
	if score == nil {
		score = ranking.NewPostScore(res.ID)
	}

	score.TippedValue = score.TippedValue.Add(value)
	score.DistinctTipper = len(priorTotals)
	for _, t := range priorTotals {
		if t.AccountID == tipper {
			score.DistinctTipper--
			break
		}
	}
	score.DistinctTipper++ // current tipper

	inc := ranking.Increment(score.TippedValue, score.DistinctTipper)
	if inc > 0 {
		if next := ranking.BaseScore(res.CreatedAt) + inc; next > score.Score {
			score.Score = next
		}
	}
	return l.store.UpsertScore(ctx, score)
}
