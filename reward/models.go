// Package reward implements the epoch reward ranking and the rank-weighted
// split of newly minted supply.
package reward

import (
	"math"
	"math/big"
	"sort"

	"github.com/hdriqi/paras-backend/activity"
	"github.com/hdriqi/paras-backend/types"
)

// PointCap is the maximum point value counted per account when ranking.
const PointCap = 100

// shareScale quantizes float weights to parts-per-billion before any token
// arithmetic. Token amounts are computed exclusively in big-int from there.
const shareScale = 1_000_000_000

// Payout is one account's computed share of an epoch disbursement.
type Payout struct {
	AccountID string       `json:"account_id"`
	Point     int          `json:"point"`
	Tokens    types.Amount `json:"tokens"`
}

// Rank orders qualifying accounts for disbursement: points capped at
// PointCap, descending, ties broken by account id ascending. The tie-break
// is deliberate and fixed; rank order decides who absorbs rounding dust.
func Rank(points []activity.Point) []activity.Point {
	ranked := make([]activity.Point, 0, len(points))
	for _, p := range points {
		if p.Point <= 0 {
			continue
		}
		if p.Point > PointCap {
			p.Point = PointCap
		}
		ranked = append(ranked, p)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Point != ranked[j].Point {
			return ranked[i].Point > ranked[j].Point
		}
		return ranked[i].AccountID < ranked[j].AccountID
	})
	return ranked
}

// Split divides totalMinted across n ranked recipients using the reward
// curve. The curve weights are evaluated in float64 (log and fractional
// powers have no integer form), quantized to integers at shareScale, and
// all token arithmetic is big-int after that. Quantization dust goes to
// rank 0, so the returned amounts always sum to exactly totalMinted.
func Split(totalMinted types.Amount, n int) []types.Amount {
	if n <= 0 {
		return nil
	}

	weights := make([]float64, n)
	var sum float64
	for i := 0; i < n; i++ {
		weights[i] = weight(i, n)
		sum += weights[i]
	}

	total := totalMinted.BigInt()
	scale := big.NewInt(shareScale)

	out := make([]types.Amount, n)
	distributed := new(big.Int)
	for i := 0; i < n; i++ {
		scaled := big.NewInt(int64(math.Round(weights[i] / sum * shareScale)))
		tokens := new(big.Int).Mul(total, scaled)
		tokens.Quo(tokens, scale)
		distributed.Add(distributed, tokens)
		out[i] = mustAmount(tokens)
	}

	// Quantization dust to rank 0.
	dust := new(big.Int).Sub(total, distributed)
	if dust.Sign() > 0 {
		out[0] = out[0].Add(mustAmount(dust))
	} else if dust.Sign() < 0 {
		out[0] = out[0].Sub(mustAmount(new(big.Int).Neg(dust)))
	}
	return out
}

// weight is the reward curve for rank index i of n:
//
//	log10(n + 1 - i)^2 / i^(0.1 * |1 - (n-i)/n|)
//
// At i = 0 the exponent is 0, so the denominator is 1.
func weight(i, n int) float64 {
	num := math.Pow(math.Log10(float64(n+1-i)), 2)
	exp := 0.1 * math.Abs(1-float64(n-i)/float64(n))
	den := math.Pow(float64(i), exp)
	return num / den
}

func mustAmount(i *big.Int) types.Amount {
	a, err := types.FromBigInt(i)
	if err != nil {
		panic("reward: " + err.Error())
	}
	return a
}
