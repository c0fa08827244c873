// Package ranking derives a feed-ordering score for tipped posts. Scores
// are ranking keys only: they carry no conservation requirement, so this is
// the one place float math is acceptable.
package ranking

import (
	"math"
	"math/big"
	"time"

	"github.com/hdriqi/paras-backend/types"
)

// ScoreScale converts one unit of the tipping curve into feed time. A post
// gains roughly one hour of feed ranking per curve unit.
const ScoreScale = 3_600_000 // milliseconds

// PostScore is the derived ranking state of one resource.
type PostScore struct {
	types.Entity

	ResourceID     string       `json:"resource_id"`
	TippedValue    types.Amount `json:"tipped_value"` // cumulative value ever tipped
	DistinctTipper int          `json:"distinct_tipper"`
	Score          int64        `json:"score"` // monotonically non-decreasing
}

// NewPostScore returns the zero ranking state for a resource.
func NewPostScore(resourceID string) *PostScore {
	return &PostScore{
		Entity:      types.NewEntity(),
		ResourceID:  resourceID,
		TippedValue: types.ZeroAmount(),
	}
}

// Increment computes the score contribution for a resource with the given
// cumulative tipped value and distinct tipper count:
//
//	round(ScoreScale * log5(tipped/1e18) * log10(tippers))
//
// Values that produce a non-positive increment return 0; callers skip the
// update in that case so the stored score never decreases.
func Increment(tipped types.Amount, distinctTippers int) int64 {
	if distinctTippers < 1 {
		return 0
	}
	tokens := amountToFloat(tipped)
	if tokens <= 0 {
		return 0
	}
	inc := math.Round(ScoreScale * logBase(tokens, 5) * math.Log10(float64(distinctTippers)))
	if inc <= 0 {
		return 0
	}
	return int64(inc)
}

// BaseScore anchors a score to the resource's creation time in epoch
// milliseconds, matching the feed's time ordering.
func BaseScore(createdAt time.Time) int64 {
	return createdAt.UnixMilli()
}

func logBase(n, base float64) float64 {
	return math.Log(n) / math.Log(base)
}

var unitsPerToken = new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(types.Decimals), nil))

func amountToFloat(a types.Amount) float64 {
	f := new(big.Float).SetInt(a.BigInt())
	v, _ := f.Quo(f, unitsPerToken).Float64()
	return v
}
