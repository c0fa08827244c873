package reward

import (
	"testing"

	"github.com/hdriqi/paras-backend/activity"
	"github.com/hdriqi/paras-backend/types"
)

func TestRank(t *testing.T) {
	points := []activity.Point{
		{AccountID: "alice", Point: 10},
		{AccountID: "bob", Point: 180},
		{AccountID: "carol", Point: 50},
		{AccountID: "dave", Point: 0},
	}

	ranked := Rank(points)

	if len(ranked) != 3 {
		t.Fatalf("qualifying accounts: got %d, want 3", len(ranked))
	}
	if ranked[0].AccountID != "bob" || ranked[0].Point != PointCap {
		t.Errorf("rank 0: got %s/%d, want bob capped at %d", ranked[0].AccountID, ranked[0].Point, PointCap)
	}
	if ranked[1].AccountID != "carol" || ranked[2].AccountID != "alice" {
		t.Errorf("rank order: got %s, %s", ranked[1].AccountID, ranked[2].AccountID)
	}
}

func TestRankTieBreak(t *testing.T) {
	points := []activity.Point{
		{AccountID: "zoe", Point: 40},
		{AccountID: "amy", Point: 40},
		{AccountID: "mia", Point: 40},
	}

	ranked := Rank(points)

	want := []string{"amy", "mia", "zoe"}
	for i, w := range want {
		if ranked[i].AccountID != w {
			t.Errorf("rank %d: got %s, want %s", i, ranked[i].AccountID, w)
		}
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	points := []activity.Point{{AccountID: "alice", Point: 500}}
	Rank(points)
	if points[0].Point != 500 {
		t.Errorf("input mutated: %d", points[0].Point)
	}
}

func TestSplitSumsExactly(t *testing.T) {
	rewardPerAccount := types.Tokens(100)

	for _, n := range []int{1, 2, 3, 5, 10, 100, 1000} {
		totalMinted := rewardPerAccount.Mul(int64(n))
		shares := Split(totalMinted, n)

		if len(shares) != n {
			t.Fatalf("n=%d: got %d shares", n, len(shares))
		}
		if sum := types.SumAmounts(shares...); !sum.Equal(totalMinted) {
			t.Errorf("n=%d: shares sum to %s, want %s", n, sum, totalMinted)
		}
	}
}

func TestSplitMonotoneByRank(t *testing.T) {
	shares := Split(types.Tokens(100).Mul(10), 10)

	for i := 1; i < len(shares); i++ {
		if shares[i].GreaterThan(shares[i-1]) {
			t.Errorf("rank %d share %s exceeds rank %d share %s",
				i, shares[i], i-1, shares[i-1])
		}
	}
	if !shares[0].IsPositive() {
		t.Error("top rank share must be positive")
	}
}

func TestSplitSingleRecipient(t *testing.T) {
	total := types.Tokens(100)
	shares := Split(total, 1)

	if len(shares) != 1 || !shares[0].Equal(total) {
		t.Errorf("single recipient should take everything: got %v", shares)
	}
}

func TestSplitThreeAccounts(t *testing.T) {
	// Point inputs [10, 100, 50] qualify three accounts; the minted
	// total is 3 * rewardPerAccount and the shares must reproduce it
	// exactly.
	ranked := Rank([]activity.Point{
		{AccountID: "alice", Point: 10},
		{AccountID: "bob", Point: 100},
		{AccountID: "carol", Point: 50},
	})
	totalMinted := types.Tokens(100).Mul(int64(len(ranked)))
	shares := Split(totalMinted, len(ranked))

	if sum := types.SumAmounts(shares...); !sum.Equal(totalMinted) {
		t.Errorf("shares sum to %s, want %s", sum, totalMinted)
	}
	for i, s := range shares {
		if !s.IsPositive() {
			t.Errorf("rank %d share is not positive: %s", i, s)
		}
	}
}
