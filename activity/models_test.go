package activity

import (
	"math/rand/v2"
	"testing"
)

func TestBasePoint(t *testing.T) {
	tests := []struct {
		action Action
		point  int
		ok     bool
	}{
		{ActionCreatePost, 8, true},
		{ActionCreatePostMementoOwner, 3, true},
		{ActionCreateComment, 3, true},
		{ActionCreateMemento, 8, true},
		{ActionDeletePost, 6, true},
		{ActionDeleteComment, 2, true},
		{ActionRedactPost, 4, true},
		{ActionDepositMemento, 10, true},
		{ActionTransfer, 1, true},
		{Action("unknown"), 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			point, ok := BasePoint(tt.action)
			if point != tt.point || ok != tt.ok {
				t.Errorf("BasePoint(%s) = (%d, %v), want (%d, %v)",
					tt.action, point, ok, tt.point, tt.ok)
			}
		})
	}
}

func TestJitterDeterministic(t *testing.T) {
	a := rand.New(rand.NewPCG(1, 2))
	b := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 100; i++ {
		if got, want := Jitter(a, 8, 1), Jitter(b, 8, 1); got != want {
			t.Fatalf("same seed diverged at draw %d: %d vs %d", i, got, want)
		}
	}
}

func TestJitterBounds(t *testing.T) {
	rnd := rand.New(rand.NewPCG(42, 0))

	for _, base := range []int{1, 2, 8, 10} {
		for i := 0; i < 1000; i++ {
			p := Jitter(rnd, base, 1)
			// base + base/(r*base + 1) with r in [0,1): the bonus sits
			// in (base/(base+1), base].
			if p < base || p > 2*base {
				t.Fatalf("Jitter(base=%d) = %d out of [%d, %d]", base, p, base, 2*base)
			}
		}
	}
}

func TestJitterAtLeastBaseWithZeroLowerBound(t *testing.T) {
	rnd := rand.New(rand.NewPCG(7, 7))

	for i := 0; i < 1000; i++ {
		if p := Jitter(rnd, 4, 0); p < 4 {
			t.Fatalf("Jitter with lowerBound 0 returned %d below base", p)
		}
	}
}

func TestNewHistoryEntry(t *testing.T) {
	e := NewHistoryEntry("alice", ActionCreatePost, DirectionAdd, 9)

	if e.AccountID != "alice" || e.Action != ActionCreatePost || e.Point != 9 {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.Direction != DirectionAdd {
		t.Errorf("direction: got %s", e.Direction)
	}
	if e.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}
