package ranking

import (
	"testing"
	"time"

	"github.com/hdriqi/paras-backend/types"
)

func TestIncrement(t *testing.T) {
	tests := []struct {
		name     string
		tipped   types.Amount
		tippers  int
		wantZero bool
	}{
		{"no tippers", types.Tokens(100), 0, true},
		{"single tipper", types.Tokens(100), 1, true}, // log10(1) == 0
		{"below one token", types.Units(1), 5, true},  // log5(~0) negative
		{"exactly one token", types.Tokens(1), 2, true},
		{"real tip", types.Tokens(25), 3, false},
		{"big tip", types.Tokens(100), 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inc := Increment(tt.tipped, tt.tippers)
			if tt.wantZero && inc != 0 {
				t.Errorf("Increment = %d, want 0", inc)
			}
			if !tt.wantZero && inc <= 0 {
				t.Errorf("Increment = %d, want > 0", inc)
			}
		})
	}
}

func TestIncrementGrowsWithTipping(t *testing.T) {
	small := Increment(types.Tokens(25), 3)
	large := Increment(types.Tokens(250), 3)
	if large <= small {
		t.Errorf("more tipped value should score higher: %d vs %d", large, small)
	}

	few := Increment(types.Tokens(25), 2)
	many := Increment(types.Tokens(25), 20)
	if many <= few {
		t.Errorf("more tippers should score higher: %d vs %d", many, few)
	}
}

func TestBaseScore(t *testing.T) {
	at := time.Date(2021, 4, 17, 0, 0, 0, 0, time.UTC)
	if got := BaseScore(at); got != at.UnixMilli() {
		t.Errorf("BaseScore = %d, want %d", got, at.UnixMilli())
	}
}

func TestNewPostScore(t *testing.T) {
	s := NewPostScore("post1")

	if s.ResourceID != "post1" {
		t.Errorf("ResourceID: got %s", s.ResourceID)
	}
	if !s.TippedValue.IsZero() || s.DistinctTipper != 0 || s.Score != 0 {
		t.Errorf("new score not zeroed: %+v", s)
	}
}
