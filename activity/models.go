// Package activity defines activity points: per-account balances earned by
// scored actions, plus the append-only history behind them.
package activity

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/hdriqi/paras-backend/id"
)

// Action is a scored user action.
type Action string

// Scored actions and their base point values.
const (
	ActionCreatePost             Action = "createPost"
	ActionCreatePostMementoOwner Action = "createPostMementoOwner"
	ActionCreateComment          Action = "createComment"
	ActionCreateMemento          Action = "createMemento"
	ActionDeletePost             Action = "deletePost"
	ActionDeleteComment          Action = "deleteComment"
	ActionRedactPost             Action = "redactPost"
	ActionDepositMemento         Action = "depositMemento"
	ActionTransfer               Action = "transfer"
)

var basePoints = map[Action]int{
	ActionCreatePost:             8,
	ActionCreatePostMementoOwner: 3,
	ActionCreateComment:          3,
	ActionCreateMemento:          8,
	ActionDeletePost:             6,
	ActionDeleteComment:          2,
	ActionRedactPost:             4,
	ActionDepositMemento:         10,
	ActionTransfer:               1,
}

// BasePoint returns the base point value for an action, or false for an
// unknown action.
func BasePoint(a Action) (int, bool) {
	p, ok := basePoints[a]
	return p, ok
}

// Direction records whether a history entry added to or slashed a balance.
type Direction string

const (
	DirectionAdd   Direction = "add"
	DirectionSlash Direction = "slash"
)

// Point is an account's current point balance.
type Point struct {
	AccountID string `json:"account_id"`
	Point     int    `json:"point"`
}

// HistoryEntry is one immutable row of the activity history.
type HistoryEntry struct {
	ID        id.ID     `json:"id"`
	AccountID string    `json:"account_id"`
	Action    Action    `json:"action"`
	Direction Direction `json:"direction"`
	Point     int       `json:"point"`
	CreatedAt time.Time `json:"created_at"`
}

// NewHistoryEntry builds a history entry with a fresh ID and timestamp.
func NewHistoryEntry(accountID string, action Action, dir Direction, point int) *HistoryEntry {
	return &HistoryEntry{
		ID:        id.NewActivityID(),
		AccountID: accountID,
		Action:    action,
		Direction: dir,
		Point:     point,
		CreatedAt: time.Now().UTC(),
	}
}

// Jitter computes the awarded or slashed point value for an action:
// base + round(base / (random*base + lowerBound)), with lowerBound 1 for
// additions and 0 for slashes. The generator is injected so tests can seed
// it deterministically.
func Jitter(rnd *rand.Rand, base, lowerBound int) int {
	denom := rnd.Float64()*float64(base) + float64(lowerBound)
	if denom == 0 {
		return base + base
	}
	return base + int(math.Round(float64(base)/denom))
}
