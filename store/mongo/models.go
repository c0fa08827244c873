package mongo

import (
	"fmt"
	"time"

	"github.com/hdriqi/paras-backend/activity"
	"github.com/hdriqi/paras-backend/id"
	"github.com/hdriqi/paras-backend/ranking"
	"github.com/hdriqi/paras-backend/stake"
	"github.com/hdriqi/paras-backend/txlog"
	"github.com/hdriqi/paras-backend/types"
)

// Token amounts are persisted as decimal-integer strings so they stay
// exact at any magnitude. Aggregations convert with $toDecimal, which
// holds 34 significant digits, far beyond any circulating supply.

// ==================== Balance models ====================

type balanceModel struct {
	ID      string `bson:"_id"` // account ID
	Balance string `bson:"balance"`
	Version int64  `bson:"version"` // optimistic concurrency stamp
}

// supplyModel is the singleton circulating-supply document.
type supplyModel struct {
	ID     string `bson:"_id"` // always supplyDocID
	Minted string `bson:"minted"`
	Burned string `bson:"burned"`
}

const supplyDocID = "supply"

// ==================== Transaction log models ====================

type entryModel struct {
	ID        string    `bson:"_id"`
	From      string    `bson:"from"`
	To        string    `bson:"to"`
	Value     string    `bson:"value"`
	Tag       string    `bson:"tag"`
	CreatedAt time.Time `bson:"created_at"`
}

func toEntryModel(e *txlog.Entry) *entryModel {
	return &entryModel{
		ID:        e.ID.String(),
		From:      e.From,
		To:        e.To,
		Value:     e.Value.String(),
		Tag:       e.Tag,
		CreatedAt: e.CreatedAt,
	}
}

func fromEntryModel(m *entryModel) (*txlog.Entry, error) {
	entryID, err := id.ParseWithPrefix(m.ID, id.PrefixTransaction)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", m.ID, err)
	}
	value, err := types.ParseAmount(m.Value)
	if err != nil {
		return nil, fmt.Errorf("entry %s value: %w", m.ID, err)
	}
	return &txlog.Entry{
		ID:        entryID,
		From:      m.From,
		To:        m.To,
		Value:     value,
		Tag:       m.Tag,
		CreatedAt: m.CreatedAt,
	}, nil
}

// ==================== Stake models ====================

type stakeModel struct {
	ID         string    `bson:"_id"` // resourceID + "::" + accountID
	ResourceID string    `bson:"resource_id"`
	AccountID  string    `bson:"account_id"`
	Value      string    `bson:"value"`
	Version    int64     `bson:"version"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

func stakeDocID(resourceID, accountID string) string {
	return resourceID + "::" + accountID
}

func fromStakeModel(m *stakeModel) (*stake.Stake, error) {
	value, err := types.ParseAmount(m.Value)
	if err != nil {
		return nil, fmt.Errorf("stake %s value: %w", m.ID, err)
	}
	return &stake.Stake{
		Entity:     types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ResourceID: m.ResourceID,
		AccountID:  m.AccountID,
		Value:      value,
	}, nil
}

// ==================== Activity models ====================

type pointModel struct {
	ID        string    `bson:"_id"` // account ID
	Point     int       `bson:"point"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type historyModel struct {
	ID        string    `bson:"_id"`
	AccountID string    `bson:"account_id"`
	Action    string    `bson:"action"`
	Direction string    `bson:"direction"`
	Point     int       `bson:"point"`
	CreatedAt time.Time `bson:"created_at"`
}

func toHistoryModel(e *activity.HistoryEntry) *historyModel {
	return &historyModel{
		ID:        e.ID.String(),
		AccountID: e.AccountID,
		Action:    string(e.Action),
		Direction: string(e.Direction),
		Point:     e.Point,
		CreatedAt: e.CreatedAt,
	}
}

func fromHistoryModel(m *historyModel) (*activity.HistoryEntry, error) {
	entryID, err := id.ParseWithPrefix(m.ID, id.PrefixActivity)
	if err != nil {
		return nil, fmt.Errorf("activity %s: %w", m.ID, err)
	}
	return &activity.HistoryEntry{
		ID:        entryID,
		AccountID: m.AccountID,
		Action:    activity.Action(m.Action),
		Direction: activity.Direction(m.Direction),
		Point:     m.Point,
		CreatedAt: m.CreatedAt,
	}, nil
}

// ==================== Ranking models ====================

type scoreModel struct {
	ID             string    `bson:"_id"` // resource ID
	TippedValue    string    `bson:"tipped_value"`
	DistinctTipper int       `bson:"distinct_tipper"`
	Score          int64     `bson:"score"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

func toScoreModel(s *ranking.PostScore) *scoreModel {
	return &scoreModel{
		ID:             s.ResourceID,
		TippedValue:    s.TippedValue.String(),
		DistinctTipper: s.DistinctTipper,
		Score:          s.Score,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func fromScoreModel(m *scoreModel) (*ranking.PostScore, error) {
	tipped, err := types.ParseAmount(m.TippedValue)
	if err != nil {
		return nil, fmt.Errorf("score %s tipped value: %w", m.ID, err)
	}
	return &ranking.PostScore{
		Entity:         types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ResourceID:     m.ID,
		TippedValue:    tipped,
		DistinctTipper: m.DistinctTipper,
		Score:          m.Score,
	}, nil
}

// ==================== Resource models ====================

// postModel and mementoModel mirror the content documents the host
// application writes. The ledger only reads owner and collection links
// from them.
type postModel struct {
	ID        string    `bson:"_id"`
	Owner     string    `bson:"owner"`
	MementoID string    `bson:"memento_id,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

type mementoModel struct {
	ID        string    `bson:"_id"`
	Owner     string    `bson:"owner"`
	CreatedAt time.Time `bson:"created_at"`
}

// ==================== Epoch models ====================

type epochModel struct {
	ID        string    `bson:"_id"` // epoch key, e.g. "2021-04-17"
	CreatedAt time.Time `bson:"created_at"`
}
