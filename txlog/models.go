// Package txlog defines the append-only transaction log entry and the
// structured tag scheme used to classify system transfers.
package txlog

import (
	"strings"
	"time"

	"github.com/hdriqi/paras-backend/id"
	"github.com/hdriqi/paras-backend/types"
)

// TagSeparator delimits the components of a structured system tag.
const TagSeparator = "::"

// SystemNamespace is the leading component of every system-generated tag.
const SystemNamespace = "System"

// Tag kinds emitted by the ledger. Notification rendering keys off these.
const (
	KindPiece          = "Piece"          // direct piece payout to a post owner
	KindPieceSupporter = "PieceSupporter" // piece payout to a prior tipper
	KindIncome         = "Income"         // income share from a stake distribution
	KindFee            = "Fee"            // deposit fee routed through income distribution
	KindLock           = "Lock"           // stake moved into a locked pseudo-account
	KindUnlock         = "Unlock"         // stake released from a locked pseudo-account
	KindRewardDisburse = "RewardDisburse" // epoch reward payout
	KindBurn           = "Burn"           // supply removed from circulation
)

// Entry is one immutable row of the transaction log.
type Entry struct {
	ID        id.ID        `json:"id"`
	From      string       `json:"from"`
	To        string       `json:"to"`
	Value     types.Amount `json:"value"`
	Tag       string       `json:"tag"`
	CreatedAt time.Time    `json:"created_at"`
}

// New builds a log entry with a fresh ID and timestamp. The tag is stored
// as given; callers sanitize user-supplied tags first.
func New(from, to string, value types.Amount, tag string) *Entry {
	return &Entry{
		ID:        id.NewTransactionID(),
		From:      from,
		To:        to,
		Value:     value,
		Tag:       tag,
		CreatedAt: time.Now().UTC(),
	}
}

// SystemTag builds a structured tag: "System::<kind>" or
// "System::<kind>::<resourceID>".
func SystemTag(kind, resourceID string) string {
	if resourceID == "" {
		return SystemNamespace + TagSeparator + kind
	}
	return SystemNamespace + TagSeparator + kind + TagSeparator + resourceID
}

// ParseSystemTag splits a structured tag into its kind and resource id.
// ok is false for user tags and malformed system tags.
func ParseSystemTag(tag string) (kind, resourceID string, ok bool) {
	parts := strings.Split(tag, TagSeparator)
	if len(parts) < 2 || parts[0] != SystemNamespace {
		return "", "", false
	}
	kind = parts[1]
	if len(parts) > 2 {
		resourceID = parts[2]
	}
	return kind, resourceID, true
}

// Sanitize strips the tag separator from user-supplied free text so a user
// tag can never masquerade as a system tag.
func Sanitize(tag string) string {
	return strings.ReplaceAll(tag, TagSeparator, "")
}

// IsSystem reports whether the tag carries the system namespace.
func (e *Entry) IsSystem() bool {
	_, _, ok := ParseSystemTag(e.Tag)
	return ok
}

// TipperTotal is the cumulative piece contribution of one account to one
// resource, derived from Piece-tagged log entries.
type TipperTotal struct {
	AccountID string       `json:"account_id"`
	Total     types.Amount `json:"total"`
}
