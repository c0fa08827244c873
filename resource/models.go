// Package resource describes the content records the ledger reads to
// compute distributions: who owns a post or memento, and which collection
// (if any) it belongs to. The ledger never writes these.
package resource

import "time"

// Resource is a stakeable content container (a post or a memento).
type Resource struct {
	ID           string    `json:"id"`
	Owner        string    `json:"owner"`
	CollectionID string    `json:"collection_id,omitempty"` // parent memento, empty for none
	CreatedAt    time.Time `json:"created_at"`
}
