// Package stake defines the per-(resource, account) locked stake record.
package stake

import (
	"github.com/hdriqi/paras-backend/types"
)

// Stake is the amount an account has locked against a resource. The sum of
// all stakes for a resource equals the balance of that resource's locked
// pseudo-account.
type Stake struct {
	types.Entity

	ResourceID string       `json:"resource_id"`
	AccountID  string       `json:"account_id"`
	Value      types.Amount `json:"value"`
}
