package ledger

import "github.com/hdriqi/paras-backend/types"

// Re-export common types for convenience so users don't have to import types package.

// Amount is re-exported from types package.
type Amount = types.Amount

// Entity is re-exported from types package.
type Entity = types.Entity

// Re-export Amount constructors
var (
	ZeroAmount  = types.ZeroAmount
	Units       = types.Units
	Tokens      = types.Tokens
	ParseAmount = types.ParseAmount
	MustParse   = types.MustParse
	SumAmounts  = types.SumAmounts
)

// Re-export Entity constructor
var NewEntity = types.NewEntity
