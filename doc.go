// Package ledger provides the token economy engine behind a social content
// network.
//
// Ledger is designed as a library, not a service. Import it directly into
// the application that owns accounts and content. It provides:
//
//   - Exact big-integer token accounting with an append-only transfer log
//   - Stake deposits locked behind posts and mementos, with a deposit fee
//   - Income distribution split between a resource owner and its stakers
//   - Tip (piece) splitting across the owner and prior tippers
//   - Randomized activity points for scored user actions
//   - Daily epoch rewards minted and fanned out along a logarithmic curve
//   - Feed ranking scores derived from tipping volume
//   - Pluggable hooks for notifications and Prometheus metrics
//
// # Quick Start
//
// Create a ledger instance with your preferred store:
//
//	import (
//	    "github.com/hdriqi/paras-backend"
//	    "github.com/hdriqi/paras-backend/store/memory"
//	)
//
//	l := ledger.New(memory.New())
//
//	// Start the ledger (begins the epoch disbursement worker)
//	if err := l.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer l.Stop(ctx)
//
// # Core Concepts
//
// Balances move through tagged transfers. User transfers carry free-text
// tags; engine-generated movements carry structured system tags such as
// "System::Piece::<postID>":
//
//	balance, err := l.Transfer(ctx, "alice", "bob", ledger.Tokens(5), "thanks!")
//
// Deposits lock tokens behind a resource and earn the staker a share of
// that resource's future income:
//
//	balance, err := l.Deposit(ctx, "alice", postID, ledger.Tokens(10))
//
// Pieces tip a post. The owner takes the bulk; prior tippers split the
// rest in proportion to what they have tipped before:
//
//	balance, err := l.Piece(ctx, "bob", postID, ledger.Tokens(1))
//
// Scored actions earn randomized activity points, and once a day the
// epoch worker mints 100 tokens per active account and pays them out by
// point rank:
//
//	points, err := l.AddActivity(ctx, "alice", activity.ActionCreatePost)
//
// # Exactness
//
// All token amounts use integer arithmetic in minimal units (10^-18 of a
// token) via the Amount type. Splits truncate toward zero and route the
// dust to a deterministic recipient, so every distribution moves exactly
// the amount paid in: no tokens are created or destroyed by rounding.
//
// # TypeID
//
// Log entries use TypeID for globally unique, type-safe identifiers:
//
//	txn_01h2xcejqtf2nbrexx3vqjhp41  // Transfer log entry
//	act_01h2xcejqtf2nbrexx3vqjhp41  // Activity history entry
//
// TypeIDs are K-sortable, making them ideal for database indexes and
// providing natural time-ordering of entries.
package ledger
