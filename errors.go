package ledger

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrNotFound     = errors.New("ledger: not found")
	ErrInvalidInput = errors.New("ledger: invalid input")

	// Balance errors
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")
	ErrInsufficientStake = errors.New("ledger: insufficient stake")

	// Resource errors
	ErrResourceNotFound = errors.New("ledger: resource not found")
	ErrAccountNotFound  = errors.New("ledger: account not found")

	// Concurrency errors
	ErrConcurrencyConflict = errors.New("ledger: concurrent update conflict")
	ErrDisburseInProgress  = errors.New("ledger: disbursement already running")
	ErrEpochAlreadyMinted  = errors.New("ledger: epoch already minted")

	// Consistency errors. Reaching these means an atomicity guarantee was
	// violated; disbursement halts pending manual audit.
	ErrFatalConsistency = errors.New("ledger: supply/balance invariant violated")

	// Store errors
	ErrStoreNotReady     = errors.New("ledger: store not ready")
	ErrStoreClosed       = errors.New("ledger: store is closed")
	ErrTransactionFailed = errors.New("ledger: transaction failed")
)

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("ledger: validation failed for %s: %s", e.Field, e.Message)
}

// Is makes every ValidationError match ErrInvalidInput.
func (e ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// BatchError reports a fan-out distribution that could not fully complete
// after retries. The batch is operator-visible: no payout is silently
// dropped.
type BatchError struct {
	Op     string // "distributeIncome", "piece", "disburse"
	Errors []error
}

func (e *BatchError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("ledger: %s: %v", e.Op, e.Errors[0])
	}
	return fmt.Sprintf("ledger: %s: %d payouts failed", e.Op, len(e.Errors))
}

// Unwrap exposes the individual payout failures to errors.Is/As.
func (e *BatchError) Unwrap() []error { return e.Errors }

// Add records a payout failure. Nil errors are ignored.
func (e *BatchError) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// HasErrors reports whether any payout failed.
func (e *BatchError) HasErrors() bool { return len(e.Errors) > 0 }

// IsNotFound reports whether the error is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrResourceNotFound) ||
		errors.Is(err, ErrAccountNotFound)
}

// IsInsufficientFunds reports whether the error is a balance or stake
// sufficiency failure.
func IsInsufficientFunds(err error) bool {
	return errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrInsufficientStake)
}

// IsAlreadyMinted reports whether a disbursement was skipped because the
// current epoch's reward was already minted.
func IsAlreadyMinted(err error) bool {
	return errors.Is(err, ErrEpochAlreadyMinted)
}

// IsRetryable reports whether the error is temporary and the operation can
// be retried. Insufficient funds and validation failures never are.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrencyConflict) ||
		errors.Is(err, ErrStoreNotReady) ||
		errors.Is(err, ErrTransactionFailed)
}
