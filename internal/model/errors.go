package model

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrWagerInProgress   = errors.New("player already has an open wager")
	ErrWagerNotFound     = errors.New("wager not found")
	ErrUnknownGame       = errors.New("unknown game")
)

// ValidationError - bad input, rejected before any state change
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// TransitionError - action not legal in the current state, no side effects
type TransitionError struct {
	State  string
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("action %q is not allowed in state %q", e.Action, e.State)
}

// SettlementError - the ledger refused the commit; the wager stays resolved
type SettlementError struct {
	WagerID string
	Err     error
}

func (e *SettlementError) Error() string {
	return fmt.Sprintf("settlement of wager %s failed: %v", e.WagerID, e.Err)
}

func (e *SettlementError) Unwrap() error {
	return e.Err
}
