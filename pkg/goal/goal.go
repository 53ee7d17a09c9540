package goal

import (
	"time"

	"github.com/finledger/finledger/internal/apperr"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used for target dates.
const DateLayout = "2006-01-02"

// Goal is a savings goal. Saved never goes negative and is mutated only by
// the allocator's allocate/remove/transfer operations.
type Goal struct {
	ID         int
	Name       string
	Target     decimal.Decimal
	Saved      decimal.Decimal
	TargetDate time.Time
}

// Assignment is one requested allocation of excess income to a goal.
type Assignment struct {
	GoalID int
	Amount decimal.Decimal
}

// RejectedAssignment is an assignment the allocator refused, with the reason.
// Rejection is per item; the rest of the batch proceeds.
type RejectedAssignment struct {
	Assignment
	Reason string
}

// AllocationResult reports what an Allocate call did. Remaining is the excess
// left after all accepted assignments.
type AllocationResult struct {
	Accepted  []Assignment
	Rejected  []RejectedAssignment
	Remaining decimal.Decimal
}

// WithdrawalAction selects what happens to savings taken out of a goal.
type WithdrawalAction string

const (
	ActionRemove   WithdrawalAction = "remove"
	ActionTransfer WithdrawalAction = "transfer"
)

func ParseWithdrawalAction(s string) (WithdrawalAction, error) {
	switch WithdrawalAction(s) {
	case ActionRemove:
		return ActionRemove, nil
	case ActionTransfer:
		return ActionTransfer, nil
	}
	return "", apperr.Validation("unknown withdrawal action %q", s)
}
