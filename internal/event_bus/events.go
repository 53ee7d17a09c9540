package event_bus

import "github.com/shopspring/decimal"

const (
	// EventExpenseAdded is published after an expense row is stored.
	EventExpenseAdded EventType = "ledger.expense.added"
)

// ExpenseAdded is the payload for EventExpenseAdded.
type ExpenseAdded struct {
	Category string
	Amount   decimal.Decimal
	Month    int
	Year     int
}
