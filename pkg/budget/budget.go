package budget

import (
	"github.com/shopspring/decimal"
)

// Budget is the amount planned for one expense category in one month.
// The (Category, Month, Year) triple is unique; setting it again overwrites
// the amount.
type Budget struct {
	ID       int
	Category string
	Amount   decimal.Decimal
	Month    int
	Year     int
}

// Evaluation compares a category's budget with its actual spending for the
// period. Delta is Spent - Budgeted: positive when over budget.
type Evaluation struct {
	Budgeted decimal.Decimal
	Spent    decimal.Decimal
	Delta    decimal.Decimal
}

// PeriodNet summarizes a month across all categories.
type PeriodNet struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
}
