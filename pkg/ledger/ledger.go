package ledger

import (
	"time"

	"github.com/finledger/finledger/internal/apperr"
	"github.com/finledger/finledger/pkg/category"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used for all ledger dates.
const DateLayout = "2006-01-02"

// Kind selects one of the two ledger tables. Expense and income entries share
// one contract and differ only in the table they are stored in.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindExpense:
		return KindExpense, nil
	case KindIncome:
		return KindIncome, nil
	}
	return "", apperr.Validation("unknown ledger kind %q", s)
}

func (k Kind) table() string {
	if k == KindIncome {
		return "income"
	}
	return "expenses"
}

// Namespace returns the category namespace matching this kind.
func (k Kind) Namespace() category.Namespace {
	if k == KindIncome {
		return category.NamespaceIncome
	}
	return category.NamespaceExpense
}

// Entry is a single expense or income row. Category holds the name the entry
// was recorded with; renaming or deleting a category never rewrites it.
type Entry struct {
	ID       int
	Category string
	Amount   decimal.Decimal
	Date     time.Time
}
