package category

import (
	"github.com/finledger/finledger/internal/apperr"
)

// Namespace selects one of the two independent category namespaces.
// Expense and income categories live in separate tables and their names are
// unique only within their own namespace.
type Namespace string

const (
	NamespaceExpense Namespace = "expense"
	NamespaceIncome  Namespace = "income"
)

// ParseNamespace converts a raw string (URL segment, menu input) to a Namespace.
func ParseNamespace(s string) (Namespace, error) {
	switch Namespace(s) {
	case NamespaceExpense:
		return NamespaceExpense, nil
	case NamespaceIncome:
		return NamespaceIncome, nil
	}
	return "", apperr.Validation("unknown category namespace %q", s)
}

// table returns the category table backing the namespace.
func (n Namespace) table() string {
	if n == NamespaceIncome {
		return "income_categories"
	}
	return "expense_categories"
}

// ledgerTable returns the ledger table whose rows reference this namespace's
// category names.
func (n Namespace) ledgerTable() string {
	if n == NamespaceIncome {
		return "income"
	}
	return "expenses"
}

type Category struct {
	ID   int
	Name string
}
