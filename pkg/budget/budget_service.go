package budget

import (
	"context"
	"strings"

	"github.com/finledger/finledger/internal/apperr"
	"github.com/finledger/finledger/pkg/ledger"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// Set upserts the budget for (category, month, year).
	Set(ctx context.Context, category string, amount decimal.Decimal, month, year int) error
	List(ctx context.Context) ([]Budget, error)
	// Evaluate compares the budgeted amount with the summed expenses for the
	// triple. It fails with a not-found error when no budget row exists.
	Evaluate(ctx context.Context, category string, month, year int) (Evaluation, error)
	// NetForPeriod sums income and expenses across all categories. Never
	// fails on an empty period; sums are zero.
	NetForPeriod(ctx context.Context, month, year int) (PeriodNet, error)
}

type ServiceImpl struct {
	repo    Repo
	entries ledger.Repo
}

func NewService(repo Repo, entries ledger.Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo, entries: entries}
}

func (s *ServiceImpl) Set(ctx context.Context, category string, amount decimal.Decimal, month, year int) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return apperr.Validation("budget category cannot be empty")
	}
	if amount.IsNegative() {
		return apperr.Validation("budget amount cannot be negative")
	}
	if err := ledger.ValidatePeriod(month, year); err != nil {
		return err
	}

	if err := s.repo.Upsert(ctx, Budget{Category: category, Amount: amount, Month: month, Year: year}); err != nil {
		return err
	}
	log.Debugf("budget of %s set for %q for %d/%d", amount, category, month, year)
	return nil
}

func (s *ServiceImpl) List(ctx context.Context) ([]Budget, error) {
	return s.repo.List(ctx)
}

func (s *ServiceImpl) Evaluate(ctx context.Context, category string, month, year int) (Evaluation, error) {
	if err := ledger.ValidatePeriod(month, year); err != nil {
		return Evaluation{}, err
	}

	b, err := s.repo.Find(ctx, category, month, year)
	if err != nil {
		return Evaluation{}, err
	}

	spent, err := s.entries.SumForPeriod(ctx, ledger.KindExpense, month, year, category)
	if err != nil {
		return Evaluation{}, err
	}

	return Evaluation{
		Budgeted: b.Amount,
		Spent:    spent,
		Delta:    spent.Sub(b.Amount),
	}, nil
}

func (s *ServiceImpl) NetForPeriod(ctx context.Context, month, year int) (PeriodNet, error) {
	if err := ledger.ValidatePeriod(month, year); err != nil {
		return PeriodNet{}, err
	}

	income, err := s.entries.SumForPeriod(ctx, ledger.KindIncome, month, year, "")
	if err != nil {
		return PeriodNet{}, err
	}
	expenses, err := s.entries.SumForPeriod(ctx, ledger.KindExpense, month, year, "")
	if err != nil {
		return PeriodNet{}, err
	}

	return PeriodNet{
		Income:   income,
		Expenses: expenses,
		Net:      income.Sub(expenses),
	}, nil
}
