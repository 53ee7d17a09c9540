package report

import (
	"context"

	"github.com/finledger/finledger/pkg/budget"
	"github.com/finledger/finledger/pkg/ledger"
	"github.com/shopspring/decimal"
)

// MonthlySummary is the per-period report: one line per budgeted category plus
// the overall income/expense totals.
type MonthlySummary struct {
	Month int
	Year  int
	Lines []CategoryLine
	Net   budget.PeriodNet
}

type CategoryLine struct {
	Category string
	Budgeted decimal.Decimal
	Spent    decimal.Decimal
	Delta    decimal.Decimal
}

type Service interface {
	MonthlySummary(ctx context.Context, month, year int) (MonthlySummary, error)
}

type ServiceImpl struct {
	budgets budget.Service
}

func NewService(budgets budget.Service) *ServiceImpl {
	return &ServiceImpl{budgets: budgets}
}

func (s *ServiceImpl) MonthlySummary(ctx context.Context, month, year int) (MonthlySummary, error) {
	if err := ledger.ValidatePeriod(month, year); err != nil {
		return MonthlySummary{}, err
	}

	summary := MonthlySummary{Month: month, Year: year}

	budgets, err := s.budgets.List(ctx)
	if err != nil {
		return MonthlySummary{}, err
	}
	for _, b := range budgets {
		if b.Month != month || b.Year != year {
			continue
		}
		eval, err := s.budgets.Evaluate(ctx, b.Category, month, year)
		if err != nil {
			return MonthlySummary{}, err
		}
		summary.Lines = append(summary.Lines, CategoryLine{
			Category: b.Category,
			Budgeted: eval.Budgeted,
			Spent:    eval.Spent,
			Delta:    eval.Delta,
		})
	}

	net, err := s.budgets.NetForPeriod(ctx, month, year)
	if err != nil {
		return MonthlySummary{}, err
	}
	summary.Net = net

	return summary, nil
}
