package budget

import (
	"context"
	"fmt"
	"sort"

	"github.com/finledger/finledger/internal/apperr"
)

// StubRepo is an in-memory Repo used by service tests.
type StubRepo struct {
	nextId int
	data   map[string]Budget // key: category|month|year
}

func NewStubRepo() *StubRepo {
	return &StubRepo{data: make(map[string]Budget)}
}

func (s *StubRepo) Cleanup() {
	s.nextId = 0
	s.data = make(map[string]Budget)
}

func key(category string, month, year int) string {
	return fmt.Sprintf("%s|%d|%d", category, month, year)
}

func (s *StubRepo) Upsert(ctx context.Context, b Budget) error {
	k := key(b.Category, b.Month, b.Year)
	if existing, ok := s.data[k]; ok {
		existing.Amount = b.Amount
		s.data[k] = existing
		return nil
	}
	s.nextId++
	b.ID = s.nextId
	s.data[k] = b
	return nil
}

func (s *StubRepo) Find(ctx context.Context, category string, month, year int) (Budget, error) {
	if b, ok := s.data[key(category, month, year)]; ok {
		return b, nil
	}
	return Budget{}, apperr.NotFound("no budget set for %q for %d/%d", category, month, year)
}

func (s *StubRepo) List(ctx context.Context) ([]Budget, error) {
	budgets := make([]Budget, 0, len(s.data))
	for _, b := range s.data {
		budgets = append(budgets, b)
	}
	sort.Slice(budgets, func(i, j int) bool {
		if budgets[i].Year != budgets[j].Year {
			return budgets[i].Year < budgets[j].Year
		}
		if budgets[i].Month != budgets[j].Month {
			return budgets[i].Month < budgets[j].Month
		}
		return budgets[i].Category < budgets[j].Category
	})
	return budgets, nil
}
