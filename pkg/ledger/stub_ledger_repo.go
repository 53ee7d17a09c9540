package ledger

import (
	"context"

	"github.com/finledger/finledger/internal/apperr"
	"github.com/shopspring/decimal"
)

// StubRepo is an in-memory Repo used by service tests.
type StubRepo struct {
	nextId int
	data   map[Kind][]Entry
}

func NewStubRepo() *StubRepo {
	return &StubRepo{data: make(map[Kind][]Entry)}
}

func (s *StubRepo) Cleanup() {
	s.nextId = 0
	s.data = make(map[Kind][]Entry)
}

func (s *StubRepo) Store(ctx context.Context, kind Kind, entry Entry) (int, error) {
	s.nextId++
	entry.ID = s.nextId
	s.data[kind] = append(s.data[kind], entry)
	return entry.ID, nil
}

func (s *StubRepo) Find(ctx context.Context, kind Kind, id int) (Entry, error) {
	for _, e := range s.data[kind] {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, apperr.NotFound("%s entry %d not found", kind, id)
}

func (s *StubRepo) FindForPeriod(ctx context.Context, kind Kind, month, year int, categoryName string) ([]Entry, error) {
	var entries []Entry
	for _, e := range s.data[kind] {
		if int(e.Date.Month()) != month || e.Date.Year() != year {
			continue
		}
		if categoryName != "" && e.Category != categoryName {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *StubRepo) UpdateAmount(ctx context.Context, kind Kind, id int, amount decimal.Decimal) (bool, error) {
	for i, e := range s.data[kind] {
		if e.ID == id {
			s.data[kind][i].Amount = amount
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepo) SumForPeriod(ctx context.Context, kind Kind, month, year int, categoryName string) (decimal.Decimal, error) {
	entries, err := s.FindForPeriod(ctx, kind, month, year, categoryName)
	if err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Amount)
	}
	return sum, nil
}
