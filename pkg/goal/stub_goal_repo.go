package goal

import (
	"context"

	"github.com/finledger/finledger/internal/apperr"
	"github.com/shopspring/decimal"
)

// StubRepo is an in-memory Repo used by service tests. It records how many
// transactional batches were applied so tests can assert atomicity.
type StubRepo struct {
	nextId         int
	data           map[int]Goal
	order          []int
	AppliedBatches [][]Assignment
}

func NewStubRepo() *StubRepo {
	return &StubRepo{data: make(map[int]Goal)}
}

func (s *StubRepo) Cleanup() {
	s.nextId = 0
	s.data = make(map[int]Goal)
	s.order = nil
	s.AppliedBatches = nil
}

func (s *StubRepo) Store(ctx context.Context, g Goal) (int, error) {
	s.nextId++
	g.ID = s.nextId
	s.data[g.ID] = g
	s.order = append(s.order, g.ID)
	return g.ID, nil
}

func (s *StubRepo) List(ctx context.Context) ([]Goal, error) {
	goals := make([]Goal, 0, len(s.order))
	for _, id := range s.order {
		goals = append(goals, s.data[id])
	}
	return goals, nil
}

func (s *StubRepo) Find(ctx context.Context, id int) (Goal, error) {
	if g, ok := s.data[id]; ok {
		return g, nil
	}
	return Goal{}, apperr.NotFound("goal %d not found", id)
}

func (s *StubRepo) UpdateTarget(ctx context.Context, id int, target decimal.Decimal) (bool, error) {
	g, ok := s.data[id]
	if !ok {
		return false, nil
	}
	g.Target = target
	s.data[id] = g
	return true, nil
}

func (s *StubRepo) SumSaved(ctx context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, g := range s.data {
		sum = sum.Add(g.Saved)
	}
	return sum, nil
}

func (s *StubRepo) ApplyAllocations(ctx context.Context, assignments []Assignment) error {
	for _, a := range assignments {
		g, ok := s.data[a.GoalID]
		if !ok {
			return apperr.NotFound("goal %d not found", a.GoalID)
		}
		g.Saved = g.Saved.Add(a.Amount)
		s.data[a.GoalID] = g
	}
	s.AppliedBatches = append(s.AppliedBatches, assignments)
	return nil
}

func (s *StubRepo) Withdraw(ctx context.Context, id int, amount decimal.Decimal) error {
	g, ok := s.data[id]
	if !ok {
		return apperr.NotFound("goal %d not found", id)
	}
	if amount.GreaterThan(g.Saved) {
		return apperr.Validation("cannot remove more than the saved amount (%s)", g.Saved)
	}
	g.Saved = g.Saved.Sub(amount)
	s.data[id] = g
	return nil
}

func (s *StubRepo) Transfer(ctx context.Context, fromID, toID int, amount decimal.Decimal) error {
	from, ok := s.data[fromID]
	if !ok {
		return apperr.NotFound("goal %d not found", fromID)
	}
	to, ok := s.data[toID]
	if !ok {
		return apperr.NotFound("goal %d not found", toID)
	}
	if amount.GreaterThan(from.Saved) {
		return apperr.Validation("cannot transfer more than the saved amount (%s)", from.Saved)
	}
	from.Saved = from.Saved.Sub(amount)
	to.Saved = to.Saved.Add(amount)
	s.data[fromID] = from
	s.data[toID] = to
	return nil
}
