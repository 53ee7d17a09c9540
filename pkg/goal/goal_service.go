package goal

import (
	"context"
	"strings"
	"time"

	"github.com/finledger/finledger/internal/apperr"
	"github.com/finledger/finledger/pkg/budget"
	"github.com/finledger/finledger/pkg/ledger"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var oneHundred = decimal.NewFromInt(100)

type Service interface {
	Create(ctx context.Context, name string, target decimal.Decimal, targetDate string) (Goal, error)
	List(ctx context.Context) ([]Goal, error)
	UpdateTarget(ctx context.Context, id int, target decimal.Decimal) error

	// AvailableExcess is the period's net income minus the all-time total
	// already saved across every goal. The all-time total is intentionally
	// weighed against a single period's net; the behavior is kept as the
	// books have always computed it. May be zero or negative.
	AvailableExcess(ctx context.Context, month, year int) (decimal.Decimal, error)

	// Allocate distributes excess income over the assignments in order. All
	// assignments share one running excess counter; each one is accepted or
	// rejected individually and the accepted ones are applied atomically.
	Allocate(ctx context.Context, month, year int, assignments []Assignment) (AllocationResult, error)

	// RemoveOrTransfer takes amount out of a goal's savings, either dropping
	// it or moving it to another goal. A transfer is all-or-nothing.
	RemoveOrTransfer(ctx context.Context, goalID int, amount decimal.Decimal, action WithdrawalAction, destGoalID int) error

	// Progress returns the percentage saved towards the goal's target,
	// zero when the target is zero.
	Progress(ctx context.Context, goalID int) (decimal.Decimal, error)
}

type ServiceImpl struct {
	repo    Repo
	budgets budget.Service
}

func NewService(repo Repo, budgets budget.Service) *ServiceImpl {
	return &ServiceImpl{repo: repo, budgets: budgets}
}

func (s *ServiceImpl) Create(ctx context.Context, name string, target decimal.Decimal, targetDate string) (Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Goal{}, apperr.Validation("goal name cannot be empty")
	}
	if target.IsNegative() {
		return Goal{}, apperr.Validation("target amount cannot be negative")
	}
	date, err := time.Parse(DateLayout, targetDate)
	if err != nil {
		return Goal{}, apperr.Validation("invalid target date %q, expected YYYY-MM-DD", targetDate)
	}

	g := Goal{Name: name, Target: target, Saved: decimal.Zero, TargetDate: date}
	id, err := s.repo.Store(ctx, g)
	if err != nil {
		return Goal{}, err
	}
	g.ID = id
	log.Debugf("created savings goal %q (%d) with target %s", name, id, target)
	return g, nil
}

func (s *ServiceImpl) List(ctx context.Context) ([]Goal, error) {
	return s.repo.List(ctx)
}

func (s *ServiceImpl) UpdateTarget(ctx context.Context, id int, target decimal.Decimal) error {
	if target.IsNegative() {
		return apperr.Validation("target amount cannot be negative")
	}
	updated, err := s.repo.UpdateTarget(ctx, id, target)
	if err != nil {
		return err
	}
	if !updated {
		return apperr.NotFound("goal %d not found", id)
	}
	return nil
}

func (s *ServiceImpl) AvailableExcess(ctx context.Context, month, year int) (decimal.Decimal, error) {
	if err := ledger.ValidatePeriod(month, year); err != nil {
		return decimal.Zero, err
	}

	net, err := s.budgets.NetForPeriod(ctx, month, year)
	if err != nil {
		return decimal.Zero, err
	}
	saved, err := s.repo.SumSaved(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return net.Net.Sub(saved), nil
}

func (s *ServiceImpl) Allocate(ctx context.Context, month, year int, assignments []Assignment) (AllocationResult, error) {
	excess, err := s.AvailableExcess(ctx, month, year)
	if err != nil {
		return AllocationResult{}, err
	}
	if !excess.IsPositive() {
		return AllocationResult{}, apperr.Validation("no excess income available for savings")
	}

	// One running counter for the whole batch: a later assignment can only
	// use what earlier accepted ones left over.
	remaining := excess
	result := AllocationResult{}
	for _, a := range assignments {
		if reason := s.rejectAssignment(ctx, a, remaining); reason != "" {
			result.Rejected = append(result.Rejected, RejectedAssignment{Assignment: a, Reason: reason})
			continue
		}
		remaining = remaining.Sub(a.Amount)
		result.Accepted = append(result.Accepted, a)
	}
	result.Remaining = remaining

	if len(result.Accepted) > 0 {
		if err := s.repo.ApplyAllocations(ctx, result.Accepted); err != nil {
			return AllocationResult{}, err
		}
	}
	log.Debugf("allocated excess for %d/%d: %d accepted, %d rejected, %s remaining",
		month, year, len(result.Accepted), len(result.Rejected), result.Remaining)
	return result, nil
}

func (s *ServiceImpl) rejectAssignment(ctx context.Context, a Assignment, remaining decimal.Decimal) string {
	if a.Amount.IsNegative() {
		return "amount cannot be negative"
	}
	if a.Amount.GreaterThan(remaining) {
		return "cannot allocate more than available excess"
	}
	if _, err := s.repo.Find(ctx, a.GoalID); err != nil {
		return "goal not found"
	}
	return ""
}

func (s *ServiceImpl) RemoveOrTransfer(ctx context.Context, goalID int, amount decimal.Decimal, action WithdrawalAction, destGoalID int) error {
	if amount.IsNegative() {
		return apperr.Validation("amount cannot be negative")
	}

	g, err := s.repo.Find(ctx, goalID)
	if err != nil {
		return err
	}
	if amount.GreaterThan(g.Saved) {
		return apperr.Validation("cannot remove more than the saved amount (%s)", g.Saved)
	}

	switch action {
	case ActionRemove:
		return s.repo.Withdraw(ctx, goalID, amount)
	case ActionTransfer:
		if destGoalID == goalID {
			return apperr.Validation("cannot transfer a goal's savings to itself")
		}
		if _, err := s.repo.Find(ctx, destGoalID); err != nil {
			return err
		}
		return s.repo.Transfer(ctx, goalID, destGoalID, amount)
	}
	return apperr.Validation("unknown withdrawal action %q", action)
}

func (s *ServiceImpl) Progress(ctx context.Context, goalID int) (decimal.Decimal, error) {
	g, err := s.repo.Find(ctx, goalID)
	if err != nil {
		return decimal.Zero, err
	}
	if g.Target.IsZero() {
		return decimal.Zero, nil
	}
	return g.Saved.Div(g.Target).Mul(oneHundred), nil
}
