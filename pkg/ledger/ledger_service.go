package ledger

import (
	"context"
	"time"

	"github.com/finledger/finledger/internal/apperr"
	"github.com/finledger/finledger/internal/event_bus"
	"github.com/finledger/finledger/pkg/category"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// Add records a new entry. The category id must exist in the kind's
	// namespace; the entry stores the category name as of now.
	Add(ctx context.Context, kind Kind, categoryID int, amount decimal.Decimal, date string) (Entry, error)
	// View returns the entries for month/year, optionally restricted to one
	// category name. An empty result is not an error.
	View(ctx context.Context, kind Kind, month, year int, categoryName string) ([]Entry, error)
	UpdateAmount(ctx context.Context, kind Kind, id int, amount decimal.Decimal) error
}

type ServiceImpl struct {
	repo       Repo
	categories category.Repo
	bus        *event_bus.EventBus
}

func NewService(repo Repo, categories category.Repo, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, categories: categories, bus: bus}
}

func (s *ServiceImpl) Add(ctx context.Context, kind Kind, categoryID int, amount decimal.Decimal, date string) (Entry, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return Entry{}, apperr.Validation("invalid date %q, expected YYYY-MM-DD", date)
	}
	// Refunds are modeled as income entries, so negative amounts are rejected
	// on both ledgers.
	if amount.IsNegative() {
		return Entry{}, apperr.Validation("amount cannot be negative")
	}

	cat, err := s.categories.Find(ctx, kind.Namespace(), categoryID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return Entry{}, apperr.Validation("unknown %s category %d", kind, categoryID)
		}
		return Entry{}, err
	}

	entry := Entry{Category: cat.Name, Amount: amount, Date: day}
	id, err := s.repo.Store(ctx, kind, entry)
	if err != nil {
		return Entry{}, err
	}
	entry.ID = id
	log.Debugf("added %s entry %d: %s %s on %s", kind, id, cat.Name, amount, date)

	if kind == KindExpense && s.bus != nil {
		s.bus.Publish(event_bus.NewEvent(ctx, event_bus.EventExpenseAdded, event_bus.ExpenseAdded{
			Category: cat.Name,
			Amount:   amount,
			Month:    int(day.Month()),
			Year:     day.Year(),
		}))
	}

	return entry, nil
}

func (s *ServiceImpl) View(ctx context.Context, kind Kind, month, year int, categoryName string) ([]Entry, error) {
	if err := ValidatePeriod(month, year); err != nil {
		return nil, err
	}
	return s.repo.FindForPeriod(ctx, kind, month, year, categoryName)
}

func (s *ServiceImpl) UpdateAmount(ctx context.Context, kind Kind, id int, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return apperr.Validation("amount cannot be negative")
	}
	if _, err := s.repo.Find(ctx, kind, id); err != nil {
		return err
	}

	updated, err := s.repo.UpdateAmount(ctx, kind, id, amount)
	if err != nil {
		return err
	}
	if !updated {
		return apperr.NotFound("%s entry %d not found", kind, id)
	}
	return nil
}

// ValidatePeriod checks a month/year pair supplied by the user.
func ValidatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return apperr.Validation("month must be between 1 and 12")
	}
	if year <= 0 {
		return apperr.Validation("year must be positive")
	}
	return nil
}
