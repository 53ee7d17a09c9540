package budget

import (
	"github.com/finledger/finledger/internal/apperr"
	"github.com/finledger/finledger/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

// OverspendNotifier watches expense additions and logs a warning when an
// expense pushes a category past its budget for that month. Categories
// without a budget row are ignored.
type OverspendNotifier struct {
	service Service
}

func NewOverspendNotifier(service Service) *OverspendNotifier {
	return &OverspendNotifier{service: service}
}

// Register subscribes the notifier on the bus and returns the unsubscribe
// function.
func (n *OverspendNotifier) Register(bus *event_bus.EventBus) func() {
	return event_bus.SubscribeTyped(bus, event_bus.EventExpenseAdded, n.onExpenseAdded)
}

func (n *OverspendNotifier) onExpenseAdded(e event_bus.EventT[event_bus.ExpenseAdded]) error {
	eval, err := n.service.Evaluate(e.Context(), e.Data.Category, e.Data.Month, e.Data.Year)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil
		}
		return err
	}
	if eval.Delta.IsPositive() {
		log.Warnf("category %q is over budget for %d/%d by %s (budgeted %s, spent %s)",
			e.Data.Category, e.Data.Month, e.Data.Year, eval.Delta, eval.Budgeted, eval.Spent)
	}
	return nil
}
