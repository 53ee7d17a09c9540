package budget

import (
	"testing"

	"github.com/finledger/finledger/internal/event_bus"
	"github.com/finledger/finledger/pkg/ledger"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func publishExpense(bus *event_bus.EventBus, category, amount string, month, year int) {
	value, _ := decimal.NewFromString(amount)
	bus.Publish(event_bus.NewEvent(ctx, event_bus.EventExpenseAdded, event_bus.ExpenseAdded{
		Category: category,
		Amount:   value,
		Month:    month,
		Year:     year,
	}))
}

func TestOverspendNotifier(t *testing.T) {
	t.Run("should warn when spending passes the budget", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		hook := logtest.NewGlobal()
		defer hook.Reset()

		// given
		require.NoError(t, service.Set(ctx, "Food", decimal.NewFromInt(300), 3, 2025))
		mustStoreEntry(t, ledger.KindExpense, "Food", "400", "2025-03-15")
		bus := event_bus.NewEventBus()
		NewOverspendNotifier(service).Register(bus)

		// when
		publishExpense(bus, "Food", "400", 3, 2025)

		// then
		entries := hook.AllEntries()
		require.NotEmpty(t, entries)
		last := entries[len(entries)-1]
		assert.Equal(t, log.WarnLevel, last.Level)
		assert.Contains(t, last.Message, "over budget")
	})

	t.Run("should stay silent while spending is within the budget", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		hook := logtest.NewGlobal()
		defer hook.Reset()

		// given
		require.NoError(t, service.Set(ctx, "Food", decimal.NewFromInt(300), 3, 2025))
		mustStoreEntry(t, ledger.KindExpense, "Food", "200", "2025-03-15")
		bus := event_bus.NewEventBus()
		NewOverspendNotifier(service).Register(bus)

		// when
		publishExpense(bus, "Food", "200", 3, 2025)

		// then
		for _, entry := range hook.AllEntries() {
			assert.NotEqual(t, log.WarnLevel, entry.Level)
		}
	})

	t.Run("should ignore categories without a budget", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		hook := logtest.NewGlobal()
		defer hook.Reset()

		// given
		bus := event_bus.NewEventBus()
		NewOverspendNotifier(service).Register(bus)

		// when
		publishExpense(bus, "Food", "400", 3, 2025)

		// then
		for _, entry := range hook.AllEntries() {
			assert.NotEqual(t, log.WarnLevel, entry.Level)
			assert.NotEqual(t, log.ErrorLevel, entry.Level)
		}
	})

	t.Run("should stop warning after unsubscribing", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		hook := logtest.NewGlobal()
		defer hook.Reset()

		// given
		require.NoError(t, service.Set(ctx, "Food", decimal.NewFromInt(300), 3, 2025))
		mustStoreEntry(t, ledger.KindExpense, "Food", "400", "2025-03-15")
		bus := event_bus.NewEventBus()
		unsubscribe := NewOverspendNotifier(service).Register(bus)
		unsubscribe()

		// when
		publishExpense(bus, "Food", "400", 3, 2025)

		// then
		for _, entry := range hook.AllEntries() {
			assert.NotEqual(t, log.WarnLevel, entry.Level)
		}
	})
}
