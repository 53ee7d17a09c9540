package ledger

import (
	"context"
	"testing"

	"github.com/finledger/finledger/internal/apperr"
	"github.com/finledger/finledger/internal/event_bus"
	"github.com/finledger/finledger/pkg/category"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var repoStub = NewStubRepo()
var categoryStub = category.NewStubRepo()

var service Service
var bus *event_bus.EventBus

func setup(t *testing.T) func() {
	bus = event_bus.NewEventBus()
	service = NewService(repoStub, categoryStub, bus)
	return func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
		categoryStub.Cleanup()
	}
}

func mustCreateCategory(t *testing.T, ns category.Namespace, name string) int {
	t.Helper()
	id, err := categoryStub.Store(ctx, ns, name)
	require.NoError(t, err)
	return id
}

func TestServiceImpl_Add(t *testing.T) {
	t.Run("should add an expense entry with the category name as of now", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		categoryId := mustCreateCategory(t, category.NamespaceExpense, "Food")

		// when
		entry, err := service.Add(ctx, KindExpense, categoryId, decimal.NewFromFloat(12.50), "2025-03-15")

		// then
		require.NoError(t, err)
		assert.Equal(t, "Food", entry.Category)
		assert.True(t, entry.Amount.Equal(decimal.NewFromFloat(12.50)))
		assert.Equal(t, 2025, entry.Date.Year())
	})

	t.Run("should publish an event for expense entries", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		categoryId := mustCreateCategory(t, category.NamespaceExpense, "Food")
		var received []event_bus.ExpenseAdded
		event_bus.SubscribeTyped(bus, event_bus.EventExpenseAdded, func(e event_bus.EventT[event_bus.ExpenseAdded]) error {
			received = append(received, e.Data)
			return nil
		})

		// when
		_, err := service.Add(ctx, KindExpense, categoryId, decimal.NewFromInt(40), "2025-03-15")

		// then
		require.NoError(t, err)
		require.Len(t, received, 1)
		assert.Equal(t, "Food", received[0].Category)
		assert.Equal(t, 3, received[0].Month)
		assert.Equal(t, 2025, received[0].Year)
	})

	t.Run("should not publish an event for income entries", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		categoryId := mustCreateCategory(t, category.NamespaceIncome, "Salary")
		published := 0
		bus.Subscribe(event_bus.EventExpenseAdded, func(e event_bus.Event) error {
			published++
			return nil
		})

		// when
		_, err := service.Add(ctx, KindIncome, categoryId, decimal.NewFromInt(1000), "2025-03-01")

		// then
		require.NoError(t, err)
		assert.Zero(t, published)
	})

	t.Run("should reject a malformed date", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		categoryId := mustCreateCategory(t, category.NamespaceExpense, "Food")

		// when
		_, err := service.Add(ctx, KindExpense, categoryId, decimal.NewFromInt(10), "15/03/2025")

		// then
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("should reject a negative amount", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		categoryId := mustCreateCategory(t, category.NamespaceExpense, "Food")

		// when
		_, err := service.Add(ctx, KindExpense, categoryId, decimal.NewFromInt(-5), "2025-03-15")

		// then
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("should reject an unknown category id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Add(ctx, KindExpense, 42, decimal.NewFromInt(10), "2025-03-15")

		// then
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("should not find income categories when adding an expense", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		categoryId := mustCreateCategory(t, category.NamespaceIncome, "Salary")

		// when
		_, err := service.Add(ctx, KindExpense, categoryId, decimal.NewFromInt(10), "2025-03-15")

		// then
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestServiceImpl_View(t *testing.T) {
	t.Run("should return only entries within the period", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		categoryId := mustCreateCategory(t, category.NamespaceExpense, "Food")
		_, err := service.Add(ctx, KindExpense, categoryId, decimal.NewFromInt(10), "2025-03-15")
		require.NoError(t, err)
		_, err = service.Add(ctx, KindExpense, categoryId, decimal.NewFromInt(20), "2025-04-01")
		require.NoError(t, err)

		// when
		entries, err := service.View(ctx, KindExpense, 3, 2025, "")

		// then
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(10)))
	})

	t.Run("should filter by category name", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		foodId := mustCreateCategory(t, category.NamespaceExpense, "Food")
		rentId := mustCreateCategory(t, category.NamespaceExpense, "Rent")
		_, err := service.Add(ctx, KindExpense, foodId, decimal.NewFromInt(10), "2025-03-15")
		require.NoError(t, err)
		_, err = service.Add(ctx, KindExpense, rentId, decimal.NewFromInt(800), "2025-03-01")
		require.NoError(t, err)

		// when
		entries, err := service.View(ctx, KindExpense, 3, 2025, "Rent")

		// then
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Rent", entries[0].Category)
	})

	t.Run("should return an empty result without error", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		entries, err := service.View(ctx, KindExpense, 3, 2025, "")

		// then
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("should reject an out-of-range month", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.View(ctx, KindExpense, 13, 2025, "")

		// then
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestServiceImpl_UpdateAmount(t *testing.T) {
	t.Run("should update the amount of an existing entry", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		categoryId := mustCreateCategory(t, category.NamespaceExpense, "Food")
		entry, err := service.Add(ctx, KindExpense, categoryId, decimal.NewFromInt(10), "2025-03-15")
		require.NoError(t, err)

		// when
		err = service.UpdateAmount(ctx, KindExpense, entry.ID, decimal.NewFromFloat(12.99))

		// then
		require.NoError(t, err)
		updated, err := repoStub.Find(ctx, KindExpense, entry.ID)
		require.NoError(t, err)
		assert.True(t, updated.Amount.Equal(decimal.NewFromFloat(12.99)))
	})

	t.Run("should fail for an unknown entry", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		err := service.UpdateAmount(ctx, KindExpense, 42, decimal.NewFromInt(10))

		// then
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("should reject a negative amount", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		categoryId := mustCreateCategory(t, category.NamespaceExpense, "Food")
		entry, err := service.Add(ctx, KindExpense, categoryId, decimal.NewFromInt(10), "2025-03-15")
		require.NoError(t, err)

		// when
		err = service.UpdateAmount(ctx, KindExpense, entry.ID, decimal.NewFromInt(-1))

		// then
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestValidatePeriod(t *testing.T) {
	tests := []struct {
		name    string
		month   int
		year    int
		wantErr bool
	}{
		{"valid period", 3, 2025, false},
		{"first month", 1, 2025, false},
		{"last month", 12, 2025, false},
		{"month zero", 0, 2025, true},
		{"month thirteen", 13, 2025, true},
		{"year zero", 3, 0, true},
		{"negative year", 3, -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePeriod(tt.month, tt.year)
			if tt.wantErr {
				assert.True(t, apperr.IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
