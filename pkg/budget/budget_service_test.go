package budget

import (
	"context"
	"testing"
	"time"

	"github.com/finledger/finledger/internal/apperr"
	"github.com/finledger/finledger/pkg/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var repoStub = NewStubRepo()
var ledgerStub = ledger.NewStubRepo()

var service Service

func setup(t *testing.T) func() {
	service = NewService(repoStub, ledgerStub)
	return func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
		ledgerStub.Cleanup()
	}
}

func mustStoreEntry(t *testing.T, kind ledger.Kind, category, amount, date string) {
	t.Helper()
	value, err := decimal.NewFromString(amount)
	require.NoError(t, err)
	day, err := time.Parse(ledger.DateLayout, date)
	require.NoError(t, err)
	_, err = ledgerStub.Store(ctx, kind, ledger.Entry{Category: category, Amount: value, Date: day})
	require.NoError(t, err)
}

func TestServiceImpl_Set(t *testing.T) {
	t.Run("should overwrite the amount instead of adding a second row", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		err := service.Set(ctx, "Food", decimal.NewFromInt(100), 3, 2025)
		require.NoError(t, err)

		// when
		err = service.Set(ctx, "Food", decimal.NewFromInt(150), 3, 2025)

		// then
		require.NoError(t, err)
		budgets, err := service.List(ctx)
		require.NoError(t, err)
		require.Len(t, budgets, 1)
		assert.True(t, budgets[0].Amount.Equal(decimal.NewFromInt(150)))
	})

	t.Run("should keep budgets for different months independent", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		err := service.Set(ctx, "Food", decimal.NewFromInt(100), 3, 2025)
		require.NoError(t, err)

		// when
		err = service.Set(ctx, "Food", decimal.NewFromInt(200), 4, 2025)

		// then
		require.NoError(t, err)
		budgets, err := service.List(ctx)
		require.NoError(t, err)
		assert.Len(t, budgets, 2)
	})

	t.Run("should reject an empty category", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		err := service.Set(ctx, "  ", decimal.NewFromInt(100), 3, 2025)

		// then
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("should reject a negative amount", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		err := service.Set(ctx, "Food", decimal.NewFromInt(-1), 3, 2025)

		// then
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("should reject an invalid period", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		err := service.Set(ctx, "Food", decimal.NewFromInt(100), 13, 2025)

		// then
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestServiceImpl_Evaluate(t *testing.T) {
	t.Run("should report overspending as a positive delta", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		err := service.Set(ctx, "Food", decimal.NewFromInt(300), 3, 2025)
		require.NoError(t, err)
		mustStoreEntry(t, ledger.KindExpense, "Food", "250", "2025-03-10")
		mustStoreEntry(t, ledger.KindExpense, "Food", "150", "2025-03-20")

		// when
		eval, err := service.Evaluate(ctx, "Food", 3, 2025)

		// then
		require.NoError(t, err)
		assert.Equal(t, "300", eval.Budgeted.String())
		assert.Equal(t, "400", eval.Spent.String())
		assert.Equal(t, "100", eval.Delta.String())
	})

	t.Run("should report an unused budget as a negative delta", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		err := service.Set(ctx, "Food", decimal.NewFromInt(300), 3, 2025)
		require.NoError(t, err)

		// when
		eval, err := service.Evaluate(ctx, "Food", 3, 2025)

		// then
		require.NoError(t, err)
		assert.True(t, eval.Spent.IsZero())
		assert.Equal(t, "-300", eval.Delta.String())
	})

	t.Run("should ignore spending outside the period", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		err := service.Set(ctx, "Food", decimal.NewFromInt(300), 3, 2025)
		require.NoError(t, err)
		mustStoreEntry(t, ledger.KindExpense, "Food", "999", "2025-04-01")

		// when
		eval, err := service.Evaluate(ctx, "Food", 3, 2025)

		// then
		require.NoError(t, err)
		assert.True(t, eval.Spent.IsZero())
	})

	t.Run("should fail when no budget row exists", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Evaluate(ctx, "Food", 3, 2025)

		// then
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestServiceImpl_NetForPeriod(t *testing.T) {
	t.Run("should subtract expenses from income", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		mustStoreEntry(t, ledger.KindIncome, "Salary", "1000", "2025-03-01")
		mustStoreEntry(t, ledger.KindExpense, "Food", "400", "2025-03-15")

		// when
		net, err := service.NetForPeriod(ctx, 3, 2025)

		// then
		require.NoError(t, err)
		assert.Equal(t, "1000", net.Income.String())
		assert.Equal(t, "400", net.Expenses.String())
		assert.Equal(t, "600", net.Net.String())
	})

	t.Run("should report zeroes for an empty period", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		net, err := service.NetForPeriod(ctx, 3, 2025)

		// then
		require.NoError(t, err)
		assert.True(t, net.Income.IsZero())
		assert.True(t, net.Expenses.IsZero())
		assert.True(t, net.Net.IsZero())
	})

	t.Run("should go negative when expenses exceed income", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		mustStoreEntry(t, ledger.KindIncome, "Salary", "100", "2025-03-01")
		mustStoreEntry(t, ledger.KindExpense, "Rent", "800", "2025-03-01")

		// when
		net, err := service.NetForPeriod(ctx, 3, 2025)

		// then
		require.NoError(t, err)
		assert.Equal(t, "-700", net.Net.String())
	})
}
