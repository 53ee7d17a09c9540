package category

import (
	"context"
	"testing"

	"github.com/finledger/finledger/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var repoStub = NewStubRepo()

var service Service

func setup(t *testing.T) func() {
	service = NewService(repoStub)
	return func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should create a category successfully", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.Create(ctx, NamespaceExpense, "Food")

		// then
		require.NoError(t, err)
		assert.Equal(t, "Food", created.Name)
		assert.NotZero(t, created.ID)
	})

	t.Run("should trim surrounding whitespace", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.Create(ctx, NamespaceExpense, "  Rent  ")

		// then
		require.NoError(t, err)
		assert.Equal(t, "Rent", created.Name)
	})

	t.Run("should fail on empty name", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(ctx, NamespaceExpense, "   ")

		// then
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("should fail on duplicate name and not insert a second row", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.Create(ctx, NamespaceExpense, "Food")
		require.NoError(t, err)

		// when
		_, err = service.Create(ctx, NamespaceExpense, "Food")

		// then
		assert.True(t, apperr.IsValidation(err))
		categories, err := service.List(ctx, NamespaceExpense)
		require.NoError(t, err)
		assert.Len(t, categories, 1)
	})

	t.Run("should allow the same name in the other namespace", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.Create(ctx, NamespaceExpense, "Other")
		require.NoError(t, err)

		// when
		_, err = service.Create(ctx, NamespaceIncome, "Other")

		// then
		assert.NoError(t, err)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should delete an unreferenced category", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := service.Create(ctx, NamespaceExpense, "Food")
		require.NoError(t, err)

		// when
		err = service.Delete(ctx, NamespaceExpense, created.ID)

		// then
		assert.NoError(t, err)
		categories, _ := service.List(ctx, NamespaceExpense)
		assert.Empty(t, categories)
	})

	t.Run("should refuse to delete a referenced category", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := service.Create(ctx, NamespaceExpense, "Food")
		require.NoError(t, err)
		repoStub.AddLedgerRef(NamespaceExpense, "Food")

		// when
		err = service.Delete(ctx, NamespaceExpense, created.ID)

		// then
		assert.True(t, apperr.IsReferential(err))
		categories, _ := service.List(ctx, NamespaceExpense)
		assert.Len(t, categories, 1)
	})

	t.Run("should fail on unknown id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		err := service.Delete(ctx, NamespaceExpense, 42)

		// then
		assert.True(t, apperr.IsNotFound(err))
	})
}
