package category

import (
	"context"
	"testing"

	"github.com/finledger/finledger/internal/apperr"
	"github.com/finledger/finledger/internal/test_utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepoImpl_Store(t *testing.T) {
	t.Run("should store categories in both namespaces", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		repo := NewRepo(db)
		name := "cat-" + uuid.New().String()

		// when
		expenseId, err := repo.Store(context.Background(), NamespaceExpense, name)
		require.NoError(t, err)
		incomeId, err := repo.Store(context.Background(), NamespaceIncome, name)
		require.NoError(t, err)

		// then
		assert.NotZero(t, expenseId)
		assert.NotZero(t, incomeId)
	})

	t.Run("should reject a duplicate name within a namespace", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		repo := NewRepo(db)
		name := "cat-" + uuid.New().String()
		_, err := repo.Store(context.Background(), NamespaceExpense, name)
		require.NoError(t, err)

		// when
		_, err = repo.Store(context.Background(), NamespaceExpense, name)

		// then
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestRepoImpl_Find(t *testing.T) {
	t.Run("should find a stored category by id", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		repo := NewRepo(db)
		name := "cat-" + uuid.New().String()
		id, err := repo.Store(context.Background(), NamespaceExpense, name)
		require.NoError(t, err)

		// when
		found, err := repo.Find(context.Background(), NamespaceExpense, id)

		// then
		require.NoError(t, err)
		assert.Equal(t, Category{ID: id, Name: name}, found)
	})

	t.Run("should return not found for an unknown id", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		repo := NewRepo(db)

		// when
		_, err := repo.Find(context.Background(), NamespaceExpense, 9999)

		// then
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestRepoImpl_CountLedgerRefs(t *testing.T) {
	t.Run("should count ledger rows referencing the category name", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		repo := NewRepo(db)
		name := "cat-" + uuid.New().String()
		id, err := repo.Store(context.Background(), NamespaceExpense, name)
		require.NoError(t, err)

		_, err = db.Exec(
			"INSERT INTO expenses (category, amount, timestamp) VALUES (?, ?, ?)",
			name, "12.50", "2025-03-15",
		)
		require.NoError(t, err)

		// when
		count, err := repo.CountLedgerRefs(context.Background(), NamespaceExpense, id)

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("should report zero for an unreferenced category", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		repo := NewRepo(db)
		id, err := repo.Store(context.Background(), NamespaceIncome, "cat-"+uuid.New().String())
		require.NoError(t, err)

		// when
		count, err := repo.CountLedgerRefs(context.Background(), NamespaceIncome, id)

		// then
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestRepoImpl_Delete(t *testing.T) {
	t.Run("should delete an existing category", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		repo := NewRepo(db)
		id, err := repo.Store(context.Background(), NamespaceExpense, "cat-"+uuid.New().String())
		require.NoError(t, err)

		// when
		deleted, err := repo.Delete(context.Background(), NamespaceExpense, id)

		// then
		require.NoError(t, err)
		assert.True(t, deleted)
		_, err = repo.Find(context.Background(), NamespaceExpense, id)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("should report false when nothing was deleted", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		repo := NewRepo(db)

		// when
		deleted, err := repo.Delete(context.Background(), NamespaceExpense, 9999)

		// then
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
