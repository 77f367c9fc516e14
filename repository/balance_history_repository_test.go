package repository

import (
	"context"
	"testing"

	"tpbot/models"
	"tpbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceHistoryRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewBalanceHistoryRepository(testDB.DB)
	ctx := context.Background()

	t.Run("record assigns id and timestamp", func(t *testing.T) {
		history := testutil.CreateTestBalanceHistory(55, 100, 145, models.TransactionTypeHiLoWin)
		require.NoError(t, repo.Record(ctx, history))
		assert.NotZero(t, history.ID)
		assert.False(t, history.CreatedAt.IsZero())
	})

	t.Run("newest first with limit", func(t *testing.T) {
		require.NoError(t, repo.Record(ctx, testutil.CreateTestBalanceHistory(55, 145, 95, models.TransactionTypeHiLoLoss)))
		require.NoError(t, repo.Record(ctx, testutil.CreateTestBalanceHistory(55, 95, 140, models.TransactionTypeTwoUpWin)))
		require.NoError(t, repo.Record(ctx, testutil.CreateTestBalanceHistory(66, 0, 5, models.TransactionTypeWagerTax)))

		entries, err := repo.GetByAccount(ctx, 55, 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, models.TransactionTypeTwoUpWin, entries[0].TransactionType)
		assert.Equal(t, models.TransactionTypeHiLoLoss, entries[1].TransactionType)
		assert.Equal(t, models.CurrencyTPB, entries[0].Currency)
		assert.Equal(t, true, entries[0].TransactionMetadata["test"])
	})

	t.Run("no entries", func(t *testing.T) {
		entries, err := repo.GetByAccount(ctx, 999, 10)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
