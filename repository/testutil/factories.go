package testutil

import (
	"time"

	"tpbot/models"
)

// CreateTestAccount creates a dual-currency account with the given balances
func CreateTestAccount(id int64, name string, tpb, tpg int64) *models.Account {
	account := models.NewAccount(id, name, time.Now().UTC().Truncate(time.Second))
	account.Balances[models.CurrencyTPB] = tpb
	account.Balances[models.CurrencyTPG] = tpg
	return account
}

// CreateLegacyTestAccount creates a single-currency account
func CreateLegacyTestAccount(id int64, name string, balance int64) *models.Account {
	account := models.NewAccount(id, name, time.Now().UTC().Truncate(time.Second))
	account.Balances[models.CurrencyLegacy] = balance
	return account
}

// CreateTestBalanceHistory creates a balance history entry
func CreateTestBalanceHistory(accountID int64, before, after int64, transactionType models.TransactionType) *models.BalanceHistory {
	return &models.BalanceHistory{
		AccountID:       accountID,
		Currency:        models.CurrencyTPB,
		BalanceBefore:   before,
		BalanceAfter:    after,
		ChangeAmount:    after - before,
		TransactionType: transactionType,
		TransactionMetadata: map[string]any{
			"test": true,
		},
	}
}
