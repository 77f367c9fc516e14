package models

import (
	"time"
)

// TransactionType represents the type of balance change
type TransactionType string

const (
	TransactionTypeInitial         TransactionType = "initial"
	TransactionTypeHiLoWin         TransactionType = "hilo_win"
	TransactionTypeHiLoLoss        TransactionType = "hilo_loss"
	TransactionTypeTwoUpWin        TransactionType = "twoup_win"
	TransactionTypeTwoUpLoss       TransactionType = "twoup_loss"
	TransactionTypeWagerTax        TransactionType = "wager_tax"
	TransactionTypeChallengeReward TransactionType = "challenge_reward"
	TransactionTypeAdjustment      TransactionType = "adjustment"
)

// WagerTransactionType maps a game and category to the history type a player delta is recorded under
func WagerTransactionType(game Game, category Category) TransactionType {
	won := category == CategoryWin
	switch game {
	case GameHiLo:
		if won {
			return TransactionTypeHiLoWin
		}
		return TransactionTypeHiLoLoss
	case GameTwoUp:
		if won {
			return TransactionTypeTwoUpWin
		}
		return TransactionTypeTwoUpLoss
	default:
		return TransactionTypeAdjustment
	}
}

// BalanceHistory represents a historical balance change
type BalanceHistory struct {
	ID                  int64           `db:"id"`
	AccountID           int64           `db:"account_id"`
	Currency            Currency        `db:"currency"`
	BalanceBefore       int64           `db:"balance_before"`
	BalanceAfter        int64           `db:"balance_after"`
	ChangeAmount        int64           `db:"change_amount"`
	TransactionType     TransactionType `db:"transaction_type"`
	TransactionMetadata map[string]any  `db:"transaction_metadata"`
	CreatedAt           time.Time       `db:"created_at"`
}
