package models

import (
	"time"
)

// Currency identifies one of the balances an account holds
type Currency string

const (
	// CurrencyTPB is the primary currency of the dual-currency economy
	CurrencyTPB Currency = "TPB"
	// CurrencyTPG is the secondary currency of the dual-currency economy
	CurrencyTPG Currency = "TPG"
	// CurrencyLegacy is the only currency of the single-currency economy
	CurrencyLegacy Currency = "balance"
)

// HouseAccountID is the reserved identity of the account that receives wager tax
const HouseAccountID int64 = 0

// HouseAccountName is the display name given to the house account when it is materialized
const HouseAccountName = "House"

// Account represents a registered user and their balances
type Account struct {
	ID           int64
	DisplayName  string
	RegisteredAt time.Time
	Balances     map[Currency]int64
}

// NewAccount creates an account with zero balances
func NewAccount(id int64, displayName string, registeredAt time.Time) *Account {
	return &Account{
		ID:           id,
		DisplayName:  displayName,
		RegisteredAt: registeredAt,
		Balances:     make(map[Currency]int64),
	}
}

// NewHouseAccount creates the house account
func NewHouseAccount(registeredAt time.Time) *Account {
	return NewAccount(HouseAccountID, HouseAccountName, registeredAt)
}

// IsHouse reports whether this is the reserved house account
func (a *Account) IsHouse() bool {
	return a.ID == HouseAccountID
}

// Balance returns the balance in the given currency, zero when absent
func (a *Account) Balance(currency Currency) int64 {
	if a.Balances == nil {
		return 0
	}
	return a.Balances[currency]
}

// CanAfford checks if the account holds at least amount of the currency
func (a *Account) CanAfford(currency Currency, amount int64) bool {
	return a.Balance(currency) >= amount
}

// Credit adds amount (which may be negative) to the currency balance and returns the new balance
func (a *Account) Credit(currency Currency, amount int64) int64 {
	if a.Balances == nil {
		a.Balances = make(map[Currency]int64)
	}
	a.Balances[currency] += amount
	return a.Balances[currency]
}

// Clone returns a deep copy so callers can mutate without touching the stored value
func (a *Account) Clone() *Account {
	clone := *a
	clone.Balances = make(map[Currency]int64, len(a.Balances))
	for currency, amount := range a.Balances {
		clone.Balances[currency] = amount
	}
	return &clone
}
