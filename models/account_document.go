package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

// AccountDocument is the persisted shape of an account.
//
// Two historical layouts exist: the single-currency layout carries `balance`, the dual-currency
// layout carries `tpb_amount` and `tpg_amount`. Records exported from the old document store use
// `_id` instead of `id`. Absent balance fields load as zero.
type AccountDocument struct {
	ID           *int64  `json:"id,omitempty"`
	LegacyID     *int64  `json:"_id,omitempty"`
	Name         string  `json:"name"`
	RegisteredAt float64 `json:"registered_at"`
	Balance      *int64  `json:"balance,omitempty"`
	TPBAmount    *int64  `json:"tpb_amount,omitempty"`
	TPGAmount    *int64  `json:"tpg_amount,omitempty"`
}

// ErrMissingAccountID is returned when a document carries neither `id` nor `_id`
var ErrMissingAccountID = errors.New("account document has no id")

// ToDocument converts an account to its persisted shape
func (a *Account) ToDocument() *AccountDocument {
	id := a.ID
	doc := &AccountDocument{
		ID:           &id,
		Name:         a.DisplayName,
		RegisteredAt: toEpochSeconds(a.RegisteredAt),
	}

	if legacy, ok := a.Balances[CurrencyLegacy]; ok {
		doc.Balance = &legacy
	}

	_, hasTPB := a.Balances[CurrencyTPB]
	_, hasTPG := a.Balances[CurrencyTPG]
	if hasTPB || hasTPG || doc.Balance == nil {
		tpb := a.Balances[CurrencyTPB]
		tpg := a.Balances[CurrencyTPG]
		doc.TPBAmount = &tpb
		doc.TPGAmount = &tpg
	}

	return doc
}

// ToAccount converts a persisted document back to an account
func (d *AccountDocument) ToAccount() (*Account, error) {
	var id int64
	switch {
	case d.ID != nil:
		id = *d.ID
	case d.LegacyID != nil:
		id = *d.LegacyID
	default:
		return nil, ErrMissingAccountID
	}

	account := NewAccount(id, d.Name, fromEpochSeconds(d.RegisteredAt))
	if d.Balance != nil {
		account.Balances[CurrencyLegacy] = *d.Balance
	}
	if d.TPBAmount != nil {
		account.Balances[CurrencyTPB] = *d.TPBAmount
	}
	if d.TPGAmount != nil {
		account.Balances[CurrencyTPG] = *d.TPGAmount
	}

	return account, nil
}

// MarshalAccount encodes an account as a JSON document
func MarshalAccount(a *Account) ([]byte, error) {
	data, err := json.Marshal(a.ToDocument())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account %d: %w", a.ID, err)
	}
	return data, nil
}

// UnmarshalAccount decodes a JSON document in either historical layout
func UnmarshalAccount(data []byte) (*Account, error) {
	var doc AccountDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account document: %w", err)
	}
	return doc.ToAccount()
}

func toEpochSeconds(t time.Time) float64 {
	if t.IsZero() {
		return 0
	}
	return float64(t.UnixMicro()) / 1e6
}

func fromEpochSeconds(seconds float64) time.Time {
	if seconds == 0 {
		return time.Time{}
	}
	whole, frac := math.Modf(seconds)
	micros := int64(math.Round(frac * 1e6))
	return time.Unix(int64(whole), micros*int64(time.Microsecond)).UTC()
}
