package service

import (
	"fmt"
	"slices"

	"tpbot/models"
)

// Variant selects which currencies the economy runs on
type Variant string

const (
	// VariantDual runs on TPB and TPG with taxed wager winnings
	VariantDual Variant = "dual"
	// VariantLegacy runs on a single untaxed balance
	VariantLegacy Variant = "legacy"
)

// ParseVariant validates a configured variant name
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantDual, VariantLegacy:
		return Variant(s), nil
	case "":
		return VariantDual, nil
	default:
		return "", fmt.Errorf("unknown economy variant %q", s)
	}
}

// Currencies lists the balances every account holds under this variant
func (v Variant) Currencies() []models.Currency {
	if v == VariantLegacy {
		return []models.Currency{models.CurrencyLegacy}
	}
	return []models.Currency{models.CurrencyTPB, models.CurrencyTPG}
}

// DefaultCurrency is used for wagers that do not name one
func (v Variant) DefaultCurrency() models.Currency {
	return v.Currencies()[0]
}

// Supports reports whether the currency exists under this variant
func (v Variant) Supports(currency models.Currency) bool {
	return slices.Contains(v.Currencies(), currency)
}

// Taxed reports whether wager winnings are taxed into the house account
func (v Variant) Taxed() bool {
	return v != VariantLegacy
}

// RewardCurrency returns the currency a challenge kind pays out in
func (v Variant) RewardCurrency(kind models.ChallengeKind) models.Currency {
	if v == VariantLegacy {
		return models.CurrencyLegacy
	}
	if kind == models.ChallengeKindColor {
		return models.CurrencyTPG
	}
	return models.CurrencyTPB
}
