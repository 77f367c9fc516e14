package service

import (
	"tpbot/models"
)

// DefaultTaxPercent is the share of gross winnings routed to the house account
const DefaultTaxPercent int64 = 10

// PayoutEngine turns a resolved outcome into signed player and house deltas
type PayoutEngine struct {
	taxPercent int64
}

// NewPayoutEngine creates a payout engine. A zero percentage disables the tax.
func NewPayoutEngine(taxPercent int64) *PayoutEngine {
	return &PayoutEngine{taxPercent: taxPercent}
}

// TaxPercent returns the configured tax rate
func (p *PayoutEngine) TaxPercent() int64 {
	return p.taxPercent
}

// Tax returns floor(gross * rate / 100)
func (p *PayoutEngine) Tax(gross int64) int64 {
	if gross <= 0 || p.taxPercent <= 0 {
		return 0
	}
	return gross * p.taxPercent / 100
}

// Compute returns the deltas for an outcome. Wins pay the stake minus tax and
// credit the tax to the house; losses debit the stake with no house entry;
// pushes change nothing.
func (p *PayoutEngine) Compute(outcome models.WagerOutcome, stake int64, currency models.Currency) models.PayoutDelta {
	delta := models.PayoutDelta{Currency: currency}

	switch outcome.Category {
	case models.CategoryWin:
		delta.Gross = stake
		delta.Tax = p.Tax(stake)
		delta.PlayerDelta = stake - delta.Tax
		delta.HouseDelta = delta.Tax
	case models.CategoryLose, models.CategorySpecialLose:
		delta.PlayerDelta = -stake
	}

	return delta
}
