package service

import (
	"testing"

	"tpbot/models"

	"github.com/stretchr/testify/assert"
)

func TestPayoutEngine_ConservationOnWin(t *testing.T) {
	engine := NewPayoutEngine(DefaultTaxPercent)
	win := models.WagerOutcome{Category: models.CategoryWin}

	for stake := int64(1); stake <= 10000; stake++ {
		delta := engine.Compute(win, stake, models.CurrencyTPB)
		if !assert.Equal(t, stake, delta.PlayerDelta+delta.Tax, "stake %d", stake) {
			return
		}
		assert.Equal(t, stake/10, delta.Tax, "stake %d", stake)
		assert.Equal(t, delta.Tax, delta.HouseDelta, "stake %d", stake)
		assert.Equal(t, stake, delta.Gross)
	}
}

func TestPayoutEngine_Compute(t *testing.T) {
	tests := []struct {
		name       string
		taxPercent int64
		category   models.Category
		stake      int64
		want       models.PayoutDelta
	}{
		{"win taxed", 10, models.CategoryWin, 50, models.PayoutDelta{Currency: models.CurrencyTPB, Gross: 50, Tax: 5, PlayerDelta: 45, HouseDelta: 5}},
		{"small win rounds tax down", 10, models.CategoryWin, 9, models.PayoutDelta{Currency: models.CurrencyTPB, Gross: 9, Tax: 0, PlayerDelta: 9, HouseDelta: 0}},
		{"win untaxed", 0, models.CategoryWin, 50, models.PayoutDelta{Currency: models.CurrencyTPB, Gross: 50, PlayerDelta: 50}},
		{"loss", 10, models.CategoryLose, 50, models.PayoutDelta{Currency: models.CurrencyTPB, PlayerDelta: -50}},
		{"special loss", 10, models.CategorySpecialLose, 50, models.PayoutDelta{Currency: models.CurrencyTPB, PlayerDelta: -50}},
		{"push", 10, models.CategoryNeutral, 50, models.PayoutDelta{Currency: models.CurrencyTPB}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewPayoutEngine(tt.taxPercent)
			got := engine.Compute(models.WagerOutcome{Category: tt.category}, tt.stake, models.CurrencyTPB)
			assert.Equal(t, tt.want, got)
		})
	}
}
