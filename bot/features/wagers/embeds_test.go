package wagers

import (
	"testing"

	"tpbot/bot/common"
	"tpbot/models"
	"tpbot/service"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHiLoEmbed(t *testing.T) {
	result := &models.WagerResult{
		Outcome: models.WagerOutcome{
			Game:         models.GameHiLo,
			Category:     models.CategoryWin,
			Dice:         []int{4, 4, 4},
			Total:        12,
			Actual:       models.GuessHigh,
			NarrativeKey: models.NarrativeCorrect,
		},
		Payout:     models.PayoutDelta{Currency: models.CurrencyTPB, Gross: 50, Tax: 5, PlayerDelta: 45, HouseDelta: 5},
		NewBalance: 145,
		Narrative:  "Lucky you!",
	}

	embed := BuildHiLoEmbed(result)
	assert.Equal(t, "HIGH", embed.Title)
	assert.Equal(t, common.ColorSuccess, embed.Color)
	require.Len(t, embed.Fields, 4)
	assert.Equal(t, "🎲 4 🎲 4 🎲 4", embed.Fields[0].Value)
	assert.Equal(t, "12", embed.Fields[1].Value)
	assert.Equal(t, "Lucky you!", embed.Fields[2].Value)
	assert.Contains(t, embed.Fields[3].Value, "+**45 TPB** (tax **5 TPB**)")
	assert.Contains(t, embed.Fields[3].Value, "Now **145 TPB**")
	assert.Equal(t, "hi-lo / tài xỉu game 🎲", embed.Footer.Text)
}

func TestBuildHiLoEmbed_TripleSixes(t *testing.T) {
	result := &models.WagerResult{
		Outcome: models.WagerOutcome{
			Game:         models.GameHiLo,
			Category:     models.CategorySpecialLose,
			Dice:         []int{6, 6, 6},
			Total:        18,
			NarrativeKey: models.NarrativeTripleSixes,
		},
		Payout:     models.PayoutDelta{Currency: models.CurrencyTPB, PlayerDelta: -20},
		NewBalance: 80,
	}

	embed := BuildHiLoEmbed(result)
	assert.Equal(t, "💥 TRIPLE SIXES 💥", embed.Title)
	assert.Equal(t, common.ColorFailure, embed.Color)
	assert.Equal(t, string(models.CategorySpecialLose), embed.Fields[2].Value)
	assert.Contains(t, embed.Fields[3].Value, "-**20 TPB**")
}

func TestBuildTwoUpEmbed(t *testing.T) {
	result := &models.WagerResult{
		Outcome: models.WagerOutcome{
			Game:     models.GameTwoUp,
			Category: models.CategoryNeutral,
			Coins:    []models.Face{models.FaceTails, models.FaceTails, models.FaceTails},
		},
		Payout:     models.PayoutDelta{Currency: models.CurrencyLegacy},
		NewBalance: 100,
		Narrative:  "Nobody wins.",
	}

	embed := BuildTwoUpEmbed(result)
	assert.Equal(t, "NEUTRAL", embed.Title)
	assert.Equal(t, common.ColorNeutral, embed.Color)
	assert.Equal(t, "Tails | Tails | Tails", embed.Fields[0].Value)
	assert.Contains(t, embed.Fields[2].Value, "No change")
	assert.Contains(t, embed.Fields[2].Value, "**100 coins**")
	assert.Equal(t, "two-up / chẵn lẻ game 🪙", embed.Footer.Text)
}

func TestParseWagerOptions(t *testing.T) {
	options := []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "guess", Type: discordgo.ApplicationCommandOptionString, Value: "two_tails"},
		{Name: "bet_amount", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(250)},
		{Name: "currency", Type: discordgo.ApplicationCommandOptionString, Value: "TPG"},
	}

	req, err := ParseWagerOptions(options)
	require.NoError(t, err)
	assert.Equal(t, models.GuessTwoTails, req.Guess)
	assert.Equal(t, int64(250), req.Stake)
	assert.Equal(t, models.CurrencyTPG, req.Currency)

	_, err = ParseWagerOptions(options[1:])
	assert.ErrorIs(t, err, service.ErrInvalidGuess)
}
