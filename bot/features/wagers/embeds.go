package wagers

import (
	"fmt"
	"strings"

	"tpbot/bot/common"
	"tpbot/models"

	"github.com/bwmarrin/discordgo"
)

// BuildHiLoEmbed renders a resolved hi-lo wager
func BuildHiLoEmbed(result *models.WagerResult) *discordgo.MessageEmbed {
	outcome := result.Outcome

	dice := make([]string, len(outcome.Dice))
	for i, d := range outcome.Dice {
		dice[i] = fmt.Sprintf("🎲 %d", d)
	}

	return &discordgo.MessageEmbed{
		Title: hiloTitle(outcome),
		Color: categoryColor(outcome.Category),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Dice Rolls", Value: strings.Join(dice, " "), Inline: true},
			{Name: "Total", Value: fmt.Sprintf("%d", outcome.Total), Inline: true},
			{Name: "Result", Value: fallback(result.Narrative, string(outcome.Category)), Inline: true},
			balanceField(result),
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "hi-lo / tài xỉu game 🎲"},
	}
}

// BuildTwoUpEmbed renders a resolved two-up wager
func BuildTwoUpEmbed(result *models.WagerResult) *discordgo.MessageEmbed {
	outcome := result.Outcome

	coins := make([]string, len(outcome.Coins))
	for i, c := range outcome.Coins {
		coins[i] = faceLabel(c)
	}

	return &discordgo.MessageEmbed{
		Title: strings.ToUpper(string(outcome.Category)),
		Color: categoryColor(outcome.Category),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Coin Toss", Value: strings.Join(coins, " | "), Inline: true},
			{Name: "Outcome", Value: fallback(result.Narrative, string(outcome.Category)), Inline: false},
			balanceField(result),
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "two-up / chẵn lẻ game 🪙"},
	}
}

func hiloTitle(outcome models.WagerOutcome) string {
	switch outcome.NarrativeKey {
	case models.NarrativeTripleOnes:
		return "🥀 TRIPLE ONES 🥀"
	case models.NarrativeTripleSixes:
		return "💥 TRIPLE SIXES 💥"
	}
	return strings.ToUpper(string(outcome.Actual))
}

func balanceField(result *models.WagerResult) *discordgo.MessageEmbedField {
	payout := result.Payout
	var change string
	switch {
	case payout.PlayerDelta > 0:
		change = fmt.Sprintf("+%s", common.FormatAmount(payout.PlayerDelta, payout.Currency))
		if payout.Tax > 0 {
			change += fmt.Sprintf(" (tax %s)", common.FormatAmount(payout.Tax, payout.Currency))
		}
	case payout.PlayerDelta < 0:
		change = fmt.Sprintf("-%s", common.FormatAmount(-payout.PlayerDelta, payout.Currency))
	default:
		change = "No change"
	}

	return &discordgo.MessageEmbedField{
		Name:   "Balance",
		Value:  fmt.Sprintf("%s\nNow %s", change, common.FormatAmount(result.NewBalance, payout.Currency)),
		Inline: false,
	}
}

func categoryColor(category models.Category) int {
	switch category {
	case models.CategoryWin:
		return common.ColorSuccess
	case models.CategoryNeutral:
		return common.ColorNeutral
	default:
		return common.ColorFailure
	}
}

func faceLabel(face models.Face) string {
	if face == models.FaceHeads {
		return "Heads"
	}
	return "Tails"
}

func fallback(s, alt string) string {
	if s == "" {
		return alt
	}
	return s
}
