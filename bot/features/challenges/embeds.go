package challenges

import (
	"fmt"

	"tpbot/bot/common"
	"tpbot/models"

	"github.com/bwmarrin/discordgo"
)

// BuildPromptEmbed shows an open challenge
func BuildPromptEmbed(challenge *models.Challenge) *discordgo.MessageEmbed {
	title := "📜 Law Knowledge Test"
	if challenge.Kind == models.ChallengeKindColor {
		title = "🎨 Guess the Color!"
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: challenge.Prompt,
		Color:       common.ColorInfo,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Answer within %d seconds", int(challenge.Deadline.Sub(challenge.CreatedAt).Seconds())),
		},
	}
}

// BuildResultEmbed shows how an answered challenge went
func BuildResultEmbed(result *models.ChallengeResult) *discordgo.MessageEmbed {
	if result.Correct {
		return &discordgo.MessageEmbed{
			Title:       "✅ Correct Answer!",
			Description: fmt.Sprintf("You earned %s!", common.FormatAmount(result.Reward, result.Challenge.Currency)),
			Color:       common.ColorSuccess,
		}
	}

	return &discordgo.MessageEmbed{
		Title:       "❌ Wrong Answer!",
		Description: fmt.Sprintf("The correct answer was **%s**.", result.Challenge.CorrectAnswer()),
		Color:       common.ColorFailure,
	}
}

// BuildExpiredEmbed replaces a prompt nobody answered in time
func BuildExpiredEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "⏱️ Time's Up!",
		Description: "You took too long to answer.",
		Color:       0x607d8b,
	}
}
