package bot

import (
	"tpbot/bot/features/help"
	"tpbot/models"
	"tpbot/service"

	"github.com/bwmarrin/discordgo"
)

// Commands returns the slash commands for an economy variant
func Commands(variant service.Variant) []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "register",
			Description: "Create a new account to use the bot",
		},
		{
			Name:        "balance",
			Description: "Check your balance",
		},
		{
			Name:        "history",
			Description: "Show your recent balance changes",
		},
		{
			Name:        "hilo",
			Description: "Play hi-lo / tài xỉu",
			Options: wagerOptions(variant, []*discordgo.ApplicationCommandOptionChoice{
				{Name: "high", Value: string(models.GuessHigh)},
				{Name: "low", Value: string(models.GuessLow)},
			}),
		},
		{
			Name:        "two-up",
			Description: "Play two-up / chẵn lẻ",
			Options: wagerOptions(variant, []*discordgo.ApplicationCommandOptionChoice{
				{Name: "two heads", Value: string(models.GuessTwoHeads)},
				{Name: "two tails", Value: string(models.GuessTwoTails)},
			}),
		},
		{
			Name:        "color",
			Description: "Guess the color and earn a reward! (cooldown: 6 minutes)",
		},
		{
			Name:        "law",
			Description: "Test your knowledge of the laws and earn a reward! (cooldown: 16 minutes)",
		},
		{
			Name:        "ping",
			Description: "Check the bot's latency.",
		},
		{
			Name:        "help",
			Description: "Get information about the bot.",
		},
		{
			Name:        "cooldowns",
			Description: "View cooldown status for all bot commands.",
		},
	}
}

func wagerOptions(variant service.Variant, guesses []*discordgo.ApplicationCommandOptionChoice) []*discordgo.ApplicationCommandOption {
	minBet := 1.0
	options := []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "guess",
			Description: "Your prediction",
			Required:    true,
			Choices:     guesses,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "bet_amount",
			Description: "Amount to bet",
			Required:    true,
			MinValue:    &minBet,
		},
	}

	currencies := variant.Currencies()
	if len(currencies) > 1 {
		choices := make([]*discordgo.ApplicationCommandOptionChoice, len(currencies))
		for i, currency := range currencies {
			choices[i] = &discordgo.ApplicationCommandOptionChoice{Name: string(currency), Value: string(currency)}
		}
		options = append(options, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "currency",
			Description: "Currency to bet with (defaults to " + string(variant.DefaultCurrency()) + ")",
			Required:    false,
			Choices:     choices,
		})
	}
	return options
}

func commandInfos(variant service.Variant) []help.CommandInfo {
	commands := Commands(variant)
	infos := make([]help.CommandInfo, len(commands))
	for i, cmd := range commands {
		infos[i] = help.CommandInfo{Name: cmd.Name, Description: cmd.Description}
	}
	return infos
}
