package balance

import (
	"fmt"
	"strings"

	"tpbot/bot/common"
	"tpbot/models"
	"tpbot/service"

	"github.com/bwmarrin/discordgo"
)

// BuildRegistrationEmbed confirms a new account
func BuildRegistrationEmbed(account *models.Account) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎉 Registration Successful!",
		Description: fmt.Sprintf("Welcome to the bot, %s!", account.DisplayName),
		Color:       common.ColorSuccess,
	}
}

// BuildBalanceEmbed shows every balance the variant carries
func BuildBalanceEmbed(name string, account *models.Account, variant service.Variant) *discordgo.MessageEmbed {
	currencies := variant.Currencies()
	amounts := make([]string, len(currencies))
	for i, currency := range currencies {
		amounts[i] = common.FormatAmount(account.Balance(currency), currency)
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("💰 %s's Balance", name),
		Description: fmt.Sprintf("You have %s.", strings.Join(amounts, " and ")),
		Color:       common.ColorNeutral,
	}
}

// BuildHistoryEmbed lists recent balance changes, newest first
func BuildHistoryEmbed(name string, entries []*models.BalanceHistory) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📒 %s's Recent Activity", name),
		Color: common.ColorInfo,
	}

	if len(entries) == 0 {
		embed.Description = "No activity yet."
		return embed
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		sign := ""
		if entry.ChangeAmount > 0 {
			sign = "+"
		}
		lines = append(lines, fmt.Sprintf("%s `%s` %s%s %s → %s",
			common.FormatDiscordTimestamp(entry.CreatedAt, "R"),
			entry.TransactionType,
			sign,
			common.FormatBalance(entry.ChangeAmount),
			common.CurrencyLabel(entry.Currency),
			common.FormatBalance(entry.BalanceAfter),
		))
	}
	embed.Description = strings.Join(lines, "\n")
	return embed
}
