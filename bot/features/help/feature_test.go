package help

import (
	"testing"
	"time"

	"tpbot/bot/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCommands = []CommandInfo{
	{Name: "ping", Description: "Check the bot's latency."},
	{Name: "color", Description: "Guess the color."},
	{Name: "balance", Description: "Check your balance."},
}

func TestBuildHelpText(t *testing.T) {
	text := BuildHelpText(testCommands)
	assert.Contains(t, text, "/ping - Check the bot's latency.")
	assert.Contains(t, text, "/balance - Check your balance.")
}

func TestBuildCooldownsEmbed(t *testing.T) {
	cooldowns := common.NewCooldowns(map[string]time.Duration{
		"color":   360 * time.Second,
		"balance": 3 * time.Second,
	})

	embed := BuildCooldownsEmbed(testCommands, cooldowns, 1)
	require.Len(t, embed.Fields, 1)
	assert.Equal(t, "🟢 Available", embed.Fields[0].Name)
	assert.Contains(t, embed.Fields[0].Value, "**/color** - `1 use(s) per 6m 0s`")
	assert.Contains(t, embed.Fields[0].Value, "**/balance** - `1 use(s) per 3s`")
	assert.NotContains(t, embed.Fields[0].Value, "/ping")

	_, ok := cooldowns.Acquire("color", 1)
	require.True(t, ok)

	embed = BuildCooldownsEmbed(testCommands, cooldowns, 1)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "🔴 On Cooldown", embed.Fields[0].Name)
	assert.Contains(t, embed.Fields[0].Value, "**/color**")
	assert.Equal(t, common.ColorFailure, embed.Color)
}

func TestBuildCooldownsEmbed_None(t *testing.T) {
	embed := BuildCooldownsEmbed(testCommands, common.NewCooldowns(nil), 1)
	assert.Equal(t, "✨ No commands with cooldowns found!", embed.Description)
	assert.Empty(t, embed.Fields)
}
