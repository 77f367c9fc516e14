package help

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"tpbot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// CommandInfo is the one-line description shown by /help
type CommandInfo struct {
	Name        string
	Description string
}

// Feature handles /ping, /help and /cooldowns
type Feature struct {
	commands  []CommandInfo
	cooldowns *common.Cooldowns
}

func New(commands []CommandInfo, cooldowns *common.Cooldowns) *Feature {
	return &Feature{
		commands:  commands,
		cooldowns: cooldowns,
	}
}

func (f *Feature) HandlePing(s *discordgo.Session, i *discordgo.InteractionCreate) {
	latency := s.HeartbeatLatency().Round(time.Millisecond).Milliseconds()
	common.RespondWithMessage(s, i, fmt.Sprintf("Pong! Latency: %dms", latency), false)
}

func (f *Feature) HandleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	common.RespondWithMessage(s, i, BuildHelpText(f.commands), false)
}

func (f *Feature) HandleCooldowns(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, err := common.InteractionUserID(i)
	if err != nil {
		log.Errorf("Error resolving user for cooldowns: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	embed := BuildCooldownsEmbed(f.commands, f.cooldowns, userID)
	if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
		log.Errorf("Error responding to cooldowns command: %v", err)
	}
}

// BuildHelpText lists every command
func BuildHelpText(commands []CommandInfo) string {
	var b strings.Builder
	b.WriteString("Hello! Here are the commands you can use:\n")
	for _, cmd := range commands {
		fmt.Fprintf(&b, "/%s - %s\n", cmd.Name, cmd.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

// BuildCooldownsEmbed shows which rate limited commands the user can run now
func BuildCooldownsEmbed(commands []CommandInfo, cooldowns *common.Cooldowns, userID int64) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "⏰ Command Cooldowns",
		Description: "Here are the cooldown statuses for all commands:",
		Color:       common.ColorSuccess,
	}

	names := make([]string, 0, len(commands))
	for _, cmd := range commands {
		if cooldowns.Window(cmd.Name) > 0 {
			names = append(names, cmd.Name)
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		embed.Description = "✨ No commands with cooldowns found!"
		return embed
	}

	var cooling, available []string
	for _, name := range names {
		if remaining := cooldowns.Remaining(name, userID); remaining > 0 {
			cooling = append(cooling, fmt.Sprintf("🔴 **/%s** - `%s`", name, common.FormatDuration(remaining)))
			continue
		}
		available = append(available, fmt.Sprintf("🟢 **/%s** - `1 use(s) per %s`", name, common.FormatDuration(cooldowns.Window(name))))
	}

	if len(cooling) > 0 {
		embed.Color = common.ColorFailure
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "🔴 On Cooldown",
			Value: strings.Join(cooling, "\n"),
		})
	}
	if len(available) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "🟢 Available",
			Value: strings.Join(available, "\n"),
		})
	}
	return embed
}
