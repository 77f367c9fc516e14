package challenges

import (
	"fmt"
	"strconv"
	"strings"

	"tpbot/models"

	"github.com/bwmarrin/discordgo"
)

const customIDPrefix = "challenge"

var colorStyles = map[string]discordgo.ButtonStyle{
	"Blue":   discordgo.PrimaryButton,
	"Green":  discordgo.SuccessButton,
	"Orange": discordgo.DangerButton,
}

// FormatCustomID encodes a challenge answer button as "challenge:<id>:<option>"
func FormatCustomID(challengeID string, option int) string {
	return fmt.Sprintf("%s:%s:%d", customIDPrefix, challengeID, option)
}

// ParseCustomID decodes an answer button custom ID
func ParseCustomID(customID string) (string, int, bool) {
	parts := strings.Split(customID, ":")
	if len(parts) != 3 || parts[0] != customIDPrefix || parts[1] == "" {
		return "", 0, false
	}
	option, err := strconv.Atoi(parts[2])
	if err != nil || option < 0 {
		return "", 0, false
	}
	return parts[1], option, true
}

// BuildAnswerComponents creates one button per option, five per row
func BuildAnswerComponents(challenge *models.Challenge) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	var buttons []discordgo.MessageComponent

	for idx, option := range challenge.Options {
		style := discordgo.PrimaryButton
		if challenge.Kind == models.ChallengeKindColor {
			if s, ok := colorStyles[option]; ok {
				style = s
			}
		}
		buttons = append(buttons, &discordgo.Button{
			Label:    truncateLabel(option),
			Style:    style,
			CustomID: FormatCustomID(challenge.ID, idx),
		})
		if len(buttons) == 5 {
			rows = append(rows, &discordgo.ActionsRow{Components: buttons})
			buttons = nil
		}
	}
	if len(buttons) > 0 {
		rows = append(rows, &discordgo.ActionsRow{Components: buttons})
	}
	return rows
}

// Discord rejects button labels over 80 characters
func truncateLabel(label string) string {
	runes := []rune(label)
	if len(runes) <= 80 {
		return label
	}
	return string(runes[:77]) + "..."
}
