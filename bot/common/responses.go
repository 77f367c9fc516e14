package common

import (
	"fmt"
	"strconv"

	"tpbot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Embed colors
const (
	ColorSuccess = 0x2ecc71
	ColorFailure = 0xe74c3c
	ColorNeutral = 0xf1c40f
	ColorInfo    = 0x3498db
)

// InteractionUser returns the invoking user for guild and DM interactions alike
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// InteractionUserID parses the invoking user's snowflake
func InteractionUserID(i *discordgo.InteractionCreate) (int64, error) {
	user := InteractionUser(i)
	if user == nil {
		return 0, fmt.Errorf("interaction has no user")
	}
	id, err := strconv.ParseInt(user.ID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse user id %q: %w", user.ID, err)
	}
	return id, nil
}

// DisplayName returns the guild nickname if set, otherwise the global name or username
func DisplayName(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.Nick != "" {
		return i.Member.Nick
	}
	user := InteractionUser(i)
	if user == nil {
		return "Unknown"
	}
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

// RespondWithEmbed sends an embed as an interaction response
func RespondWithEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}

	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	if len(components) > 0 {
		data.Components = components
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// RespondWithMessage sends plain text as an interaction response
func RespondWithMessage(s *discordgo.Session, i *discordgo.InteractionCreate, message string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{
		Content: message,
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Errorf("Error responding to interaction: %v", err)
	}
}

// RespondWithError sends an ephemeral error message
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	RespondWithMessage(s, i, "❌ "+message, true)
}

// RespondWithServiceError replies with the user-facing text for err. Errors without one are logged.
func RespondWithServiceError(s *discordgo.Session, i *discordgo.InteractionCreate, command string, err error) {
	logServiceError(i, command, err)
	RespondWithError(s, i, service.UserMessage(err))
}

func logServiceError(i *discordgo.InteractionCreate, command string, err error) bool {
	if !service.IsInternal(err) {
		return false
	}
	fields := log.Fields{
		"command": command,
		"error":   err,
	}
	if user := InteractionUser(i); user != nil {
		fields["userID"] = user.ID
	}
	log.WithFields(fields).Error("Command failed")
	return true
}

// UpdateComponentMessage replaces the message a component is attached to
func UpdateComponentMessage(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
}

// EditOriginalResponse edits a previously sent interaction response
func EditOriginalResponse(s *discordgo.Session, interaction *discordgo.Interaction, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	edit := &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}

	if components != nil {
		edit.Components = &components
	}

	_, err := s.InteractionResponseEdit(interaction, edit)
	return err
}

// DisableComponents disables all components in a message
func DisableComponents(components []discordgo.MessageComponent) []discordgo.MessageComponent {
	disabled := make([]discordgo.MessageComponent, len(components))

	for i, component := range components {
		actionRow, ok := component.(*discordgo.ActionsRow)
		if !ok {
			disabled[i] = component
			continue
		}

		newRow := &discordgo.ActionsRow{
			Components: make([]discordgo.MessageComponent, len(actionRow.Components)),
		}
		for j, comp := range actionRow.Components {
			switch c := comp.(type) {
			case *discordgo.Button:
				newButton := *c
				newButton.Disabled = true
				newRow.Components[j] = &newButton
			case *discordgo.SelectMenu:
				newMenu := *c
				newMenu.Disabled = true
				newRow.Components[j] = &newMenu
			default:
				newRow.Components[j] = comp
			}
		}
		disabled[i] = newRow
	}

	return disabled
}
