package wagers

import (
	"tpbot/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles the /hilo and /two-up commands
type Feature struct {
	economy service.EconomyService
}

// New creates a new wagers feature instance
func New(economy service.EconomyService) *Feature {
	return &Feature{
		economy: economy,
	}
}

// HandleHiLo handles the /hilo command
func (f *Feature) HandleHiLo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleWager(s, i, f.economy.PlayHiLo, BuildHiLoEmbed)
}

// HandleTwoUp handles the /two-up command
func (f *Feature) HandleTwoUp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleWager(s, i, f.economy.PlayTwoUp, BuildTwoUpEmbed)
}
