package balance

import (
	"tpbot/service"

	"github.com/bwmarrin/discordgo"
)

// HistoryLimit is the number of entries /history shows
const HistoryLimit = 10

// Feature handles account commands: /register, /balance and /history
type Feature struct {
	economy service.EconomyService
}

func New(economy service.EconomyService) *Feature {
	return &Feature{
		economy: economy,
	}
}

func (f *Feature) HandleRegister(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleRegister(s, i)
}

func (f *Feature) HandleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleBalance(s, i)
}

func (f *Feature) HandleHistory(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleHistory(s, i)
}
