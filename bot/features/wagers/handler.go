package wagers

import (
	"context"

	"tpbot/bot/common"
	"tpbot/models"
	"tpbot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

type playFunc func(ctx context.Context, req models.WagerRequest) (*models.WagerResult, error)

type embedFunc func(result *models.WagerResult) *discordgo.MessageEmbed

func (f *Feature) handleWager(s *discordgo.Session, i *discordgo.InteractionCreate, play playFunc, build embedFunc) {
	ctx := context.Background()

	playerID, err := common.InteractionUserID(i)
	if err != nil {
		common.RespondWithServiceError(s, i, "wager", err)
		return
	}

	req, err := ParseWagerOptions(i.ApplicationCommandData().Options)
	if err != nil {
		common.RespondWithServiceError(s, i, "wager", err)
		return
	}
	req.PlayerID = playerID
	req.DisplayName = common.DisplayName(i)

	result, err := play(ctx, req)
	if err != nil {
		common.RespondWithServiceError(s, i, "wager", err)
		return
	}

	if err := common.RespondWithEmbed(s, i, build(result), nil, false); err != nil {
		log.Errorf("Error responding to wager command: %v", err)
	}
}

// ParseWagerOptions reads the guess, bet_amount and optional currency options of a wager command
func ParseWagerOptions(options []*discordgo.ApplicationCommandInteractionDataOption) (models.WagerRequest, error) {
	var req models.WagerRequest
	for _, opt := range options {
		switch opt.Name {
		case "guess":
			req.Guess = models.Guess(opt.StringValue())
		case "bet_amount":
			req.Stake = opt.IntValue()
		case "currency":
			req.Currency = models.Currency(opt.StringValue())
		}
	}
	if req.Guess == "" {
		return req, service.ErrInvalidGuess
	}
	return req, nil
}
