package balance

import (
	"context"

	"tpbot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleRegister(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := common.InteractionUserID(i)
	if err != nil {
		common.RespondWithServiceError(s, i, "register", err)
		return
	}

	account, err := f.economy.Register(ctx, userID, common.DisplayName(i))
	if err != nil {
		common.RespondWithServiceError(s, i, "register", err)
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildRegistrationEmbed(account), nil, false); err != nil {
		log.Errorf("Error responding to register command: %v", err)
	}
}

func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := common.InteractionUserID(i)
	if err != nil {
		common.RespondWithServiceError(s, i, "balance", err)
		return
	}

	account, err := f.economy.Balance(ctx, userID)
	if err != nil {
		common.RespondWithServiceError(s, i, "balance", err)
		return
	}

	embed := BuildBalanceEmbed(common.DisplayName(i), account, f.economy.Variant())
	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to balance command: %v", err)
	}
}

func (f *Feature) handleHistory(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := common.InteractionUserID(i)
	if err != nil {
		common.RespondWithServiceError(s, i, "history", err)
		return
	}

	entries, err := f.economy.History(ctx, userID, HistoryLimit)
	if err != nil {
		common.RespondWithServiceError(s, i, "history", err)
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildHistoryEmbed(common.DisplayName(i), entries), nil, true); err != nil {
		log.Errorf("Error responding to history command: %v", err)
	}
}
