package challenges

import (
	"context"

	"tpbot/bot/common"
	"tpbot/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

type startFunc func(ctx context.Context, id int64) (*models.Challenge, error)

func (f *Feature) handleStart(s *discordgo.Session, i *discordgo.InteractionCreate, start startFunc) {
	ctx := context.Background()

	userID, err := common.InteractionUserID(i)
	if err != nil {
		common.RespondWithServiceError(s, i, "challenge", err)
		return
	}

	challenge, err := start(ctx, userID)
	if err != nil {
		common.RespondWithServiceError(s, i, "challenge", err)
		return
	}

	components := BuildAnswerComponents(challenge)
	if err := common.RespondWithEmbed(s, i, BuildPromptEmbed(challenge), components, false); err != nil {
		log.WithFields(log.Fields{
			"challengeID": challenge.ID,
			"error":       err,
		}).Error("Error sending challenge prompt")
		return
	}

	f.track(challenge.ID, trackedPrompt{interaction: i.Interaction, components: components})
}

func (f *Feature) handleAnswer(s *discordgo.Session, i *discordgo.InteractionCreate, challengeID string, option int) {
	ctx := context.Background()

	userID, err := common.InteractionUserID(i)
	if err != nil {
		common.RespondWithServiceError(s, i, "challenge_answer", err)
		return
	}

	result, err := f.challenges.Respond(ctx, challengeID, userID, option)
	if err != nil {
		common.RespondWithServiceError(s, i, "challenge_answer", err)
		return
	}

	if result.Ignored {
		// not their challenge: acknowledge without changing the message
		err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredMessageUpdate,
		})
		if err != nil {
			log.Errorf("Error acknowledging foreign challenge answer: %v", err)
		}
		return
	}

	f.untrack(challengeID)

	var components []discordgo.MessageComponent
	if i.Message != nil {
		components = common.DisableComponents(i.Message.Components)
	}
	if err := common.UpdateComponentMessage(s, i, BuildResultEmbed(result), components); err != nil {
		log.WithFields(log.Fields{
			"challengeID": challengeID,
			"error":       err,
		}).Error("Error updating challenge message")
	}
}
