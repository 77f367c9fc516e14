package challenges

import (
	"context"
	"sync"

	"tpbot/bot/common"
	"tpbot/events"
	"tpbot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature handles /color, /law and the answer buttons of their challenges
type Feature struct {
	challenges service.ChallengeService
	session    *discordgo.Session

	mu      sync.Mutex
	prompts map[string]trackedPrompt // by open challenge ID
}

// trackedPrompt is the interaction whose response shows a challenge, with the buttons it was sent with
type trackedPrompt struct {
	interaction *discordgo.Interaction
	components  []discordgo.MessageComponent
}

// New creates the challenges feature and subscribes it to expiry events
func New(challenges service.ChallengeService, session *discordgo.Session, bus *events.Bus) *Feature {
	f := &Feature{
		challenges: challenges,
		session:    session,
		prompts:    make(map[string]trackedPrompt),
	}
	bus.Subscribe(events.EventTypeChallengeExpired, f.handleExpired)
	return f
}

// HandleColor handles the /color command
func (f *Feature) HandleColor(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleStart(s, i, f.challenges.StartColorChallenge)
}

// HandleLaw handles the /law command
func (f *Feature) HandleLaw(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleStart(s, i, f.challenges.StartQuizChallenge)
}

// HandleInteraction handles answer buttons; it reports whether the component belonged to this feature
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if i.Type != discordgo.InteractionMessageComponent {
		return false
	}
	challengeID, option, ok := ParseCustomID(i.MessageComponentData().CustomID)
	if !ok {
		return false
	}
	f.handleAnswer(s, i, challengeID, option)
	return true
}

func (f *Feature) track(challengeID string, prompt trackedPrompt) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts[challengeID] = prompt
}

func (f *Feature) untrack(challengeID string) (trackedPrompt, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prompt, ok := f.prompts[challengeID]
	delete(f.prompts, challengeID)
	return prompt, ok
}

func (f *Feature) handleExpired(ctx context.Context, event events.Event) {
	expired, ok := event.(events.ChallengeExpiredEvent)
	if !ok {
		return
	}

	prompt, ok := f.untrack(expired.ChallengeID)
	if !ok {
		return
	}

	components := common.DisableComponents(prompt.components)
	if err := common.EditOriginalResponse(f.session, prompt.interaction, BuildExpiredEmbed(), components); err != nil {
		log.WithFields(log.Fields{
			"challengeID": expired.ChallengeID,
			"error":       err,
		}).Warn("Failed to edit expired challenge message")
	}
}
