package challenges

import (
	"context"
	"testing"
	"time"

	"tpbot/events"
	"tpbot/models"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomIDRoundTrip(t *testing.T) {
	id := FormatCustomID("0b4e7a4c-2f59-4a39-9d62-2d0c2a3f3c11", 2)
	assert.Equal(t, "challenge:0b4e7a4c-2f59-4a39-9d62-2d0c2a3f3c11:2", id)

	challengeID, option, ok := ParseCustomID(id)
	require.True(t, ok)
	assert.Equal(t, "0b4e7a4c-2f59-4a39-9d62-2d0c2a3f3c11", challengeID)
	assert.Equal(t, 2, option)
}

func TestParseCustomID_Rejects(t *testing.T) {
	for _, id := range []string{
		"",
		"bet_odds_50",
		"challenge:abc",
		"challenge::1",
		"challenge:abc:x",
		"challenge:abc:-1",
		"wager:abc:1",
	} {
		_, _, ok := ParseCustomID(id)
		assert.False(t, ok, id)
	}
}

func TestBuildAnswerComponents(t *testing.T) {
	challenge := &models.Challenge{
		ID:      "c1",
		Kind:    models.ChallengeKindColor,
		Options: []string{"Green", "Orange", "Blue"},
	}

	rows := BuildAnswerComponents(challenge)
	require.Len(t, rows, 1)
	buttons := rows[0].(*discordgo.ActionsRow).Components
	require.Len(t, buttons, 3)

	first := buttons[0].(*discordgo.Button)
	assert.Equal(t, "Green", first.Label)
	assert.Equal(t, discordgo.SuccessButton, first.Style)
	assert.Equal(t, "challenge:c1:0", first.CustomID)
	assert.Equal(t, discordgo.PrimaryButton, buttons[2].(*discordgo.Button).Style)
}

func TestBuildAnswerComponents_WrapsRows(t *testing.T) {
	challenge := &models.Challenge{
		ID:      "c2",
		Kind:    models.ChallengeKindQuiz,
		Options: []string{"a", "b", "c", "d", "e", "f"},
	}

	rows := BuildAnswerComponents(challenge)
	require.Len(t, rows, 2)
	assert.Len(t, rows[1].(*discordgo.ActionsRow).Components, 1)
}

func TestBuildEmbeds(t *testing.T) {
	now := time.Now()
	challenge := models.Challenge{
		Kind:          models.ChallengeKindColor,
		Prompt:        "What is this color? 🟦",
		Options:       []string{"Green", "Orange", "Blue"},
		CorrectOption: 2,
		Currency:      models.CurrencyTPG,
		CreatedAt:     now,
		Deadline:      now.Add(30 * time.Second),
	}

	prompt := BuildPromptEmbed(&challenge)
	assert.Equal(t, "🎨 Guess the Color!", prompt.Title)
	assert.Equal(t, "Answer within 30 seconds", prompt.Footer.Text)

	win := BuildResultEmbed(&models.ChallengeResult{Challenge: challenge, Correct: true, Reward: 15})
	assert.Equal(t, "✅ Correct Answer!", win.Title)
	assert.Equal(t, "You earned **15 TPG**!", win.Description)

	loss := BuildResultEmbed(&models.ChallengeResult{Challenge: challenge})
	assert.Equal(t, "❌ Wrong Answer!", loss.Title)
	assert.Equal(t, "The correct answer was **Blue**.", loss.Description)

	assert.Equal(t, "⏱️ Time's Up!", BuildExpiredEmbed().Title)
}

func TestFeature_ExpiryOfUntrackedChallengeIsNoop(t *testing.T) {
	f := New(nil, nil, events.NewBus())
	f.track("c1", trackedPrompt{interaction: &discordgo.Interaction{ID: "i1"}})

	// unknown challenges never reach the session
	f.handleExpired(context.Background(), events.ChallengeExpiredEvent{ChallengeID: "other"})
	f.handleExpired(context.Background(), events.UserCreatedEvent{AccountID: 1})

	prompt, ok := f.untrack("c1")
	require.True(t, ok)
	assert.Equal(t, "i1", prompt.interaction.ID)

	_, ok = f.untrack("c1")
	assert.False(t, ok)
}
