package games

import (
	"tpbot/models"
)

// Prompt is a generated challenge question before it is registered with the engine
type Prompt struct {
	Kind    models.ChallengeKind
	Text    string
	Options []string
	Correct int
}

// Color is one of the swatches offered by the color challenge
type Color struct {
	Name  string
	Emoji string
}

// Colors lists the color challenge swatches in their canonical order
var Colors = []Color{
	{Name: "Blue", Emoji: "🟦"},
	{Name: "Green", Emoji: "🟩"},
	{Name: "Orange", Emoji: "🟧"},
}

// NewColorPrompt picks a color to show and shuffles the answer buttons
func NewColorPrompt(src Source) Prompt {
	answer := Colors[src.IntN(len(Colors))]

	options := make([]string, len(Colors))
	for i, c := range Colors {
		options[i] = c.Name
	}
	Shuffle(src, len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correct := 0
	for i, name := range options {
		if name == answer.Name {
			correct = i
			break
		}
	}

	return Prompt{
		Kind:    models.ChallengeKindColor,
		Text:    "What is this color? " + answer.Emoji,
		Options: options,
		Correct: correct,
	}
}
