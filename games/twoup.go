package games

import (
	"fmt"

	"tpbot/models"
)

const twoUpCoins = 3

// ResolveTwoUp flips three coins and classifies them against the guess
func ResolveTwoUp(guess models.Guess, src Source) (models.WagerOutcome, error) {
	if !guess.ValidFor(models.GameTwoUp) {
		return models.WagerOutcome{}, fmt.Errorf("%w for two-up: %q", ErrUnknownGuess, guess)
	}

	coins := make([]models.Face, twoUpCoins)
	for i := range coins {
		coins[i] = FlipCoin(src)
	}
	return ClassifyTwoUp(guess, coins), nil
}

// ClassifyTwoUp applies the two-up rules: all faces alike is a push,
// otherwise the guess must name the majority face.
func ClassifyTwoUp(guess models.Guess, coins []models.Face) models.WagerOutcome {
	heads := 0
	for _, c := range coins {
		if c == models.FaceHeads {
			heads++
		}
	}

	outcome := models.WagerOutcome{
		Game:  models.GameTwoUp,
		Coins: append([]models.Face(nil), coins...),
		Total: heads,
	}

	if heads == 0 || heads == len(coins) {
		outcome.Category = models.CategoryNeutral
		outcome.NarrativeKey = models.NarrativeNeutral
		return outcome
	}

	outcome.Actual = models.GuessTwoTails
	if heads*2 > len(coins) {
		outcome.Actual = models.GuessTwoHeads
	}

	if guess == outcome.Actual {
		outcome.Category = models.CategoryWin
		outcome.NarrativeKey = models.NarrativeWin
	} else {
		outcome.Category = models.CategoryLose
		outcome.NarrativeKey = models.NarrativeLose
	}
	return outcome
}
