package games

import (
	"errors"
	"fmt"

	"tpbot/models"
)

// ErrUnknownGuess is returned when a guess does not belong to the game being resolved
var ErrUnknownGuess = errors.New("unknown guess")

const (
	hiloDice      = 3
	hiloLowMax    = 10
	hiloTripleMin = 3
	hiloTripleMax = 18
)

// ResolveHiLo rolls three dice and classifies them against the guess
func ResolveHiLo(guess models.Guess, src Source) (models.WagerOutcome, error) {
	if !guess.ValidFor(models.GameHiLo) {
		return models.WagerOutcome{}, fmt.Errorf("%w for hi-lo: %q", ErrUnknownGuess, guess)
	}

	dice := make([]int, hiloDice)
	for i := range dice {
		dice[i] = RollDie(src)
	}
	return ClassifyHiLo(guess, dice), nil
}

// ClassifyHiLo applies the hi-lo rules to an already rolled set of dice.
// Triple ones and triple sixes are forced losses before the high/low comparison.
func ClassifyHiLo(guess models.Guess, dice []int) models.WagerOutcome {
	total := 0
	for _, d := range dice {
		total += d
	}

	outcome := models.WagerOutcome{
		Game:  models.GameHiLo,
		Dice:  append([]int(nil), dice...),
		Total: total,
	}

	switch total {
	case hiloTripleMin:
		outcome.Category = models.CategorySpecialLose
		outcome.NarrativeKey = models.NarrativeTripleOnes
		return outcome
	case hiloTripleMax:
		outcome.Category = models.CategorySpecialLose
		outcome.NarrativeKey = models.NarrativeTripleSixes
		return outcome
	}

	outcome.Actual = models.GuessHigh
	if total <= hiloLowMax {
		outcome.Actual = models.GuessLow
	}

	if guess == outcome.Actual {
		outcome.Category = models.CategoryWin
		outcome.NarrativeKey = models.NarrativeCorrect
	} else {
		outcome.Category = models.CategoryLose
		outcome.NarrativeKey = models.NarrativeIncorrect
	}
	return outcome
}
