package games

import (
	"testing"

	"tpbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExactProbabilities_HiLo(t *testing.T) {
	for _, guess := range []models.Guess{models.GuessHigh, models.GuessLow} {
		probs, err := ExactProbabilities(models.GameHiLo, guess)
		require.NoError(t, err)

		assert.InDelta(t, 107.0/216, probs[models.CategoryWin], 1e-9, string(guess))
		assert.InDelta(t, 107.0/216, probs[models.CategoryLose], 1e-9, string(guess))
		assert.InDelta(t, 2.0/216, probs[models.CategorySpecialLose], 1e-9, string(guess))
		assert.Zero(t, probs[models.CategoryNeutral])
	}
}

func TestExactProbabilities_TwoUp(t *testing.T) {
	probs, err := ExactProbabilities(models.GameTwoUp, models.GuessTwoTails)
	require.NoError(t, err)

	assert.InDelta(t, 0.375, probs[models.CategoryWin], 1e-9)
	assert.InDelta(t, 0.375, probs[models.CategoryLose], 1e-9)
	assert.InDelta(t, 0.25, probs[models.CategoryNeutral], 1e-9)
}

func TestExactProbabilities_RejectsForeignGuess(t *testing.T) {
	_, err := ExactProbabilities(models.GameTwoUp, models.GuessHigh)
	assert.ErrorIs(t, err, ErrUnknownGuess)
}

func TestSimulate_MatchesExactDistribution(t *testing.T) {
	const trials = 50000

	for _, tc := range []struct {
		game  models.Game
		guess models.Guess
	}{
		{models.GameHiLo, models.GuessHigh},
		{models.GameTwoUp, models.GuessTwoHeads},
	} {
		report, err := Simulate(tc.game, tc.guess, NewSeededSource(42), trials)
		require.NoError(t, err)

		total := 0
		for _, n := range report.Counts {
			total += n
		}
		assert.Equal(t, trials, total)
		assert.InDelta(t, report.Expected[models.CategoryWin], report.WinRate(), 0.02)
		// 20.5 is the 0.9999 quantile for two degrees of freedom
		assert.Less(t, report.ChiSquared, 20.5, "%s %s", tc.game, tc.guess)
	}
}

func TestSimulate_Scripted(t *testing.T) {
	src := NewScriptedSource(append(Dice(4, 4, 4), Dice(1, 1, 1)...)...)

	report, err := Simulate(models.GameHiLo, models.GuessHigh, src, 2)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Counts[models.CategoryWin])
	assert.Equal(t, 1, report.Counts[models.CategorySpecialLose])
	assert.InDelta(t, 0.5, report.WinRate(), 1e-9)
}

func TestChiSquared_PerfectFit(t *testing.T) {
	observed := map[models.Category]int{models.CategoryWin: 50, models.CategoryLose: 50}
	expected := map[models.Category]float64{models.CategoryWin: 0.5, models.CategoryLose: 0.5}

	assert.Zero(t, ChiSquared(observed, expected, 100))
}
