package games

import (
	"fmt"
	"math"

	"tpbot/models"
)

// SimulationReport summarizes repeated resolution of one game and guess
type SimulationReport struct {
	Game       models.Game
	Guess      models.Guess
	Trials     int
	Counts     map[models.Category]int
	Expected   map[models.Category]float64
	ChiSquared float64
}

// WinRate returns the observed share of winning trials
func (r SimulationReport) WinRate() float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(r.Counts[models.CategoryWin]) / float64(r.Trials)
}

// ExactProbabilities enumerates every roll or toss and returns the probability of each category
func ExactProbabilities(game models.Game, guess models.Guess) (map[models.Category]float64, error) {
	if !guess.ValidFor(game) {
		return nil, fmt.Errorf("%w for %s: %q", ErrUnknownGuess, game, guess)
	}

	counts := make(map[models.Category]int)
	total := 0

	switch game {
	case models.GameHiLo:
		for a := 1; a <= 6; a++ {
			for b := 1; b <= 6; b++ {
				for c := 1; c <= 6; c++ {
					counts[ClassifyHiLo(guess, []int{a, b, c}).Category]++
					total++
				}
			}
		}
	case models.GameTwoUp:
		faces := []models.Face{models.FaceHeads, models.FaceTails}
		for _, a := range faces {
			for _, b := range faces {
				for _, c := range faces {
					counts[ClassifyTwoUp(guess, []models.Face{a, b, c}).Category]++
					total++
				}
			}
		}
	}

	probs := make(map[models.Category]float64, len(counts))
	for category, n := range counts {
		probs[category] = float64(n) / float64(total)
	}
	return probs, nil
}

// Simulate resolves the game trials times and compares the observed
// categories against the exact distribution with Pearson's chi-squared.
func Simulate(game models.Game, guess models.Guess, src Source, trials int) (SimulationReport, error) {
	expected, err := ExactProbabilities(game, guess)
	if err != nil {
		return SimulationReport{}, err
	}

	resolve := ResolveHiLo
	if game == models.GameTwoUp {
		resolve = ResolveTwoUp
	}

	report := SimulationReport{
		Game:     game,
		Guess:    guess,
		Trials:   trials,
		Counts:   make(map[models.Category]int),
		Expected: expected,
	}
	for range trials {
		outcome, err := resolve(guess, src)
		if err != nil {
			return SimulationReport{}, err
		}
		report.Counts[outcome.Category]++
	}

	report.ChiSquared = ChiSquared(report.Counts, expected, trials)
	return report, nil
}

// ChiSquared computes Pearson's statistic of observed counts against expected probabilities
func ChiSquared(observed map[models.Category]int, expected map[models.Category]float64, trials int) float64 {
	stat := 0.0
	for category, p := range expected {
		want := p * float64(trials)
		if want == 0 {
			continue
		}
		stat += math.Pow(float64(observed[category])-want, 2) / want
	}
	return stat
}
