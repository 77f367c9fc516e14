package cmd

import (
	"fmt"
	"io"

	"tpbot/games"
	"tpbot/models"
	"tpbot/service"
)

// simulationStake is the bet the expected-value column is expressed in
const simulationStake int64 = 1000

var simulatedWagers = []struct {
	game  models.Game
	guess models.Guess
}{
	{models.GameHiLo, models.GuessHigh},
	{models.GameHiLo, models.GuessLow},
	{models.GameTwoUp, models.GuessTwoHeads},
	{models.GameTwoUp, models.GuessTwoTails},
}

// ExpectedValue returns the mean player delta of one wager of stake under the exact distribution
func ExpectedValue(payout *service.PayoutEngine, probs map[models.Category]float64, stake int64) float64 {
	ev := 0.0
	for category, p := range probs {
		delta := payout.Compute(models.WagerOutcome{Category: category}, stake, "")
		ev += p * float64(delta.PlayerDelta)
	}
	return ev
}

// Simulate resolves every game and guess trials times and writes a fairness report
func Simulate(w io.Writer, src games.Source, trials int, taxPercent int64) error {
	payout := service.NewPayoutEngine(taxPercent)

	fmt.Fprintf(w, "=== Wager Simulation (%d trials, %d%% tax) ===\n", trials, taxPercent)
	for _, wager := range simulatedWagers {
		report, err := games.Simulate(wager.game, wager.guess, src, trials)
		if err != nil {
			return fmt.Errorf("failed to simulate %s %s: %w", wager.game, wager.guess, err)
		}

		expectedWin := report.Expected[models.CategoryWin]
		fmt.Fprintf(w, "%-6s %-10s | win %.4f (exact %.4f) | push %d | special %d | χ²: %.2f | EV per %d: %+.2f\n",
			wager.game, wager.guess,
			report.WinRate(), expectedWin,
			report.Counts[models.CategoryNeutral], report.Counts[models.CategorySpecialLose],
			report.ChiSquared,
			simulationStake, ExpectedValue(payout, report.Expected, simulationStake))
	}
	return nil
}
