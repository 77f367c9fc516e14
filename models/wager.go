package models

// Game identifies which wager game produced an outcome
type Game string

const (
	GameHiLo  Game = "hilo"
	GameTwoUp Game = "twoup"
)

// Guess is the player's discrete prediction for a wager
type Guess string

const (
	GuessHigh     Guess = "high"
	GuessLow      Guess = "low"
	GuessTwoHeads Guess = "two_heads"
	GuessTwoTails Guess = "two_tails"
)

// ValidFor reports whether the guess belongs to the given game
func (g Guess) ValidFor(game Game) bool {
	switch game {
	case GameHiLo:
		return g == GuessHigh || g == GuessLow
	case GameTwoUp:
		return g == GuessTwoHeads || g == GuessTwoTails
	default:
		return false
	}
}

// Category is the discriminated result of a wager
type Category string

const (
	CategoryWin         Category = "win"
	CategoryLose        Category = "lose"
	CategoryNeutral     Category = "neutral"
	CategorySpecialLose Category = "special_lose"
)

// Face is one side of a two-up coin
type Face string

const (
	FaceHeads Face = "heads"
	FaceTails Face = "tails"
)

// NarrativeKey selects a flavor-text table entry for an outcome
type NarrativeKey string

const (
	NarrativeCorrect     NarrativeKey = "correct"
	NarrativeIncorrect   NarrativeKey = "incorrect"
	NarrativeTripleOnes  NarrativeKey = "triple_ones"
	NarrativeTripleSixes NarrativeKey = "triple_sixes"
	NarrativeWin         NarrativeKey = "win"
	NarrativeLose        NarrativeKey = "lose"
	NarrativeNeutral     NarrativeKey = "neutral"
)

// WagerRequest is a single stake-bearing bet issued by a player
type WagerRequest struct {
	PlayerID    int64
	DisplayName string
	Game        Game
	Currency    Currency
	Stake       int64
	Guess       Guess
}

// WagerOutcome is the pure result of resolving a wager against fresh randomness
type WagerOutcome struct {
	Game         Game
	Category     Category
	Dice         []int  // hi-lo only
	Coins        []Face // two-up only
	Total        int
	Actual       Guess // the side that actually came up, empty on special and neutral rolls
	NarrativeKey NarrativeKey
}

// PayoutDelta holds the signed balance changes a resolved wager produces
type PayoutDelta struct {
	Currency    Currency
	Gross       int64
	Tax         int64
	PlayerDelta int64
	HouseDelta  int64
}

// WagerResult is returned to the caller for rendering
type WagerResult struct {
	Request       WagerRequest
	Outcome       WagerOutcome
	Payout        PayoutDelta
	BalanceBefore int64
	NewBalance    int64
	HouseCredited bool
	Narrative     string
}
