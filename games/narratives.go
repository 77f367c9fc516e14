package games

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"tpbot/models"
)

//go:embed data/narratives.json
var defaultNarratives []byte

var requiredNarratives = map[models.Game][]models.NarrativeKey{
	models.GameHiLo: {
		models.NarrativeCorrect,
		models.NarrativeIncorrect,
		models.NarrativeTripleOnes,
		models.NarrativeTripleSixes,
	},
	models.GameTwoUp: {
		models.NarrativeWin,
		models.NarrativeLose,
		models.NarrativeNeutral,
	},
}

// Narratives holds the flavor text shown alongside wager outcomes
type Narratives struct {
	tables map[models.Game]map[models.NarrativeKey][]string
}

// LoadNarratives parses a narrative table and checks every outcome has at least one line
func LoadNarratives(data []byte) (*Narratives, error) {
	var tables map[models.Game]map[models.NarrativeKey][]string
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("failed to parse narratives: %w", err)
	}

	for game, keys := range requiredNarratives {
		for _, key := range keys {
			if len(tables[game][key]) == 0 {
				return nil, fmt.Errorf("narratives for %s are missing %q", game, key)
			}
		}
	}

	return &Narratives{tables: tables}, nil
}

// DefaultNarratives returns the built-in narrative table
func DefaultNarratives() *Narratives {
	n, err := LoadNarratives(defaultNarratives)
	if err != nil {
		panic(fmt.Sprintf("embedded narratives are invalid: %v", err))
	}
	return n
}

// Pick returns a random line for the outcome, or an empty string if none exists
func (n *Narratives) Pick(game models.Game, key models.NarrativeKey, src Source) string {
	lines := n.tables[game][key]
	if len(lines) == 0 {
		return ""
	}
	return lines[src.IntN(len(lines))]
}
