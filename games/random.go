package games

import (
	"math/rand/v2"
	"sync"

	"tpbot/models"
)

// Source is the randomness every resolver and generator draws from.
// IntN returns a value in [0, n).
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

// DefaultSource returns a source backed by the runtime's concurrency-safe generator
func DefaultSource() Source {
	return globalSource{}
}

// SeededSource is a deterministic source safe for concurrent use
type SeededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource creates a source that yields the same stream for the same seed
func NewSeededSource(seed uint64) *SeededSource {
	return &SeededSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *SeededSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// RollDie rolls a single six-sided die
func RollDie(src Source) int {
	return src.IntN(6) + 1
}

// FlipCoin flips a fair coin
func FlipCoin(src Source) models.Face {
	if src.IntN(2) == 0 {
		return models.FaceHeads
	}
	return models.FaceTails
}

// RandomReward draws a uniform amount from the inclusive range
func RandomReward(src Source, r models.RewardRange) int64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + int64(src.IntN(int(r.Max-r.Min+1)))
}

// Shuffle permutes n elements in place using Fisher-Yates
func Shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		swap(i, j)
	}
}
