package games

import (
	"fmt"
	"sync"
)

// ScriptedSource replays a fixed sequence of IntN results, for tests.
// Each scripted value must be below the n it is drawn against.
type ScriptedSource struct {
	mu     sync.Mutex
	values []int
	pos    int
}

// NewScriptedSource creates a source that returns values in order
func NewScriptedSource(values ...int) *ScriptedSource {
	return &ScriptedSource{values: values}
}

func (s *ScriptedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pos >= len(s.values) {
		panic(fmt.Sprintf("scripted source exhausted after %d draws", len(s.values)))
	}
	v := s.values[s.pos]
	s.pos++
	if v < 0 || v >= n {
		panic(fmt.Sprintf("scripted value %d out of range for IntN(%d)", v, n))
	}
	return v
}

// Dice converts face values (1-6) to the IntN results that produce them
func Dice(faces ...int) []int {
	out := make([]int, len(faces))
	for i, f := range faces {
		out[i] = f - 1
	}
	return out
}
