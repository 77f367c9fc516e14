package models

import (
	"time"
)

// ChallengeKind identifies the flavor of an interactive challenge
type ChallengeKind string

const (
	ChallengeKindColor ChallengeKind = "color"
	ChallengeKindQuiz  ChallengeKind = "quiz"
)

// ChallengeState represents the lifecycle state of a challenge
type ChallengeState string

const (
	ChallengeStateOpen     ChallengeState = "open"
	ChallengeStateResolved ChallengeState = "resolved"
	ChallengeStateExpired  ChallengeState = "expired"
)

// IsTerminal reports whether no further transition is possible
func (s ChallengeState) IsTerminal() bool {
	return s == ChallengeStateResolved || s == ChallengeStateExpired
}

// RewardRange is an inclusive range for a randomized reward
type RewardRange struct {
	Min int64
	Max int64
}

// Challenge is a timed single-answer prompt owned by one player
type Challenge struct {
	ID            string
	Kind          ChallengeKind
	InitiatorID   int64
	Prompt        string
	Options       []string
	CorrectOption int // index into Options
	Reward        RewardRange
	Currency      Currency
	CreatedAt     time.Time
	Deadline      time.Time
	State         ChallengeState

	// Set once the challenge is resolved
	ChosenOption *int
	Correct      bool
	Awarded      int64
	ResolvedAt   *time.Time
}

// CorrectAnswer returns the text of the correct option
func (c *Challenge) CorrectAnswer() string {
	if c.CorrectOption < 0 || c.CorrectOption >= len(c.Options) {
		return ""
	}
	return c.Options[c.CorrectOption]
}

// ChallengeResult describes the effect of a single respond call
type ChallengeResult struct {
	Challenge  Challenge
	Ignored    bool // set for responders other than the initiator
	Correct    bool
	Reward     int64
	NewBalance int64
}
