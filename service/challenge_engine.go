package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tpbot/events"
	"tpbot/games"
	"tpbot/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ChallengeConfig holds the timing and reward settings for challenges
type ChallengeConfig struct {
	Timeout     time.Duration
	ColorReward models.RewardRange
	QuizReward  models.RewardRange
	// Retention is how long a finished challenge stays addressable so late answers get a precise error
	Retention time.Duration
}

// DefaultChallengeConfig returns the stock challenge settings
func DefaultChallengeConfig() ChallengeConfig {
	return ChallengeConfig{
		Timeout:     30 * time.Second,
		ColorReward: models.RewardRange{Min: 10, Max: 20},
		QuizReward:  models.RewardRange{Min: 40, Max: 60},
		Retention:   5 * time.Minute,
	}
}

type challengeEntry struct {
	mu        sync.Mutex
	challenge models.Challenge
	timer     *time.Timer
}

// ChallengeEngine runs timed single-answer challenges.
//
// Each challenge has its own lock. The first of a valid answer or the deadline to
// take it wins, and only the winner's effect (reward or expiry notice) happens.
type ChallengeEngine struct {
	ledger    *Ledger
	publisher EventPublisher
	quiz      *games.QuizBank
	src       games.Source
	variant   Variant
	cfg       ChallengeConfig
	now       func() time.Time

	mu         sync.Mutex
	challenges map[string]*challengeEntry
	closed     bool
}

// NewChallengeEngine creates a challenge engine. publisher may be nil.
func NewChallengeEngine(ledger *Ledger, publisher EventPublisher, quiz *games.QuizBank, src games.Source, variant Variant, cfg ChallengeConfig) *ChallengeEngine {
	if quiz == nil {
		quiz = games.DefaultQuizBank()
	}
	if src == nil {
		src = games.DefaultSource()
	}
	return &ChallengeEngine{
		ledger:     ledger,
		publisher:  publisher,
		quiz:       quiz,
		src:        src,
		variant:    variant,
		cfg:        cfg,
		now:        time.Now,
		challenges: make(map[string]*challengeEntry),
	}
}

// StartColorChallenge opens a color-guess challenge
func (e *ChallengeEngine) StartColorChallenge(ctx context.Context, id int64) (*models.Challenge, error) {
	return e.start(ctx, id, games.NewColorPrompt(e.src), e.cfg.ColorReward)
}

// StartQuizChallenge opens a quiz challenge
func (e *ChallengeEngine) StartQuizChallenge(ctx context.Context, id int64) (*models.Challenge, error) {
	return e.start(ctx, id, e.quiz.NewPrompt(e.src), e.cfg.QuizReward)
}

func (e *ChallengeEngine) start(ctx context.Context, initiatorID int64, prompt games.Prompt, reward models.RewardRange) (*models.Challenge, error) {
	if _, err := e.ledger.Account(ctx, initiatorID); err != nil {
		return nil, err
	}

	now := e.now()
	entry := &challengeEntry{
		challenge: models.Challenge{
			ID:            uuid.NewString(),
			Kind:          prompt.Kind,
			InitiatorID:   initiatorID,
			Prompt:        prompt.Text,
			Options:       prompt.Options,
			CorrectOption: prompt.Correct,
			Reward:        reward,
			Currency:      e.variant.RewardCurrency(prompt.Kind),
			CreatedAt:     now,
			Deadline:      now.Add(e.cfg.Timeout),
			State:         models.ChallengeStateOpen,
		},
	}
	id := entry.challenge.ID

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, fmt.Errorf("challenge engine is shut down")
	}
	e.challenges[id] = entry
	entry.mu.Lock()
	entry.timer = time.AfterFunc(e.cfg.Timeout, func() { e.expire(id) })
	snapshot := entry.challenge
	entry.mu.Unlock()
	e.mu.Unlock()

	log.WithFields(log.Fields{
		"challengeID": id,
		"kind":        prompt.Kind,
		"accountID":   initiatorID,
		"deadline":    snapshot.Deadline,
	}).Info("Challenge started")

	return &snapshot, nil
}

// Respond submits an answer for a challenge.
//
// Answers from anyone but the initiator return an ignored result and change nothing.
// The initiator gets ErrChallengeExpired once the deadline has passed, even if the
// expiry timer has not fired yet, and ErrChallengeAlreadyResolved on a second answer.
func (e *ChallengeEngine) Respond(ctx context.Context, challengeID string, responderID int64, option int) (*models.ChallengeResult, error) {
	e.mu.Lock()
	entry, ok := e.challenges[challengeID]
	e.mu.Unlock()
	if !ok {
		return nil, ErrChallengeNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	c := &entry.challenge
	if responderID != c.InitiatorID {
		return &models.ChallengeResult{Challenge: *c, Ignored: true}, nil
	}

	switch c.State {
	case models.ChallengeStateResolved:
		return nil, ErrChallengeAlreadyResolved
	case models.ChallengeStateExpired:
		return nil, ErrChallengeExpired
	}

	now := e.now()
	if !now.Before(c.Deadline) {
		e.markExpired(entry)
		return nil, ErrChallengeExpired
	}
	if option < 0 || option >= len(c.Options) {
		return nil, fmt.Errorf("%w: option %d of %d", ErrInvalidGuess, option, len(c.Options))
	}

	// state changes only after the reward is written; a failed credit leaves the challenge open
	result := &models.ChallengeResult{Correct: option == c.CorrectOption}
	if result.Correct {
		reward := games.RandomReward(e.src, c.Reward)
		applied, err := e.ledger.Apply(ctx, Delta{
			AccountID: c.InitiatorID,
			Currency:  c.Currency,
			Amount:    reward,
			Type:      models.TransactionTypeChallengeReward,
			Metadata: map[string]any{
				"challenge_id": c.ID,
				"kind":         c.Kind,
			},
		})
		if err != nil {
			log.WithFields(log.Fields{
				"challengeID": c.ID,
				"accountID":   c.InitiatorID,
				"reward":      reward,
				"error":       err,
			}).Error("Failed to apply challenge reward")
			return nil, err
		}
		result.Reward = reward
		result.NewBalance = applied.BalanceAfter
	}

	entry.timer.Stop()
	c.State = models.ChallengeStateResolved
	c.ChosenOption = &option
	c.ResolvedAt = &now
	c.Correct = result.Correct
	c.Awarded = result.Reward
	e.scheduleForget(c.ID)
	result.Challenge = *c

	e.publish(events.ChallengeResolvedEvent{
		ChallengeID: c.ID,
		Kind:        c.Kind,
		AccountID:   c.InitiatorID,
		Correct:     c.Correct,
		Reward:      c.Awarded,
		Currency:    c.Currency,
	})

	log.WithFields(log.Fields{
		"challengeID": c.ID,
		"accountID":   c.InitiatorID,
		"correct":     c.Correct,
		"reward":      c.Awarded,
	}).Info("Challenge resolved")

	return result, nil
}

// Get returns a snapshot of a challenge
func (e *ChallengeEngine) Get(challengeID string) (*models.Challenge, bool) {
	e.mu.Lock()
	entry, ok := e.challenges[challengeID]
	e.mu.Unlock()
	if !ok {
		return nil, false
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	snapshot := entry.challenge
	return &snapshot, true
}

// Close stops all pending timers; open challenges are left unresolved
func (e *ChallengeEngine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.closed = true
	for _, entry := range e.challenges {
		if entry.timer != nil {
			entry.timer.Stop()
		}
	}
}

func (e *ChallengeEngine) expire(challengeID string) {
	e.mu.Lock()
	entry, ok := e.challenges[challengeID]
	e.mu.Unlock()
	if !ok {
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.challenge.State != models.ChallengeStateOpen {
		return
	}
	e.markExpired(entry)
}

// markExpired must be called with entry.mu held on an open challenge
func (e *ChallengeEngine) markExpired(entry *challengeEntry) {
	entry.timer.Stop()
	c := &entry.challenge
	c.State = models.ChallengeStateExpired
	e.scheduleForget(c.ID)

	e.publish(events.ChallengeExpiredEvent{
		ChallengeID: c.ID,
		Kind:        c.Kind,
		AccountID:   c.InitiatorID,
	})

	log.WithFields(log.Fields{
		"challengeID": c.ID,
		"accountID":   c.InitiatorID,
	}).Info("Challenge expired")
}

func (e *ChallengeEngine) scheduleForget(challengeID string) {
	forget := func() {
		e.mu.Lock()
		delete(e.challenges, challengeID)
		e.mu.Unlock()
	}
	time.AfterFunc(e.cfg.Retention, forget)
}

func (e *ChallengeEngine) publish(event events.Event) {
	if e.publisher != nil {
		e.publisher.Publish(event)
	}
}
