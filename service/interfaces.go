package service

import (
	"context"

	"tpbot/events"
	"tpbot/models"
)

// AccountStore defines the persistence contract for accounts.
// Last write wins; callers serialize through the Ledger.
type AccountStore interface {
	// Load returns the account, or nil with no error when it does not exist
	Load(ctx context.Context, id int64) (*models.Account, error)

	// Save creates or replaces the account
	Save(ctx context.Context, account *models.Account) error
}

// BalanceHistoryRepository defines the interface for balance history tracking
type BalanceHistoryRepository interface {
	// Record creates a new balance history entry
	Record(ctx context.Context, history *models.BalanceHistory) error

	// GetByAccount returns the most recent entries for an account, newest first
	GetByAccount(ctx context.Context, accountID int64, limit int) ([]*models.BalanceHistory, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// EconomyService is the command surface for accounts and wagers
type EconomyService interface {
	// Register opens a zero-balance account for the identity
	Register(ctx context.Context, id int64, displayName string) (*models.Account, error)

	// Balance returns the account for the identity
	Balance(ctx context.Context, id int64) (*models.Account, error)

	// PlayHiLo resolves a three-dice high/low wager
	PlayHiLo(ctx context.Context, req models.WagerRequest) (*models.WagerResult, error)

	// PlayTwoUp resolves a three-coin two-up wager
	PlayTwoUp(ctx context.Context, req models.WagerRequest) (*models.WagerResult, error)

	// History returns recent balance changes, newest first
	History(ctx context.Context, id int64, limit int) ([]*models.BalanceHistory, error)

	// Variant returns the configured economy variant
	Variant() Variant
}

// ChallengeService is the command surface for timed interactive challenges
type ChallengeService interface {
	// StartColorChallenge opens a color-guess challenge for the identity
	StartColorChallenge(ctx context.Context, id int64) (*models.Challenge, error)

	// StartQuizChallenge opens a quiz challenge for the identity
	StartQuizChallenge(ctx context.Context, id int64) (*models.Challenge, error)

	// Respond submits an answer; answers from anyone but the initiator are ignored
	Respond(ctx context.Context, challengeID string, responderID int64, option int) (*models.ChallengeResult, error)
}
