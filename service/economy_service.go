package service

import (
	"context"
	"fmt"

	"tpbot/games"
	"tpbot/models"

	log "github.com/sirupsen/logrus"
)

type resolver func(guess models.Guess, src games.Source) (models.WagerOutcome, error)

type economyService struct {
	ledger     *Ledger
	payout     *PayoutEngine
	history    BalanceHistoryRepository
	narratives *games.Narratives
	src        games.Source
	variant    Variant
}

// NewEconomyService creates the account and wager command surface.
// The legacy variant never taxes, whatever the payout engine is configured with.
func NewEconomyService(ledger *Ledger, payout *PayoutEngine, history BalanceHistoryRepository, narratives *games.Narratives, src games.Source, variant Variant) EconomyService {
	if !variant.Taxed() {
		payout = NewPayoutEngine(0)
	}
	if narratives == nil {
		narratives = games.DefaultNarratives()
	}
	if src == nil {
		src = games.DefaultSource()
	}
	return &economyService{
		ledger:     ledger,
		payout:     payout,
		history:    history,
		narratives: narratives,
		src:        src,
		variant:    variant,
	}
}

func (s *economyService) Variant() Variant {
	return s.variant
}

// Register opens a zero-balance account
func (s *economyService) Register(ctx context.Context, id int64, displayName string) (*models.Account, error) {
	if id == models.HouseAccountID {
		return nil, ErrAlreadyRegistered
	}
	return s.ledger.Open(ctx, id, displayName, s.variant.Currencies())
}

// Balance returns the account for the identity
func (s *economyService) Balance(ctx context.Context, id int64) (*models.Account, error) {
	return s.ledger.Account(ctx, id)
}

// History returns recent balance changes, newest first
func (s *economyService) History(ctx context.Context, id int64, limit int) ([]*models.BalanceHistory, error) {
	if _, err := s.ledger.Account(ctx, id); err != nil {
		return nil, err
	}
	if s.history == nil {
		return nil, nil
	}

	entries, err := s.history.GetByAccount(ctx, id, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance history for account %d: %w", id, err)
	}
	return entries, nil
}

// PlayHiLo resolves a three-dice high/low wager
func (s *economyService) PlayHiLo(ctx context.Context, req models.WagerRequest) (*models.WagerResult, error) {
	req.Game = models.GameHiLo
	return s.play(ctx, req, games.ResolveHiLo)
}

// PlayTwoUp resolves a three-coin two-up wager
func (s *economyService) PlayTwoUp(ctx context.Context, req models.WagerRequest) (*models.WagerResult, error) {
	req.Game = models.GameTwoUp
	return s.play(ctx, req, games.ResolveTwoUp)
}

// play checks the request shape, then registration, then the stake. It resolves the
// wager, settles the player and then credits the house. Nothing is written unless every
// precondition holds.
func (s *economyService) play(ctx context.Context, req models.WagerRequest, resolve resolver) (*models.WagerResult, error) {
	if req.Currency == "" {
		req.Currency = s.variant.DefaultCurrency()
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}

	account, err := s.ledger.Account(ctx, req.PlayerID)
	if err != nil {
		return nil, err
	}
	if req.Stake <= 0 {
		return nil, fmt.Errorf("%w: stake must be positive, got %d", ErrInvalidStake, req.Stake)
	}
	before := account.Balance(req.Currency)
	if req.Stake > before {
		return nil, fmt.Errorf("%w: stake %d exceeds balance %d", ErrInsufficientBalance, req.Stake, before)
	}

	outcome, err := resolve(req.Guess, s.src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGuess, err)
	}
	payout := s.payout.Compute(outcome, req.Stake, req.Currency)

	result := &models.WagerResult{
		Request:       req,
		Outcome:       outcome,
		Payout:        payout,
		BalanceBefore: before,
		NewBalance:    before,
		Narrative:     s.narratives.Pick(outcome.Game, outcome.NarrativeKey, s.src),
	}

	if payout.PlayerDelta != 0 {
		applied, err := s.ledger.Apply(ctx, Delta{
			AccountID: req.PlayerID,
			Currency:  req.Currency,
			Amount:    payout.PlayerDelta,
			Type:      models.WagerTransactionType(outcome.Game, outcome.Category),
			Metadata: map[string]any{
				"game":     outcome.Game,
				"guess":    req.Guess,
				"stake":    req.Stake,
				"category": outcome.Category,
				"tax":      payout.Tax,
			},
		})
		if err != nil {
			return nil, err
		}
		result.BalanceBefore = applied.BalanceBefore
		result.NewBalance = applied.BalanceAfter
	}

	if payout.HouseDelta > 0 {
		result.HouseCredited = s.creditHouse(ctx, req, payout)
	}

	log.WithFields(log.Fields{
		"accountID":   req.PlayerID,
		"game":        outcome.Game,
		"guess":       req.Guess,
		"stake":       req.Stake,
		"currency":    req.Currency,
		"category":    outcome.Category,
		"playerDelta": payout.PlayerDelta,
		"tax":         payout.Tax,
	}).Info("Wager resolved")

	return result, nil
}

// creditHouse is best effort: the player's settlement stands even if the tax cannot be written
func (s *economyService) creditHouse(ctx context.Context, req models.WagerRequest, payout models.PayoutDelta) bool {
	_, err := s.ledger.Apply(ctx, Delta{
		AccountID: models.HouseAccountID,
		Currency:  payout.Currency,
		Amount:    payout.HouseDelta,
		Type:      models.TransactionTypeWagerTax,
		Metadata: map[string]any{
			"game":      req.Game,
			"player_id": req.PlayerID,
			"gross":     payout.Gross,
		},
	})
	if err != nil {
		log.WithFields(log.Fields{
			"accountID": req.PlayerID,
			"tax":       payout.HouseDelta,
			"currency":  payout.Currency,
			"error":     err,
		}).Error("Failed to credit wager tax to house account")
		return false
	}
	return true
}

func (s *economyService) validate(req models.WagerRequest) error {
	if !s.variant.Supports(req.Currency) {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, req.Currency)
	}
	if !req.Guess.ValidFor(req.Game) {
		return fmt.Errorf("%w: %q for %s", ErrInvalidGuess, req.Guess, req.Game)
	}
	if req.PlayerID == models.HouseAccountID {
		return fmt.Errorf("%w: the house account cannot wager", ErrNotRegistered)
	}
	return nil
}
