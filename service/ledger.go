package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tpbot/events"
	"tpbot/models"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
)

// RetryConfig bounds how long the ledger keeps retrying a failing store
type RetryConfig struct {
	InitialInterval time.Duration
	MaxElapsedTime  time.Duration // zero disables retries
}

// DefaultRetryConfig returns the retry policy used when none is configured
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		InitialInterval: 50 * time.Millisecond,
		MaxElapsedTime:  2 * time.Second,
	}
}

// Delta is a signed change to one currency balance of one account
type Delta struct {
	AccountID int64
	Currency  models.Currency
	Amount    int64
	Type      models.TransactionType
	Metadata  map[string]any
}

// Applied describes a delta once it has been persisted
type Applied struct {
	Account       *models.Account
	BalanceBefore int64
	BalanceAfter  int64
}

// Ledger is the only writer of account balances. Every read-modify-write on an
// identity runs under that identity's lock; different identities proceed in parallel.
type Ledger struct {
	store   AccountStore
	history BalanceHistoryRepository
	bus     *events.Bus
	locks   *accountLocks
	retry   RetryConfig
	now     func() time.Time
}

// NewLedger creates a ledger. history and bus may be nil.
func NewLedger(store AccountStore, history BalanceHistoryRepository, bus *events.Bus, retry RetryConfig) *Ledger {
	return &Ledger{
		store:   store,
		history: history,
		bus:     bus,
		locks:   newAccountLocks(),
		retry:   retry,
		now:     time.Now,
	}
}

// Account loads an account without locking it
func (l *Ledger) Account(ctx context.Context, id int64) (*models.Account, error) {
	account, err := l.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		if id == models.HouseAccountID {
			return models.NewHouseAccount(time.Time{}), nil
		}
		return nil, ErrNotRegistered
	}
	return account, nil
}

// Open creates a zero-balance account holding the given currencies
func (l *Ledger) Open(ctx context.Context, id int64, displayName string, currencies []models.Currency) (*models.Account, error) {
	unlock, err := l.locks.lock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account %d: %w", id, err)
	}
	defer unlock()

	existing, err := l.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyRegistered
	}

	account := models.NewAccount(id, displayName, l.now().UTC())
	for _, currency := range currencies {
		account.Balances[currency] = 0
	}

	if err := l.save(ctx, account); err != nil {
		return nil, err
	}

	bus := l.transactionalBus()
	l.record(ctx, bus, &models.BalanceHistory{
		AccountID:       id,
		Currency:        currencies[0],
		TransactionType: models.TransactionTypeInitial,
		TransactionMetadata: map[string]any{
			"display_name": displayName,
		},
	})
	bus.Publish(events.UserCreatedEvent{
		AccountID:   id,
		DisplayName: displayName,
		CreatedAt:   account.RegisteredAt,
	})
	bus.Flush()

	log.WithFields(log.Fields{
		"accountID":   id,
		"displayName": displayName,
	}).Info("Registered new account")

	return account.Clone(), nil
}

// Apply adds a signed amount to one currency balance as a single read-modify-write.
//
// The house account is materialized on first use. A debit that would take the balance
// below zero fails with ErrInsufficientBalance and nothing is written.
func (l *Ledger) Apply(ctx context.Context, delta Delta) (*Applied, error) {
	unlock, err := l.locks.lock(ctx, delta.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account %d: %w", delta.AccountID, err)
	}
	defer unlock()

	account, err := l.load(ctx, delta.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		if delta.AccountID != models.HouseAccountID {
			return nil, ErrNotRegistered
		}
		account = models.NewHouseAccount(l.now().UTC())
		log.Info("Materializing house account")
	}

	before := account.Balance(delta.Currency)
	after := before + delta.Amount
	if delta.Amount < 0 && after < 0 {
		return nil, fmt.Errorf("%w: account %d has %d %s, debit of %d",
			ErrInsufficientBalance, delta.AccountID, before, delta.Currency, -delta.Amount)
	}

	account.Credit(delta.Currency, delta.Amount)
	if err := l.save(ctx, account); err != nil {
		return nil, err
	}

	bus := l.transactionalBus()
	l.record(ctx, bus, &models.BalanceHistory{
		AccountID:           delta.AccountID,
		Currency:            delta.Currency,
		BalanceBefore:       before,
		BalanceAfter:        after,
		ChangeAmount:        delta.Amount,
		TransactionType:     delta.Type,
		TransactionMetadata: delta.Metadata,
	})
	bus.Flush()

	return &Applied{
		Account:       account.Clone(),
		BalanceBefore: before,
		BalanceAfter:  after,
	}, nil
}

// record writes a history entry and queues the balance change event.
// History is an audit trail; a failure there never undoes a persisted balance.
func (l *Ledger) record(ctx context.Context, bus EventPublisher, history *models.BalanceHistory) {
	if l.history != nil {
		if err := l.history.Record(ctx, history); err != nil {
			log.WithFields(log.Fields{
				"accountID":       history.AccountID,
				"transactionType": history.TransactionType,
				"error":           err,
			}).Error("Failed to record balance history")
		}
	}

	bus.Publish(events.BalanceChangeEvent{
		AccountID:       history.AccountID,
		Currency:        history.Currency,
		OldBalance:      history.BalanceBefore,
		NewBalance:      history.BalanceAfter,
		TransactionType: history.TransactionType,
		ChangeAmount:    history.ChangeAmount,
	})
}

func (l *Ledger) load(ctx context.Context, id int64) (*models.Account, error) {
	var account *models.Account
	err := l.withRetry(ctx, "load", id, func() error {
		var err error
		account, err = l.store.Load(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (l *Ledger) save(ctx context.Context, account *models.Account) error {
	return l.withRetry(ctx, "save", account.ID, func() error {
		return l.store.Save(ctx, account)
	})
}

// withRetry runs op with exponential backoff until it succeeds, the retry budget
// is spent or ctx ends. Exhaustion is reported as ErrStorageUnavailable.
func (l *Ledger) withRetry(ctx context.Context, op string, id int64, fn func() error) error {
	var policy backoff.BackOff = &backoff.StopBackOff{}
	if l.retry.MaxElapsedTime > 0 {
		exp := backoff.NewExponentialBackOff()
		exp.InitialInterval = l.retry.InitialInterval
		exp.MaxElapsedTime = l.retry.MaxElapsedTime
		policy = exp
	}

	attempts := 0
	err := backoff.RetryNotify(func() error {
		attempts++
		return fn()
	}, backoff.WithContext(policy, ctx), func(err error, wait time.Duration) {
		log.WithFields(log.Fields{
			"operation": op,
			"accountID": id,
			"attempt":   attempts,
			"retryIn":   wait,
			"error":     err,
		}).Warn("Account store call failed, retrying")
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("failed to %s account %d: %w", op, id, err)
	}

	log.WithFields(log.Fields{
		"operation": op,
		"accountID": id,
		"attempts":  attempts,
		"error":     err,
	}).Error("Account store unavailable")
	return fmt.Errorf("%w: failed to %s account %d: %v", ErrStorageUnavailable, op, id, err)
}

func (l *Ledger) transactionalBus() transactionalPublisher {
	if l.bus == nil {
		return discardPublisher{}
	}
	return events.NewTransactionalBus(l.bus)
}

type transactionalPublisher interface {
	EventPublisher
	Flush()
}

type discardPublisher struct{}

func (discardPublisher) Publish(events.Event) {}
func (discardPublisher) Flush()               {}
