package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"tpbot/events"
	"tpbot/games"
	"tpbot/models"
	"tpbot/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(event events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) count(eventType events.EventType) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e.Type() == eventType {
			n++
		}
	}
	return n
}

func (p *recordingPublisher) outcomesFor(challengeID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		switch ev := e.(type) {
		case events.ChallengeResolvedEvent:
			if ev.ChallengeID == challengeID {
				n++
			}
		case events.ChallengeExpiredEvent:
			if ev.ChallengeID == challengeID {
				n++
			}
		}
	}
	return n
}

func newTestEngine(t *testing.T, variant Variant, src games.Source, cfg ChallengeConfig) (*ChallengeEngine, *Ledger, *recordingPublisher) {
	t.Helper()
	ledger, _, _ := newTestLedger(t)
	_, err := ledger.Open(context.Background(), 1, "player", variant.Currencies())
	require.NoError(t, err)

	publisher := &recordingPublisher{}
	engine := NewChallengeEngine(ledger, publisher, games.DefaultQuizBank(), src, variant, cfg)
	t.Cleanup(engine.Close)
	return engine, ledger, publisher
}

func TestChallengeEngine_CorrectColorAnswerPaysReward(t *testing.T) {
	// Blue shown, shuffle to [Green Orange Blue], reward draw 5 of 10..20
	engine, ledger, publisher := newTestEngine(t, VariantDual, games.NewScriptedSource(0, 0, 0, 5), DefaultChallengeConfig())
	ctx := context.Background()

	challenge, err := engine.StartColorChallenge(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.ChallengeKindColor, challenge.Kind)
	assert.Equal(t, []string{"Green", "Orange", "Blue"}, challenge.Options)
	assert.Equal(t, 2, challenge.CorrectOption)
	assert.Equal(t, "Blue", challenge.CorrectAnswer())
	assert.Equal(t, models.CurrencyTPG, challenge.Currency)
	assert.Equal(t, models.ChallengeStateOpen, challenge.State)
	assert.Contains(t, challenge.Prompt, "🟦")

	result, err := engine.Respond(ctx, challenge.ID, 1, 2)
	require.NoError(t, err)
	assert.False(t, result.Ignored)
	assert.True(t, result.Correct)
	assert.Equal(t, int64(15), result.Reward)
	assert.Equal(t, int64(15), result.NewBalance)
	assert.Equal(t, models.ChallengeStateResolved, result.Challenge.State)

	account, err := ledger.Account(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(15), account.Balance(models.CurrencyTPG))
	assert.Equal(t, int64(0), account.Balance(models.CurrencyTPB))
	assert.Equal(t, 1, publisher.count(events.EventTypeChallengeResolved))
}

func TestChallengeEngine_WrongAnswerThenSecondAnswer(t *testing.T) {
	engine, ledger, publisher := newTestEngine(t, VariantDual, games.NewScriptedSource(0, 0, 0), DefaultChallengeConfig())
	ctx := context.Background()

	challenge, err := engine.StartColorChallenge(ctx, 1)
	require.NoError(t, err)

	result, err := engine.Respond(ctx, challenge.ID, 1, 0)
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Equal(t, int64(0), result.Reward)
	assert.Equal(t, "Blue", result.Challenge.CorrectAnswer())

	_, err = engine.Respond(ctx, challenge.ID, 1, 2)
	assert.ErrorIs(t, err, ErrChallengeAlreadyResolved)

	account, err := ledger.Account(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), account.Balance(models.CurrencyTPG))
	assert.Equal(t, 1, publisher.outcomesFor(challenge.ID))
}

func TestChallengeEngine_ForeignResponderIsIgnored(t *testing.T) {
	engine, _, publisher := newTestEngine(t, VariantDual, games.NewSeededSource(7), DefaultChallengeConfig())
	ctx := context.Background()

	challenge, err := engine.StartColorChallenge(ctx, 1)
	require.NoError(t, err)

	result, err := engine.Respond(ctx, challenge.ID, 2, challenge.CorrectOption)
	require.NoError(t, err)
	assert.True(t, result.Ignored)

	current, ok := engine.Get(challenge.ID)
	require.True(t, ok)
	assert.Equal(t, models.ChallengeStateOpen, current.State)
	assert.Equal(t, 0, publisher.outcomesFor(challenge.ID))
}

func TestChallengeEngine_LateAnswerBeforeTimerFires(t *testing.T) {
	engine, ledger, publisher := newTestEngine(t, VariantDual, games.NewSeededSource(3), DefaultChallengeConfig())
	ctx := context.Background()

	challenge, err := engine.StartColorChallenge(ctx, 1)
	require.NoError(t, err)

	engine.now = func() time.Time { return challenge.Deadline.Add(time.Second) }

	_, err = engine.Respond(ctx, challenge.ID, 1, challenge.CorrectOption)
	assert.ErrorIs(t, err, ErrChallengeExpired)

	current, ok := engine.Get(challenge.ID)
	require.True(t, ok)
	assert.Equal(t, models.ChallengeStateExpired, current.State)
	assert.Equal(t, 1, publisher.count(events.EventTypeChallengeExpired))

	account, err := ledger.Account(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), account.Balance(models.CurrencyTPG))

	_, err = engine.Respond(ctx, challenge.ID, 1, challenge.CorrectOption)
	assert.ErrorIs(t, err, ErrChallengeExpired)
}

func TestChallengeEngine_TimerExpiresChallenge(t *testing.T) {
	cfg := DefaultChallengeConfig()
	cfg.Timeout = 20 * time.Millisecond
	engine, _, publisher := newTestEngine(t, VariantDual, games.NewSeededSource(11), cfg)
	ctx := context.Background()

	challenge, err := engine.StartQuizChallenge(ctx, 1)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return publisher.count(events.EventTypeChallengeExpired) == 1
	}, time.Second, 5*time.Millisecond)

	current, ok := engine.Get(challenge.ID)
	require.True(t, ok)
	assert.Equal(t, models.ChallengeStateExpired, current.State)

	_, err = engine.Respond(ctx, challenge.ID, 1, challenge.CorrectOption)
	assert.ErrorIs(t, err, ErrChallengeExpired)
	assert.Equal(t, 1, publisher.outcomesFor(challenge.ID))
}

func TestChallengeEngine_AnswerRacingDeadlineHasOneOutcome(t *testing.T) {
	cfg := DefaultChallengeConfig()
	cfg.Timeout = 5 * time.Millisecond
	engine, _, publisher := newTestEngine(t, VariantDual, games.NewSeededSource(42), cfg)
	ctx := context.Background()

	const rounds = 50
	ids := make([]string, 0, rounds)
	for i := 0; i < rounds; i++ {
		challenge, err := engine.StartColorChallenge(ctx, 1)
		require.NoError(t, err)
		ids = append(ids, challenge.ID)

		time.Sleep(time.Duration(i%7) * time.Millisecond)
		_, err = engine.Respond(ctx, challenge.ID, 1, challenge.CorrectOption)
		if err != nil {
			assert.ErrorIs(t, err, ErrChallengeExpired)
		}
	}

	for _, id := range ids {
		assert.Eventually(t, func() bool {
			return publisher.outcomesFor(id) >= 1
		}, time.Second, 5*time.Millisecond)
	}
	// let any stray timers run before counting again
	time.Sleep(20 * time.Millisecond)
	for _, id := range ids {
		assert.Equal(t, 1, publisher.outcomesFor(id), "challenge %s", id)
	}
}

func TestChallengeEngine_ConcurrentAnswersRewardOnce(t *testing.T) {
	engine, ledger, publisher := newTestEngine(t, VariantDual, games.NewSeededSource(5), DefaultChallengeConfig())
	ctx := context.Background()

	challenge, err := engine.StartColorChallenge(ctx, 1)
	require.NoError(t, err)

	const answers = 10
	errs := make([]error, answers)
	var g errgroup.Group
	for i := 0; i < answers; i++ {
		g.Go(func() error {
			_, errs[i] = engine.Respond(ctx, challenge.ID, 1, challenge.CorrectOption)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrChallengeAlreadyResolved)
	}
	assert.Equal(t, 1, succeeded)

	account, err := ledger.Account(ctx, 1)
	require.NoError(t, err)
	balance := account.Balance(models.CurrencyTPG)
	assert.GreaterOrEqual(t, balance, int64(10))
	assert.LessOrEqual(t, balance, int64(20))
	assert.Equal(t, 1, publisher.outcomesFor(challenge.ID))
}

func TestChallengeEngine_Errors(t *testing.T) {
	engine, _, _ := newTestEngine(t, VariantDual, games.NewSeededSource(9), DefaultChallengeConfig())
	ctx := context.Background()

	_, err := engine.Respond(ctx, "missing", 1, 0)
	assert.ErrorIs(t, err, ErrChallengeNotFound)

	_, err = engine.StartColorChallenge(ctx, 99)
	assert.ErrorIs(t, err, ErrNotRegistered)

	challenge, err := engine.StartColorChallenge(ctx, 1)
	require.NoError(t, err)

	_, err = engine.Respond(ctx, challenge.ID, 1, len(challenge.Options))
	assert.ErrorIs(t, err, ErrInvalidGuess)

	current, ok := engine.Get(challenge.ID)
	require.True(t, ok)
	assert.Equal(t, models.ChallengeStateOpen, current.State)
}

func TestChallengeEngine_QuizPaysTPB(t *testing.T) {
	// first question, shuffled to [Slow down, Honk and proceed, Stop], reward draw 10 of 40..60
	engine, ledger, _ := newTestEngine(t, VariantDual, games.NewScriptedSource(0, 0, 0, 10), DefaultChallengeConfig())
	ctx := context.Background()

	challenge, err := engine.StartQuizChallenge(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.ChallengeKindQuiz, challenge.Kind)
	assert.Equal(t, "Stop", challenge.CorrectAnswer())
	assert.Equal(t, 2, challenge.CorrectOption)
	assert.Equal(t, models.CurrencyTPB, challenge.Currency)

	result, err := engine.Respond(ctx, challenge.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(50), result.Reward)

	account, err := ledger.Account(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(50), account.Balance(models.CurrencyTPB))
}

func TestChallengeEngine_LegacyRewardsSingleBalance(t *testing.T) {
	engine, ledger, _ := newTestEngine(t, VariantLegacy, games.NewScriptedSource(0, 0, 0, 0), DefaultChallengeConfig())
	ctx := context.Background()

	challenge, err := engine.StartColorChallenge(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.CurrencyLegacy, challenge.Currency)

	_, err = engine.Respond(ctx, challenge.ID, 1, challenge.CorrectOption)
	require.NoError(t, err)

	account, err := ledger.Account(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(10), account.Balance(models.CurrencyLegacy))
}

func TestChallengeEngine_FinishedChallengesAreForgotten(t *testing.T) {
	cfg := DefaultChallengeConfig()
	cfg.Retention = 10 * time.Millisecond
	engine, _, _ := newTestEngine(t, VariantDual, games.NewSeededSource(13), cfg)
	ctx := context.Background()

	challenge, err := engine.StartColorChallenge(ctx, 1)
	require.NoError(t, err)
	_, err = engine.Respond(ctx, challenge.ID, 1, challenge.CorrectOption)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, ok := engine.Get(challenge.ID)
		return !ok
	}, time.Second, 5*time.Millisecond)

	_, err = engine.Respond(ctx, challenge.ID, 1, challenge.CorrectOption)
	assert.ErrorIs(t, err, ErrChallengeNotFound)
}

func TestChallengeEngine_PublishesResolvedEvent(t *testing.T) {
	ledger, _, _ := newTestLedger(t)
	ctx := context.Background()
	_, err := ledger.Open(ctx, 1, "player", VariantDual.Currencies())
	require.NoError(t, err)

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.MatchedBy(func(e events.ChallengeResolvedEvent) bool {
		return e.AccountID == 1 && !e.Correct && e.Reward == 0 && e.Currency == models.CurrencyTPG
	})).Once()

	engine := NewChallengeEngine(ledger, publisher, games.DefaultQuizBank(), games.NewScriptedSource(0, 0, 0), VariantDual, DefaultChallengeConfig())
	t.Cleanup(engine.Close)

	challenge, err := engine.StartColorChallenge(ctx, 1)
	require.NoError(t, err)

	_, err = engine.Respond(ctx, challenge.ID, 1, 0)
	require.NoError(t, err)

	publisher.AssertExpectations(t)
}

type outageStore struct {
	*repository.MemoryAccountStore
	down atomic.Bool
}

func (s *outageStore) Save(ctx context.Context, account *models.Account) error {
	if s.down.Load() {
		return errors.New("db down")
	}
	return s.MemoryAccountStore.Save(ctx, account)
}

func newOutageEngine(t *testing.T, src games.Source, cfg ChallengeConfig) (*ChallengeEngine, *Ledger, *outageStore, *recordingPublisher) {
	t.Helper()
	store := &outageStore{MemoryAccountStore: repository.NewMemoryAccountStore()}
	ledger := NewLedger(store, repository.NewMemoryBalanceHistory(), events.NewBus(), fastRetry())
	_, err := ledger.Open(context.Background(), 1, "player", VariantDual.Currencies())
	require.NoError(t, err)

	publisher := &recordingPublisher{}
	engine := NewChallengeEngine(ledger, publisher, games.DefaultQuizBank(), src, VariantDual, cfg)
	t.Cleanup(engine.Close)
	return engine, ledger, store, publisher
}

func TestChallengeEngine_FailedRewardLeavesChallengeOpen(t *testing.T) {
	// reward draw 5 on each attempt
	engine, ledger, store, publisher := newOutageEngine(t, games.NewScriptedSource(0, 0, 0, 5, 5), DefaultChallengeConfig())
	ctx := context.Background()

	challenge, err := engine.StartColorChallenge(ctx, 1)
	require.NoError(t, err)

	store.down.Store(true)
	_, err = engine.Respond(ctx, challenge.ID, 1, 2)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	open, ok := engine.Get(challenge.ID)
	require.True(t, ok)
	assert.Equal(t, models.ChallengeStateOpen, open.State)
	assert.Nil(t, open.ChosenOption)
	assert.Equal(t, int64(0), open.Awarded)
	assert.Equal(t, 0, publisher.outcomesFor(challenge.ID))

	store.down.Store(false)
	result, err := engine.Respond(ctx, challenge.ID, 1, 2)
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, int64(15), result.Reward)
	assert.Equal(t, int64(15), result.Challenge.Awarded)
	assert.Equal(t, models.ChallengeStateResolved, result.Challenge.State)

	account, err := ledger.Account(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(15), account.Balance(models.CurrencyTPG))
	assert.Equal(t, 1, publisher.outcomesFor(challenge.ID))
}

func TestChallengeEngine_FailedRewardStillExpires(t *testing.T) {
	cfg := DefaultChallengeConfig()
	cfg.Timeout = 50 * time.Millisecond
	engine, _, store, publisher := newOutageEngine(t, games.NewScriptedSource(0, 0, 0, 5), cfg)
	ctx := context.Background()

	challenge, err := engine.StartColorChallenge(ctx, 1)
	require.NoError(t, err)

	store.down.Store(true)
	_, err = engine.Respond(ctx, challenge.ID, 1, 2)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	assert.Eventually(t, func() bool {
		return publisher.count(events.EventTypeChallengeExpired) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, publisher.outcomesFor(challenge.ID))

	expired, ok := engine.Get(challenge.ID)
	require.True(t, ok)
	assert.Equal(t, models.ChallengeStateExpired, expired.State)
}
