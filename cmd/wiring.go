package cmd

import (
	"context"
	"fmt"

	"tpbot/config"
	"tpbot/database"
	"tpbot/events"
	"tpbot/games"
	"tpbot/models"
	"tpbot/repository"
	"tpbot/service"

	log "github.com/sirupsen/logrus"
)

// stores is the persistence selected by STORE_BACKEND
type stores struct {
	accounts service.AccountStore
	history  service.BalanceHistoryRepository
	db       *database.DB // nil for the memory backend
}

func (s *stores) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// services is everything the command surfaces need
type services struct {
	economy    service.EconomyService
	challenges *service.ChallengeEngine
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.StoreBackend == config.StoreBackendMemory {
		log.Warn("Using in-memory account store; balances are lost on restart")
		return &stores{
			accounts: repository.NewMemoryAccountStore(),
			history:  repository.NewMemoryBalanceHistory(),
		}, nil
	}

	databaseURL := cfg.GetDatabaseURL()
	if err := database.RunMigrationsWithURL(databaseURL); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := database.NewConnection(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &stores{
		accounts: repository.NewAccountRepository(db),
		history:  repository.NewBalanceHistoryRepository(db),
		db:       db,
	}, nil
}

func buildServices(cfg *config.Config, st *stores, bus *events.Bus, src games.Source) (*services, error) {
	variant, err := service.ParseVariant(cfg.EconomyVariant)
	if err != nil {
		return nil, err
	}

	quiz, err := games.LoadQuizBankFile(cfg.QuizBankPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz bank: %w", err)
	}

	retry := service.DefaultRetryConfig()
	retry.MaxElapsedTime = cfg.LedgerRetryMaxAge

	ledger := service.NewLedger(st.accounts, st.history, bus, retry)
	economy := service.NewEconomyService(
		ledger,
		service.NewPayoutEngine(cfg.TaxPercent),
		st.history,
		games.DefaultNarratives(),
		src,
		variant,
	)

	challengeCfg := service.DefaultChallengeConfig()
	challengeCfg.Timeout = cfg.ChallengeTimeout
	challengeCfg.ColorReward = models.RewardRange{Min: cfg.ColorRewardMin, Max: cfg.ColorRewardMax}
	challengeCfg.QuizReward = models.RewardRange{Min: cfg.QuizRewardMin, Max: cfg.QuizRewardMax}
	challenges := service.NewChallengeEngine(ledger, bus, quiz, src, variant, challengeCfg)

	log.WithFields(log.Fields{
		"variant":    variant,
		"taxPercent": cfg.TaxPercent,
		"questions":  quiz.Len(),
	}).Info("Services initialized")

	return &services{economy: economy, challenges: challenges}, nil
}
