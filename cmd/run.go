package cmd

import (
	"context"
	"fmt"

	"tpbot/bot"
	"tpbot/config"
	"tpbot/events"
	"tpbot/games"
	"tpbot/httpapi"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()
	cfg.ConfigureLogging()

	log.WithFields(log.Fields{
		"environment": cfg.Environment,
		"backend":     cfg.StoreBackend,
	}).Info("Starting tpbot...")

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	eventBus := events.NewBus()

	if cfg.NATSServers != "" {
		nc, err := events.ConnectNATS(cfg.NATSServers)
		if err != nil {
			return err
		}
		defer func() {
			if err := nc.Drain(); err != nil {
				log.WithError(err).Warn("Failed to drain NATS connection")
			}
		}()
		events.NewNATSForwarder(nc).Attach(eventBus)
	}

	svc, err := buildServices(cfg, st, eventBus, games.DefaultSource())
	if err != nil {
		return err
	}
	defer svc.challenges.Close()

	discordBot, err := bot.New(bot.Config{
		Token:   cfg.DiscordToken,
		GuildID: cfg.GuildID,
	}, svc.economy, svc.challenges, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	defer func() {
		if err := discordBot.Close(); err != nil {
			log.WithError(err).Error("Error closing Discord bot")
		}
	}()
	log.Info("Discord bot initialized successfully")

	g, gctx := errgroup.WithContext(ctx)
	if cfg.HTTPAddr != "" {
		g.Go(func() error {
			return httpapi.Serve(gctx, cfg.HTTPAddr, httpapi.NewRouter(svc.economy))
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		return nil
	})

	log.Infof("Bot is running in %s mode...", cfg.Environment)
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("Shutting down bot...")
	return nil
}
