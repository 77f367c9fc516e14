package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"tpbot/cmd"
	"tpbot/database"
	"tpbot/games"
	"tpbot/service"

	log "github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			if err := handleMigrationCommand(); err != nil {
				log.Fatalf("Migration error: %v", err)
			}
			return
		case "simulate":
			if err := handleSimulateCommand(); err != nil {
				log.Fatalf("Simulation error: %v", err)
			}
			return
		case "import-legacy":
			if err := handleImportCommand(); err != nil {
				log.Fatalf("Import error: %v", err)
			}
			return
		}
	}

	// Normal bot operation
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		log.Info("Received shutdown signal, shutting down gracefully...")
	}()

	if err := cmd.Run(ctx); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: tpbot migrate [up|down|status] [args...]")
	}

	command := os.Args[2]
	switch command {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(os.Args) > 3 {
			steps = os.Args[3]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
}

func handleImportCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: tpbot import-legacy <accounts.json>")
	}
	return cmd.ImportLegacy(context.Background(), os.Args[2])
}

func handleSimulateCommand() error {
	trials := 100000
	if len(os.Args) > 2 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil || n <= 0 {
			return fmt.Errorf("usage: tpbot simulate [trials]")
		}
		trials = n
	}
	return cmd.Simulate(os.Stdout, games.DefaultSource(), trials, service.DefaultTaxPercent)
}
