package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"tpbot/config"
	"tpbot/database"
	"tpbot/models"
	"tpbot/repository"

	log "github.com/sirupsen/logrus"
)

// ImportLegacy loads an exported JSON array of account documents into PostgreSQL
func ImportLegacy(ctx context.Context, path string) error {
	cfg := config.Get()
	cfg.ConfigureLogging()

	if cfg.StoreBackend != config.StoreBackendPostgres {
		return fmt.Errorf("import-legacy needs STORE_BACKEND=%s", config.StoreBackendPostgres)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	accounts, err := DecodeLegacyAccounts(f)
	if err != nil {
		return err
	}

	databaseURL := cfg.GetDatabaseURL()
	if err := database.RunMigrationsWithURL(databaseURL); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := database.NewConnection(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := repository.ImportAccounts(ctx, db, accounts); err != nil {
		return fmt.Errorf("failed to import accounts: %w", err)
	}

	log.WithFields(log.Fields{
		"file":  path,
		"count": len(accounts),
	}).Info("Legacy import complete")
	return nil
}

// DecodeLegacyAccounts reads a JSON array of account documents in either historical layout
func DecodeLegacyAccounts(r io.Reader) ([]*models.Account, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode account export: %w", err)
	}

	accounts := make([]*models.Account, 0, len(raw))
	seen := make(map[int64]int, len(raw))
	for i, doc := range raw {
		account, err := models.UnmarshalAccount(doc)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if first, dup := seen[account.ID]; dup {
			return nil, fmt.Errorf("record %d: account %d already defined by record %d", i, account.ID, first)
		}
		seen[account.ID] = i
		accounts = append(accounts, account)
	}
	return accounts, nil
}
