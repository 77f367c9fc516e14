package repository

import (
	"context"
	"errors"
	"fmt"

	"tpbot/database"
	"tpbot/models"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// AccountRepository stores each account as a JSON document keyed by identity
type AccountRepository struct {
	q queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.Pool}
}

// newAccountRepositoryWithTx creates an account repository bound to a transaction
func newAccountRepositoryWithTx(tx queryable) *AccountRepository {
	return &AccountRepository{q: tx}
}

// Load retrieves an account, returning nil when it does not exist
func (r *AccountRepository) Load(ctx context.Context, id int64) (*models.Account, error) {
	var document []byte
	err := r.q.QueryRow(ctx, `SELECT document FROM accounts WHERE id = $1`, id).Scan(&document)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load account %d: %w", id, err)
	}

	account, err := models.UnmarshalAccount(document)
	if err != nil {
		return nil, fmt.Errorf("failed to decode account %d: %w", id, err)
	}
	// the row key is authoritative over whatever id the document carries
	account.ID = id
	return account, nil
}

// Save creates or replaces an account document
func (r *AccountRepository) Save(ctx context.Context, account *models.Account) error {
	document, err := models.MarshalAccount(account)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO accounts (id, document)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE
		SET document = EXCLUDED.document, updated_at = NOW()
	`
	if _, err := r.q.Exec(ctx, query, account.ID, document); err != nil {
		return fmt.Errorf("failed to save account %d: %w", account.ID, err)
	}
	return nil
}

// Count returns the number of stored accounts
func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}

// ImportAccounts saves all accounts in a single transaction; either every record lands or none does
func ImportAccounts(ctx context.Context, db *database.DB, accounts []*models.Account) error {
	return db.WithTransaction(ctx, func(tx pgx.Tx) error {
		repo := newAccountRepositoryWithTx(tx)
		for _, account := range accounts {
			if err := repo.Save(ctx, account); err != nil {
				return err
			}
		}

		log.WithField("count", len(accounts)).Info("Imported accounts")
		return nil
	})
}
