package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"tpbot/models"
)

// MemoryAccountStore keeps encoded account documents in process memory.
// Documents go through the same codec as the database so callers never share state.
type MemoryAccountStore struct {
	mu        sync.RWMutex
	documents map[int64][]byte
}

// NewMemoryAccountStore creates an empty in-memory account store
func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{documents: make(map[int64][]byte)}
}

// Load retrieves an account, returning nil when it does not exist
func (s *MemoryAccountStore) Load(ctx context.Context, id int64) (*models.Account, error) {
	s.mu.RLock()
	document, ok := s.documents[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return models.UnmarshalAccount(document)
}

// Save creates or replaces an account
func (s *MemoryAccountStore) Save(ctx context.Context, account *models.Account) error {
	document, err := models.MarshalAccount(account)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.documents[account.ID] = document
	s.mu.Unlock()
	return nil
}

// Count returns the number of stored accounts
func (s *MemoryAccountStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.documents)), nil
}

// MemoryBalanceHistory keeps balance history entries in process memory
type MemoryBalanceHistory struct {
	mu      sync.RWMutex
	nextID  int64
	entries []models.BalanceHistory
}

// NewMemoryBalanceHistory creates an empty in-memory history
func NewMemoryBalanceHistory() *MemoryBalanceHistory {
	return &MemoryBalanceHistory{}
}

// Record appends a history entry, assigning its ID and timestamp
func (h *MemoryBalanceHistory) Record(ctx context.Context, history *models.BalanceHistory) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	history.ID = h.nextID
	history.CreatedAt = time.Now().UTC()
	h.entries = append(h.entries, *history)
	return nil
}

// GetByAccount returns the most recent entries for an account, newest first
func (h *MemoryBalanceHistory) GetByAccount(ctx context.Context, accountID int64, limit int) ([]*models.BalanceHistory, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var out []*models.BalanceHistory
	for i := range h.entries {
		if h.entries[i].AccountID == accountID {
			entry := h.entries[i]
			out = append(out, &entry)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
