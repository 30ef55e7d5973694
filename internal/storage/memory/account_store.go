package memory

import (
	"context"
	"sync"

	interfaces "github.com/sheikh-saqib/wire-transfer-simulator/internal/interfaces"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/models"
)

// MemoryAccountStore is an in-memory implementation of interfaces.AccountStore.
// The mutex protects the index and the order slice, not the accounts themselves.
type MemoryAccountStore struct {
	mu       sync.Mutex
	accounts map[string]*models.LedgerAccount
	order    []string // account IDs in creation order
}

// NewMemoryAccountStore creates and returns an empty MemoryAccountStore.
func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{
		accounts: make(map[string]*models.LedgerAccount),
		order:    make([]string, 0),
	}
}

// CreateIfAbsent stores the account unless its ID is already taken.
func (m *MemoryAccountStore) CreateIfAbsent(ctx context.Context, account *models.LedgerAccount) (*models.LedgerAccount, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.accounts[account.ID]; ok {
		return existing, false, nil
	}
	m.accounts[account.ID] = account
	m.order = append(m.order, account.ID)
	return account, true, nil
}

func (m *MemoryAccountStore) Get(ctx context.Context, id string) (*models.LedgerAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.accounts[id], nil
}

// List returns a new slice so callers can't reorder the index.
func (m *MemoryAccountStore) List(ctx context.Context) ([]*models.LedgerAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*models.LedgerAccount, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.accounts[id])
	}
	return result, nil
}

// Compile-time check: ensure MemoryAccountStore implements AccountStore interface
var _ interfaces.AccountStore = (*MemoryAccountStore)(nil)
