package memory

import (
	"context"
	"fmt"
	"sync"

	interfaces "github.com/sheikh-saqib/wire-transfer-simulator/internal/interfaces"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/models"
)

// MemoryTransferStore is an in-memory implementation of interfaces.TransferStore.
type MemoryTransferStore struct {
	mu        sync.RWMutex
	transfers map[string]*models.Transfer
	order     []string
}

// NewMemoryTransferStore creates and returns an empty MemoryTransferStore.
func NewMemoryTransferStore() *MemoryTransferStore {
	return &MemoryTransferStore{
		transfers: make(map[string]*models.Transfer),
		order:     make([]string, 0),
	}
}

// Save indexes a new transfer. IDs are assigned once, so saving an ID twice is an error.
func (m *MemoryTransferStore) Save(ctx context.Context, transfer *models.Transfer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.transfers[transfer.ID]; exists {
		return fmt.Errorf("transfer %s already stored", transfer.ID)
	}
	m.transfers[transfer.ID] = transfer
	m.order = append(m.order, transfer.ID)
	return nil
}

func (m *MemoryTransferStore) Get(ctx context.Context, id string) (*models.Transfer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.transfers[id], nil
}

func (m *MemoryTransferStore) List(ctx context.Context) ([]*models.Transfer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*models.Transfer, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.transfers[id])
	}
	return result, nil
}

var _ interfaces.TransferStore = (*MemoryTransferStore)(nil)
