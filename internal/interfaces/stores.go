package interfaces

import (
	"context"

	"github.com/sheikh-saqib/wire-transfer-simulator/internal/models"
)

// AccountStore holds ledger accounts for the lifetime of the process.
// Returned pointers are shared; callers serialise mutation per account.
type AccountStore interface {
	// CreateIfAbsent stores account unless one with the same ID exists, and
	// returns whichever account is stored under that ID afterwards.
	CreateIfAbsent(ctx context.Context, account *models.LedgerAccount) (stored *models.LedgerAccount, created bool, err error)
	// Get returns nil when no account has the given ID.
	Get(ctx context.Context, id string) (*models.LedgerAccount, error)
	// List returns accounts in creation order.
	List(ctx context.Context) ([]*models.LedgerAccount, error)
}

// TransferStore indexes transfers by ID for the lifetime of the process.
type TransferStore interface {
	Save(ctx context.Context, transfer *models.Transfer) error
	// Get returns nil when no transfer has the given ID.
	Get(ctx context.Context, id string) (*models.Transfer, error)
	// List returns transfers in creation order.
	List(ctx context.Context) ([]*models.Transfer, error)
}
