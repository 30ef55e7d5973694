package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	interfaces "github.com/sheikh-saqib/wire-transfer-simulator/internal/interfaces"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/models"
	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound is returned when no account is stored under the given ID
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidAmount is returned for zero or negative debit and credit amounts
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds is matched by every *InsufficientFundsError
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// DefaultOpeningBalance is the balance of every new account unless the caller
// configures another one.
var DefaultOpeningBalance = decimal.NewFromInt(10000)

// InsufficientFundsError reports a refused debit together with the balance
// that was observed while holding the account lock.
type InsufficientFundsError struct {
	AccountID string
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds in %s: available %s, required %s",
		e.AccountID, e.Available.String(), e.Required.String())
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// Shortfall is how much is missing to cover the debit.
func (e *InsufficientFundsError) Shortfall() decimal.Decimal {
	return e.Required.Sub(e.Available)
}

// Opening describes an account to create if its key is seen for the first time.
type Opening struct {
	AccountNumber     string
	InstitutionNumber string
	TransitNumber     string
	Holder            string
	Currency          string
	// Balance overrides the ledger's default opening balance when set.
	Balance *decimal.Decimal
}

// Ledger holds the simulated accounts and serialises every balance change per account.
type Ledger struct {
	store          interfaces.AccountStore
	defaultBalance decimal.Decimal
	now            func() time.Time
	muMap          map[string]*sync.Mutex // one mutex per account ID
	mapMu          sync.Mutex             // protects the muMap itself
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithDefaultBalance sets the opening balance of accounts created without an explicit one.
func WithDefaultBalance(balance decimal.Decimal) Option {
	return func(l *Ledger) { l.defaultBalance = balance }
}

// WithClock replaces time.Now for entry and account timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// NewLedger creates a Ledger on top of an account store.
func NewLedger(store interfaces.AccountStore, opts ...Option) *Ledger {
	l := &Ledger{
		store:          store,
		defaultBalance: DefaultOpeningBalance,
		now:            time.Now,
		muMap:          make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Ledger) getAccountLock(accountID string) *sync.Mutex {
	l.mapMu.Lock()
	defer l.mapMu.Unlock()

	if _, exists := l.muMap[accountID]; !exists {
		l.muMap[accountID] = &sync.Mutex{}
	}
	return l.muMap[accountID]
}

// GetOrCreate returns the account stored under key, creating it from opening
// the first time the key is seen. Later calls ignore opening.
func (l *Ledger) GetOrCreate(ctx context.Context, key string, opening Opening) (models.LedgerAccount, error) {
	balance := l.defaultBalance
	if opening.Balance != nil {
		balance = *opening.Balance
	}

	candidate := &models.LedgerAccount{
		ID:                key,
		AccountNumber:     opening.AccountNumber,
		InstitutionNumber: opening.InstitutionNumber,
		TransitNumber:     opening.TransitNumber,
		Holder:            opening.Holder,
		Currency:          opening.Currency,
		Balance:           balance,
		Transactions:      make([]models.LedgerEntry, 0),
		CreatedAt:         l.now(),
	}

	stored, _, err := l.store.CreateIfAbsent(ctx, candidate)
	if err != nil {
		return models.LedgerAccount{}, fmt.Errorf("failed to create account %s: %w", key, err)
	}

	mu := l.getAccountLock(key)
	mu.Lock()
	defer mu.Unlock()
	return stored.Clone(), nil
}

// Debit takes amount out of the account if the balance covers it. On a refused
// debit the account is left untouched and the error matches ErrInsufficientFunds.
func (l *Ledger) Debit(ctx context.Context, accountID string, amount decimal.Decimal, description, transferID string) (models.LedgerEntry, error) {
	if !amount.IsPositive() {
		return models.LedgerEntry{}, ErrInvalidAmount
	}

	mu := l.getAccountLock(accountID)
	mu.Lock()
	defer mu.Unlock()

	account, err := l.lookup(ctx, accountID)
	if err != nil {
		return models.LedgerEntry{}, err
	}

	if account.Balance.LessThan(amount) {
		return models.LedgerEntry{}, &InsufficientFundsError{
			AccountID: accountID,
			Available: account.Balance,
			Required:  amount,
		}
	}

	return l.apply(account, models.EntryDebit, amount.Neg(), amount, description, transferID), nil
}

// Credit adds amount to the account unconditionally.
func (l *Ledger) Credit(ctx context.Context, accountID string, amount decimal.Decimal, description, transferID string) (models.LedgerEntry, error) {
	if !amount.IsPositive() {
		return models.LedgerEntry{}, ErrInvalidAmount
	}

	mu := l.getAccountLock(accountID)
	mu.Lock()
	defer mu.Unlock()

	account, err := l.lookup(ctx, accountID)
	if err != nil {
		return models.LedgerEntry{}, err
	}

	return l.apply(account, models.EntryCredit, amount, amount, description, transferID), nil
}

// apply must be called with the account lock held.
func (l *Ledger) apply(account *models.LedgerAccount, kind models.EntryType, delta, amount decimal.Decimal, description, transferID string) models.LedgerEntry {
	account.Balance = account.Balance.Add(delta)
	entry := models.LedgerEntry{
		Timestamp:    l.now(),
		Type:         kind,
		Amount:       amount,
		Description:  description,
		TransferID:   transferID,
		BalanceAfter: account.Balance,
	}
	account.Transactions = append(account.Transactions, entry)
	return entry
}

func (l *Ledger) lookup(ctx context.Context, accountID string) (*models.LedgerAccount, error) {
	account, err := l.store.Get(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account %s: %w", accountID, err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	return account, nil
}

// Account returns a copy of one account taken under its lock.
func (l *Ledger) Account(ctx context.Context, accountID string) (models.LedgerAccount, error) {
	mu := l.getAccountLock(accountID)
	mu.Lock()
	defer mu.Unlock()

	account, err := l.lookup(ctx, accountID)
	if err != nil {
		return models.LedgerAccount{}, err
	}
	return account.Clone(), nil
}

// Accounts returns copies of all accounts in creation order.
func (l *Ledger) Accounts(ctx context.Context) ([]models.LedgerAccount, error) {
	accounts, err := l.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	result := make([]models.LedgerAccount, 0, len(accounts))
	for _, account := range accounts {
		mu := l.getAccountLock(account.ID)
		mu.Lock()
		result = append(result, account.Clone())
		mu.Unlock()
	}
	return result, nil
}
