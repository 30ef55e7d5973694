package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType tells whether a ledger entry took money out of or put money into an account.
type EntryType string

const (
	EntryDebit  EntryType = "DEBIT"
	EntryCredit EntryType = "CREDIT"
)

// LedgerEntry represents a single record in an account's transaction log.
// Entries are appended once and never modified.
type LedgerEntry struct {
	Timestamp    time.Time       `json:"timestamp"`
	Type         EntryType       `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	TransferID   string          `json:"transfer_id"`
	BalanceAfter decimal.Decimal `json:"balance_after"` // balance right after this entry was applied
}
