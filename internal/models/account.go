package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// Creditor accounts are simulated at a fixed institution and transit.
	CreditorInstitutionNumber = "999"
	CreditorTransitNumber     = "99999"

	creditorKeyPrefix    = "CREDITOR-"
	creditorAccountChars = 8
)

// LedgerAccount is a simulated bank account with a balance and an append-only
// transaction log. The ledger package owns all mutation.
type LedgerAccount struct {
	ID                string          `json:"account_id"`
	AccountNumber     string          `json:"account_number"`
	InstitutionNumber string          `json:"institution_number"`
	TransitNumber     string          `json:"transit_number"`
	Holder            string          `json:"account_holder"`
	Currency          string          `json:"currency"`
	Balance           decimal.Decimal `json:"balance"`
	Transactions      []LedgerEntry   `json:"transactions"`
	CreatedAt         time.Time       `json:"created_at"`
}

// Clone returns a copy that shares nothing mutable with the receiver.
func (a *LedgerAccount) Clone() LedgerAccount {
	c := *a
	c.Transactions = make([]LedgerEntry, len(a.Transactions))
	copy(c.Transactions, a.Transactions)
	return c
}

// DebtorAccountKey builds the composite key of a domestic account from its routing triple.
func DebtorAccountKey(institution, transit, account string) string {
	return fmt.Sprintf("%s-%s-%s", institution, transit, account)
}

// CreditorAccountNumber is the synthetic account number of a creditor: the last
// eight characters of the IBAN.
func CreditorAccountNumber(iban string) string {
	if len(iban) <= creditorAccountChars {
		return iban
	}
	return iban[len(iban)-creditorAccountChars:]
}

// CreditorAccountKey builds the synthetic key of a creditor account.
func CreditorAccountKey(iban string) string {
	return creditorKeyPrefix + CreditorAccountNumber(iban)
}
