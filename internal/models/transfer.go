package models

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Debtor identifies the paying customer by name and domestic routing triple.
type Debtor struct {
	Name              string
	InstitutionNumber string
	TransitNumber     string
	AccountNumber     string
}

// Creditor identifies the beneficiary by name, IBAN and bank identifier.
type Creditor struct {
	Name string
	IBAN string
	BIC  string
}

// Documents holds the message documents generated for a transfer.
// Initiation is always present; the others stay nil until generated.
type Documents struct {
	Initiation   string
	StatusReport *string
	Return       *string
	Cancellation *string
}

// Transfer is the aggregate of a wire transfer. Its identity and input fields
// are fixed at construction; status, steps and documents are guarded by mu and
// only read through Snapshot.
type Transfer struct {
	ID                string
	Debtor            Debtor
	Creditor          Creditor
	Amount            decimal.Decimal
	Currency          string
	Purpose           string
	CreatedAt         time.Time
	DebtorAccountID   string
	CreditorAccountID string

	mu        sync.RWMutex
	status    Status
	steps     []ProcessingStep
	documents Documents
}

// NewTransfer creates a transfer in PENDING status with no steps recorded.
func NewTransfer(id string, req CreateTransferRequest, createdAt time.Time, debtorAccountID, creditorAccountID string) *Transfer {
	return &Transfer{
		ID: id,
		Debtor: Debtor{
			Name:              req.DebtorName,
			InstitutionNumber: req.InstitutionNumber,
			TransitNumber:     req.TransitNumber,
			AccountNumber:     req.AccountNumber,
		},
		Creditor: Creditor{
			Name: req.CreditorName,
			IBAN: req.CreditorIBAN,
			BIC:  req.CreditorBIC,
		},
		Amount:            req.Amount,
		Currency:          req.Currency,
		Purpose:           req.Purpose,
		CreatedAt:         createdAt,
		DebtorAccountID:   debtorAccountID,
		CreditorAccountID: creditorAccountID,
		status:            StatusPending,
	}
}

// Status returns the current status.
func (t *Transfer) Status() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

// Record appends a step and moves the transfer to the step's status.
func (t *Transfer) Record(step ProcessingStep) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.status.CanTransition(step.Status) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, t.status, step.Status)
	}
	t.steps = append(t.steps, step)
	t.status = step.Status
	return nil
}

// RecordFault appends a fault step without changing the status.
func (t *Transfer) RecordFault(at time.Time, failed Stage, err error) ProcessingStep {
	t.mu.Lock()
	defer t.mu.Unlock()

	step := ProcessingStep{
		Timestamp: at,
		Stage:     StageFault,
		Status:    t.status,
		Detail: StepDetail{
			FailedStage: failed,
			Error:       err.Error(),
		},
	}
	t.steps = append(t.steps, step)
	return step
}

// AttachInitiation stores the initiation document.
func (t *Transfer) AttachInitiation(doc string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.documents.Initiation = doc
}

// AttachStatusReport stores the status-report document.
func (t *Transfer) AttachStatusReport(doc string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.documents.StatusReport = &doc
}

// TransferSnapshot is a consistent point-in-time copy of a Transfer.
type TransferSnapshot struct {
	ID                string
	Debtor            Debtor
	Creditor          Creditor
	Amount            decimal.Decimal
	Currency          string
	Purpose           string
	CreatedAt         time.Time
	Status            Status
	Steps             []ProcessingStep
	Documents         Documents
	DebtorAccountID   string
	CreditorAccountID string
}

// Snapshot copies the transfer under its read lock.
func (t *Transfer) Snapshot() TransferSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	steps := make([]ProcessingStep, len(t.steps))
	copy(steps, t.steps)

	return TransferSnapshot{
		ID:                t.ID,
		Debtor:            t.Debtor,
		Creditor:          t.Creditor,
		Amount:            t.Amount,
		Currency:          t.Currency,
		Purpose:           t.Purpose,
		CreatedAt:         t.CreatedAt,
		Status:            t.status,
		Steps:             steps,
		Documents:         t.documents,
		DebtorAccountID:   t.DebtorAccountID,
		CreditorAccountID: t.CreditorAccountID,
	}
}

// TransferDetails is a transfer snapshot together with both affected accounts.
type TransferDetails struct {
	TransferSnapshot
	DebtorAccount   LedgerAccount
	CreditorAccount LedgerAccount
}
