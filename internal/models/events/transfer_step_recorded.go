package events

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/wire-transfer-simulator/internal/models"
)

// TransferStepRecorded is published every time a processing step is appended
// to a transfer.
type TransferStepRecorded struct {
	TransferID string            `json:"transfer_id"`
	Stage      models.Stage      `json:"stage"`
	Status     models.Status     `json:"status"`
	Amount     decimal.Decimal   `json:"amount"`
	Currency   string            `json:"currency"`
	Detail     models.StepDetail `json:"detail"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// NewTransferStepRecorded builds the event for a step of transfer t.
func NewTransferStepRecorded(t *models.Transfer, step models.ProcessingStep) TransferStepRecorded {
	return TransferStepRecorded{
		TransferID: t.ID,
		Stage:      step.Stage,
		Status:     step.Status,
		Amount:     t.Amount,
		Currency:   t.Currency,
		Detail:     step.Detail,
		OccurredAt: step.Timestamp,
	}
}
