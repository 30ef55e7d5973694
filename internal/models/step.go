package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stage identifies what happened in a processing step.
type Stage string

const (
	StageInitiated             Stage = "initiated"
	StageValidation            Stage = "validation"
	StageFundReservation       Stage = "fund_reservation"
	StageFundReservationFailed Stage = "fund_reservation_failed"
	StageRouting               Stage = "routing"
	StageSettlement            Stage = "settlement"
	StageCredit                Stage = "credit"
	StageConfirmation          Stage = "confirmation"
	StageFault                 Stage = "fault"
)

// ProcessingStep is one immutable entry of a transfer's processing history.
type ProcessingStep struct {
	Timestamp time.Time  `json:"timestamp"`
	Stage     Stage      `json:"stage"`
	Status    Status     `json:"status"`
	Detail    StepDetail `json:"detail"`
}

// StepDetail carries the structured facts a stage produced. Only the fields
// relevant to the stage are set.
type StepDetail struct {
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Currency      string           `json:"currency,omitempty"`
	AccountID     string           `json:"account_id,omitempty"`
	Balance       *decimal.Decimal `json:"balance,omitempty"`
	Shortfall     *decimal.Decimal `json:"shortfall,omitempty"`
	Network       string           `json:"network,omitempty"`
	DebtorAgent   string           `json:"debtor_agent,omitempty"`
	CreditorAgent string           `json:"creditor_agent,omitempty"`
	MessageID     string           `json:"message_id,omitempty"`
	EndToEndID    string           `json:"end_to_end_id,omitempty"`
	FailedStage   Stage            `json:"failed_stage,omitempty"`
	Error         string           `json:"error,omitempty"`
}

// Dec returns a pointer to a copy of d, for use in StepDetail.
func Dec(d decimal.Decimal) *decimal.Decimal {
	return &d
}
