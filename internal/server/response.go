package server

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/wire-transfer-simulator/internal/models"
)

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type createResponse struct {
	Message    string       `json:"message"`
	TransferID string       `json:"transfer_id"`
	Transfer   transferView `json:"transfer"`
}

type transferListResponse struct {
	Transfers []transferView `json:"transfers"`
	Count     int            `json:"count"`
}

type accountListResponse struct {
	Accounts []models.LedgerAccount `json:"bank_accounts"`
	Count    int                    `json:"count"`
}

// transferView is the JSON shape of a transfer.
type transferView struct {
	ID                   string               `json:"id"`
	DebtorName           string               `json:"debtor_name"`
	InstitutionNumber    string               `json:"institution_number"`
	TransitNumber        string               `json:"transit_number"`
	AccountNumber        string               `json:"account_number"`
	CreditorName         string               `json:"creditor_name"`
	CreditorIBAN         string               `json:"creditor_iban"`
	CreditorBIC          string               `json:"creditor_bic"`
	Amount               decimal.Decimal      `json:"amount"`
	Currency             string               `json:"currency"`
	Purpose              string               `json:"purpose"`
	CreatedAt            time.Time            `json:"created_at"`
	Status               models.Status        `json:"status"`
	Pacs008XML           string               `json:"pacs_008_xml"`
	Pacs002XML           *string              `json:"pacs_002_xml"`
	Pacs004XML           *string              `json:"pacs_004_xml"`
	Pacs007XML           *string              `json:"pacs_007_xml"`
	ProcessingSteps      []stepView           `json:"processing_steps"`
	BankAccountsAffected []string             `json:"bank_accounts_affected"`
	DebtorAccount        models.LedgerAccount `json:"debtor_account"`
	CreditorAccount      models.LedgerAccount `json:"creditor_account"`
}

// stepView pairs the rendered title and text of a step with its structured data.
type stepView struct {
	Timestamp time.Time         `json:"timestamp"`
	Step      string            `json:"step"`
	Stage     models.Stage      `json:"stage"`
	Status    models.Status     `json:"status"`
	Details   string            `json:"details"`
	Data      models.StepDetail `json:"data"`
}

func newTransferView(d models.TransferDetails) transferView {
	steps := make([]stepView, 0, len(d.Steps))
	for _, s := range d.Steps {
		steps = append(steps, stepView{
			Timestamp: s.Timestamp,
			Step:      stepTitle(s),
			Stage:     s.Stage,
			Status:    s.Status,
			Details:   stepDetails(d.TransferSnapshot, s),
			Data:      s.Detail,
		})
	}

	return transferView{
		ID:                   d.ID,
		DebtorName:           d.Debtor.Name,
		InstitutionNumber:    d.Debtor.InstitutionNumber,
		TransitNumber:        d.Debtor.TransitNumber,
		AccountNumber:        d.Debtor.AccountNumber,
		CreditorName:         d.Creditor.Name,
		CreditorIBAN:         d.Creditor.IBAN,
		CreditorBIC:          d.Creditor.BIC,
		Amount:               d.Amount,
		Currency:             d.Currency,
		Purpose:              d.Purpose,
		CreatedAt:            d.CreatedAt,
		Status:               d.Status,
		Pacs008XML:           d.Documents.Initiation,
		Pacs002XML:           d.Documents.StatusReport,
		Pacs004XML:           d.Documents.Return,
		Pacs007XML:           d.Documents.Cancellation,
		ProcessingSteps:      steps,
		BankAccountsAffected: []string{d.DebtorAccountID, d.CreditorAccountID},
		DebtorAccount:        d.DebtorAccount,
		CreditorAccount:      d.CreditorAccount,
	}
}
