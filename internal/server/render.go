package server

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/wire-transfer-simulator/internal/models"
)

var stageTitles = map[models.Stage]string{
	models.StageInitiated:             "Transfer initiated",
	models.StageValidation:            "PACS.008 message validation",
	models.StageFundReservation:       "Bank account validation & fund reservation",
	models.StageFundReservationFailed: "Bank account validation failed",
	models.StageRouting:               "Message sent to Lynx/SWIFT",
	models.StageSettlement:            "Clearing and settlement",
	models.StageCredit:                "Funds credited to beneficiary",
	models.StageConfirmation:          "PACS.002 confirmation sent",
	models.StageFault:                 "Processing fault",
}

func stepTitle(s models.ProcessingStep) string {
	if title, ok := stageTitles[s.Stage]; ok {
		return title
	}
	return string(s.Stage)
}

func money(d *decimal.Decimal, currency string) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2) + " " + currency
}

// stepDetails renders a one-paragraph description of a step.
func stepDetails(t models.TransferSnapshot, s models.ProcessingStep) string {
	d := s.Detail
	switch s.Stage {
	case models.StageInitiated:
		return fmt.Sprintf("PACS.008 credit transfer created for %s. End-to-end reference %s.",
			money(d.Amount, d.Currency), d.EndToEndID)
	case models.StageValidation:
		return fmt.Sprintf("Originating bank validated the PACS.008 message %s (end-to-end %s). Debtor agent %s, creditor agent %s.",
			d.MessageID, d.EndToEndID, d.DebtorAgent, d.CreditorAgent)
	case models.StageFundReservation:
		return fmt.Sprintf("Account %s verified. Reserved %s, new available balance %s.",
			d.AccountID, money(d.Amount, d.Currency), money(d.Balance, d.Currency))
	case models.StageFundReservationFailed:
		return fmt.Sprintf("Insufficient funds in %s. Required %s, available %s, shortfall %s. Transfer rejected, no funds reserved.",
			d.AccountID, money(d.Amount, d.Currency), money(d.Balance, d.Currency), money(d.Shortfall, d.Currency))
	case models.StageRouting:
		return fmt.Sprintf("PACS.008 message sent to the %s clearing system for a %s transfer.", d.Network, d.Currency)
	case models.StageSettlement:
		return fmt.Sprintf("%s settled %s between %s and %s. Settlement is final.",
			strings.ToUpper(d.Network), money(d.Amount, d.Currency), d.DebtorAgent, d.CreditorAgent)
	case models.StageCredit:
		return fmt.Sprintf("Credited %s to %s (%s) at %s. New balance %s.",
			money(d.Amount, d.Currency), t.Creditor.Name, t.Creditor.IBAN, d.CreditorAgent, money(d.Balance, d.Currency))
	case models.StageConfirmation:
		return fmt.Sprintf("PACS.002 status report %s sent with status ACSP for end-to-end reference %s.",
			d.MessageID, d.EndToEndID)
	case models.StageFault:
		return fmt.Sprintf("Processing stopped during %s: %s", d.FailedStage, d.Error)
	default:
		return ""
	}
}
