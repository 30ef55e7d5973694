package messages

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/sheikh-saqib/wire-transfer-simulator/internal/models"
)

const (
	// DefaultDebtorAgentBIC is the BIC of the originating bank.
	DefaultDebtorAgentBIC = "LYNXCA22XXX"

	messagePrefix      = "LYNX"
	statusReportPrefix = "LYNX002"
	returnPrefix       = "LYNX004"
	cancellationPrefix = "LYNX007"

	endToEndPrefix    = "E2E"
	instructionPrefix = "LYNX"
	reversalPrefix    = "REV"
	cancelIDPrefix    = "CXL"
	creditorRefPrefix = "REF"

	chargeBearerDebtor   = "DEBT"
	purposeCash          = "CASH"
	creditorRefType      = "SCOR"
	statusSettled        = "ACSP"
	reasonAccepted       = "AC01"
	reasonReturn         = "AC01"
	reasonCustomerCancel = "CUST"

	messageTimeLayout  = "20060102150405"
	creationTimeLayout = "2006-01-02T15:04:05"
	dateLayout         = "2006-01-02"

	messageIDChars = 8
	txRefChars     = 16
)

// Composer builds pacs documents from transfer snapshots. It holds no state
// besides its configuration, so the same inputs always give the same document.
type Composer struct {
	debtorAgentBIC string
}

// NewComposer returns a Composer that names debtorAgentBIC as the originating bank.
// An empty BIC falls back to DefaultDebtorAgentBIC.
func NewComposer(debtorAgentBIC string) *Composer {
	if debtorAgentBIC == "" {
		debtorAgentBIC = DefaultDebtorAgentBIC
	}
	return &Composer{debtorAgentBIC: debtorAgentBIC}
}

// DebtorAgentBIC returns the BIC used for the originating bank.
func (c *Composer) DebtorAgentBIC() string {
	return c.debtorAgentBIC
}

func prefixOf(id string, n int) string {
	if len(id) < n {
		n = len(id)
	}
	return strings.ToUpper(id[:n])
}

// MessageID is prefix + timestamp + the first 8 characters of the transfer id.
func MessageID(prefix, transferID string, at time.Time) string {
	return prefix + at.Format(messageTimeLayout) + prefixOf(transferID, messageIDChars)
}

// TxReference is prefix + the first 16 characters of the transfer id.
func TxReference(prefix, transferID string) string {
	return prefix + prefixOf(transferID, txRefChars)
}

// EndToEndID is the end-to-end reference carried through every document of a transfer.
func EndToEndID(transferID string) string {
	return TxReference(endToEndPrefix, transferID)
}

// InstructionID is the instruction reference of the initiation document.
func InstructionID(transferID string) string {
	return TxReference(instructionPrefix, transferID)
}

func header(prefix, transferID string, at time.Time) GroupHeader {
	return GroupHeader{
		MessageID:    MessageID(prefix, transferID, at),
		CreationTime: at.Format(creationTimeLayout),
	}
}

func original(transferID string) OriginalGroupInfo {
	return OriginalGroupInfo{
		MessageID:   InstructionID(transferID),
		MessageName: OriginalMessageName,
	}
}

// Initiation builds the pacs.008 credit transfer describing the instruction.
func (c *Composer) Initiation(t models.TransferSnapshot, at time.Time) CreditTransferDocument {
	amount := t.Amount.String()

	hdr := header(messagePrefix, t.ID, at)
	hdr.NumberOfTxs = "1"
	hdr.ControlSum = amount
	hdr.InitiatingParty = &Party{Name: t.Debtor.Name}

	tx := CreditTransferTxInfo{
		PaymentID: PaymentID{
			InstructionID: InstructionID(t.ID),
			EndToEndID:    EndToEndID(t.ID),
		},
		SettlementAmt: Amount{Currency: t.Currency, Value: amount},
		ChargeBearer:  chargeBearerDebtor,
		Debtor:        Party{Name: t.Debtor.Name},
		DebtorAgent:   Agent{FinancialInstitution: FinancialInstitution{BIC: c.debtorAgentBIC}},
		CreditorAgent: Agent{FinancialInstitution: FinancialInstitution{BIC: t.Creditor.BIC}},
		Creditor:      Party{Name: t.Creditor.Name},
		Purpose:       Code{Code: purposeCash},
	}
	tx.DebtorAccount.ID.Other.ID = t.Debtor.InstitutionNumber + t.Debtor.TransitNumber + t.Debtor.AccountNumber
	tx.CreditorAccount.ID.IBAN = t.Creditor.IBAN

	strd := &tx.Remittance.Structured
	strd.ReferredDocument.Number = "1"
	strd.ReferredDocument.RelatedDate = at.Format(dateLayout)
	strd.Info.ReferredAmount.Remitted = Amount{Currency: t.Currency, Value: amount}
	strd.Info.CreditorReference.Type = Code{Code: creditorRefType}
	strd.Info.CreditorReference.Reference = TxReference(creditorRefPrefix, t.ID)

	return CreditTransferDocument{
		Xmlns:    NamespacePacs008,
		XmlnsXSI: NamespaceXSI,
		Transfer: CustomerCreditTransfer{GroupHeader: hdr, TxInfo: tx},
	}
}

// StatusReport builds the pacs.002 confirming settlement.
func (c *Composer) StatusReport(t models.TransferSnapshot, at time.Time) StatusReportDocument {
	return StatusReportDocument{
		Xmlns:    NamespacePacs002,
		XmlnsXSI: NamespaceXSI,
		Report: PaymentStatusReport{
			GroupHeader: header(statusReportPrefix, t.ID, at),
			Original:    original(t.ID),
			TxInfo: StatusTxInfo{
				OriginalEndToEndID: EndToEndID(t.ID),
				OriginalTxID:       InstructionID(t.ID),
				TxStatus:           statusSettled,
				StatusReason:       Reason{Reason: Code{Code: reasonAccepted}},
			},
		},
	}
}

// Return builds the pacs.004 describing a reversal of the transfer.
func (c *Composer) Return(t models.TransferSnapshot, at time.Time) ReturnDocument {
	return ReturnDocument{
		Xmlns:    NamespacePacs004,
		XmlnsXSI: NamespaceXSI,
		Return: PaymentReturn{
			GroupHeader: header(returnPrefix, t.ID, at),
			Original:    original(t.ID),
			TxInfo: ReturnTxInfo{
				ReversalID:     TxReference(reversalPrefix, t.ID),
				OriginalTxID:   InstructionID(t.ID),
				ReturnedAmount: Amount{Currency: t.Currency, Value: t.Amount.String()},
				ReturnReason:   Reason{Reason: Code{Code: reasonReturn}},
			},
		},
	}
}

// Cancellation builds the pacs.007 requesting cancellation of the transfer.
func (c *Composer) Cancellation(t models.TransferSnapshot, at time.Time) CancellationDocument {
	return CancellationDocument{
		Xmlns:    NamespacePacs007,
		XmlnsXSI: NamespaceXSI,
		Cancellation: CancellationRequest{
			GroupHeader: header(cancellationPrefix, t.ID, at),
			Original:    original(t.ID),
			TxInfo: CancellationTxInfo{
				CancellationID:     TxReference(cancelIDPrefix, t.ID),
				OriginalTxID:       InstructionID(t.ID),
				CancellationReason: Reason{Reason: Code{Code: reasonCustomerCancel}},
			},
		},
	}
}

// Encode renders a document as indented XML with a declaration.
func Encode(doc any) (string, error) {
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return xml.Header + string(out) + "\n", nil
}
