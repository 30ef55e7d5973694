package messages

import "encoding/xml"

// Namespaces of the four pacs messages and the schema-instance namespace they all declare.
const (
	NamespacePacs008 = "urn:iso:std:iso:20022:tech:xsd:pacs.008.001.10"
	NamespacePacs002 = "urn:iso:std:iso:20022:tech:xsd:pacs.002.001.12"
	NamespacePacs004 = "urn:iso:std:iso:20022:tech:xsd:pacs.004.001.10"
	NamespacePacs007 = "urn:iso:std:iso:20022:tech:xsd:pacs.007.001.10"
	NamespaceXSI     = "http://www.w3.org/2001/XMLSchema-instance"

	// OriginalMessageName is the message every report, return and cancellation refers back to.
	OriginalMessageName = "pacs.008.001.10"
)

// CreditTransferDocument is a pacs.008 FI-to-FI customer credit transfer.
type CreditTransferDocument struct {
	XMLName  xml.Name               `xml:"Document"`
	Xmlns    string                 `xml:"xmlns,attr"`
	XmlnsXSI string                 `xml:"xmlns:xsi,attr"`
	Transfer CustomerCreditTransfer `xml:"FIToFICstmrCdtTrf"`
}

type CustomerCreditTransfer struct {
	GroupHeader GroupHeader          `xml:"GrpHdr"`
	TxInfo      CreditTransferTxInfo `xml:"CdtTrfTxInf"`
}

// GroupHeader is shared by all four documents; the count, sum and initiating
// party only appear in pacs.008.
type GroupHeader struct {
	MessageID       string `xml:"MsgId"`
	CreationTime    string `xml:"CreDtTm"`
	NumberOfTxs     string `xml:"NbOfTxs,omitempty"`
	ControlSum      string `xml:"CtrlSum,omitempty"`
	InitiatingParty *Party `xml:"InitgPty,omitempty"`
}

type Party struct {
	Name string `xml:"Nm"`
}

type Amount struct {
	Currency string `xml:"Ccy,attr"`
	Value    string `xml:",chardata"`
}

type PaymentID struct {
	InstructionID string `xml:"InstrId"`
	EndToEndID    string `xml:"EndToEndId"`
}

type Agent struct {
	FinancialInstitution FinancialInstitution `xml:"FinInstnId"`
}

type FinancialInstitution struct {
	BIC string `xml:"BICFI"`
}

type DebtorAccount struct {
	ID struct {
		Other struct {
			ID string `xml:"Id"`
		} `xml:"Othr"`
	} `xml:"Id"`
}

type CreditorAccount struct {
	ID struct {
		IBAN string `xml:"IBAN"`
	} `xml:"Id"`
}

type Code struct {
	Code string `xml:"Cd"`
}

type CreditTransferTxInfo struct {
	PaymentID       PaymentID       `xml:"PmtId"`
	SettlementAmt   Amount          `xml:"IntrBkSttlmAmt"`
	ChargeBearer    string          `xml:"ChrgBr"`
	Debtor          Party           `xml:"Dbtr"`
	DebtorAccount   DebtorAccount   `xml:"DbtrAcct"`
	DebtorAgent     Agent           `xml:"DbtrAgt"`
	CreditorAgent   Agent           `xml:"CdtrAgt"`
	Creditor        Party           `xml:"Cdtr"`
	CreditorAccount CreditorAccount `xml:"CdtrAcct"`
	Purpose         Code            `xml:"Purp"`
	Remittance      Remittance      `xml:"RmtInf"`
}

type Remittance struct {
	Structured struct {
		ReferredDocument struct {
			Number      string `xml:"Nb"`
			RelatedDate string `xml:"RltdDt"`
		} `xml:"RfrdDocInf"`
		Info struct {
			ReferredAmount struct {
				Remitted Amount `xml:"RmtdAmt"`
			} `xml:"RfrdInvAmt"`
			CreditorReference struct {
				Type      Code   `xml:"Tp"`
				Reference string `xml:"Ref"`
			} `xml:"CdtrRefInf"`
		} `xml:"StrdRmtInf"`
	} `xml:"Strd"`
}

type OriginalGroupInfo struct {
	MessageID   string `xml:"OrgnlMsgId"`
	MessageName string `xml:"OrgnlMsgNmId"`
}

type Reason struct {
	Reason Code `xml:"Rsn"`
}

// StatusReportDocument is a pacs.002 payment status report.
type StatusReportDocument struct {
	XMLName  xml.Name            `xml:"Document"`
	Xmlns    string              `xml:"xmlns,attr"`
	XmlnsXSI string              `xml:"xmlns:xsi,attr"`
	Report   PaymentStatusReport `xml:"FIToFIPmtStsRpt"`
}

type PaymentStatusReport struct {
	GroupHeader GroupHeader       `xml:"GrpHdr"`
	Original    OriginalGroupInfo `xml:"OrgnlGrpInf"`
	TxInfo      StatusTxInfo      `xml:"TxInf"`
}

type StatusTxInfo struct {
	OriginalEndToEndID string `xml:"OrgnlEndToEndId"`
	OriginalTxID       string `xml:"OrgnlTxId"`
	TxStatus           string `xml:"TxSts"`
	StatusReason       Reason `xml:"StsRsnInf"`
}

// ReturnDocument is a pacs.004 payment return.
type ReturnDocument struct {
	XMLName  xml.Name      `xml:"Document"`
	Xmlns    string        `xml:"xmlns,attr"`
	XmlnsXSI string        `xml:"xmlns:xsi,attr"`
	Return   PaymentReturn `xml:"FIToFIPmtRvsl"`
}

type PaymentReturn struct {
	GroupHeader GroupHeader       `xml:"GrpHdr"`
	Original    OriginalGroupInfo `xml:"OrgnlGrpInf"`
	TxInfo      ReturnTxInfo      `xml:"TxInf"`
}

type ReturnTxInfo struct {
	ReversalID     string `xml:"RvslId"`
	OriginalTxID   string `xml:"OrgnlTxId"`
	ReturnedAmount Amount `xml:"RtrdIntrBkSttlmAmt"`
	ReturnReason   Reason `xml:"RtrRsnInf"`
}

// CancellationDocument is a pacs.007 payment cancellation request.
type CancellationDocument struct {
	XMLName      xml.Name            `xml:"Document"`
	Xmlns        string              `xml:"xmlns,attr"`
	XmlnsXSI     string              `xml:"xmlns:xsi,attr"`
	Cancellation CancellationRequest `xml:"FIToFIPmtCxlReq"`
}

type CancellationRequest struct {
	GroupHeader GroupHeader        `xml:"GrpHdr"`
	Original    OriginalGroupInfo  `xml:"OrgnlGrpInf"`
	TxInfo      CancellationTxInfo `xml:"TxInf"`
}

type CancellationTxInfo struct {
	CancellationID     string `xml:"CxlId"`
	OriginalTxID       string `xml:"OrgnlTxId"`
	CancellationReason Reason `xml:"CxlRsnInf"`
}
