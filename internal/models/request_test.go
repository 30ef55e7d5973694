package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() CreateTransferRequest {
	return CreateTransferRequest{
		DebtorName:        "Alice Martin",
		InstitutionNumber: "001",
		TransitNumber:     "12345",
		AccountNumber:     "1234567",
		CreditorName:      "Bob Dupont",
		CreditorIBAN:      "FR7630006000011234567890189",
		CreditorBIC:       "BNPAFRPPXXX",
		Amount:            decimal.RequireFromString("250.00"),
		Currency:          "CAD",
		Purpose:           "Invoice 42",
	}
}

func TestCreateTransferRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *CreateTransferRequest)
		wantMsg string
	}{
		{"valid", func(r *CreateTransferRequest) {}, ""},
		{"missing debtor name", func(r *CreateTransferRequest) { r.DebtorName = "" }, "missing required field: debtor_name"},
		{"missing iban", func(r *CreateTransferRequest) { r.CreditorIBAN = "" }, "missing required field: creditor_iban"},
		{"missing purpose", func(r *CreateTransferRequest) { r.Purpose = "" }, "missing required field: purpose"},
		{"zero amount", func(r *CreateTransferRequest) { r.Amount = decimal.Zero }, "missing required field: amount"},
		{"negative amount", func(r *CreateTransferRequest) { r.Amount = decimal.NewFromInt(-5) }, "amount must be positive"},
		{"bad currency", func(r *CreateTransferRequest) { r.Currency = "CA" }, "invalid field: currency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantMsg == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidRequest)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
