package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/wire-transfer-simulator/internal/clearing"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/ledger"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/messages"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/models"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/registry"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/storage/memory"
)

const transferBody = `{
	"debtor_name": "Alice Martin",
	"institution_number": "001",
	"transit_number": "12345",
	"account_number": "1234567",
	"creditor_name": "Bob Dupont",
	"creditor_iban": "FR7630006000011234567890189",
	"creditor_bic": "BNPAFRPPXXX",
	"amount": %s,
	"currency": "CAD",
	"purpose": "Invoice 42"
}`

func newTestServer(t *testing.T) (*registry.Registry, http.Handler) {
	t.Helper()
	l := ledger.NewLedger(memory.NewMemoryAccountStore())
	composer := messages.NewComposer("")
	pipeline := clearing.NewPipeline(l, composer, clearing.WithDelays(clearing.Delays{}))
	reg := registry.NewRegistry(l, memory.NewMemoryTransferStore(), composer, pipeline)
	return reg, NewHandler(reg, nil).Router()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func createTransfer(t *testing.T, h http.Handler, amount string) map[string]any {
	t.Helper()
	w := do(t, h, http.MethodPost, "/create_transfer", fmt.Sprintf(transferBody, amount))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp map[string]any
	decode(t, w, &resp)
	return resp
}

func TestHealth(t *testing.T) {
	_, h := newTestServer(t)

	w := do(t, h, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp healthResponse
	decode(t, w, &resp)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, healthMessage, resp.Message)
}

func TestCreateTransfer(t *testing.T) {
	_, h := newTestServer(t)

	resp := createTransfer(t, h, `"1500.00"`)
	assert.Equal(t, "Transfer created successfully", resp["message"])

	transfer := resp["transfer"].(map[string]any)
	assert.Equal(t, resp["transfer_id"], transfer["id"])
	assert.Equal(t, "PENDING", transfer["status"])
	assert.Contains(t, transfer["pacs_008_xml"], "<FIToFICstmrCdtTrf>")
	assert.Nil(t, transfer["pacs_002_xml"])
	assert.Nil(t, transfer["pacs_004_xml"])
	assert.Nil(t, transfer["pacs_007_xml"])
	assert.Equal(t, []any{"001-12345-1234567", "CREDITOR-67890189"}, transfer["bank_accounts_affected"])

	steps := transfer["processing_steps"].([]any)
	require.Len(t, steps, 1)
	first := steps[0].(map[string]any)
	assert.Equal(t, "Transfer initiated", first["step"])
	assert.Equal(t, "initiated", first["stage"])
}

func TestCreateTransfer_NumericAmount(t *testing.T) {
	_, h := newTestServer(t)
	resp := createTransfer(t, h, `250.5`)
	assert.NotEmpty(t, resp["transfer_id"])
}

func TestCreateTransfer_Invalid(t *testing.T) {
	_, h := newTestServer(t)

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"malformed json", `{"debtor_name":`, "invalid request body"},
		{"missing amount", fmt.Sprintf(transferBody, `"0"`), "missing required field: amount"},
		{"negative amount", fmt.Sprintf(transferBody, `"-5"`), "amount must be positive"},
		{"missing fields", `{"amount": "10"}`, "missing required field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/create_transfer", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp errorResponse
			decode(t, w, &resp)
			assert.Contains(t, resp.Error, tt.wantMsg)
		})
	}
}

func TestGetTransfer_Completed(t *testing.T) {
	reg, h := newTestServer(t)
	id := createTransfer(t, h, `"1500"`)["transfer_id"].(string)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, reg.Wait(ctx, id))

	w := do(t, h, http.MethodGet, "/transfer/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)

	var view transferView
	decode(t, w, &view)
	assert.Equal(t, models.StatusCompleted, view.Status)
	require.Len(t, view.ProcessingSteps, 7)
	assert.Equal(t, "Message sent to Lynx/SWIFT", view.ProcessingSteps[3].Step)
	assert.Contains(t, view.ProcessingSteps[3].Details, "Lynx")
	assert.Equal(t, "PACS.002 confirmation sent", view.ProcessingSteps[6].Step)
	require.NotNil(t, view.Pacs002XML)
	assert.True(t, view.DebtorAccount.Balance.Equal(view.DebtorAccount.Transactions[0].BalanceAfter))
}

func TestGetTransfer_NotFound(t *testing.T) {
	_, h := newTestServer(t)

	w := do(t, h, http.MethodGet, "/transfer/unknown", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp errorResponse
	decode(t, w, &resp)
	assert.Equal(t, "Transfer not found", resp.Error)
}

func TestListTransfersAndAccounts(t *testing.T) {
	_, h := newTestServer(t)
	createTransfer(t, h, `"10"`)
	createTransfer(t, h, `"20"`)

	w := do(t, h, http.MethodGet, "/transfers", "")
	require.Equal(t, http.StatusOK, w.Code)
	var transfers struct {
		Transfers []transferView `json:"transfers"`
		Count     int            `json:"count"`
	}
	decode(t, w, &transfers)
	assert.Equal(t, 2, transfers.Count)
	require.Len(t, transfers.Transfers, 2)
	assert.Equal(t, "10", transfers.Transfers[0].Amount.String())

	w = do(t, h, http.MethodGet, "/bank_accounts", "")
	require.Equal(t, http.StatusOK, w.Code)
	var accounts struct {
		Accounts []models.LedgerAccount `json:"bank_accounts"`
		Count    int                    `json:"count"`
	}
	decode(t, w, &accounts)
	assert.Equal(t, 2, accounts.Count)
	assert.Equal(t, "001-12345-1234567", accounts.Accounts[0].ID)
}

type failingService struct{ Service }

func (failingService) List(ctx context.Context) ([]models.TransferDetails, error) {
	return nil, errors.New("store offline")
}

func TestListTransfers_InternalError(t *testing.T) {
	h := NewHandler(failingService{}, nil).Router()

	w := do(t, h, http.MethodGet, "/transfers", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp errorResponse
	decode(t, w, &resp)
	assert.Equal(t, "store offline", resp.Error)
}
