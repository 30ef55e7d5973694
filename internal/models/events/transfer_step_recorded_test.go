package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/wire-transfer-simulator/internal/models"
)

func TestNewTransferStepRecorded(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	transfer := models.NewTransfer("t1", models.CreateTransferRequest{
		Amount:   decimal.RequireFromString("42.10"),
		Currency: "EUR",
	}, at, "d", "c")

	event := NewTransferStepRecorded(transfer, models.ProcessingStep{
		Timestamp: at,
		Stage:     models.StageRouting,
		Status:    models.StatusProcessing,
		Detail:    models.StepDetail{Network: "SWIFT"},
	})

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "t1", decoded["transfer_id"])
	assert.Equal(t, "routing", decoded["stage"])
	assert.Equal(t, "PROCESSING", decoded["status"])
	assert.Equal(t, "42.1", decoded["amount"])
	assert.Equal(t, "EUR", decoded["currency"])
	assert.Equal(t, "2025-03-14T09:26:53Z", decoded["occurred_at"])
	assert.Equal(t, map[string]any{"network": "SWIFT"}, decoded["detail"])
}
