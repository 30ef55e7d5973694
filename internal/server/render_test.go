package server

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sheikh-saqib/wire-transfer-simulator/internal/models"
)

func TestStepTitle(t *testing.T) {
	assert.Equal(t, "Bank account validation failed",
		stepTitle(models.ProcessingStep{Stage: models.StageFundReservationFailed}))
	assert.Equal(t, "custom", stepTitle(models.ProcessingStep{Stage: "custom"}))
}

func TestStepDetails_InsufficientFunds(t *testing.T) {
	step := models.ProcessingStep{
		Stage:  models.StageFundReservationFailed,
		Status: models.StatusFailed,
		Detail: models.StepDetail{
			Amount:    models.Dec(decimal.NewFromInt(15000)),
			Currency:  "CAD",
			AccountID: "001-12345-1234567",
			Balance:   models.Dec(decimal.NewFromInt(10000)),
			Shortfall: models.Dec(decimal.NewFromInt(5000)),
		},
	}

	text := stepDetails(models.TransferSnapshot{}, step)
	assert.Contains(t, text, "001-12345-1234567")
	assert.Contains(t, text, "Required 15000.00 CAD")
	assert.Contains(t, text, "shortfall 5000.00 CAD")
}
