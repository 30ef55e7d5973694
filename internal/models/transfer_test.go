package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func step(stage Stage, status Status) ProcessingStep {
	return ProcessingStep{Timestamp: testTime, Stage: stage, Status: status}
}

func TestNewTransfer(t *testing.T) {
	tr := NewTransfer("id-1", validRequest(), testTime, "001-12345-1234567", "CREDITOR-67890189")

	assert.Equal(t, StatusPending, tr.Status())
	assert.Equal(t, "Alice Martin", tr.Debtor.Name)
	assert.Equal(t, "BNPAFRPPXXX", tr.Creditor.BIC)
	assert.True(t, tr.Amount.Equal(validRequest().Amount))

	snap := tr.Snapshot()
	assert.Empty(t, snap.Steps)
	assert.Nil(t, snap.Documents.StatusReport)
	assert.Nil(t, snap.Documents.Return)
	assert.Nil(t, snap.Documents.Cancellation)
}

func TestTransfer_Record(t *testing.T) {
	tr := NewTransfer("id-1", validRequest(), testTime, "d", "c")

	require.NoError(t, tr.Record(step(StageInitiated, StatusPending)))
	require.NoError(t, tr.Record(step(StageValidation, StatusValidating)))
	require.NoError(t, tr.Record(step(StageFundReservationFailed, StatusFailed)))
	assert.Equal(t, StatusFailed, tr.Status())

	err := tr.Record(step(StageRouting, StatusProcessing))
	require.True(t, errors.Is(err, ErrIllegalTransition))
	err = tr.Record(step(StageFault, StatusFailed))
	require.ErrorIs(t, err, ErrIllegalTransition)

	assert.Len(t, tr.Snapshot().Steps, 3)
}

func TestTransfer_RecordFaultKeepsStatus(t *testing.T) {
	tr := NewTransfer("id-1", validRequest(), testTime, "d", "c")
	require.NoError(t, tr.Record(step(StageValidation, StatusValidating)))

	fault := tr.RecordFault(testTime, StageFundReservation, errors.New("ledger unavailable"))

	assert.Equal(t, StageFault, fault.Stage)
	assert.Equal(t, StatusValidating, fault.Status)
	assert.Equal(t, StageFundReservation, fault.Detail.FailedStage)
	assert.Equal(t, "ledger unavailable", fault.Detail.Error)
	assert.Equal(t, StatusValidating, tr.Status())
	assert.Len(t, tr.Snapshot().Steps, 2)
}

func TestTransfer_SnapshotIsIndependent(t *testing.T) {
	tr := NewTransfer("id-1", validRequest(), testTime, "d", "c")
	require.NoError(t, tr.Record(step(StageInitiated, StatusPending)))
	tr.AttachInitiation("<Document/>")

	snap := tr.Snapshot()
	snap.Steps[0].Stage = StageFault

	require.NoError(t, tr.Record(step(StageValidation, StatusValidating)))
	tr.AttachStatusReport("<Report/>")

	assert.Len(t, snap.Steps, 1)
	assert.Nil(t, snap.Documents.StatusReport)

	again := tr.Snapshot()
	assert.Equal(t, StageInitiated, again.Steps[0].Stage)
	assert.Equal(t, "<Document/>", again.Documents.Initiation)
	require.NotNil(t, again.Documents.StatusReport)
	assert.Equal(t, "<Report/>", *again.Documents.StatusReport)
}
