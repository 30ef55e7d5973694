package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogPublisher(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	p := NewLogPublisher(zap.New(core))

	require.NoError(t, p.Publish(context.Background(), "transfer-1", map[string]string{"stage": "credit"}))

	entries := logs.FilterMessage("lifecycle event").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "transfer-1", entries[0].ContextMap()["key"])
}

func TestLogPublisher_NilLogger(t *testing.T) {
	p := NewLogPublisher(nil)
	assert.NoError(t, p.Publish(context.Background(), "k", nil))
}
