package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_KeyValueFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := FromZap(zap.New(core)).With("service", "stats")

	logger.Warn("skipped match", "matchId", "m1", "error", errors.New("boom"), "dangling")

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "skipped match", entries[0].Message)
	assert.Equal(t, "stats", ctx["service"])
	assert.Equal(t, "m1", ctx["matchId"])
	assert.Equal(t, "boom", ctx["error"])
	assert.Contains(t, ctx, "dangling")
}

func TestDefault_IsNeverNil(t *testing.T) {
	SetDefault(nil)
	assert.NotNil(t, Default())
	Default().Info("discarded")
}
