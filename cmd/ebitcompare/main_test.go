package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nicky-ayoub/ebitcompare/internal/compare"
	"github.com/nicky-ayoub/ebitcompare/internal/config"
	"github.com/nicky-ayoub/ebitcompare/internal/service"
	"github.com/nicky-ayoub/ebitcompare/internal/ui"
)

func TestNewGameAppliesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.View.MaxScale = 8
	cfg.View.ClampPolicy = "centered"

	g, err := newGame(cfg, zap.NewNop(), service.Pair{Before: "a.png", After: "b.png"})
	require.NoError(t, err)

	opts := g.controller.Options()
	assert.Equal(t, 8.0, opts.MaxScale)
	assert.Equal(t, compare.PolicyCentered, opts.Policy)
	assert.Equal(t, "a.png", g.pairState.Path(ui.Before))
}

func TestNewGameRejectsUnknownPolicy(t *testing.T) {
	cfg := config.Default()
	cfg.View.ClampPolicy = "spiral"

	_, err := newGame(cfg, zap.NewNop(), service.Pair{})
	assert.Error(t, err)
}

func TestLayoutMarksBoundsDirty(t *testing.T) {
	g, err := newGame(config.Default(), zap.NewNop(), service.Pair{})
	require.NoError(t, err)

	w, h := g.Layout(640, 480)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
	assert.True(t, g.boundsDirty)

	g.boundsDirty = false
	g.Layout(640, 480)
	assert.False(t, g.boundsDirty)
}
