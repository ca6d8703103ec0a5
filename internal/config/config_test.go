package config

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MINISTOCK_DATA", "")
	t.Setenv("MINISTOCK_THRESHOLD", "")

	c, err := Load(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "inventory.txt", c.DataFile)
	assert.Equal(t, "inventory.json", c.ExportFile)
	assert.Equal(t, 5, c.Threshold)
	assert.True(t, c.Seed)
	assert.Empty(t, c.DashboardAddr)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestLoad_EnvThenFlags(t *testing.T) {
	t.Setenv("MINISTOCK_DATA", "env.txt")
	t.Setenv("MINISTOCK_THRESHOLD", "8")
	t.Setenv("MINISTOCK_SEED", "false")

	c, err := Load([]string{"-data", "flag.txt", "-dashboard", ":9090"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "flag.txt", c.DataFile)
	assert.Equal(t, 8, c.Threshold)
	assert.False(t, c.Seed)
	assert.Equal(t, ":9090", c.DashboardAddr)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load([]string{"-threshold", "0"}, io.Discard)
	assert.ErrorIs(t, err, ErrBadThreshold)

	_, err = Load([]string{"-nope"}, io.Discard)
	assert.Error(t, err)
}
