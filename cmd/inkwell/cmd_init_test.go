package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/inkwell-ai/inkwell/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCommand_WritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkwell.yaml")

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"init", "--config", path})
	require.NoError(t, cmd.Execute())

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Providers)
	assert.NotEmpty(t, cfg.Judges)
	assert.Len(t, cfg.Prompts, 5)
}

func TestInitCommand_RefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkwell.yaml")
	require.NoError(t, os.WriteFile(path, []byte("existing: true\n"), 0o644))

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init", "--config", path})
	assert.ErrorContains(t, cmd.Execute(), "already exists")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "existing: true\n", string(data))
}

func TestInitCommand_ForceOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkwell.yaml")
	require.NoError(t, os.WriteFile(path, []byte("existing: true\n"), 0o644))

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"init", "--config", path, "--force"})
	require.NoError(t, cmd.Execute())

	_, err := config.Load(path)
	assert.NoError(t, err)
}
