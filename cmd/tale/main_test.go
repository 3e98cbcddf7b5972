package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.yaml")))
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tale version dev")
}

func TestValidateDefaultCatalog(t *testing.T) {
	out, err := execute(t, "", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "catalog ok")
}

func TestValidateReportsFindings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
cards:
  - id: evt
    type: EVENT
    options:
      - {description: a, outcome_id: nowhere}
      - {description: b, outcome_id: nowhere}
`), 0o644))
	t.Setenv("TALE_CATALOG_PATH", path)

	out, err := execute(t, "", "validate")
	require.Error(t, err)
	assert.Contains(t, out, "nowhere")
}

func TestPlaySaveAndResume(t *testing.T) {
	t.Setenv("TALE_DECK_SEED", "7")
	save := filepath.Join(t.TempDir(), "save.json")

	out, err := execute(t, "1\nq\n", "play", "--name", "Lin", "--save", save)
	require.NoError(t, err)
	assert.Contains(t, out, "[0]")
	assert.Contains(t, out, "Lin")
	assert.Contains(t, out, "Saved to")

	data, err := os.ReadFile(save)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": 1`)

	out, err = execute(t, "q\n", "play", "--load", save)
	require.NoError(t, err)
	assert.Contains(t, out, "Lin")
}

func TestPlayUntilDeckRunsOut(t *testing.T) {
	out, err := execute(t, strings.Repeat("0\n", 10), "play")
	require.NoError(t, err)
	assert.Contains(t, out, "The road ends here.")
}

func TestPlayRejectsBadInput(t *testing.T) {
	out, err := execute(t, "7\nq\n", "play")
	require.NoError(t, err)
	assert.Contains(t, out, "invalid choice index: 7")
}

func TestPlayUnknownCard(t *testing.T) {
	_, err := execute(t, "", "play", "--card", "nobody")
	assert.Error(t, err)
}
