package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the root command with the given args and returns the
// combined output.
func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestSourceList_StaleFlag(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dataDir := t.TempDir()

	runCommand(t, "--data-dir", dataDir, "source", "add", "https://example.com/never")
	runCommand(t, "--data-dir", dataDir, "source", "add", "https://example.com/fresh")
	runCommand(t, "--data-dir", dataDir, "source", "crawled", "2")

	out := runCommand(t, "--data-dir", dataDir, "source", "list")
	assert.Contains(t, out, "https://example.com/never")
	assert.Contains(t, out, "https://example.com/fresh")

	// With --stale only the never-crawled source is due.
	out = runCommand(t, "--data-dir", dataDir, "source", "list", "--stale")
	assert.Contains(t, out, "https://example.com/never")
	assert.NotContains(t, out, "https://example.com/fresh")
}
