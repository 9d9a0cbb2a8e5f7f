package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/iksnae/chatgpt-export/internal"
	"github.com/iksnae/chatgpt-export/testutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores every flag to its default so commands can run
// repeatedly in one process
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// executeCommand runs the root command with args in an isolated config
// environment and returns everything written to stdout and stderr
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	isolateEnv(t)
	return runCommand(t, args...)
}

// isolateEnv keeps the user's config and environment out of a test
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", testutil.CreateTempDir(t))
	t.Setenv("CHATGPT_EXPORT_PATH", "")
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	internal.SetLogOutput(io.Discard)

	resetFlags(rootCmd)
	cfg = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// sampleExport writes the sample export and returns its directory
func sampleExport(t *testing.T) string {
	t.Helper()
	return testutil.WriteExportDir(t, testutil.SampleExportJSON(t))
}

// writeConfig writes a config file and returns its path
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(testutil.CreateTempDir(t), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}
