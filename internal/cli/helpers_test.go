package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// testEnv provides an isolated environment with its own config and data
// directory.
type testEnv struct {
	t         *testing.T
	tempDir   string
	configDir string
	dataDir   string
}

// newTestEnv creates a config directory holding a config.yaml that points
// at a fresh data directory.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("CATALOG_CONFIG_DIR", "")
	t.Setenv("CATALOG_DATA_DIR", "")
	t.Setenv("CATALOG_LOG_LEVEL", "")
	t.Setenv("CATALOG_EXPORT_FORMAT", "")

	tempDir := t.TempDir()
	dataDir := filepath.Join(tempDir, "data")
	configDir := filepath.Join(tempDir, "config")
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	configContent := "backend: sqlite\ndata_dir: " + dataDir + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0o644))

	return &testEnv{t: t, tempDir: tempDir, configDir: configDir, dataDir: dataDir}
}

// cmdResult holds the outcome of one in-process command execution.
type cmdResult struct {
	stdout   string
	stderr   string
	err      error
	exitCode int
}

// run executes the catalog root command with the environment's config
// directory prepended to args.
func (e *testEnv) run(args ...string) cmdResult {
	e.t.Helper()
	return e.runWithInput("", args...)
}

func (e *testEnv) runWithInput(stdin string, args ...string) cmdResult {
	e.t.Helper()

	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config-dir", e.configDir}, args...))

	err := root.Execute()
	return cmdResult{
		stdout:   stdout.String(),
		stderr:   stderr.String(),
		err:      err,
		exitCode: exitCode(err),
	}
}

// mustRun executes the command and fails the test on a non-zero exit code.
func (e *testEnv) mustRun(args ...string) cmdResult {
	e.t.Helper()
	res := e.run(args...)
	require.NoError(e.t, res.err, "catalog %v\nstdout: %s\nstderr: %s", args, res.stdout, res.stderr)
	return res
}

// parseJSON parses JSON output into the target type.
func parseJSON[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v), "output: %s", s)
	return v
}
