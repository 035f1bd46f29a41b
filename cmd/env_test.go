// The cmd/ package holds CLI integration tests that exercise the full stack:
// flag parsing -> extension -> engine -> strategies -> filesystem.
//
// Tests build the real binary once and run it in a temp directory with HOME
// pointed at another temp directory, so config, telemetry and the audit log
// never touch the developer's own files. Expected results avoid depending on
// which strategy answered: patterns and fixtures use one letter case only.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the seek binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "seek-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "seek"
		if os.PathSeparator == '\\' {
			binaryName = "seek.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		projectRoot := filepath.Dir(mustGetwd())

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string // working directory, the default workspace root
	home   string // HOME for the child process
	binary string
	extra  []string // additional environment variables
}

// newTestEnv creates an empty workspace and home directory.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{
		t:      t,
		dir:    t.TempDir(),
		home:   t.TempDir(),
		binary: buildBinary(t),
	}
}

// write creates a file under the workspace.
func (e *testEnv) write(rel, content string) {
	e.t.Helper()
	full := filepath.Join(e.dir, filepath.FromSlash(rel))
	require.NoError(e.t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(e.t, os.WriteFile(full, []byte(content), 0644))
}

// setenv adds an environment variable to every later run.
func (e *testEnv) setenv(kv string) {
	e.extra = append(e.extra, kv)
}

// environ is the parent environment minus anything that would leak host
// state into the child, plus HOME and the test's own variables.
func (e *testEnv) environ() []string {
	var env []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "HOME=") || strings.HasPrefix(kv, "SEEK_") {
			continue
		}
		env = append(env, kv)
	}
	env = append(env, "HOME="+e.home, "USER=tester")
	return append(env, e.extra...)
}

// run executes seek with the given args and returns stdout.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("seek %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes seek and returns stdout and any error. Stderr is dropped
// unless the command fails, so diagnostics do not pollute assertions.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	return e.runStdinErr("", args...)
}

// runStdinErr executes seek with stdin input.
func (e *testEnv) runStdinErr(input string, args ...string) (string, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = e.environ()
	cmd.Stdin = strings.NewReader(input)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return string(out) + stderr.String(), err
	}
	return string(out), nil
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// notContains checks if output does not contain the string.
func (e *testEnv) notContains(output, unexpected string) {
	e.t.Helper()
	assert.NotContains(e.t, output, unexpected)
}
