package runner

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func requirePython(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("python3"); err != nil {
		if _, err := exec.LookPath("python"); err != nil {
			t.Skip("no python interpreter available on this host")
		}
	}
}

// Scenario 6: process-a-file wrapping.
func TestRunnerExecuteProcessAFile(t *testing.T) {
	requirePython(t)
	withScratchRoot(t)

	target := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(target, []byte("hello\nworld"), 0o600))

	r := New(Detect())
	result, err := r.Execute(Request{
		Language:        LangPython,
		Code:            "print(len(FILE_CONTENT))",
		ProcessFilePath: target,
		TimeoutMs:       5000,
	})
	require.NoError(t, err)
	require.Equal(t, 0, result.ExitCode)
	require.Equal(t, "11\n", result.Stdout)
	require.Empty(t, result.Stderr)
}

func TestRunnerExecuteUnavailableLanguage(t *testing.T) {
	d := &Detector{runtimes: map[Language]Runtime{
		LangPython: {Language: LangPython, Available: false},
	}}
	r := New(d)
	_, err := r.Execute(Request{Language: LangPython, Code: "print(1)"})
	require.Error(t, err)
}

func TestRunnerExecuteDefaultsTimeout(t *testing.T) {
	requirePython(t)
	withScratchRoot(t)

	r := New(Detect())
	result, err := r.Execute(Request{Language: LangPython, Code: "print('ok')"})
	require.NoError(t, err)
	require.Equal(t, 0, result.ExitCode)
	require.Contains(t, result.Stdout, "ok")
}

func TestRunnerExecuteReleasesScratchDirAfterRun(t *testing.T) {
	requirePython(t)
	dir := t.TempDir()
	old := scratchRootEnv
	scratchRootEnv = func() string { return dir }
	defer func() { scratchRootEnv = old }()

	r := New(Detect())
	_, err := r.Execute(Request{Language: LangPython, Code: "print('x')", TimeoutMs: int64(5 * time.Second / time.Millisecond)})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "scratch directory should be released after execute returns")
}
