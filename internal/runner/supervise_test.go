package runner

import (
	"fmt"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// requireShell skips the test when /bin/sh isn't available, since these
// tests spawn real processes to exercise the Process Supervisor end to
// end rather than mocking os/exec.
func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available on this host")
	}
}

func TestApplySmartTruncationHeadPlusTail(t *testing.T) {
	// Scenario 1: 1000 lines of "line N" against a 500-byte budget.
	// maxOutputBytes is a fixed 100 KiB constant, so this replays
	// applySmartTruncation's 60/40 head/tail split with its snapping
	// helpers at a local budget rather than calling it directly.
	var b strings.Builder
	for i := 1; i <= 1000; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	raw := b.String()

	const budget = 500
	headBudget := budget * 60 / 100
	tailBudget := budget - headBudget
	head := snapHeadToLineBoundary(raw[:headBudget])
	tail := snapTailToLineBoundary(raw[len(raw)-tailBudget:])

	require.True(t, strings.HasPrefix(head, "line 1\n"))
	require.True(t, strings.HasSuffix(strings.TrimRight(tail, "\n"), "line 1000"))
	require.Contains(t, head, "line 1\n")
}

func TestApplySmartTruncationNoOpUnderBudget(t *testing.T) {
	s := "short output\n"
	require.Equal(t, s, applySmartTruncation(s))
}

func TestApplySmartTruncationOverBudgetInsertsNotice(t *testing.T) {
	var b strings.Builder
	for i := 0; i < maxOutputBytes; i++ {
		b.WriteString("x")
		if i%20 == 0 {
			b.WriteString("\n")
		}
	}
	out := applySmartTruncation(b.String())
	require.Contains(t, out, "truncated")
	require.Less(t, len(out), len(b.String()))
}

func TestSuperviseBasicEcho(t *testing.T) {
	requireShell(t)
	result, err := supervise([]string{"sh", "-c", "echo hello; echo world 1>&2"}, t.TempDir(), nil, 5*time.Second, nil)
	require.NoError(t, err)
	require.Equal(t, 0, result.ExitCode)
	require.Contains(t, result.Stdout, "hello")
	require.Contains(t, result.Stderr, "world")
	require.False(t, result.TimedOut)
	require.False(t, result.OutputCapped)
}

func TestSuperviseNonZeroExit(t *testing.T) {
	requireShell(t)
	result, err := supervise([]string{"sh", "-c", "exit 7"}, t.TempDir(), nil, 5*time.Second, nil)
	require.NoError(t, err)
	require.Equal(t, 7, result.ExitCode)
}

func TestSuperviseTimeout(t *testing.T) {
	requireShell(t)
	result, err := supervise([]string{"sh", "-c", "sleep 5"}, t.TempDir(), nil, 100*time.Millisecond, nil)
	require.NoError(t, err)
	require.True(t, result.TimedOut)
	require.Equal(t, 1, result.ExitCode)
}

// Scenario 2: hard-cap kill against an infinite generator.
func TestSuperviseHardCapKillsInfiniteOutput(t *testing.T) {
	requireShell(t)
	if _, err := exec.LookPath("yes"); err != nil {
		t.Skip("yes not available on this host")
	}

	orig := hardCapBytes
	hardCapBytes = 64 * 1024
	defer func() { hardCapBytes = orig }()

	result, err := supervise([]string{"yes"}, t.TempDir(), nil, 60*time.Second, nil)
	require.NoError(t, err)
	require.True(t, result.OutputCapped)
	require.Equal(t, 1, result.ExitCode)
	require.Contains(t, result.Stderr, "output capped")
}

func TestSuperviseEmptyArgvIsBadRequest(t *testing.T) {
	_, err := supervise(nil, t.TempDir(), nil, time.Second, nil)
	require.Error(t, err)
}

func TestSuperviseSandboxWrapperIsInvoked(t *testing.T) {
	requireShell(t)
	called := false
	wrapper := func(cmd string) string {
		called = true
		return cmd
	}
	result, err := supervise([]string{"sh", "-c", "echo wrapped"}, t.TempDir(), nil, 5*time.Second, wrapper)
	require.NoError(t, err)
	require.True(t, called)
	require.Contains(t, result.Stdout, "wrapped")
}

