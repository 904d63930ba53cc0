package runner

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"forge/internal/apperr"
	"forge/internal/logging"
)

// errOutputCapped is returned by cappedWriter.Write once the combined
// stream total crosses hardCapBytes, ending the copyBuffer loop that
// drains that stream's pipe so buffering actually stops rather than
// merely being ignored (spec §4.3).
var errOutputCapped = errors.New("output capped")

// sharedCap tracks bytes received across both stdout and stderr so the
// hard cap is enforced on the combined total, not per stream (spec §4.3:
// "an infinite generator can saturate either one").
type sharedCap struct {
	mu     sync.Mutex
	total  int64
	max    int64
	capped bool
	once   sync.Once
	kill   func()
}

func (s *sharedCap) write(buf *bytes.Buffer, p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.capped {
		return 0, errOutputCapped
	}
	buf.Write(p)
	s.total += int64(len(p))
	if s.total > s.max {
		s.capped = true
		s.once.Do(s.kill)
		return len(p), errOutputCapped
	}
	return len(p), nil
}

type cappedWriter struct {
	buf    *bytes.Buffer
	shared *sharedCap
}

func (w *cappedWriter) Write(p []byte) (int, error) { return w.shared.write(w.buf, p) }

func (s *sharedCap) isCapped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capped
}

// supervise spawns argv, streams stdout/stderr concurrently under the
// hard cap and wall-clock timeout, and returns a fully-populated
// Result. Errors are returned only for failures before the child
// starts (spec §7); everything observable afterward is folded into the
// Result.
func supervise(argv []string, workDir string, env []string, timeout time.Duration, wrapper SandboxWrapper) (Result, error) {
	if len(argv) == 0 {
		return Result{}, apperr.NewBadRequest("empty command")
	}

	var cmd *exec.Cmd
	if shellLine, wrapped := WrapWithSandbox(argv, wrapper); wrapped {
		cmd = exec.Command(shellExecutable(), shellFlag(), shellLine)
	} else {
		cmd = exec.Command(argv[0], argv[1:]...)
	}
	cmd.Dir = workDir
	cmd.Env = env
	cmd.Stdin = nil
	setupProcessGroup(cmd)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return Result{}, apperr.NewIoError(argv[0], err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return Result{}, apperr.NewIoError(argv[0], err)
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	shared := &sharedCap{max: hardCapBytes}
	shared.kill = func() { killProcessGroup(cmd) }
	stdoutW := &cappedWriter{buf: &stdoutBuf, shared: shared}
	stderrW := &cappedWriter{buf: &stderrBuf, shared: shared}

	if err := cmd.Start(); err != nil {
		return Result{}, apperr.NewIoError(argv[0], err)
	}

	var timedOut atomic.Bool
	timer := time.AfterFunc(timeout, func() {
		timedOut.Store(true)
		killProcessGroup(cmd)
	})

	var g errgroup.Group
	g.Go(func() error {
		_, err := copyBuffer(stdoutW, stdoutPipe)
		return ignoreCapped(err)
	})
	g.Go(func() error {
		_, err := copyBuffer(stderrW, stderrPipe)
		return ignoreCapped(err)
	})
	drainErr := g.Wait()
	timer.Stop()

	waitErr := cmd.Wait()

	result := Result{
		Stdout:       strings.ToValidUTF8(stdoutBuf.String(), "�"),
		Stderr:       strings.ToValidUTF8(stderrBuf.String(), "�"),
		TimedOut:     timedOut.Load(),
		OutputCapped: shared.isCapped(),
	}

	switch {
	case result.TimedOut:
		result.ExitCode = 1
	case result.OutputCapped:
		result.ExitCode = 1
	case waitErr == nil:
		result.ExitCode = 0
	default:
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			if result.ExitCode < 0 {
				result.ExitCode = 1
			}
		} else {
			result.ExitCode = 1
			logging.Get(logging.CategoryRunner).Error("spawn/wait failure for %v: %v", argv, waitErr)
		}
	}

	if result.OutputCapped {
		notice := fmt.Sprintf("output capped at %d MiB — process killed", hardCapBytes/(1024*1024))
		if result.Stderr != "" {
			result.Stderr = notice + "\n" + result.Stderr
		} else {
			result.Stderr = notice
		}
	}

	result.Stdout = applySmartTruncation(result.Stdout)
	result.Stderr = applySmartTruncation(result.Stderr)

	if drainErr != nil && !errors.Is(drainErr, errOutputCapped) {
		logging.Get(logging.CategoryRunner).Warn("stream drain error for %v: %v", argv, drainErr)
	}

	return result, nil
}

func ignoreCapped(err error) error {
	if errors.Is(err, errOutputCapped) {
		return nil
	}
	return err
}

// copyBuffer drains src into dst until EOF or a write error (such as
// errOutputCapped). It is a thin wrapper around io.Copy's loop rather
// than io.Copy itself so a capped write can abort the read side
// immediately instead of needing a custom io.Writer error contract.
func copyBuffer(dst *cappedWriter, src io.Reader) (int64, error) {
	buf := make([]byte, 32*1024)
	var total int64
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return total, werr
			}
			total += int64(n)
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				return total, nil
			}
			return total, rerr
		}
	}
}

// applySmartTruncation implements the head-plus-tail byte-limited trim
// described in spec §4.3: if raw length exceeds max_output_bytes, keep
// the first 60% and last 40%, each snapped to line boundaries, with a
// single synthesized notice line in between.
func applySmartTruncation(s string) string {
	if len(s) <= maxOutputBytes {
		return s
	}

	headBudget := maxOutputBytes * 60 / 100
	tailBudget := maxOutputBytes - headBudget

	head := snapHeadToLineBoundary(s[:headBudget])
	tailStart := len(s) - tailBudget
	tail := snapTailToLineBoundary(s[tailStart:])

	skippedRegion := s[len(head) : len(s)-len(tail)]
	skippedLines := strings.Count(skippedRegion, "\n")
	skippedBytes := len(skippedRegion)

	notice := fmt.Sprintf("\n[... %d lines / %d bytes truncated ...]\n", skippedLines, skippedBytes)
	return head + notice + tail
}

func snapHeadToLineBoundary(s string) string {
	idx := strings.LastIndexByte(s, '\n')
	if idx < 0 {
		return ""
	}
	return s[:idx+1]
}

func snapTailToLineBoundary(s string) string {
	idx := strings.IndexByte(s, '\n')
	if idx < 0 {
		return s
	}
	return s[idx+1:]
}
