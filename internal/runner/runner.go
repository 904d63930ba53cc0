package runner

import (
	"time"

	"github.com/google/uuid"

	"forge/internal/apperr"
	"forge/internal/logging"
)

// Runner is the top-level entry point for the Polyglot Sandboxed
// Executor: it ties the Runtime Detector, Script Materializer, and
// Process Supervisor together behind a single Execute call.
type Runner struct {
	detector *Detector
	wrapper  SandboxWrapper
}

// New builds a Runner around a Detector. Detection happens once, at
// construction, per spec §5.
func New(d *Detector) *Runner {
	return &Runner{detector: d}
}

// SetSandboxWrapper installs the optional sandbox hand-off callback
// (spec §6). Pass nil to restore direct spawning.
func (r *Runner) SetSandboxWrapper(w SandboxWrapper) {
	r.wrapper = w
}

// Execute runs req to completion (or until timeout/cap breach) and
// returns a Result. An error is returned only for failures before the
// child process could start: unknown language, scratch-directory
// creation, script write, or spawn (spec §7).
func (r *Runner) Execute(req Request) (Result, error) {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	logger := logging.Get(logging.CategoryRunner)
	timer := logging.StartTimer(logging.CategoryRunner, "execute "+string(req.Language))
	defer timer.Stop()

	rt, available := r.detector.Lookup(req.Language)
	if !available {
		logger.Warn("request %s: language unavailable: %s", req.RequestID, req.Language)
		return Result{}, apperr.NewLanguageUnavailable(string(req.Language))
	}

	timeout := defaultTimeout
	if req.TimeoutMs > 0 {
		timeout = time.Duration(req.TimeoutMs) * time.Millisecond
	}

	scriptPath, scratchDir, err := materializeScript(req.Language, req.Code, req.ProcessFilePath)
	if err != nil {
		logger.Error("request %s: materialize failed: %v", req.RequestID, err)
		return Result{}, err
	}
	defer releaseScratch(scratchDir)

	workDir := req.WorkingDirectory
	if workDir == "" {
		workDir = scratchDir
	}
	env := buildEnvironment(scratchDir)

	logger.Debug("request %s: spawning %s in %s (timeout=%s)", req.RequestID, req.Language, workDir, timeout)

	if rt.Compiled {
		return executeCompiled(rt, scriptPath, scratchDir, workDir, env, timeout, r.wrapper)
	}

	argv := buildArgv(rt, scriptPath)
	return supervise(argv, workDir, env, timeout, r.wrapper)
}
