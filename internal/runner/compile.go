package runner

import "time"

// executeCompiled implements the compile-then-run path (spec §4.3):
// invoke the compiler with a bounded timeout, then run the produced
// executable with the normal supervision semantics.
func executeCompiled(rt Runtime, scriptPath, scratchDir, workDir string, env []string, timeout time.Duration, wrapper SandboxWrapper) (Result, error) {
	outputPath := compiledOutputPath(scratchDir)

	compileTimeout := timeout
	if compileTimeout > compilerTimeout {
		compileTimeout = compilerTimeout
	}

	compileArgv := append(append([]string{}, rt.CommandTemplate...), rt.CompileArgs(scriptPath, outputPath)...)
	compileResult, err := supervise(compileArgv, workDir, env, compileTimeout, nil)
	if err != nil {
		return Result{}, err
	}
	if compileResult.ExitCode != 0 {
		return Result{
			Stdout:   compileResult.Stdout,
			Stderr:   "Compilation failed:\n" + compileResult.Stderr,
			ExitCode: 1,
		}, nil
	}

	return supervise([]string{outputPath}, workDir, env, timeout, wrapper)
}
