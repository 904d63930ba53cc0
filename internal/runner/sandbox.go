package runner

import (
	"runtime"
	"strings"
)

// shellExecutable returns the shell used to run a sandbox-wrapped
// command line.
func shellExecutable() string {
	if runtime.GOOS == "windows" {
		return "cmd"
	}
	return "/bin/sh"
}

// shellFlag returns the "run this string" flag for shellExecutable.
func shellFlag() string {
	if runtime.GOOS == "windows" {
		return "/C"
	}
	return "-c"
}

// SandboxWrapper is the optional command-wrapping callback the core
// consumes but never produces (spec §6). When set, the Supervisor
// shell-escapes its argument vector, passes the resulting string
// through the callback, and spawns the callback's return value via the
// system shell instead of spawning the argument vector directly.
type SandboxWrapper func(shellEscapedCommand string) string

// ShellQuote joins argv into a single POSIX shell command string by
// single-quoting each argument, escaping any embedded single quote with
// the `'\''` idiom (close quote, escaped quote, reopen quote). This must
// not leak unquoted metacharacters even for arguments containing
// spaces, quotes, or `$` (spec §9).
func ShellQuote(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = shString(arg)
	}
	return strings.Join(quoted, " ")
}

// WrapWithSandbox applies an optional SandboxWrapper to argv, returning
// the shell command line to execute and true if wrapping occurred. When
// wrapper is nil, it returns false and the caller spawns argv directly.
func WrapWithSandbox(argv []string, wrapper SandboxWrapper) (string, bool) {
	if wrapper == nil {
		return "", false
	}
	return wrapper(ShellQuote(argv)), true
}
