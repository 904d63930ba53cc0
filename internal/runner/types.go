// Package runner is the motor cortex of forge: it materializes a code
// fragment to disk, selects an interpreter or compiler, and supervises
// the resulting process — enforcing timeouts, output caps, and
// truncation so an agent never floods its own context window with raw
// subprocess output.
package runner

import "time"

// Language is a closed enumeration of supported source languages. Each
// value keys one entry of the static specs table (languages.go), which
// carries that language's extension, runtime candidates, wrapping and
// process-a-file preamble as plain function values; no interfaces are
// involved.
type Language string

const (
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangPython     Language = "python"
	LangShell      Language = "shell"
	LangRuby       Language = "ruby"
	LangGo         Language = "go"
	LangRust       Language = "rust"
	LangPHP        Language = "php"
	LangPerl       Language = "perl"
	LangR          Language = "r"
	LangElixir     Language = "elixir"
)

// AllLanguages lists every language the Runtime Detector probes for, in
// a stable order (used for deterministic iteration/logging).
var AllLanguages = []Language{
	LangJavaScript, LangTypeScript, LangPython, LangShell, LangRuby,
	LangGo, LangRust, LangPHP, LangPerl, LangR, LangElixir,
}

// Runtime records what the Detector learned about one language:
// whether an interpreter/compiler was found on PATH, and the argument
// vector template to invoke it with. Runtime is immutable after
// detection (spec §4.1).
type Runtime struct {
	Language        Language
	Available       bool
	CommandTemplate []string // placeholder "{script}" stands in for the script path
	Compiled        bool     // true routes through the compile-then-run path
	CompileArgs     func(script, outputPath string) []string `json:"-"` // set only when Compiled is true; not encoded to JSON
	Preferred       string                                   // binary name actually selected, when a language has more than one candidate; empty when there was only one to choose from
}

// Request is an Execution Request (spec §3): what to run.
type Request struct {
	Language         Language
	Code             string
	TimeoutMs        int64  // defaults to 30000 if zero
	WorkingDirectory string // optional override; scratch dir is used if empty
	ProcessFilePath  string // optional "process-a-file" target
	SessionID        string
	RequestID        string
}

// Result is an Execution Result (spec §3).
type Result struct {
	Stdout       string
	Stderr       string
	ExitCode     int
	TimedOut     bool
	OutputCapped bool
}

// defaultTimeout is applied when a Request specifies no timeout.
const defaultTimeout = 30 * time.Second

// maxOutputBytes is the smart-truncation budget per stream (spec §4.3).
const maxOutputBytes = 100 * 1024

// hardCapBytes is the default absolute combined stdout+stderr cap
// (spec §4.3: "default 100 MiB"). It is a var, not a const, so tests
// can shrink it rather than waiting to actually buffer 100 MiB.
var hardCapBytes int64 = 100 * 1024 * 1024

// compilerTimeout bounds the compile step of the compile-then-run path.
const compilerTimeout = 30 * time.Second
