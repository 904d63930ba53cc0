package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"forge/internal/apperr"
	"forge/internal/logging"
)

// scratchRootEnv, when set, overrides the OS temp dir used to host
// scratch directories. Tests set this to a t.TempDir() to avoid
// littering the real temp filesystem.
var scratchRootEnv = os.TempDir

// materializeScript creates a fresh scratch directory and writes code
// (after any required wrapping) to a script file inside it, returning
// the script's absolute path and the scratch directory so the caller
// can release it on every exit path (spec §4.2, §9).
func materializeScript(lang Language, code string, processFilePath string) (scriptPath, scratchDir string, err error) {
	s, ok := specs[lang]
	if !ok {
		return "", "", apperr.NewLanguageUnavailable(string(lang))
	}

	scratchDir, err = os.MkdirTemp(scratchRootEnv(), "forge-exec-*")
	if err != nil {
		return "", "", apperr.NewIoError(scratchRootEnv(), err)
	}
	if err := os.Chmod(scratchDir, 0o700); err != nil {
		os.RemoveAll(scratchDir)
		return "", "", apperr.NewIoError(scratchDir, err)
	}

	body := buildBody(lang, s, code, processFilePath)

	scriptPath = filepath.Join(scratchDir, "main"+s.extension)
	if err := os.WriteFile(scriptPath, []byte(body), 0o600); err != nil {
		os.RemoveAll(scratchDir)
		return "", "", apperr.NewIoError(scriptPath, err)
	}

	if s.executableBit {
		if err := os.Chmod(scriptPath, 0o700); err != nil {
			os.RemoveAll(scratchDir)
			return "", "", apperr.NewIoError(scriptPath, err)
		}
	}

	logging.Get(logging.CategoryRunner).Debug("materialized %s script at %s", lang, scriptPath)
	return scriptPath, scratchDir, nil
}

// buildBody assembles the final script text from the user's code, the
// optional process-a-file preamble, and the optional entry-point wrap.
// Order matters: when the language needs a synthesized entry point
// (needsWrap), the preamble is folded in as the first statement of the
// wrapped body so it executes inside the same scope as the user code
// (spec §4.2). When the user's code already supplies its own entry
// point, the preamble cannot simply be prepended ahead of it — for a
// compiled language that would put preamble statements before the
// package/function declaration, an illegal token position — so it is
// spliced inside the existing entry point instead (spec §9: the
// preamble must be safe to inject regardless of what surrounds it).
func buildBody(lang Language, s spec, code, processFilePath string) string {
	preamble := ""
	if processFilePath != "" && s.processFileFmt != nil {
		preamble = s.processFileFmt(processFilePath)
	}

	switch {
	case s.needsWrap != nil && s.wrap != nil && s.needsWrap(code):
		inner := code
		if preamble != "" {
			inner = preamble + "\n" + code
		}
		return s.wrap(inner)
	case preamble == "":
		return code
	case s.wrap != nil:
		// needsWrap is false: code already supplies its own entry point.
		return injectPreamble(lang, code, preamble)
	default:
		// Language has no entry-point concept (e.g. Python, shell):
		// top-level statements are always legal, so prepending is safe.
		return preamble + "\n" + code
	}
}

// injectPreamble splices preamble inside code's existing entry point
// rather than prepending it ahead of the entry-point declaration.
func injectPreamble(lang Language, code, preamble string) string {
	switch lang {
	case LangGo:
		return injectAfterOpeningBrace(code, "func main(", preamble)
	case LangRust:
		return injectAfterOpeningBrace(code, "fn main(", preamble)
	case LangPHP:
		return injectAfterPHPOpenTag(code, preamble)
	default:
		return preamble + "\n" + code
	}
}

// injectAfterOpeningBrace finds marker's entry-point declaration and
// inserts preamble as the first statement after its opening brace, so
// the preamble lands inside the function body rather than at file
// scope. Falls back to prepending if marker isn't found (defensive;
// callers only reach here when needsWrap already reported an entry
// point exists).
func injectAfterOpeningBrace(code, marker, preamble string) string {
	idx := strings.Index(code, marker)
	if idx < 0 {
		return preamble + "\n" + code
	}
	brace := strings.IndexByte(code[idx:], '{')
	if brace < 0 {
		return preamble + "\n" + code
	}
	insertAt := idx + brace + 1
	return code[:insertAt] + "\n" + preamble + code[insertAt:]
}

// injectAfterPHPOpenTag inserts preamble immediately after the user's
// own "<?php" or "<?=" tag, the only position inside an already-opened
// PHP document where statements execute rather than print as literal
// HTML.
func injectAfterPHPOpenTag(code, preamble string) string {
	for _, tag := range []string{"<?php", "<?="} {
		if idx := strings.Index(code, tag); idx >= 0 {
			insertAt := idx + len(tag)
			return code[:insertAt] + "\n" + preamble + code[insertAt:]
		}
	}
	return preamble + "\n" + code
}

// releaseScratch removes dir and everything in it. Safe to call
// multiple times; logs but does not fail the caller on removal error,
// since by the time this runs the execution has already completed or
// failed and the caller has a result to return either way.
func releaseScratch(dir string) {
	if dir == "" {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		logging.Get(logging.CategoryRunner).Warn("failed to release scratch dir %s: %v", dir, err)
	}
}

// buildArgv produces the final argument vector for invoking scriptPath
// under rt, substituting the "{script}" placeholder in the command
// template.
func buildArgv(rt Runtime, scriptPath string) []string {
	argv := make([]string, 0, len(rt.CommandTemplate))
	for _, tok := range rt.CommandTemplate {
		if tok == "{script}" {
			argv = append(argv, scriptPath)
		} else {
			argv = append(argv, tok)
		}
	}
	return argv
}

// compiledOutputPath is where the compile step writes its executable,
// inside the same scratch directory as the source.
func compiledOutputPath(scratchDir string) string {
	return filepath.Join(scratchDir, fmt.Sprintf("forge-bin-%d", os.Getpid()))
}
