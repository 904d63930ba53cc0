package runner

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func withScratchRoot(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	old := scratchRootEnv
	scratchRootEnv = func() string { return dir }
	t.Cleanup(func() { scratchRootEnv = old })
}

func TestMaterializeScriptWritesFile(t *testing.T) {
	withScratchRoot(t)

	scriptPath, scratchDir, err := materializeScript(LangPython, "print('hi')", "")
	require.NoError(t, err)
	defer releaseScratch(scratchDir)

	require.FileExists(t, scriptPath)
	require.Equal(t, ".py", filepath.Ext(scriptPath))

	data, err := os.ReadFile(scriptPath)
	require.NoError(t, err)
	require.Equal(t, "print('hi')", string(data))
}

func TestMaterializeScriptUnsupportedLanguage(t *testing.T) {
	withScratchRoot(t)

	_, _, err := materializeScript(Language("cobol"), "IDENTIFICATION DIVISION.", "")
	require.Error(t, err)
}

func TestMaterializeScriptWrapsGoWithoutPackageMain(t *testing.T) {
	withScratchRoot(t)

	scriptPath, scratchDir, err := materializeScript(LangGo, `fmt.Println("hi")`, "")
	require.NoError(t, err)
	defer releaseScratch(scratchDir)

	data, err := os.ReadFile(scriptPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "package main")
	require.Contains(t, string(data), `fmt.Println("hi")`)
}

func TestMaterializeScriptSkipsWrapWhenPackageMainPresent(t *testing.T) {
	withScratchRoot(t)

	code := "package main\n\nfunc main() {}\n"
	scriptPath, scratchDir, err := materializeScript(LangGo, code, "")
	require.NoError(t, err)
	defer releaseScratch(scratchDir)

	data, err := os.ReadFile(scriptPath)
	require.NoError(t, err)
	require.Equal(t, code, string(data))
}

func TestMaterializeScriptShellGetsExecutableBit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bit is POSIX-only")
	}
	withScratchRoot(t)

	scriptPath, scratchDir, err := materializeScript(LangShell, "echo hi", "")
	require.NoError(t, err)
	defer releaseScratch(scratchDir)

	info, err := os.Stat(scriptPath)
	require.NoError(t, err)
	require.NotZero(t, info.Mode()&0o100)
}

func TestMaterializeScriptProcessFilePreambleLandsInsideExistingEntryPoint(t *testing.T) {
	withScratchRoot(t)

	code := "package main\n\nfunc main() {\n\tprintln(len(FILE_CONTENT))\n}\n"
	scriptPath, scratchDir, err := materializeScript(LangGo, code, "/tmp/input.txt")
	require.NoError(t, err)
	defer releaseScratch(scratchDir)

	data, err := os.ReadFile(scriptPath)
	require.NoError(t, err)
	text := string(data)

	mainIdx := strings.Index(text, "func main(")
	preambleIdx := strings.Index(text, "FILE_CONTENT_PATH")
	require.Greater(t, preambleIdx, mainIdx, "preamble must land after the entry point, not before it")
	require.True(t, strings.HasPrefix(text, "package main"), "package declaration must remain the first token")
}

func TestMaterializeScriptProcessFilePreambleLandsInsidePHPOpenTag(t *testing.T) {
	withScratchRoot(t)

	code := "<?php\necho strlen($FILE_CONTENT);\n"
	scriptPath, scratchDir, err := materializeScript(LangPHP, code, "/tmp/input.txt")
	require.NoError(t, err)
	defer releaseScratch(scratchDir)

	data, err := os.ReadFile(scriptPath)
	require.NoError(t, err)
	text := string(data)

	tagIdx := strings.Index(text, "<?php")
	preambleIdx := strings.Index(text, "FILE_CONTENT_PATH")
	require.Greater(t, preambleIdx, tagIdx, "preamble must land after the opening tag, not before it")
	require.True(t, strings.HasPrefix(text, "<?php"), "opening tag must remain the first token")
}

func TestMaterializeScriptProcessFilePreambleIsSafeUnderQuotes(t *testing.T) {
	withScratchRoot(t)

	trickyPath := `/tmp/it's "tricky".txt`
	scriptPath, scratchDir, err := materializeScript(LangPython, "print(len(FILE_CONTENT))", trickyPath)
	require.NoError(t, err)
	defer releaseScratch(scratchDir)

	data, err := os.ReadFile(scriptPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "FILE_CONTENT_PATH")
	require.Contains(t, string(data), "print(len(FILE_CONTENT))")
}

func TestReleaseScratchIsSafeOnEmptyAndMissingDir(t *testing.T) {
	require.NotPanics(t, func() { releaseScratch("") })
	require.NotPanics(t, func() { releaseScratch(filepath.Join(t.TempDir(), "does-not-exist")) })
}
