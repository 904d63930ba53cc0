package runner

import (
	"fmt"
	"strings"
)

// candidate describes one interpreter/compiler binary the Detector
// probes for a language, in the preference order the language lists
// them. Candidates for the same language may differ in whether they
// compile (spec §4.1's "compile then run" sentinel is a per-candidate
// property, not a per-language one — see LangGo, where the yaegi
// interpreter and the go compiler are both valid candidates but only
// one of them compiles).
type candidate struct {
	binary      string
	compiled    bool
	runArgs     func(script string) []string
	compileArgs func(script, outputPath string) []string // only used when compiled
}

// spec describes the static, environment-independent facts about one
// language: its file extension, its candidate runtimes in preference
// order, and how to wrap user code when the grammar requires a
// synthesized entry point or open tag.
type spec struct {
	extension      string
	candidates     []candidate
	needsWrap      func(code string) bool
	wrap           func(code string) string
	processFileFmt func(path string) string // preamble for FILE_CONTENT/FILE_CONTENT_PATH, language literal form
	executableBit  bool
}

// interpreted builds a non-compiling candidate whose run args are the
// script path alone — the common case for every language below except
// the ones that need a subcommand (TypeScript's "run", Go's yaegi).
func interpreted(binary string) candidate {
	return candidate{binary: binary, runArgs: func(script string) []string { return []string{script} }}
}

var specs = map[Language]spec{
	LangJavaScript: {
		extension:  ".js",
		candidates: []candidate{interpreted("bun"), interpreted("node")},
		processFileFmt: func(path string) string {
			return fmt.Sprintf("const FILE_CONTENT_PATH = %s;\nconst FILE_CONTENT = require('fs').readFileSync(FILE_CONTENT_PATH, 'utf8');\n", jsString(path))
		},
	},
	LangTypeScript: {
		extension: ".ts",
		candidates: []candidate{
			{binary: "bun", runArgs: func(script string) []string { return []string{"run", script} }},
			{binary: "ts-node", runArgs: func(script string) []string { return []string{"run", script} }},
			{binary: "deno", runArgs: func(script string) []string { return []string{"run", script} }},
		},
		processFileFmt: func(path string) string {
			return fmt.Sprintf("const FILE_CONTENT_PATH: string = %s;\nconst FILE_CONTENT: string = require('fs').readFileSync(FILE_CONTENT_PATH, 'utf8');\n", jsString(path))
		},
	},
	LangPython: {
		extension:  ".py",
		candidates: []candidate{interpreted("python3"), interpreted("python")},
		processFileFmt: func(path string) string {
			return fmt.Sprintf("FILE_CONTENT_PATH = %s\nwith open(FILE_CONTENT_PATH, 'r') as __forge_f:\n    FILE_CONTENT = __forge_f.read()\n", pyString(path))
		},
	},
	LangShell: {
		extension:     ".sh",
		candidates:    []candidate{interpreted("bash"), interpreted("sh")},
		executableBit: true,
		processFileFmt: func(path string) string {
			return fmt.Sprintf("FILE_CONTENT_PATH=%s\nFILE_CONTENT=\"$(cat %s)\"\n", shString(path), shString(path))
		},
	},
	LangRuby: {
		extension:  ".rb",
		candidates: []candidate{interpreted("ruby")},
		processFileFmt: func(path string) string {
			return fmt.Sprintf("FILE_CONTENT_PATH = %s\nFILE_CONTENT = File.read(FILE_CONTENT_PATH)\n", rubyString(path))
		},
	},
	LangGo: {
		extension: ".go",
		// yaegi interprets the script directly and is tried first: it
		// eliminates the `go build` step entirely (no compile hang, no
		// produced binary to crash, no module/dependency resolution),
		// matching spec §4.1's "preferred faster runtime" clause. When
		// yaegi isn't on PATH, the go compiler's compile-then-run path
		// (spec §4.3) is the fallback.
		candidates: []candidate{
			{binary: "yaegi", runArgs: func(script string) []string { return []string{"run", script} }},
			{
				binary:      "go",
				compiled:    true,
				compileArgs: func(script, outputPath string) []string { return []string{"build", "-o", outputPath, script} },
			},
		},
		needsWrap: func(code string) bool { return !containsPackageMain(code) },
		wrap: func(code string) string {
			return "package main\n\nimport (\n\t\"fmt\"\n\t\"os\"\n)\n\nvar _ = fmt.Sprintf\nvar _ = os.Getpid\n\nfunc main() {\n" + code + "\n}\n"
		},
		processFileFmt: func(path string) string {
			return fmt.Sprintf("FILE_CONTENT_PATH := %s\n__forgeBytes, _ := os.ReadFile(FILE_CONTENT_PATH)\nFILE_CONTENT := string(__forgeBytes)\n", goString(path))
		},
	},
	LangRust: {
		extension: ".rs",
		candidates: []candidate{
			{
				binary:      "rustc",
				compiled:    true,
				compileArgs: func(script, outputPath string) []string { return []string{script, "-o", outputPath} },
			},
		},
		needsWrap: func(code string) bool { return !containsFnMain(code) },
		wrap: func(code string) string {
			return "fn main() {\n" + code + "\n}\n"
		},
		processFileFmt: func(path string) string {
			return fmt.Sprintf("let file_content_path = %s;\nlet file_content = std::fs::read_to_string(file_content_path).unwrap();\n", rustString(path))
		},
	},
	LangPHP: {
		extension:  ".php",
		candidates: []candidate{interpreted("php")},
		needsWrap:  func(code string) bool { return !hasPHPOpenTag(code) },
		wrap: func(code string) string {
			return "<?php\n" + code + "\n"
		},
		processFileFmt: func(path string) string {
			return fmt.Sprintf("$FILE_CONTENT_PATH = %s;\n$FILE_CONTENT = file_get_contents($FILE_CONTENT_PATH);\n", phpString(path))
		},
	},
	LangPerl: {
		extension:  ".pl",
		candidates: []candidate{interpreted("perl")},
		processFileFmt: func(path string) string {
			return fmt.Sprintf("my $FILE_CONTENT_PATH = %s;\nopen(my $__forge_fh, '<', $FILE_CONTENT_PATH) or die $!;\nlocal $/;\nmy $FILE_CONTENT = <$__forge_fh>;\n", perlString(path))
		},
	},
	LangR: {
		extension:  ".R",
		candidates: []candidate{interpreted("Rscript")},
		processFileFmt: func(path string) string {
			return fmt.Sprintf("FILE_CONTENT_PATH <- %s\nFILE_CONTENT <- paste(readLines(FILE_CONTENT_PATH), collapse = \"\\n\")\n", rString(path))
		},
	},
	LangElixir: {
		extension:  ".exs",
		candidates: []candidate{interpreted("elixir")},
		processFileFmt: func(path string) string {
			return fmt.Sprintf("file_content_path = %s\nfile_content = File.read!(file_content_path)\n", elixirString(path))
		},
	},
}

func containsPackageMain(code string) bool {
	return strings.Contains(code, "package main")
}

func containsFnMain(code string) bool {
	return strings.Contains(code, "fn main")
}

func hasPHPOpenTag(code string) bool {
	return strings.Contains(code, "<?php") || strings.Contains(code, "<?=")
}
