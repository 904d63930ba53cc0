// Command forge exposes the Polyglot Sandboxed Executor and Content
// Store & Retrieval Engine over a one-shot CLI, in lieu of the request/
// response transport surface that spec §1 places outside the core.
//
// File layout follows the teacher CLI's subcommand-per-file convention:
//   - root.go    - entry point, persistent flags, zap logger setup
//   - execute.go  - `forge execute`
//   - index.go    - `forge index`
//   - search.go   - `forge search`
//   - runtimes.go - `forge runtimes`
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"forge/internal/logging"
)

var (
	verbose  bool
	logDir   string
	logger   *zap.Logger
	storeDir string
)

var rootCmd = &cobra.Command{
	Use:   "forge",
	Short: "forge - polyglot sandboxed executor and content retrieval engine",
	Long: `forge lets an agent run arbitrary code across a dozen languages and
ingest documents into a local full-text index without flooding its own
context window: outputs are truncated smart, searches fall back across
three tiers, and every call returns a small structured result.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		config.Encoding = "console"
		config.EncoderConfig.TimeKey = ""
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if logDir != "" {
			if err := logging.Initialize(logDir); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to initialize file logging: %v\n", err)
			}
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "directory for categorized file logs (disabled if empty)")
	rootCmd.PersistentFlags().StringVar(&storeDir, "store-dir", "", "directory for the index file (default: OS temp dir)")

	rootCmd.AddCommand(executeCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(runtimesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
