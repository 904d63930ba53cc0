package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"forge/internal/runner"
)

var (
	execLanguage    string
	execFile        string
	execCode        string
	execTimeoutMs   int64
	execProcessFile string
	execJSON        bool
)

var executeCmd = &cobra.Command{
	Use:   "execute",
	Short: "materialize and run a code fragment under the sandboxed executor",
	RunE: func(cmd *cobra.Command, args []string) error {
		code := execCode
		if execFile != "" {
			data, err := os.ReadFile(execFile)
			if err != nil {
				return fmt.Errorf("read --file: %w", err)
			}
			code = string(data)
		}
		if code == "" {
			return fmt.Errorf("one of --code or --file is required")
		}

		r := runner.New(runner.Detect())
		result, err := r.Execute(runner.Request{
			Language:        runner.Language(execLanguage),
			Code:            code,
			TimeoutMs:       execTimeoutMs,
			ProcessFilePath: execProcessFile,
		})
		if err != nil {
			return err
		}

		if execJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		if logger != nil {
			logger.Sugar().Infow("execute complete",
				"language", execLanguage,
				"exit_code", result.ExitCode,
				"timed_out", result.TimedOut,
				"output_capped", result.OutputCapped,
			)
		}
		fmt.Fprint(os.Stdout, result.Stdout)
		fmt.Fprint(os.Stderr, result.Stderr)
		os.Exit(result.ExitCode)
		return nil
	},
}

func init() {
	executeCmd.Flags().StringVar(&execLanguage, "language", "", "source language tag (required)")
	executeCmd.Flags().StringVar(&execFile, "file", "", "read code from this file instead of --code")
	executeCmd.Flags().StringVar(&execCode, "code", "", "code fragment to run")
	executeCmd.Flags().Int64Var(&execTimeoutMs, "timeout-ms", 30000, "wall-clock timeout in milliseconds")
	executeCmd.Flags().StringVar(&execProcessFile, "process-file", "", "process-a-file target path")
	executeCmd.Flags().BoolVar(&execJSON, "json", false, "emit the structured result as JSON instead of raw streams")
	executeCmd.MarkFlagRequired("language")
}
