package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"forge/internal/runner"
)

var runtimesJSON bool

var runtimesCmd = &cobra.Command{
	Use:   "runtimes",
	Short: "show what the Runtime Detector found for each supported language",
	RunE: func(cmd *cobra.Command, args []string) error {
		runtimes := runner.Detect().Runtimes()

		if runtimesJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(runtimes)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "LANGUAGE\tAVAILABLE\tCOMPILED\tSELECTED")
		for _, lang := range runner.AllLanguages {
			rt := runtimes[lang]
			selected := rt.Preferred
			if selected == "" && rt.Available && len(rt.CommandTemplate) > 0 {
				selected = rt.CommandTemplate[0]
			}
			fmt.Fprintf(w, "%s\t%v\t%v\t%s\n", rt.Language, rt.Available, rt.Compiled, selected)
		}
		return w.Flush()
	},
}

func init() {
	runtimesCmd.Flags().BoolVar(&runtimesJSON, "json", false, "emit the full detection map as JSON")
	rootCmd.AddCommand(runtimesCmd)
}
