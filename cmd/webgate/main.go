package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/webqual/webgate/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "webgate",
		Short: "webgate - quality gate aggregator for deployed websites",
		Long: `webgate combines per-category quality results for a deployed website
(security, forms, accessibility, performance) into a single deployment
decision, applying configurable quality gates and a global
production-readiness policy.

Exit codes:
  0 - deployment approved
  1 - deployment blocked
  2 - configuration or input error`,
		Version: version.Version,
	}

	rootCmd.AddCommand(gateCmd())
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		// Handle custom exit codes from the gate commands
		if exitErr, ok := err.(*GateExitError); ok {
			if exitErr.Message != "" {
				fmt.Fprintf(os.Stderr, "Error: %s\n", exitErr.Message)
			}
			// Silently exit with the specified code (output already printed)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Println(version.GetFullVersion())
			} else {
				fmt.Printf("webgate version %s\n", version.GetVersion())
			}
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	return cmd
}
