package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/webqual/webgate/domain"
	"github.com/webqual/webgate/internal/logging"
	"github.com/webqual/webgate/internal/probe"
	"github.com/webqual/webgate/service"
)

var (
	runTargetURL    string
	runSelectProbes []string
	runTimeout      int
	runResultPaths  []string
	runConfigPath   string
	runOutputFormat string
	runJSON         bool
	runOutputDir    string
	runHTML         bool
	runVerbose      bool
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Probe a deployed site and gate the results",
		Long: `Run the built-in HTTP probes against a deployed site, optionally merge
in result documents from external suites, and aggregate everything into a
deployment decision.

Probes run concurrently; a probe that fails or times out contributes a
fail-closed sentinel result that blocks deployment.

Examples:
  # Probe a deployment with the built-in probes
  webgate run --url https://staging.example.com

  # Only the security probe
  webgate run --url https://staging.example.com --select security

  # Merge browser-suite results with live probes
  webgate run --url https://staging.example.com --results e2e-results/

  # JSON output and CI artifacts
  webgate run --url https://staging.example.com --json --output-dir reports/`,
		RunE:          runRun,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&runTargetURL, "url", "u", "",
		"Target URL to probe (defaults to probes.target_url from config)")
	cmd.Flags().StringSliceVarP(&runSelectProbes, "select", "s",
		probe.Available(),
		"Probes to run: security,performance")
	cmd.Flags().IntVar(&runTimeout, "timeout", 0,
		"Per-probe timeout in seconds (0 = config value)")
	cmd.Flags().StringSliceVar(&runResultPaths, "results", nil,
		"Additional result files or directories from external suites")
	cmd.Flags().StringVarP(&runConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().StringVarP(&runOutputFormat, "format", "f", "text",
		"Output format: text, json, yaml, markdown, html")
	cmd.Flags().BoolVar(&runJSON, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().StringVarP(&runOutputDir, "output-dir", "o", "",
		"Directory for report artifacts (JSON + Markdown)")
	cmd.Flags().BoolVar(&runHTML, "html", false,
		"Also write an HTML report artifact")
	cmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false,
		"Show debug logging")

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	started := time.Now()
	log := logging.New(runVerbose)
	defer func() { _ = log.Sync() }()

	store, cfg, err := service.NewConfigurationLoader().LoadPolicyStore(runConfigPath, "")
	if err != nil {
		return &GateExitError{Code: 2, Message: err.Error()}
	}

	if runTargetURL != "" {
		cfg.Probes.TargetURL = runTargetURL
	}
	if cfg.Probes.TargetURL == "" {
		return &GateExitError{Code: 2, Message: "no target URL: pass --url or set probes.target_url"}
	}
	if runTimeout > 0 {
		cfg.Probes.TimeoutSeconds = runTimeout
	}

	probes, err := probe.Build(runSelectProbes, &cfg.Probes)
	if err != nil {
		return &GateExitError{Code: 2, Message: err.Error()}
	}

	format := resolveFormat(runOutputFormat, runJSON, cfg)

	// Progress bars are suppressed for machine-readable output
	pm := service.NewProgressManager(format == domain.OutputFormatText)
	defer pm.Close()

	if format == domain.OutputFormatText {
		fmt.Printf("Probing %s with %d probes...\n", cfg.Probes.TargetURL, len(probes))
	}

	runner := service.NewProbeRunnerWithProgress(log, service.ProbeTimeout(cfg), pm)
	results := runner.Run(context.Background(), probes)

	// Merge in results from external suites (browser automation etc.)
	if len(runResultPaths) > 0 {
		resultLoader := service.NewResultLoader(cfg.Results.ExcludePatterns, log)
		external, err := resultLoader.Load(runResultPaths)
		if err != nil {
			return &GateExitError{Code: 2, Message: err.Error()}
		}
		results = append(results, external...)
	}

	return outputGateResult(results, store, cfg, log, gateOutput{
		format:    format,
		outputDir: resolveOutputDir(runOutputDir, cfg),
		html:      runHTML,
		targetURL: cfg.Probes.TargetURL,
	}, started)
}
