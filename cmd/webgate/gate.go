package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/webqual/webgate/app"
	"github.com/webqual/webgate/domain"
	"github.com/webqual/webgate/internal/config"
	"github.com/webqual/webgate/internal/logging"
	"github.com/webqual/webgate/service"
	"go.uber.org/zap"
)

// GateExitError is a custom error type for gate command exit codes
type GateExitError struct {
	Code    int
	Message string
}

func (e *GateExitError) Error() string {
	return e.Message
}

var (
	gateConfigPath   string
	gateOutputFormat string
	gateJSON         bool
	gateOutputDir    string
	gateHTML         bool
	gateVerbose      bool
)

func gateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gate [result-file|result-dir...]",
		Short: "Aggregate category results into a deployment decision",
		Long: `Load category result documents produced by external quality suites,
aggregate them through the configured quality gates, and decide whether
deployment is blocked.

Result documents are JSON files with the shape:
  {"category": "security", "score": 80, "total_checks": 20,
   "passed_checks": 18, "failures": [{"description": "...", "severity": "HIGH"}]}

Directories are walked recursively for *.json files, honoring a
.webgateignore file at the directory root.

Exit codes:
  0 - deployment approved
  1 - deployment blocked
  2 - configuration or input error

Examples:
  # Aggregate all results in a directory
  webgate gate test-results/

  # Individual result files
  webgate gate security-results.json forms-results.json

  # JSON output for machine parsing
  webgate gate --json test-results/

  # Write report artifacts for CI
  webgate gate --output-dir reports/ test-results/`,
		RunE:          runGate,
		SilenceUsage:  true, // Don't print usage on errors (we handle our own output)
		SilenceErrors: true, // Don't print error messages (we handle our own output)
	}

	cmd.Flags().StringVarP(&gateConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().StringVarP(&gateOutputFormat, "format", "f", "text",
		"Output format: text, json, yaml, markdown, html")
	cmd.Flags().BoolVar(&gateJSON, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().StringVarP(&gateOutputDir, "output-dir", "o", "",
		"Directory for report artifacts (JSON + Markdown)")
	cmd.Flags().BoolVar(&gateHTML, "html", false,
		"Also write an HTML report artifact")
	cmd.Flags().BoolVarP(&gateVerbose, "verbose", "v", false,
		"Show debug logging")

	return cmd
}

func runGate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &GateExitError{Code: 2, Message: "no result paths specified"}
	}

	started := time.Now()
	log := logging.New(gateVerbose)
	defer func() { _ = log.Sync() }()

	store, cfg, err := service.NewConfigurationLoader().LoadPolicyStore(gateConfigPath, args[0])
	if err != nil {
		return &GateExitError{Code: 2, Message: err.Error()}
	}

	resultLoader := service.NewResultLoader(cfg.Results.ExcludePatterns, log)
	results, err := resultLoader.Load(args)
	if err != nil {
		return &GateExitError{Code: 2, Message: err.Error()}
	}

	return outputGateResult(results, store, cfg, log, gateOutput{
		format:    resolveFormat(gateOutputFormat, gateJSON, cfg),
		outputDir: resolveOutputDir(gateOutputDir, cfg),
		html:      gateHTML,
		targetURL: cfg.Probes.TargetURL,
	}, started)
}

// gateOutput holds the resolved output options shared by gate and run
type gateOutput struct {
	format    domain.OutputFormat
	outputDir string
	html      bool
	targetURL string
}

// outputGateResult aggregates, reports, and maps the verdict to the process
// exit contract
func outputGateResult(results []domain.CategoryResult, store *domain.GatePolicyStore, cfg *config.Config, log *zap.SugaredLogger, out gateOutput, started time.Time) error {
	useCase := app.NewGateUseCase(service.NewAggregator(log), log)

	agg, err := useCase.Execute(app.GateConfig{
		OutputFormat: out.format,
		OutputWriter: os.Stdout,
		ArtifactDir:  out.outputDir,
		WriteHTML:    out.html,
		TargetURL:    out.targetURL,
	}, results, store, started)
	if err != nil {
		return &GateExitError{Code: 2, Message: err.Error()}
	}

	if out.format == domain.OutputFormatText {
		printArtifactHint(out.outputDir)
	}

	if agg.DeploymentBlocked {
		return &GateExitError{Code: 1, Message: ""}
	}
	return nil
}

// resolveFormat applies flag shorthands and config defaults
func resolveFormat(flagFormat string, jsonFlag bool, cfg *config.Config) domain.OutputFormat {
	if jsonFlag {
		return domain.OutputFormatJSON
	}
	if flagFormat != "" && flagFormat != "text" {
		return domain.OutputFormat(flagFormat)
	}
	if cfg.Output.Format != "" {
		return domain.OutputFormat(cfg.Output.Format)
	}
	return domain.OutputFormatText
}

// resolveOutputDir prefers the flag over the config value
func resolveOutputDir(flagDir string, cfg *config.Config) string {
	if flagDir != "" {
		return flagDir
	}
	return cfg.Output.Directory
}

func printArtifactHint(outputDir string) {
	if outputDir == "" {
		return
	}
	fmt.Printf("\nReport artifacts written to %s\n", outputDir)
}
