package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/webqual/webgate/domain"
	"github.com/webqual/webgate/service"
	"go.uber.org/zap"
)

// Artifact filenames written to the output directory
const (
	JSONArtifactName     = "webgate-report.json"
	MarkdownArtifactName = "webgate-report.md"
	HTMLArtifactName     = "webgate-report.html"
)

// GateConfig holds configuration for the gate use case
type GateConfig struct {
	// OutputFormat is the format rendered to OutputWriter
	OutputFormat domain.OutputFormat

	// OutputWriter receives the rendered report (usually stdout)
	OutputWriter io.Writer

	// ArtifactDir, when set, receives the JSON and Markdown artifacts
	// (plus HTML when WriteHTML is set)
	ArtifactDir string

	// WriteHTML also writes the HTML artifact
	WriteHTML bool

	// TargetURL is stamped into report metadata
	TargetURL string

	// RunID identifies the run; generated when empty
	RunID string
}

// GateUseCase orchestrates aggregation and reporting for one run
type GateUseCase struct {
	aggregator domain.Aggregator
	log        *zap.SugaredLogger
}

// NewGateUseCase creates a new gate use case
func NewGateUseCase(aggregator domain.Aggregator, log *zap.SugaredLogger) *GateUseCase {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &GateUseCase{
		aggregator: aggregator,
		log:        log,
	}
}

// Execute aggregates the category results and renders all configured report
// artifacts. Artifacts are written even when deployment is blocked; only a
// failure to write them is an error.
func (uc *GateUseCase) Execute(cfg GateConfig, results []domain.CategoryResult, store *domain.GatePolicyStore, started time.Time) (*domain.AggregateResult, error) {
	agg := uc.aggregator.Compute(results, store)

	runID := cfg.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	writer := service.NewReportWriter(service.ReportMeta{
		GeneratedAt: time.Now().Format(time.RFC3339),
		RunID:       runID,
		TargetURL:   cfg.TargetURL,
		DurationMs:  time.Since(started).Milliseconds(),
	})

	if cfg.OutputWriter != nil {
		format := cfg.OutputFormat
		if format == "" {
			format = domain.OutputFormatText
		}
		if err := writer.Write(agg, results, format, cfg.OutputWriter); err != nil {
			return nil, domain.NewReportError("failed to render report", err)
		}
	}

	if cfg.ArtifactDir != "" {
		if err := uc.writeArtifacts(writer, agg, results, cfg); err != nil {
			return nil, err
		}
	}

	return agg, nil
}

// writeArtifacts writes the structured and narrative artifacts to the
// configured directory
func (uc *GateUseCase) writeArtifacts(writer *service.ReportWriterImpl, agg *domain.AggregateResult, results []domain.CategoryResult, cfg GateConfig) error {
	if err := os.MkdirAll(cfg.ArtifactDir, 0755); err != nil {
		return domain.NewReportError(fmt.Sprintf("failed to create output directory %s", cfg.ArtifactDir), err)
	}

	artifacts := map[string]domain.OutputFormat{
		JSONArtifactName:     domain.OutputFormatJSON,
		MarkdownArtifactName: domain.OutputFormatMarkdown,
	}
	if cfg.WriteHTML {
		artifacts[HTMLArtifactName] = domain.OutputFormatHTML
	}

	for name, format := range artifacts {
		path := filepath.Join(cfg.ArtifactDir, name)
		if err := uc.writeArtifact(writer, agg, results, format, path); err != nil {
			return err
		}
		uc.log.Infow("report artifact written", "path", path)
	}
	return nil
}

func (uc *GateUseCase) writeArtifact(writer *service.ReportWriterImpl, agg *domain.AggregateResult, results []domain.CategoryResult, format domain.OutputFormat, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return domain.NewReportError(fmt.Sprintf("failed to create %s", path), err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = domain.NewReportError(fmt.Sprintf("failed to close %s", path), closeErr)
		}
	}()

	if err := writer.Write(agg, results, format, f); err != nil {
		return domain.NewReportError(fmt.Sprintf("failed to write %s", path), err)
	}
	return nil
}
