package service

import (
	"context"
	"fmt"
	"time"

	"github.com/webqual/webgate/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Default values for the probe runner
const (
	DefaultMaxConcurrency = 4
	DefaultProbeTimeout   = 60 * time.Second
)

// ProbeRunnerImpl implements domain.ProbeRunner. Probes run concurrently up
// to the configured limit; the runner joins all of them before returning so
// the aggregator always sees a complete set of results.
type ProbeRunnerImpl struct {
	maxConcurrency int
	timeout        time.Duration
	progress       domain.ProgressManager
	log            *zap.SugaredLogger
}

// NewProbeRunner creates a probe runner with defaults
func NewProbeRunner(log *zap.SugaredLogger) *ProbeRunnerImpl {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ProbeRunnerImpl{
		maxConcurrency: DefaultMaxConcurrency,
		timeout:        DefaultProbeTimeout,
		log:            log,
	}
}

// NewProbeRunnerWithProgress creates a probe runner with progress tracking
func NewProbeRunnerWithProgress(log *zap.SugaredLogger, timeout time.Duration, pm domain.ProgressManager) *ProbeRunnerImpl {
	runner := NewProbeRunner(log)
	if timeout > 0 {
		runner.timeout = timeout
	}
	runner.progress = pm
	return runner
}

// SetMaxConcurrency sets the maximum number of concurrent probes
func (r *ProbeRunnerImpl) SetMaxConcurrency(max int) {
	if max > 0 {
		r.maxConcurrency = max
	}
}

// Run executes all probes and returns one CategoryResult per probe, in probe
// order. A probe that errors, panics or times out yields the fail-closed
// sentinel result for its category instead of propagating the failure, so
// instrumentation problems block deployment rather than approving it.
func (r *ProbeRunnerImpl) Run(ctx context.Context, probes []domain.Probe) []domain.CategoryResult {
	results := make([]domain.CategoryResult, len(probes))
	if len(probes) == 0 {
		return results
	}

	var task domain.TaskProgress = &NoOpTaskProgress{}
	if r.progress != nil {
		task = r.progress.StartTask("Running probes", len(probes))
	}
	defer task.Complete()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.maxConcurrency)

	for i, p := range probes {
		i, p := i, p
		g.Go(func() error {
			results[i] = r.runOne(gCtx, p)
			task.Increment(1)
			// Failures are absorbed into sentinel results so every probe
			// gets to run
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// runOne executes a single probe with a timeout and panic recovery
func (r *ProbeRunnerImpl) runOne(ctx context.Context, p domain.Probe) (result domain.CategoryResult) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Errorw("probe panicked", "probe", p.Name(), "panic", rec)
			result = domain.NewFailedCategoryResult(p.Category(), fmt.Sprintf("probe panicked: %v", rec))
		}
	}()

	probeCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := p.Run(probeCtx)
	if err != nil {
		r.log.Warnw("probe failed", "probe", p.Name(), "error", err)
		return domain.NewFailedCategoryResult(p.Category(), err.Error())
	}
	if err := res.Validate(); err != nil {
		r.log.Warnw("probe produced an invalid result", "probe", p.Name(), "error", err)
		return domain.NewFailedCategoryResult(p.Category(), err.Error())
	}
	return res
}
