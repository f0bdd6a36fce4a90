// Package runner validates batches of test records concurrently.
package runner

import (
	"context"
	"os"
	"runtime"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/voltcheck/internal/logging"
	"github.com/AndreyAkinshin/voltcheck/internal/records"
	"github.com/AndreyAkinshin/voltcheck/pkg/compliance"
)

// ParallelEnvVar overrides the worker count.
const ParallelEnvVar = "VOLTCHECK_PARALLEL"

const (
	// minParallelWorkers keeps the semaphore from blocking forever when
	// runtime.NumCPU() reports zero.
	minParallelWorkers = 1

	// maxParallelWorkers caps VOLTCHECK_PARALLEL and the parallel setting.
	maxParallelWorkers = 256
)

// Options configures a batch run.
type Options struct {
	// Workers is the configured worker count. Zero means runtime.NumCPU().
	// VOLTCHECK_PARALLEL, when valid, takes precedence.
	Workers int
	Logger  *zap.Logger
}

// Outcome is the validation of one entry.
type Outcome struct {
	Entry   records.Entry
	Results compliance.TestValidationResults
	Verdict compliance.ComplianceVerdict
}

// Run validates entries against catalog using a bounded worker pool.
// Outcomes are returned in input order. If ctx is cancelled, dispatch stops
// and Run returns ctx.Err().
//
// The pool uses a channel-as-semaphore: each goroutine acquires a slot
// before validating and releases it when done.
func Run(ctx context.Context, entries []records.Entry, catalog *compliance.Catalog, opts Options) ([]Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := logging.OrNop(opts.Logger)
	workers := Workers(opts.Workers, logger)
	start := time.Now()

	outcomes := make([]Outcome, len(entries))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i := range entries {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			// Each goroutine writes only its own slot.
			results, verdict := compliance.Check(entries[i].Record, catalog)
			outcomes[i] = Outcome{Entry: entries[i], Results: results, Verdict: verdict}
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger.Debug("validated batch",
		zap.Int("records", len(entries)),
		zap.Int("workers", workers),
		zap.Duration("elapsed", time.Since(start)))
	return outcomes, nil
}

// defaultWorkerCount returns the default number of parallel workers based on CPU count.
func defaultWorkerCount() int {
	return max(minParallelWorkers, runtime.NumCPU())
}

// Workers resolves the worker count. A valid VOLTCHECK_PARALLEL wins, then
// configured, then the CPU count. Invalid values are logged and ignored.
func Workers(configured int, logger *zap.Logger) int {
	logger = logging.OrNop(logger)

	if env := os.Getenv(ParallelEnvVar); env != "" {
		n, err := strconv.Atoi(env)
		switch {
		case err != nil:
			logger.Warn("invalid worker count, using default", zap.String(ParallelEnvVar, env))
		case n < minParallelWorkers || n > maxParallelWorkers:
			logger.Warn("worker count out of range, using default",
				zap.Int(ParallelEnvVar, n),
				zap.Int("min", minParallelWorkers),
				zap.Int("max", maxParallelWorkers))
		default:
			return n
		}
	}

	if configured >= minParallelWorkers && configured <= maxParallelWorkers {
		return configured
	}
	return defaultWorkerCount()
}

// Summary counts outcomes by verdict.
type Summary struct {
	Total    int `json:"total" yaml:"total"`
	Passed   int `json:"passed" yaml:"passed"`
	Warnings int `json:"warnings" yaml:"warnings"`
	Failed   int `json:"failed" yaml:"failed"`
}

// Summarize counts outcomes by verdict status.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		switch o.Verdict.Status {
		case compliance.Pass:
			s.Passed++
		case compliance.Warning:
			s.Warnings++
		case compliance.Fail:
			s.Failed++
		}
	}
	return s
}

// Worst returns the worst verdict status among outcomes, Pass when empty.
func Worst(outcomes []Outcome) compliance.Level {
	worst := compliance.Pass
	for _, o := range outcomes {
		worst = compliance.Worse(worst, o.Verdict.Status)
	}
	return worst
}
