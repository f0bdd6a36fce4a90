package conformance

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/voltcheck/internal/catalog"
	"github.com/AndreyAkinshin/voltcheck/internal/logging"
	"github.com/AndreyAkinshin/voltcheck/pkg/compliance"
)

// Record builds the engine record of a case. Unknown keys are an error.
func (c *Case) Record() (compliance.TestRecord, error) {
	var r compliance.TestRecord
	for key, value := range c.Input.Record {
		if !r.Set(key, value) {
			return compliance.TestRecord{}, fmt.Errorf("unknown record field %q", key)
		}
	}
	return r, nil
}

// Catalog returns the case's device list as a catalog, or fallback when the
// case lists no devices.
func (c *Case) Catalog(fallback *compliance.Catalog) *compliance.Catalog {
	if c.Input.Devices == nil {
		return fallback
	}
	return compliance.NewCatalog(catalog.ToEntries(c.Input.Devices))
}

// RunCase validates the case's record and compares the outcome.
func RunCase(c *Case, fallback *compliance.Catalog) Result {
	start := time.Now()
	res := Result{Case: c}

	record, err := c.Record()
	if err != nil {
		res.Error = err
		res.Duration = time.Since(start)
		return res
	}

	results, verdict := compliance.Check(record, c.Catalog(fallback))
	res.Actual = Actual(results, verdict)
	res.Passed, res.Diff = Compare(c.Want, res.Actual)
	res.Duration = time.Since(start)
	return res
}

// Run executes cases in order and groups the results by suite. It stops
// early when ctx is cancelled.
func Run(ctx context.Context, cases []Case, fallback *compliance.Catalog, logger *zap.Logger) ([]SuiteResult, error) {
	logger = logging.OrNop(logger)

	var suites []SuiteResult
	index := make(map[string]int)
	for i := range cases {
		if err := ctx.Err(); err != nil {
			return suites, err
		}
		c := &cases[i]
		res := RunCase(c, fallback)

		n, ok := index[c.Suite]
		if !ok {
			n = len(suites)
			index[c.Suite] = n
			suites = append(suites, SuiteResult{Suite: c.Suite})
		}
		s := &suites[n]
		s.Results = append(s.Results, res)
		if res.Passed {
			s.Passed++
		} else {
			s.Failed++
		}

		logger.Debug("reference case",
			zap.String("suite", c.Suite),
			zap.String("case", c.Name),
			zap.Bool("passed", res.Passed),
			zap.Duration("elapsed", res.Duration))
	}
	return suites, nil
}

// Totals sums passed and failed cases across suites.
func Totals(suites []SuiteResult) (passed, failed int) {
	for _, s := range suites {
		passed += s.Passed
		failed += s.Failed
	}
	return passed, failed
}
