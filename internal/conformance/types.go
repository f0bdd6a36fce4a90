// Package conformance runs reference cases against the compliance engine.
//
// A reference case is a JSON file holding one test record, an optional
// device list and the expected outcome. Expectations are partial: only the
// keys present in "output" are checked.
package conformance

import (
	"time"

	"github.com/AndreyAkinshin/voltcheck/internal/catalog"
)

// Case is a single reference case loaded from JSON.
type Case struct {
	Name        string   // Case name (file name without .json)
	Suite       string   // Suite name (directory relative to the root)
	Path        string   // Full path to the case file
	Description string   // Optional free text
	Input       Input    // Record and devices to validate
	Output      Expected // Expected outcome
	// Want is the "output" object as written, used for comparison so that
	// an explicit empty list is still checked.
	Want map[string]any
}

// Input is the engine input of a case.
type Input struct {
	Record map[string]string `json:"record"`
	// Devices replaces the project catalog when present. Entries are
	// written as in catalog files.
	Devices []catalog.Device `json:"devices,omitempty"`
}

// Expected is the expected outcome of a case.
type Expected struct {
	Status             string            `json:"status"`
	CriticalIssues     []string          `json:"criticalIssues,omitempty"`
	CriticalIssueCount *int              `json:"criticalIssueCount,omitempty"`
	Levels             map[string]string `json:"levels,omitempty"`
	// Messages maps a field to a substring its message must contain.
	Messages map[string]string `json:"messages,omitempty"`
}

// Result is the outcome of running one case.
type Result struct {
	Case     *Case
	Passed   bool
	Actual   map[string]any
	Diff     string
	Error    error
	Duration time.Duration
}

// SuiteResult aggregates the results of one suite.
type SuiteResult struct {
	Suite   string
	Results []Result
	Passed  int
	Failed  int
}
