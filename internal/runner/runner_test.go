package runner

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/AndreyAkinshin/voltcheck/internal/records"
	"github.com/AndreyAkinshin/voltcheck/pkg/compliance"
)

func TestWorkers_Default(t *testing.T) {
	t.Setenv(ParallelEnvVar, "")

	if workers := Workers(0, nil); workers < 1 {
		t.Errorf("Workers() = %d, want >= 1", workers)
	}
}

func TestWorkers_FromEnv(t *testing.T) {
	t.Setenv(ParallelEnvVar, "4")

	if workers := Workers(8, nil); workers != 4 {
		t.Errorf("Workers() = %d, want 4", workers)
	}
}

func TestWorkers_Configured(t *testing.T) {
	t.Setenv(ParallelEnvVar, "")

	if workers := Workers(3, nil); workers != 3 {
		t.Errorf("Workers() = %d, want 3", workers)
	}
}

func TestWorkers_InvalidEnv(t *testing.T) {
	for _, val := range []string{"invalid", "0", "-1", "257"} {
		t.Run(val, func(t *testing.T) {
			t.Setenv(ParallelEnvVar, val)

			if workers := Workers(2, nil); workers != 2 {
				t.Errorf("Workers() = %d, want configured 2", workers)
			}
		})
	}
}

func TestWorkers_Boundaries(t *testing.T) {
	for _, n := range []int{1, 256} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			t.Setenv(ParallelEnvVar, fmt.Sprint(n))
			if workers := Workers(0, nil); workers != n {
				t.Errorf("Workers() = %d, want %d", workers, n)
			}
		})
	}
}

func batch(n int) []records.Entry {
	entries := make([]records.Entry, n)
	for i := range entries {
		zs := "0.5"
		if i%3 == 1 {
			zs = "2.0"
		}
		entries[i] = records.Entry{
			Circuit: fmt.Sprintf("C%d", i+1),
			Record: compliance.TestRecord{
				R1R2:                   "0.3",
				InsulationLiveNeutral:  ">999",
				InsulationLiveEarth:    ">999",
				InsulationNeutralEarth: ">999",
				Polarity:               "✓",
				Zs:                     zs,
				ProtectiveDevice:       "B32",
				PFCLiveNeutral:         "1.5",
				PFCLiveEarth:           "1.2",
				FunctionalTesting:      "✓",
			},
		}
	}
	return entries
}

func TestRun_PreservesOrder(t *testing.T) {
	t.Setenv(ParallelEnvVar, "4")
	entries := batch(50)

	outcomes, err := Run(context.Background(), entries, compliance.DefaultCatalog(), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(outcomes) != len(entries) {
		t.Fatalf("len(outcomes) = %d, want %d", len(outcomes), len(entries))
	}
	for i, o := range outcomes {
		if o.Entry.Circuit != entries[i].Circuit {
			t.Fatalf("outcomes[%d].Circuit = %q, want %q", i, o.Entry.Circuit, entries[i].Circuit)
		}
		want := compliance.OverallCompliance(compliance.Validate(entries[i].Record, compliance.DefaultCatalog()))
		if o.Verdict.Status != want.Status {
			t.Errorf("outcomes[%d].Status = %v, want %v", i, o.Verdict.Status, want.Status)
		}
	}
}

func TestRun_MatchesSequential(t *testing.T) {
	entries := batch(20)
	catalog := compliance.DefaultCatalog()

	t.Setenv(ParallelEnvVar, "1")
	serial, err := Run(context.Background(), entries, catalog, Options{})
	if err != nil {
		t.Fatal(err)
	}
	t.Setenv(ParallelEnvVar, "8")
	parallel, err := Run(context.Background(), entries, catalog, Options{})
	if err != nil {
		t.Fatal(err)
	}
	for i := range serial {
		if serial[i].Results != parallel[i].Results {
			t.Errorf("outcome %d differs between serial and parallel runs", i)
		}
	}
}

func TestRun_Empty(t *testing.T) {
	outcomes, err := Run(context.Background(), nil, nil, Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(outcomes) != 0 {
		t.Errorf("len(outcomes) = %d, want 0", len(outcomes))
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, batch(10), compliance.DefaultCatalog(), Options{Workers: 2})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	outcomes := []Outcome{
		{Verdict: compliance.ComplianceVerdict{Status: compliance.Pass}},
		{Verdict: compliance.ComplianceVerdict{Status: compliance.Fail}},
		{Verdict: compliance.ComplianceVerdict{Status: compliance.Warning}},
		{Verdict: compliance.ComplianceVerdict{Status: compliance.Pass}},
	}
	got := Summarize(outcomes)
	want := Summary{Total: 4, Passed: 2, Warnings: 1, Failed: 1}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
	if w := Worst(outcomes); w != compliance.Fail {
		t.Errorf("Worst() = %v, want fail", w)
	}
	if w := Worst(nil); w != compliance.Pass {
		t.Errorf("Worst(nil) = %v, want pass", w)
	}
}
