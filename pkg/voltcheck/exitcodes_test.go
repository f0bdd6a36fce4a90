package voltcheck_test

import (
	"testing"

	"github.com/AndreyAkinshin/voltcheck/internal/errors"
	"github.com/AndreyAkinshin/voltcheck/pkg/voltcheck"
)

// TestExitCodeConsistency verifies that public exit code constants match
// the internal errors package constants.
func TestExitCodeConsistency(t *testing.T) {
	tests := []struct {
		name     string
		public   int
		internal int
		expected int
	}{
		{"Compliant/Success", voltcheck.ExitCompliant, errors.ExitSuccess, 0},
		{"NonCompliant/Failure", voltcheck.ExitNonCompliant, errors.ExitFailure, 1},
		{"ConfigError", voltcheck.ExitConfigError, errors.ExitConfigError, 2},
		{"InputError", voltcheck.ExitInputError, errors.ExitInputError, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.public != tt.expected {
				t.Errorf("voltcheck constant = %d, want %d", tt.public, tt.expected)
			}
			if tt.public != tt.internal {
				t.Errorf("exit code mismatch: voltcheck constant = %d, errors constant = %d", tt.public, tt.internal)
			}
		})
	}
}
