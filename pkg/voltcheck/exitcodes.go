// Package voltcheck provides public constants for tools that wrap the
// voltcheck CLI.
package voltcheck

// Exit codes returned by the voltcheck CLI.
// These constants allow scripts and CI jobs to check exit codes symbolically
// rather than using magic numbers.
const (
	// ExitCompliant indicates every record passed (warnings allowed unless
	// --strict was given).
	ExitCompliant = 0

	// ExitNonCompliant indicates at least one record failed, or warned under
	// --strict, or the command itself failed.
	ExitNonCompliant = 1

	// ExitConfigError indicates an invalid configuration or device catalog.
	ExitConfigError = 2

	// ExitInputError indicates test records that could not be read.
	ExitInputError = 3
)
