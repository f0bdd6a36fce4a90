package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/AndreyAkinshin/voltcheck/internal/logging"
)

// MaxParallel is the largest accepted worker count.
const MaxParallel = 256

// Project name: must start with lowercase letter, may contain lowercase,
// digits, hyphens. Hyphens must not be consecutive or trailing.
var projectNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration with defaults applied for errors and
// returns warnings for non-fatal issues.
func Validate(cfg *Config) (warnings []string, err error) {
	checks := []func(*Config) ([]string, error){
		validateProject,
		validateCatalog,
		validateInput,
		validateReport,
		validateConformance,
		validateLog,
		validateParallel,
	}
	for _, check := range checks {
		w, err := check(cfg)
		warnings = append(warnings, w...)
		if err != nil {
			return warnings, err
		}
	}
	return warnings, nil
}

func validateProject(cfg *Config) ([]string, error) {
	if cfg.Project.Name == "" {
		return nil, nil
	}
	return nil, ValidateProjectName(cfg.Project.Name)
}

func validateCatalog(cfg *Config) ([]string, error) {
	c := cfg.Catalog
	switch c.Mode {
	case CatalogMerge, CatalogReplace:
	default:
		return nil, &ValidationError{Field: "catalog.mode", Message: `must be "merge" or "replace"`}
	}
	if c.Mode == CatalogReplace && c.Path == "" {
		return nil, &ValidationError{Field: "catalog.path", Message: `is required when catalog.mode is "replace"`}
	}
	return nil, nil
}

func validateInput(cfg *Config) ([]string, error) {
	if cfg.Input.HeaderRow < 1 {
		return nil, &ValidationError{Field: "input.header_row", Message: "must be 1 or greater"}
	}
	return nil, nil
}

func validateReport(cfg *Config) ([]string, error) {
	if !slices.Contains(ReportFormats, cfg.Report.Format) {
		return nil, &ValidationError{
			Field:   "report.format",
			Message: fmt.Sprintf("must be one of %s", strings.Join(ReportFormats, ", ")),
		}
	}
	if cfg.Report.Format == "xlsx" && cfg.Report.ShowPassing {
		return []string{"report.show_passing has no effect with the xlsx format (every circuit is exported)"}, nil
	}
	return nil, nil
}

func validateConformance(cfg *Config) ([]string, error) {
	if !strings.HasSuffix(cfg.Conformance.Pattern, ".json") {
		return []string{fmt.Sprintf("conformance.pattern %q does not select .json files; reference cases are JSON", cfg.Conformance.Pattern)}, nil
	}
	return nil, nil
}

func validateLog(cfg *Config) ([]string, error) {
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return nil, &ValidationError{Field: "log.level", Message: err.Error()}
	}
	if !logging.ValidFormat(cfg.Log.Format) {
		return nil, &ValidationError{Field: "log.format", Message: `must be "console" or "json"`}
	}
	return nil, nil
}

func validateParallel(cfg *Config) ([]string, error) {
	if cfg.Parallel < 0 || cfg.Parallel > MaxParallel {
		return nil, &ValidationError{Field: "parallel", Message: fmt.Sprintf("must be between 0 and %d", MaxParallel)}
	}
	return nil, nil
}

// ValidateProjectName checks if a project name is valid.
func ValidateProjectName(name string) error {
	if name == "" {
		return &ValidationError{Field: "project.name", Message: "is required"}
	}
	if len(name) > 128 {
		return &ValidationError{Field: "project.name", Message: "must be 128 characters or less"}
	}
	if !projectNamePattern.MatchString(name) {
		return &ValidationError{
			Field:   "project.name",
			Message: "must match pattern ^[a-z][a-z0-9]*(-[a-z0-9]+)*$ (lowercase letters, digits, non-consecutive hyphens)",
		}
	}
	return nil
}
