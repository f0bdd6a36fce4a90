package integration

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/AndreyAkinshin/voltcheck/internal/config"
	"github.com/AndreyAkinshin/voltcheck/internal/errors"
	"github.com/AndreyAkinshin/voltcheck/internal/project"
)

func TestConfigWithAllFields(t *testing.T) {
	t.Parallel()
	configPath := filepath.Join(fixturesDir(), "board", project.ConfigDirName, project.ConfigFileName)

	cfg, warnings, err := config.LoadAndValidate(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	if cfg.Project.Inspector != "J. Hughes" {
		t.Errorf("inspector = %q", cfg.Project.Inspector)
	}
	if cfg.Catalog.Path != "devices.yaml" || cfg.Catalog.Mode != "merge" {
		t.Errorf("catalog = %+v", *cfg.Catalog)
	}
	if cfg.Conformance.Directory != "cases" {
		t.Errorf("conformance directory = %q, want cases", cfg.Conformance.Directory)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log level = %q, want warn", cfg.Log.Level)
	}
}

func TestConfigDefaultsApplied(t *testing.T) {
	t.Parallel()
	configPath := filepath.Join(fixturesDir(), "minimal", project.ConfigDirName, project.ConfigFileName)

	cfg, _, err := config.LoadAndValidate(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Report == nil || cfg.Conformance == nil || cfg.Catalog == nil || cfg.Log == nil {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.Conformance.Directory != config.DefaultConformanceDirectory {
		t.Errorf("conformance directory = %q, want %q", cfg.Conformance.Directory, config.DefaultConformanceDirectory)
	}
}

func TestConfigInvalidFixtures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fixture string
		wantErr string
	}{
		{"bad-format", "format"},
		{"bad-catalog", "format_version"},
		{"replace-without-path", "catalog.path"},
	}

	for _, tt := range tests {
		t.Run(tt.fixture, func(t *testing.T) {
			t.Parallel()
			fixtureDir := filepath.Join(fixturesDir(), "invalid", tt.fixture)

			_, err := project.LoadProjectFrom(fixtureDir, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want to mention %q", err.Error(), tt.wantErr)
			}
			if code := errors.GetExitCode(err); code != errors.ExitConfigError {
				t.Errorf("exit code = %d, want %d", code, errors.ExitConfigError)
			}
		})
	}
}
