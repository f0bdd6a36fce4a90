package integration

import (
	"strings"
	"testing"

	"github.com/AndreyAkinshin/voltcheck/internal/catalog"
	"github.com/AndreyAkinshin/voltcheck/internal/version"
)

// Unit tests for version parsing and comparison are in
// internal/version/version_test.go. These tests check how build and catalog
// versions fit together.

func TestVersionInfo(t *testing.T) {
	t.Parallel()
	info := version.Get()

	if info.Version == "" {
		t.Error("expected a version")
	}
	if info.Edition != catalog.DefaultEdition {
		t.Errorf("edition = %q, want %q", info.Edition, catalog.DefaultEdition)
	}
	if !strings.Contains(info.Platform, "/") {
		t.Errorf("platform = %q, want os/arch", info.Platform)
	}
}

func TestCatalogFormatVersions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		version string
		wantErr bool
	}{
		{"1.0.0", false},
		{"1.4.2", false},
		{"2.0.0", true},
		{"0.9.0", true},
		{"one", true},
	}

	for _, tt := range tests {
		err := catalog.CheckFormat(tt.version)
		if (err != nil) != tt.wantErr {
			t.Errorf("CheckFormat(%q) error = %v, wantErr %v", tt.version, err, tt.wantErr)
		}
	}
}

func TestCatalogFormatOrdering(t *testing.T) {
	t.Parallel()

	cmp, err := version.Compare("1.0.0", "1.10.0")
	if err != nil {
		t.Fatal(err)
	}
	if cmp != -1 {
		t.Errorf("Compare(1.0.0, 1.10.0) = %d, want -1", cmp)
	}
}
