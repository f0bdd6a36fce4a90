package conformance

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AndreyAkinshin/voltcheck/internal/errors"
	"github.com/AndreyAkinshin/voltcheck/internal/schema"
)

// LoadSuite loads every case under dir whose file name matches pattern.
// Suites are named after the directory holding the case, relative to dir.
// Cases are sorted by suite, then name.
func LoadSuite(dir, pattern string) ([]Case, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, errors.NotFound("reference case directory", dir)
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.Inputf(dir, "reference case path is not a directory")
	}

	matches, err := findMatches(dir, pattern)
	if err != nil {
		return nil, errors.WrapKind(errors.KindConfig, "", err, "conformance pattern")
	}

	cases := make([]Case, 0, len(matches))
	for _, path := range matches {
		c, err := LoadCase(path)
		if err != nil {
			return nil, errors.WrapKind(errors.KindInput, path, err, "invalid reference case")
		}
		rel, err := filepath.Rel(dir, filepath.Dir(path))
		if err != nil {
			return nil, err
		}
		if rel == "." {
			rel = ""
		}
		c.Suite = filepath.ToSlash(rel)
		cases = append(cases, *c)
	}

	sort.SliceStable(cases, func(i, j int) bool {
		if cases[i].Suite != cases[j].Suite {
			return cases[i].Suite < cases[j].Suite
		}
		return cases[i].Name < cases[j].Name
	})
	return cases, nil
}

// LoadCase loads a single case and checks it against the reference case
// schema.
func LoadCase(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := schema.ValidateTestCase(data); err != nil {
		return nil, err
	}

	var raw struct {
		Description string          `json:"description"`
		Input       Input           `json:"input"`
		Output      json.RawMessage `json:"output"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	var output Expected
	if err := json.Unmarshal(raw.Output, &output); err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	var want map[string]any
	if err := json.Unmarshal(raw.Output, &want); err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}

	return &Case{
		Name:        strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path:        path,
		Description: raw.Description,
		Input:       raw.Input,
		Output:      output,
		Want:        want,
	}, nil
}

// findMatches walks dir for files matching pattern. A leading "**/" makes
// the pattern apply at any depth; otherwise it applies to the path relative
// to dir. Hidden directories are skipped.
func findMatches(dir, pattern string) ([]string, error) {
	anyDepth := strings.HasPrefix(pattern, "**/")
	namePattern := strings.TrimPrefix(pattern, "**/")
	if _, err := filepath.Match(namePattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	var matches []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		subject := d.Name()
		if !anyDepth {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			subject = filepath.ToSlash(rel)
		}
		if ok, _ := filepath.Match(namePattern, subject); ok {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(matches)
	return matches, nil
}
