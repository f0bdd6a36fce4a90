package conformance

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCase(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const simpleCase = `{"input": {"record": {"zs": "1.50", "protectiveDevice": "B32"}}, "output": {"status": "fail"}}`

func TestLoadSuite_NestedSuites_SortedBySuiteThenName(t *testing.T) {
	dir := t.TempDir()
	writeCase(t, dir, "zs/b.json", simpleCase)
	writeCase(t, dir, "zs/a.json", simpleCase)
	writeCase(t, dir, "insulation/low.json", simpleCase)
	writeCase(t, dir, "top.json", simpleCase)

	cases, err := LoadSuite(dir, "**/*.json")
	if err != nil {
		t.Fatalf("LoadSuite() error = %v", err)
	}

	want := []struct{ suite, name string }{
		{"", "top"},
		{"insulation", "low"},
		{"zs", "a"},
		{"zs", "b"},
	}
	if len(cases) != len(want) {
		t.Fatalf("len(cases) = %d, want %d", len(cases), len(want))
	}
	for i, w := range want {
		if cases[i].Suite != w.suite || cases[i].Name != w.name {
			t.Errorf("cases[%d] = %s/%s, want %s/%s", i, cases[i].Suite, cases[i].Name, w.suite, w.name)
		}
	}
}

func TestLoadSuite_RelativePattern_MatchesFromRoot(t *testing.T) {
	dir := t.TempDir()
	writeCase(t, dir, "zs/a.json", simpleCase)
	writeCase(t, dir, "rcd/a.json", simpleCase)

	cases, err := LoadSuite(dir, "zs/*.json")
	if err != nil {
		t.Fatalf("LoadSuite() error = %v", err)
	}
	if len(cases) != 1 || cases[0].Suite != "zs" {
		t.Errorf("cases = %+v, want only zs/a", cases)
	}
}

func TestLoadSuite_SkipsHiddenDirsAndOtherFiles(t *testing.T) {
	dir := t.TempDir()
	writeCase(t, dir, ".cache/a.json", simpleCase)
	writeCase(t, dir, "zs/notes.txt", "not a case")
	writeCase(t, dir, "zs/a.json", simpleCase)

	cases, err := LoadSuite(dir, "**/*.json")
	if err != nil {
		t.Fatalf("LoadSuite() error = %v", err)
	}
	if len(cases) != 1 {
		t.Errorf("len(cases) = %d, want 1", len(cases))
	}
}

func TestLoadSuite_NonExistentDir_ReturnsError(t *testing.T) {
	_, err := LoadSuite(filepath.Join(t.TempDir(), "missing"), "**/*.json")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("LoadSuite() error = %v, want not found", err)
	}
}

func TestLoadSuite_FileInsteadOfDir_ReturnsError(t *testing.T) {
	path := writeCase(t, t.TempDir(), "a.json", simpleCase)
	_, err := LoadSuite(path, "*.json")
	if err == nil || !strings.Contains(err.Error(), "not a directory") {
		t.Errorf("LoadSuite() error = %v, want not a directory", err)
	}
}

func TestLoadSuite_InvalidPattern_ReturnsError(t *testing.T) {
	_, err := LoadSuite(t.TempDir(), "[")
	if err == nil || !strings.Contains(err.Error(), "invalid pattern") {
		t.Errorf("LoadSuite() error = %v, want invalid pattern", err)
	}
}

func TestLoadSuite_InvalidCase_NamesFile(t *testing.T) {
	dir := t.TempDir()
	writeCase(t, dir, "zs/broken.json", `{"input": {"record": {}}}`)

	_, err := LoadSuite(dir, "**/*.json")
	if err == nil {
		t.Fatal("LoadSuite() expected error for a case without output")
	}
	if !strings.Contains(err.Error(), "broken.json") {
		t.Errorf("error = %v, want it to name the file", err)
	}
}

func TestLoadSuite_EmptyDir_ReturnsEmpty(t *testing.T) {
	cases, err := LoadSuite(t.TempDir(), "**/*.json")
	if err != nil {
		t.Fatalf("LoadSuite() error = %v", err)
	}
	if len(cases) != 0 {
		t.Errorf("len(cases) = %d, want 0", len(cases))
	}
}

func TestLoadCase_ValidJSON_ParsesCorrectly(t *testing.T) {
	content := `{
  "description": "custom device",
  "input": {
    "record": {"zs": "0.6", "protectiveDevice": "X1"},
    "devices": [{"identifier": "X1", "zs_limit": 0.5}]
  },
  "output": {
    "status": "fail",
    "criticalIssues": [],
    "criticalIssueCount": 1,
    "levels": {"zs": "fail"},
    "messages": {"zs": "X1"}
  }
}`
	path := writeCase(t, t.TempDir(), "custom.json", content)

	c, err := LoadCase(path)
	if err != nil {
		t.Fatalf("LoadCase() error = %v", err)
	}

	if c.Name != "custom" {
		t.Errorf("Name = %q, want %q", c.Name, "custom")
	}
	if c.Description != "custom device" {
		t.Errorf("Description = %q", c.Description)
	}
	if c.Input.Record["zs"] != "0.6" {
		t.Errorf("Input.Record[zs] = %q, want %q", c.Input.Record["zs"], "0.6")
	}
	if len(c.Input.Devices) != 1 || c.Input.Devices[0].ZsLimit != 0.5 {
		t.Errorf("Input.Devices = %+v", c.Input.Devices)
	}
	if c.Output.Status != "fail" {
		t.Errorf("Output.Status = %q", c.Output.Status)
	}
	if c.Output.CriticalIssueCount == nil || *c.Output.CriticalIssueCount != 1 {
		t.Errorf("Output.CriticalIssueCount = %v, want 1", c.Output.CriticalIssueCount)
	}
	if c.Output.Levels["zs"] != "fail" || c.Output.Messages["zs"] != "X1" {
		t.Errorf("Output = %+v", c.Output)
	}

	issues, ok := c.Want["criticalIssues"].([]any)
	if !ok || len(issues) != 0 {
		t.Errorf("Want[criticalIssues] = %#v, want an empty list", c.Want["criticalIssues"])
	}
}

func TestLoadCase_SchemaViolation_ReturnsError(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing output", `{"input": {"record": {}}}`},
		{"numeric reading", `{"input": {"record": {"zs": 1.5}}, "output": {"status": "fail"}}`},
		{"unknown status", `{"input": {"record": {}}, "output": {"status": "ok"}}`},
		{"unknown level field", `{"input": {"record": {}}, "output": {"status": "pass", "levels": {"earth": "pass"}}}`},
		{"device without limit", `{"input": {"record": {}, "devices": [{"identifier": "B6"}]}, "output": {"status": "pass"}}`},
		{"engine spelling of limit", `{"input": {"record": {}, "devices": [{"identifier": "B6", "zsLimit": 7.28}]}, "output": {"status": "pass"}}`},
		{"not JSON", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCase(t, t.TempDir(), "case.json", tt.content)
			if _, err := LoadCase(path); err == nil {
				t.Error("LoadCase() expected error")
			}
		})
	}
}

func TestLoadCase_MissingFile_ReturnsError(t *testing.T) {
	if _, err := LoadCase(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadCase() expected error for a missing file")
	}
}
