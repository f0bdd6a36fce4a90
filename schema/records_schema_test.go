package schema_test

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/AndreyAkinshin/voltcheck/pkg/compliance"
	"github.com/AndreyAkinshin/voltcheck/schema"
)

// The records schema rejects unknown keys, so it must list every
// TestRecord key and nothing else besides the entry metadata.
func TestRecordsSchemaMatchesTestRecord(t *testing.T) {
	t.Parallel()

	data, err := schema.FS.ReadFile("records.schema.json")
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Defs struct {
			Entry struct {
				Properties map[string]json.RawMessage `json:"properties"`
			} `json:"entry"`
		} `json:"$defs"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("failed to parse records.schema.json: %v", err)
	}

	var got []string
	for key := range doc.Defs.Entry.Properties {
		if key == "circuit" || key == "description" {
			continue
		}
		got = append(got, key)
	}
	want := append([]string{}, compliance.RecordKeys()...)
	sort.Strings(got)
	sort.Strings(want)

	if len(got) != len(want) {
		t.Fatalf("schema keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("schema key %q, want %q", got[i], want[i])
		}
	}
}

func TestCatalogSchemaRequiresFormatVersion(t *testing.T) {
	t.Parallel()

	data, err := schema.FS.ReadFile("catalog.schema.json")
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Required []string `json:"required"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"format_version", "devices"} {
		found := false
		for _, r := range doc.Required {
			found = found || r == key
		}
		if !found {
			t.Errorf("catalog schema does not require %q (required: %v)", key, doc.Required)
		}
	}
}
