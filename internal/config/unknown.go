package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// LoadWithWarnings parses config data and returns any unknown field warnings.
func LoadWithWarnings(path string, data []byte) (*Config, []string, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, detectUnknownFields(data), nil
}

// sections maps each nested object of Config to its struct type.
var sections = map[string]reflect.Type{
	"project":     reflect.TypeOf(ProjectConfig{}),
	"catalog":     reflect.TypeOf(CatalogConfig{}),
	"input":       reflect.TypeOf(InputConfig{}),
	"report":      reflect.TypeOf(ReportConfig{}),
	"conformance": reflect.TypeOf(ConformanceConfig{}),
	"log":         reflect.TypeOf(LogConfig{}),
}

// detectUnknownFields compares raw JSON with known struct fields. Warnings
// are sorted so output is stable.
func detectUnknownFields(data []byte) []string {
	var warnings []string

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Config parsed already, so this indicates an internal inconsistency.
		return []string{"internal: failed to re-parse config for unknown field detection"}
	}

	knownTopLevel := getJSONFields(reflect.TypeOf(Config{}))
	for key, value := range raw {
		if key == "$schema" {
			continue
		}
		if !knownTopLevel[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q at root level (ignored)", key))
			continue
		}
		if t, ok := sections[key]; ok {
			warnings = append(warnings, checkSectionUnknownFields(key, t, value)...)
		}
	}

	sort.Strings(warnings)
	return warnings
}

func checkSectionUnknownFields(section string, t reflect.Type, data json.RawMessage) []string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	known := getJSONFields(t)
	var warnings []string
	for key := range fields {
		if !known[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q in %s (ignored)", key, section))
		}
	}
	return warnings
}

// getJSONFields returns a map of known JSON field names for a struct type.
func getJSONFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		if name := strings.Split(tag, ",")[0]; name != "" {
			fields[name] = true
		}
	}
	return fields
}
