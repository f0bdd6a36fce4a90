// Package schema validates voltcheck documents against the embedded JSON
// schemas.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	schemafs "github.com/AndreyAkinshin/voltcheck/schema"
)

// Schema file names.
const (
	Config   = "config.schema.json"
	Records  = "records.schema.json"
	Catalog  = "catalog.schema.json"
	TestCase = "testcase.schema.json"
)

var (
	compiled    map[string]*jsonschema.Schema
	compileOnce sync.Once
	compileErr  error
)

// compileSchemas compiles all embedded schemas once.
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		names := []string{Config, Records, Catalog, TestCase}

		for _, name := range names {
			data, err := schemafs.FS.ReadFile(name)
			if err != nil {
				compileErr = fmt.Errorf("read %s: %w", name, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			if err != nil {
				compileErr = fmt.Errorf("unmarshal %s: %w", name, err)
				return
			}
			if err := compiler.AddResource(name, doc); err != nil {
				compileErr = fmt.Errorf("add %s resource: %w", name, err)
				return
			}
		}

		out := make(map[string]*jsonschema.Schema, len(names))
		for _, name := range names {
			s, err := compiler.Compile(name)
			if err != nil {
				compileErr = fmt.Errorf("compile %s: %w", name, err)
				return
			}
			out[name] = s
		}
		compiled = out
	})

	return compileErr
}

// Validate validates JSON data against the named embedded schema.
func Validate(name string, data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}
	s, ok := compiled[name]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%s validation failed: %w", kind(name), err)
	}
	return nil
}

// ValidateYAML converts YAML data to JSON and validates it against the named
// schema. Mappings with non-string keys are rejected.
func ValidateYAML(name string, data []byte) error {
	jsonData, err := YAMLToJSON(data)
	if err != nil {
		return err
	}
	return Validate(name, jsonData)
}

// ValidateConfig validates JSON data against the config schema.
func ValidateConfig(data []byte) error {
	return Validate(Config, data)
}

// ValidateRecords validates JSON data against the records schema.
func ValidateRecords(data []byte) error {
	return Validate(Records, data)
}

// ValidateCatalog validates JSON data against the catalog schema.
func ValidateCatalog(data []byte) error {
	return Validate(Catalog, data)
}

// ValidateTestCase validates JSON data against the reference case schema.
func ValidateTestCase(data []byte) error {
	return Validate(TestCase, data)
}

// YAMLToJSON re-encodes a YAML document as JSON.
func YAMLToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("YAML is not representable as JSON: %w", err)
	}
	return out, nil
}

func kind(name string) string {
	switch name {
	case Config:
		return "config"
	case Records:
		return "records"
	case Catalog:
		return "catalog"
	case TestCase:
		return "test case"
	}
	return name
}
