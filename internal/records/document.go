package records

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/voltcheck/internal/errors"
	"github.com/AndreyAkinshin/voltcheck/internal/schema"
)

// rawValue is a reading as written in the file. Numbers keep their literal
// text so that "0.50" is not rewritten as "0.5"; null is blank.
type rawValue string

func (v *rawValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = rawValue(s)
	default:
		*v = rawValue(data)
	}
	return nil
}

func (v *rawValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: reading must be a scalar", node.Line)
	}
	if node.Tag == "!!null" {
		*v = ""
		return nil
	}
	*v = rawValue(node.Value)
	return nil
}

type rawEntry map[string]rawValue

// document is the object form of a record file.
type document struct {
	Board   string     `json:"board" yaml:"board"`
	Records []rawEntry `json:"records" yaml:"records"`
}

// ParseJSON decodes a JSON record file: an array of entries or an object
// with a "records" array.
func ParseJSON(source string, data []byte) ([]Entry, error) {
	if err := schema.ValidateRecords(data); err != nil {
		return nil, errors.WrapKind(errors.KindInput, source, err, "invalid records")
	}

	var raw []rawEntry
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, errors.WrapKind(errors.KindInput, source, err, "cannot parse records")
		}
	} else {
		var doc document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, errors.WrapKind(errors.KindInput, source, err, "cannot parse records")
		}
		raw = doc.Records
	}
	return toEntries(source, raw)
}

// ParseYAML decodes a YAML record file with the same shape as ParseJSON.
func ParseYAML(source string, data []byte) ([]Entry, error) {
	if err := schema.ValidateYAML(schema.Records, data); err != nil {
		return nil, errors.WrapKind(errors.KindInput, source, err, "invalid records")
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.WrapKind(errors.KindInput, source, err, "cannot parse records")
	}
	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	var raw []rawEntry
	if node.Kind == yaml.SequenceNode {
		if err := node.Decode(&raw); err != nil {
			return nil, errors.WrapKind(errors.KindInput, source, err, "cannot parse records")
		}
	} else {
		var doc document
		if err := node.Decode(&doc); err != nil {
			return nil, errors.WrapKind(errors.KindInput, source, err, "cannot parse records")
		}
		raw = doc.Records
	}
	return toEntries(source, raw)
}

func toEntries(source string, raw []rawEntry) ([]Entry, error) {
	entries := make([]Entry, 0, len(raw))
	for i, r := range raw {
		fields := make(map[string]string, len(r))
		for k, v := range r {
			fields[k] = string(v)
		}
		e, err := newEntry(source, i+1, fields)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
