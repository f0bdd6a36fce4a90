// Package records loads circuit test records from JSON, YAML and XLSX
// schedule-of-tests files.
package records

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/voltcheck/internal/errors"
	"github.com/AndreyAkinshin/voltcheck/internal/logging"
	"github.com/AndreyAkinshin/voltcheck/pkg/compliance"
)

// Entry is one circuit's record and where it came from.
type Entry struct {
	// Circuit is the circuit designation, e.g. "L1/3". Records without one
	// are named "<file>#<n>".
	Circuit     string                `json:"circuit" yaml:"circuit"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	Source      string                `json:"source" yaml:"source"`
	Record      compliance.TestRecord `json:"record" yaml:"record"`
}

// Options controls how record files are read.
type Options struct {
	// Sheet selects the worksheet of an XLSX file. Empty means the first.
	Sheet string
	// HeaderRow is the 1-based row holding XLSX column headings. Zero
	// means 1.
	HeaderRow int
	Logger    *zap.Logger
}

func (o Options) headerRow() int {
	if o.HeaderRow < 1 {
		return 1
	}
	return o.HeaderRow
}

// Format identifies a record file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

// FormatOf returns the record format implied by a file name.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".xlsx":
		return FormatXLSX, true
	}
	return "", false
}

// LoadFile reads every record in one file.
func LoadFile(path string, opts Options) ([]Entry, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, errors.Inputf(path, "unsupported record file type %q (expected .json, .yaml, .yml or .xlsx)", filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("record file", path)
		}
		return nil, errors.WrapKind(errors.KindInput, path, err, "cannot read records")
	}

	var entries []Entry
	switch format {
	case FormatJSON:
		entries, err = ParseJSON(path, data)
	case FormatYAML:
		entries, err = ParseYAML(path, data)
	case FormatXLSX:
		entries, err = ParseXLSX(path, bytes.NewReader(data), opts)
	}
	if err != nil {
		return nil, err
	}
	logging.OrNop(opts.Logger).Debug("loaded records",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("records", len(entries)))
	return entries, nil
}

// Load expands paths with Discover and reads every record, in file order.
func Load(paths []string, opts Options) ([]Entry, error) {
	files, err := Discover(paths)
	if err != nil {
		return nil, err
	}
	var all []Entry
	for _, f := range files {
		entries, err := LoadFile(f, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return all, nil
}

// defaultCircuit names the n-th (1-based) record of a file that carries no
// circuit designation.
func defaultCircuit(source string, n int) string {
	return fmt.Sprintf("%s#%d", filepath.Base(source), n)
}

// newEntry builds an Entry from decoded key/value pairs. Keys other than
// circuit and description must be TestRecord keys.
func newEntry(source string, n int, fields map[string]string) (Entry, error) {
	e := Entry{Source: source}
	for key, value := range fields {
		switch key {
		case "circuit":
			e.Circuit = strings.TrimSpace(value)
		case "description":
			e.Description = strings.TrimSpace(value)
		default:
			if !e.Record.Set(key, value) {
				return Entry{}, errors.Inputf(source, "record %d: unknown field %q", n, key)
			}
		}
	}
	if e.Circuit == "" {
		e.Circuit = defaultCircuit(source, n)
	}
	return e, nil
}
