// Package catalog loads protective-device catalogs from YAML or JSON files
// and combines them with the built-in BS 7671 table.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/voltcheck/internal/errors"
	"github.com/AndreyAkinshin/voltcheck/internal/logging"
	"github.com/AndreyAkinshin/voltcheck/internal/schema"
	"github.com/AndreyAkinshin/voltcheck/pkg/compliance"
)

// SupportedFormat is the range of catalog format versions this build reads.
const SupportedFormat = "^1.0"

// DefaultEdition names the regulation edition of the built-in table.
const DefaultEdition = "BS 7671:2018+A2:2022"

// BuiltinSource is reported as the source of the built-in table.
const BuiltinSource = "built-in"

// Modes for combining a catalog file with the built-in table.
const (
	ModeMerge   = "merge"
	ModeReplace = "replace"
)

// File is a catalog file as written on disk.
type File struct {
	FormatVersion string   `json:"format_version" yaml:"format_version"`
	Edition       string   `json:"edition,omitempty" yaml:"edition,omitempty"`
	Devices       []Device `json:"devices" yaml:"devices"`
}

// Device is one catalog file entry.
type Device struct {
	Identifier  string  `json:"identifier" yaml:"identifier"`
	ZsLimit     float64 `json:"zs_limit" yaml:"zs_limit"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// Entries converts the file's devices to engine entries.
func (f *File) Entries() []compliance.DeviceEntry {
	return ToEntries(f.Devices)
}

// ToEntries converts catalog file devices to engine entries.
func ToEntries(devices []Device) []compliance.DeviceEntry {
	out := make([]compliance.DeviceEntry, 0, len(devices))
	for _, d := range devices {
		out = append(out, compliance.DeviceEntry{Identifier: d.Identifier, ZsLimit: d.ZsLimit})
	}
	return out
}

// FromEntries converts engine entries to catalog file devices, so that a
// listed catalog can be saved and loaded back.
func FromEntries(entries []compliance.DeviceEntry) []Device {
	out := make([]Device, 0, len(entries))
	for _, e := range entries {
		out = append(out, Device{Identifier: e.Identifier, ZsLimit: e.ZsLimit})
	}
	return out
}

// Info describes the catalog in effect for a run.
type Info struct {
	Source  string `json:"source" yaml:"source"`
	Edition string `json:"edition" yaml:"edition"`
	Mode    string `json:"mode" yaml:"mode"`
	Devices int    `json:"devices" yaml:"devices"`
}

// Load reads and checks a catalog file. The format is chosen by extension:
// .json is JSON, anything else is YAML.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapKind(errors.KindConfig, path, err, "cannot read catalog")
	}
	return Parse(path, data)
}

// Parse checks data against the catalog schema, decodes it and verifies the
// format version, identifier uniqueness and limits. source names the data in
// errors.
func Parse(source string, data []byte) (*File, error) {
	isJSON := strings.EqualFold(filepath.Ext(source), ".json")

	var f File
	if isJSON {
		if err := schema.ValidateCatalog(data); err != nil {
			return nil, errors.WrapKind(errors.KindValidation, source, err, "invalid catalog")
		}
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, errors.WrapKind(errors.KindConfig, source, err, "cannot parse catalog")
		}
	} else {
		if err := schema.ValidateYAML(schema.Catalog, data); err != nil {
			return nil, errors.WrapKind(errors.KindValidation, source, err, "invalid catalog")
		}
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, errors.WrapKind(errors.KindConfig, source, err, "cannot parse catalog")
		}
	}

	if err := CheckFormat(f.FormatVersion); err != nil {
		return nil, &errors.VoltcheckError{Kind: errors.KindConfig, Source: source, Message: err.Error()}
	}

	seen := make(map[string]int, len(f.Devices))
	for i, d := range f.Devices {
		id := strings.TrimSpace(d.Identifier)
		if id == "" {
			return nil, &errors.VoltcheckError{
				Kind:    errors.KindConfig,
				Source:  source,
				Message: fmt.Sprintf("devices[%d]: identifier is empty", i),
			}
		}
		if prev, dup := seen[id]; dup {
			return nil, &errors.VoltcheckError{
				Kind:    errors.KindConfig,
				Source:  source,
				Message: fmt.Sprintf("devices[%d]: duplicate identifier %q (first at devices[%d])", i, id, prev),
			}
		}
		if d.ZsLimit <= 0 {
			return nil, &errors.VoltcheckError{
				Kind:    errors.KindConfig,
				Source:  source,
				Message: fmt.Sprintf("devices[%d]: zs_limit for %q must be positive", i, id),
			}
		}
		seen[id] = i
		f.Devices[i].Identifier = id
	}
	return &f, nil
}

// CheckFormat verifies that a catalog format version is readable by this
// build.
func CheckFormat(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("format_version %q is not a semantic version: %v", version, err)
	}
	c, err := semver.NewConstraint(SupportedFormat)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("format_version %s is not supported (this build reads %s)", v, SupportedFormat)
	}
	return nil
}

// Resolve builds the catalog for a run. An empty path selects the built-in
// table. Otherwise the file is merged over the built-in table or replaces it,
// depending on mode.
func Resolve(path, mode string, logger *zap.Logger) (*compliance.Catalog, Info, error) {
	logger = logging.OrNop(logger)
	builtin := compliance.DefaultCatalog()

	if path == "" {
		info := Info{Source: BuiltinSource, Edition: DefaultEdition, Mode: ModeMerge, Devices: builtin.Len()}
		logger.Debug("using built-in catalog", zap.Int("devices", info.Devices))
		return builtin, info, nil
	}
	if mode == "" {
		mode = ModeMerge
	}

	f, err := Load(path)
	if err != nil {
		return nil, Info{}, err
	}

	var c *compliance.Catalog
	switch mode {
	case ModeMerge:
		c = builtin.With(f.Entries()...)
	case ModeReplace:
		c = compliance.NewCatalog(f.Entries())
	default:
		return nil, Info{}, errors.Configf("unknown catalog mode %q (expected merge or replace)", mode)
	}

	edition := f.Edition
	if edition == "" {
		edition = DefaultEdition
	}
	info := Info{Source: path, Edition: edition, Mode: mode, Devices: c.Len()}
	logger.Debug("loaded catalog",
		zap.String("path", path),
		zap.String("mode", mode),
		zap.String("format_version", f.FormatVersion),
		zap.Int("file_devices", len(f.Devices)),
		zap.Int("devices", c.Len()))
	return c, info, nil
}
