// Package config provides loading and validation for .voltcheck/config.json.
package config

// Config represents the complete config.json configuration. Every section
// is optional.
type Config struct {
	Project     ProjectConfig      `json:"project"`
	Catalog     *CatalogConfig     `json:"catalog,omitempty"`
	Input       *InputConfig       `json:"input,omitempty"`
	Report      *ReportConfig      `json:"report,omitempty"`
	Conformance *ConformanceConfig `json:"conformance,omitempty"`
	Log         *LogConfig         `json:"log,omitempty"`
	Parallel    int                `json:"parallel,omitempty"`
}

// ProjectConfig describes the installation being certified.
type ProjectConfig struct {
	Name      string `json:"name,omitempty"`
	Site      string `json:"site,omitempty"`
	Inspector string `json:"inspector,omitempty"`
}

// CatalogConfig selects the protective-device catalog.
type CatalogConfig struct {
	// Path to a catalog file, relative to the project root.
	Path string `json:"path,omitempty"`
	// Mode is "merge" (file entries override the built-in table) or
	// "replace" (the file is the whole catalog).
	Mode string `json:"mode,omitempty"`
}

// InputConfig controls how spreadsheet records are read.
type InputConfig struct {
	Sheet     string `json:"sheet,omitempty"`
	HeaderRow int    `json:"header_row,omitempty"`
}

// ReportConfig controls the validate command's report.
type ReportConfig struct {
	Format      string `json:"format,omitempty"`
	Strict      bool   `json:"strict,omitempty"`
	ShowPassing bool   `json:"show_passing,omitempty"`
}

// ConformanceConfig locates the reference cases run by "voltcheck conform".
type ConformanceConfig struct {
	Directory string `json:"directory,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	Level  string `json:"level,omitempty"`
	Format string `json:"format,omitempty"`
}
