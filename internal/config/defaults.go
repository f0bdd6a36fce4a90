package config

// Default configuration values.
const (
	DefaultCatalogMode          = "merge"
	DefaultHeaderRow            = 1
	DefaultReportFormat         = "text"
	DefaultConformanceDirectory = "conformance"
	DefaultConformancePattern   = "**/*.json"
	DefaultLogLevel             = "warn"
	DefaultLogFormat            = "console"
	DefaultParallelEnvVar       = "VOLTCHECK_PARALLEL"
	DefaultConfigDirectory      = ".voltcheck"
	DefaultConfigFile           = "config.json"
)

// Catalog modes.
const (
	CatalogMerge   = "merge"
	CatalogReplace = "replace"
)

// ReportFormats lists the accepted report.format values.
var ReportFormats = []string{"text", "json", "yaml", "xlsx"}

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	applyCatalogDefaults(cfg)
	applyInputDefaults(cfg)
	applyReportDefaults(cfg)
	applyConformanceDefaults(cfg)
	applyLogDefaults(cfg)
}

func applyCatalogDefaults(cfg *Config) {
	if cfg.Catalog == nil {
		cfg.Catalog = &CatalogConfig{}
	}
	if cfg.Catalog.Mode == "" {
		cfg.Catalog.Mode = DefaultCatalogMode
	}
}

func applyInputDefaults(cfg *Config) {
	if cfg.Input == nil {
		cfg.Input = &InputConfig{}
	}
	if cfg.Input.HeaderRow == 0 {
		cfg.Input.HeaderRow = DefaultHeaderRow
	}
}

func applyReportDefaults(cfg *Config) {
	if cfg.Report == nil {
		cfg.Report = &ReportConfig{}
	}
	if cfg.Report.Format == "" {
		cfg.Report.Format = DefaultReportFormat
	}
}

func applyConformanceDefaults(cfg *Config) {
	if cfg.Conformance == nil {
		cfg.Conformance = &ConformanceConfig{}
	}
	if cfg.Conformance.Directory == "" {
		cfg.Conformance.Directory = DefaultConformanceDirectory
	}
	if cfg.Conformance.Pattern == "" {
		cfg.Conformance.Pattern = DefaultConformancePattern
	}
}

func applyLogDefaults(cfg *Config) {
	if cfg.Log == nil {
		cfg.Log = &LogConfig{}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}
