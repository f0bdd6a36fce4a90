package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/voltcheck/internal/config"
	"github.com/AndreyAkinshin/voltcheck/internal/errors"
	"github.com/AndreyAkinshin/voltcheck/internal/logging"
	"github.com/AndreyAkinshin/voltcheck/internal/output"
	"github.com/AndreyAkinshin/voltcheck/internal/project"
	"github.com/AndreyAkinshin/voltcheck/internal/version"
	"github.com/AndreyAkinshin/voltcheck/pkg/compliance"
)

// out is the shared output writer for CLI commands.
var out = output.New()

// Help text alignment widths for consistent formatting.
const (
	widthCommand       = 26 // Command usage column in the main help
	widthFlagShort     = 10 // Short flags like "-h, --help"
	widthFlagWithValue = 22 // Flags like "--format=<fmt>"
)

// Command groups in the main help.
const (
	groupValidation = "validation"
	groupReference  = "reference"
	groupProject    = "project"
	groupUtility    = "utility"
)

// commandInfo describes one built-in command for help and completion.
type commandInfo struct {
	name        string
	usage       string
	description string
	group       string
	flags       []string
	subcommands []string
}

// builtinCommands returns the CLI commands in help order.
func builtinCommands() []commandInfo {
	return []commandInfo{
		{
			name:        "validate",
			usage:       "validate <path>...",
			description: "Validate record files (.json, .yaml, .xlsx) or directories",
			group:       groupValidation,
			flags:       []string{"--format", "--out", "--catalog", "--sheet", "--header-row", "--strict", "--show-passing"},
		},
		{
			name:        "check",
			usage:       "check --<field>=<value>...",
			description: "Validate one record given as flags",
			group:       groupValidation,
			flags:       append(recordFlagNames(), "--device", "--catalog", "--format", "--strict"),
		},
		{
			name:        "conform",
			usage:       "conform [dir]",
			description: "Run reference cases against the engine",
			group:       groupValidation,
			flags:       []string{"--pattern", "--catalog"},
		},
		{
			name:        "catalog",
			usage:       "catalog [list|lookup <id>]",
			description: "List protective devices or look one up",
			group:       groupReference,
			flags:       []string{"--catalog", "--format"},
			subcommands: []string{"list", "lookup"},
		},
		{
			name:        "limits",
			usage:       "limits",
			description: "Print the regulatory limit tables",
			group:       groupReference,
		},
		{
			name:        "init",
			usage:       "init",
			description: "Create .voltcheck/config.json in the current directory",
			group:       groupProject,
			flags:       []string{"--name", "--site", "--inspector", "--force"},
		},
		{
			name:        "config",
			usage:       "config validate",
			description: "Validate the project configuration",
			group:       groupProject,
			subcommands: []string{"validate"},
		},
		{
			name:        "completion",
			usage:       "completion <shell>",
			description: "Generate shell completion (bash, zsh, fish)",
			group:       groupUtility,
			flags:       []string{"--alias"},
			subcommands: []string{"bash", "zsh", "fish"},
		},
		{
			name:        "version",
			usage:       "version",
			description: "Show version information",
			group:       groupUtility,
			flags:       []string{"--format"},
		},
		{
			name:        "help",
			usage:       "help",
			description: "Show this help",
			group:       groupUtility,
		},
	}
}

func commandsInGroup(group string) []commandInfo {
	var result []commandInfo
	for _, c := range builtinCommands() {
		if c.group == group {
			result = append(result, c)
		}
	}
	return result
}

// newLogger builds the run's logger. --log-level wins over -v, which wins
// over the configured level.
func newLogger(opts *GlobalOptions, cfg *config.Config) *zap.Logger {
	level := config.DefaultLogLevel
	format := config.DefaultLogFormat
	if cfg != nil && cfg.Log != nil {
		level = cfg.Log.Level
		format = cfg.Log.Format
	}
	if opts != nil {
		switch {
		case opts.LogLevel != "":
			level = opts.LogLevel
		case opts.Verbose:
			level = "debug"
		}
	}
	logger, err := logging.New(level, format, "voltcheck", out.Err())
	if err != nil {
		return logging.Nop()
	}
	return logger
}

// loadProject loads the project configuration and handles errors uniformly.
// Returns the project, its logger and exit code 0 on success, or nil and
// the exit code on failure.
func loadProject(opts *GlobalOptions) (*project.Project, *zap.Logger, int) {
	proj, err := project.LoadProject(newLogger(opts, nil))
	if err != nil {
		out.ErrorPrefix("%v", err)
		return nil, nil, errors.GetExitCode(err)
	}
	if opts == nil || !opts.Quiet {
		for _, w := range proj.Warnings {
			out.Warning("%s", w)
		}
	}
	return proj, newLogger(opts, proj.Config), 0
}

// useCatalogFlag switches the project to the catalog named on the command
// line. The path is relative to the working directory, not the project
// root.
func useCatalogFlag(proj *project.Project, path string, logger *zap.Logger) int {
	if path == "" {
		return 0
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}
	if err := proj.UseCatalog(abs, proj.Config.Catalog.Mode, logger); err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	return 0
}

// exitCodeFor maps an overall status to the process exit code.
func exitCodeFor(status compliance.Level, strict bool) int {
	switch {
	case status == compliance.Fail:
		return errors.ExitFailure
	case status == compliance.Warning && strict:
		return errors.ExitFailure
	}
	return errors.ExitSuccess
}

// cmdConfig handles configuration utilities.
func cmdConfig(args []string, opts *GlobalOptions) int {
	if len(args) == 0 {
		out.ErrorPrefix("config: subcommand required (validate)")
		return errors.ExitConfigError
	}

	switch args[0] {
	case "validate":
		if wantsHelp(args[1:]) {
			printConfigUsage()
			return 0
		}
		return cmdConfigValidate(opts)
	case "-h", "--help":
		printConfigUsage()
		return 0
	default:
		out.ErrorPrefix("config: unknown subcommand %q", args[0])
		return errors.ExitConfigError
	}
}

func cmdConfigValidate(opts *GlobalOptions) int {
	proj, _, exitCode := loadProject(opts)
	if proj == nil {
		return exitCode
	}
	if !proj.HasConfig {
		out.ErrorPrefix("%v", errors.NotFound("configuration", filepath.Join(project.ConfigDirName, project.ConfigFileName)))
		out.Hint("Run 'voltcheck init' to create one.")
		return errors.ExitConfigError
	}

	cfg := proj.Config
	out.ValidationSuccess("Configuration is valid.")
	if cfg.Project.Name != "" {
		out.SummaryItem("Project", cfg.Project.Name)
	}
	out.SummaryItem("Catalog", fmt.Sprintf("%s (%s, %s, %d devices)",
		proj.CatalogInfo.Source, proj.CatalogInfo.Edition, proj.CatalogInfo.Mode, proj.CatalogInfo.Devices))
	out.SummaryItem("Report", cfg.Report.Format)
	if len(proj.Warnings) > 0 {
		out.SummaryItem("Warnings", fmt.Sprintf("%d", len(proj.Warnings)))
	}
	return 0
}

// cmdLimits prints the regulatory tables the engine checks against.
func cmdLimits(args []string) int {
	if wantsHelp(args) {
		printLimitsUsage()
		return 0
	}
	if len(args) > 0 {
		out.ErrorPrefix("limits: unexpected argument %q", args[0])
		return errors.ExitConfigError
	}

	out.Println("Maximum earth fault loop impedance Zs (Ω), BS 7671 Table 41.3")
	out.Println("")
	headers := append([]string{"Rating"}, compliance.DeviceCurves...)
	var rows [][]string
	for _, rating := range compliance.DeviceRatings {
		row := []string{fmt.Sprintf("%dA", rating)}
		for _, curve := range compliance.DeviceCurves {
			limit, _ := compliance.MaxZs(compliance.DeviceIdentifier(curve, rating))
			row = append(row, fmt.Sprintf("%.2f", limit))
		}
		rows = append(rows, row)
	}
	out.Table(headers, rows)

	out.Println("")
	out.Println("RCD disconnection time at 1×IΔn")
	out.Println("")
	rows = nil
	for _, class := range compliance.RCDClasses {
		d, _ := compliance.RCDMaxDisconnection(class)
		rows = append(rows, []string{class, fmt.Sprintf("%dms", d.Milliseconds())})
	}
	out.Table([]string{"Rating", "Maximum"}, rows)

	out.Println("")
	out.Println("Other thresholds")
	out.Println("")
	out.Table([]string{"Check", "Limit"}, [][]string{
		{"Insulation resistance minimum", fmt.Sprintf("%.2fMΩ (fail below)", compliance.MinInsulationResistance)},
		{"Insulation resistance advisory", fmt.Sprintf("%.2fMΩ (warn below)", compliance.InsulationWarningThreshold)},
		{"Ring continuity end-to-end", fmt.Sprintf("%.2fΩ (warn above)", compliance.MaxRingContinuity)},
		{"Zs approaching limit", fmt.Sprintf("%.0f%% of the device limit (warn)", compliance.ZsWarningRatio*100)},
		{"R1+R2 plausible range", fmt.Sprintf("%g–%gΩ", compliance.MinR1R2, compliance.MaxR1R2)},
		{"PFC plausible range", fmt.Sprintf("%g–%gkA", compliance.MinPFC, compliance.MaxPFC)},
	})
	return 0
}

// cmdVersion prints version information.
func cmdVersion(args []string) int {
	if wantsHelp(args) {
		printVersionUsage()
		return 0
	}
	flags, err := parseCommandFlags("version", args, []string{"format"}, nil)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	info := version.Get()
	switch format := flags.value("format"); format {
	case "", "text":
		out.Println("voltcheck %s", info.Version)
		details := []string{info.GoVersion, info.Platform}
		if info.Commit != "" {
			details = append(details, "commit "+info.Commit)
		}
		out.Info("  %s", strings.Join(details, ", "))
		out.Info("  regulations: %s", info.Edition)
	case "json":
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			out.ErrorPrefix("%v", err)
			return errors.ExitRuntimeError
		}
		out.Println("%s", data)
	default:
		out.ErrorPrefix("version: unknown format %q (expected text or json)", format)
		return errors.ExitConfigError
	}
	return 0
}

// printConfigUsage prints the help text for the config command.
func printConfigUsage() {
	w := output.New()

	w.HelpTitle("voltcheck config - configuration utilities")

	w.HelpSection("Usage:")
	w.HelpUsage("voltcheck config <subcommand>")

	w.HelpSection("Subcommands:")
	w.HelpCommand("validate", "Validate .voltcheck/config.json and its device catalog", widthFlagShort)

	w.HelpSection("Options:")
	w.HelpFlag("-h, --help", "Show this help", widthFlagShort)

	w.HelpSection("Examples:")
	w.HelpExample("voltcheck config validate", "Validate project configuration")
	w.Println("")
}

// printLimitsUsage prints the help text for the limits command.
func printLimitsUsage() {
	w := output.New()

	w.HelpTitle("voltcheck limits - print the regulatory limit tables")

	w.HelpSection("Usage:")
	w.HelpUsage("voltcheck limits")

	w.HelpSection("Description:")
	w.Println("  Prints the built-in Zs table, the RCD disconnection times and the")
	w.Println("  thresholds used for insulation, ring continuity, R1+R2 and PFC.")

	w.HelpSection("Options:")
	w.HelpFlag("-h, --help", "Show this help", widthFlagShort)
	w.Println("")
}

// printVersionUsage prints the help text for the version command.
func printVersionUsage() {
	w := output.New()

	w.HelpTitle("voltcheck version - show version information")

	w.HelpSection("Usage:")
	w.HelpUsage("voltcheck version [--format=text|json]")

	w.HelpSection("Options:")
	w.HelpFlag("--format=<fmt>", "Output format: text or json", widthFlagWithValue)
	w.HelpFlag("-h, --help", "Show this help", widthFlagWithValue)
	w.Println("")
}
