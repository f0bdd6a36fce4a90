// Package cli provides command-line interface functionality for voltcheck.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/AndreyAkinshin/voltcheck/internal/errors"
	"github.com/AndreyAkinshin/voltcheck/internal/logging"
	"github.com/AndreyAkinshin/voltcheck/internal/output"
)

// wantsHelp returns true if args contain -h or --help before any -- separator.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
		if arg == "--" {
			return false
		}
	}
	return false
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 0
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return 0
	case "--version":
		return cmdVersion(args[1:])
	}

	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	if len(remaining) == 0 {
		printUsage()
		return 0
	}
	cmd := remaining[0]
	cmdArgs := remaining[1:]

	switch cmd {
	// Validation
	case "validate":
		return cmdValidate(cmdArgs, opts)
	case "check":
		return cmdCheck(cmdArgs, opts)
	case "conform":
		return cmdConform(cmdArgs, opts)

	// Reference data
	case "catalog":
		return cmdCatalog(cmdArgs, opts)
	case "limits":
		return cmdLimits(cmdArgs)

	// Project
	case "init":
		return cmdInit(cmdArgs)
	case "config":
		return cmdConfig(cmdArgs, opts)

	// Utility
	case "completion":
		return cmdCompletion(cmdArgs)
	case "version":
		return cmdVersion(cmdArgs)
	case "help":
		printUsage()
		return 0

	default:
		out.ErrorPrefix("unknown command %q", cmd)
		out.Errorln("run 'voltcheck help' for usage")
		return errors.ExitConfigError
	}
}

// GlobalOptions holds parsed global flags.
type GlobalOptions struct {
	Quiet    bool
	Verbose  bool
	NoColor  bool
	LogLevel string
}

// parseGlobalFlags extracts global flags from anywhere in args.
//
// Manual parsing is used instead of the stdlib flag package because global
// flags may appear before or after the command, and command flags must be
// left in place for the command to parse.
func parseGlobalFlags(args []string) (*GlobalOptions, []string, error) {
	opts := &GlobalOptions{}
	var remaining []string

	i := 0
	for i < len(args) {
		arg := args[i]

		switch {
		case arg == "-q" || arg == "--quiet":
			opts.Quiet = true
			i++
		case arg == "-v" || arg == "--verbose":
			opts.Verbose = true
			i++
		case arg == "--no-color":
			opts.NoColor = true
			i++
		case arg == "--log-level":
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("--log-level requires a value")
			}
			opts.LogLevel = args[i+1]
			i += 2
		case strings.HasPrefix(arg, "--log-level="):
			opts.LogLevel = strings.TrimPrefix(arg, "--log-level=")
			i++
		case arg == "--":
			remaining = append(remaining, args[i:]...)
			i = len(args)
		default:
			remaining = append(remaining, arg)
			i++
		}
	}

	if err := validateGlobalOptions(opts); err != nil {
		return nil, nil, err
	}

	applyGlobalOptions(opts)

	return opts, remaining, nil
}

// validateGlobalOptions checks that global options are valid.
func validateGlobalOptions(opts *GlobalOptions) error {
	if opts.Quiet && opts.Verbose {
		return fmt.Errorf("--quiet and --verbose are mutually exclusive")
	}
	if opts.LogLevel != "" {
		if _, err := logging.ParseLevel(opts.LogLevel); err != nil {
			return fmt.Errorf("invalid --log-level value %q\n  valid values: debug, info, warn, error", opts.LogLevel)
		}
	}
	return nil
}

// applyGlobalOptions configures the shared output writer. NO_COLOR is
// honoured as well as --no-color.
func applyGlobalOptions(opts *GlobalOptions) {
	out.SetQuiet(opts.Quiet)
	if opts.NoColor || os.Getenv("NO_COLOR") != "" {
		out.SetColor(false)
	}
}

func printUsage() {
	w := output.New()

	w.HelpTitle("voltcheck - electrical test result compliance checks (BS 7671)")

	w.HelpSection("Usage:")
	w.HelpUsage("voltcheck <command> [args] [options]")

	w.HelpSection("Validation Commands:")
	for _, c := range commandsInGroup(groupValidation) {
		w.HelpCommand(c.usage, c.description, widthCommand)
	}

	w.HelpSection("Reference Commands:")
	for _, c := range commandsInGroup(groupReference) {
		w.HelpCommand(c.usage, c.description, widthCommand)
	}

	w.HelpSection("Project Commands:")
	for _, c := range commandsInGroup(groupProject) {
		w.HelpCommand(c.usage, c.description, widthCommand)
	}

	w.HelpSection("Utility Commands:")
	for _, c := range commandsInGroup(groupUtility) {
		w.HelpCommand(c.usage, c.description, widthCommand)
	}

	printGlobalFlags(w)

	w.HelpSection("Examples:")
	w.HelpExample("voltcheck validate records/", "Validate every record file in a directory")
	w.HelpExample("voltcheck validate schedule.xlsx --format=xlsx --out=report.xlsx", "Write a spreadsheet report")
	w.HelpExample("voltcheck check --zs=1.5 --device=B32", "Check a single reading")
	w.HelpExample("voltcheck catalog lookup C16", "Show the Zs limit of a device")
	w.Println("")
}

func printGlobalFlags(w *output.Writer) {
	w.HelpSection("Global Flags:")
	w.HelpFlag("-q, --quiet", "Minimal output (errors and results only)", widthFlagWithValue)
	w.HelpFlag("-v, --verbose", "Maximum detail (debug logging)", widthFlagWithValue)
	w.HelpFlag("--log-level=<lvl>", "Diagnostic log level (debug, info, warn, error)", widthFlagWithValue)
	w.HelpFlag("--no-color", "Disable colored output", widthFlagWithValue)
	w.HelpFlag("-h, --help", "Show this help", widthFlagWithValue)
	w.HelpFlag("--version", "Show version", widthFlagWithValue)

	w.HelpSection("Environment:")
	w.HelpEnvVar("VOLTCHECK_PARALLEL=<n>", "Number of records validated concurrently (1-256)", 22)
	w.HelpEnvVar("NO_COLOR=1", "Disable colored output", 22)
}
