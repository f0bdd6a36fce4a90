package cli

import (
	"slices"
	"strings"

	"github.com/AndreyAkinshin/voltcheck/internal/errors"
	"github.com/AndreyAkinshin/voltcheck/internal/output"
	"github.com/AndreyAkinshin/voltcheck/pkg/compliance"
)

var checkFormats = []string{"text", "json", "yaml"}

// checkResult is the machine-readable output of the check command.
type checkResult struct {
	Record  compliance.TestRecord            `json:"record" yaml:"record"`
	Results compliance.TestValidationResults `json:"results" yaml:"results"`
	Verdict compliance.ComplianceVerdict     `json:"verdict" yaml:"verdict"`
}

// cmdCheck validates a single record given as command-line flags.
func cmdCheck(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printCheckUsage()
		return 0
	}

	fields := recordFlags()
	valueFlags := []string{"device", "catalog", "format"}
	for name := range fields {
		valueFlags = append(valueFlags, name)
	}
	flags, err := parseCommandFlags("check", args, valueFlags, []string{"strict"})
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}
	if len(flags.args) > 0 {
		out.ErrorPrefix("check: unexpected argument %q", flags.args[0])
		out.Errorln("usage: voltcheck check [--device=<id>] [--<field>=<value>]...")
		return errors.ExitConfigError
	}

	var record compliance.TestRecord
	for name, key := range fields {
		if flags.has(name) {
			record.Set(key, flags.value(name))
		}
	}
	if flags.has("device") {
		if flags.has("protective-device") {
			out.ErrorPrefix("check: --device and --protective-device are the same field; give one")
			return errors.ExitConfigError
		}
		record.ProtectiveDevice = flags.value("device")
	}

	format := "text"
	if flags.has("format") {
		format = flags.value("format")
	}
	if !slices.Contains(checkFormats, format) {
		out.ErrorPrefix("check: unknown format %q (expected %s)", format, strings.Join(checkFormats, ", "))
		return errors.ExitConfigError
	}

	proj, logger, exitCode := loadProject(opts)
	if proj == nil {
		return exitCode
	}
	if code := useCatalogFlag(proj, flags.value("catalog"), logger); code != 0 {
		return code
	}
	strict := proj.Config.Report.Strict
	if flags.boolSet("strict") {
		strict = flags.bool("strict")
	}

	results, verdict := compliance.Check(record, proj.Catalog)
	logger.Debug("checked record")

	res := checkResult{Record: record, Results: results, Verdict: verdict}
	if format != "text" {
		if err := encode(format, res); err != nil {
			out.ErrorPrefix("check: %v", err)
			return errors.ExitRuntimeError
		}
	} else {
		printCheckText(res)
	}

	return exitCodeFor(verdict.Status, strict)
}

func printCheckText(res checkResult) {
	circuit := "record"
	if res.Record.ProtectiveDevice != "" {
		circuit = "record (" + strings.TrimSpace(res.Record.ProtectiveDevice) + ")"
	}
	out.CircuitVerdict(circuit, res.Verdict)
	for _, e := range res.Results.Entries() {
		out.FieldResult(e.Field, e.Result)
	}

	if len(res.Verdict.CriticalIssues) > 0 {
		out.SummaryHeader("Critical Issues")
		for _, msg := range res.Verdict.CriticalIssues {
			out.CriticalIssue(msg)
		}
	}

	switch res.Verdict.Status {
	case compliance.Pass:
		out.FinalSuccess("Compliant")
	case compliance.Warning:
		out.FinalWarning("Compliant with warnings")
	default:
		out.FinalFailure("Non-compliant: %d critical issues", len(res.Verdict.CriticalIssues))
	}
}

// printCheckUsage prints the help text for the check command.
func printCheckUsage() {
	w := output.New()

	w.HelpTitle("voltcheck check - validate a single test record")

	w.HelpSection("Usage:")
	w.HelpUsage("voltcheck check [--device=<id>] [--<field>=<value>]... [options]")

	w.HelpSection("Description:")
	w.Println("  Validates one circuit's readings given on the command line and")
	w.Println("  prints the result of every field. Fields left out are treated")
	w.Println("  as not tested.")

	w.HelpSection("Fields:")
	for _, key := range compliance.RecordKeys() {
		w.HelpFlag("--"+flagName(key)+"=<v>", fieldDescriptions[key], widthFlagWithValue+6)
	}

	w.HelpSection("Options:")
	w.HelpFlag("--device=<id>", "Alias of --protective-device", widthFlagWithValue)
	w.HelpFlag("--catalog=<path>", "Protective device catalog (YAML or JSON)", widthFlagWithValue)
	w.HelpFlag("--format=<fmt>", "Output format: text, json or yaml", widthFlagWithValue)
	w.HelpFlag("--strict", "Treat warnings as non-compliant", widthFlagWithValue)
	w.HelpFlag("-h, --help", "Show this help", widthFlagWithValue)

	w.HelpSection("Examples:")
	w.HelpExample("voltcheck check --zs=1.2 --device=B32", "Check an earth fault loop impedance")
	w.HelpExample("voltcheck check --rcd-rating=30mA --rcd-one-x=28", "Check an RCD trip time")
	w.HelpExample("voltcheck check --insulation-live-earth='>999' --format=json", "JSON output")
	w.Println("")
}

var fieldDescriptions = map[string]string{
	"r1r2":                   "R1+R2 continuity (Ω)",
	"ringContinuityLive":     "Ring end-to-end, line r1 (Ω)",
	"ringContinuityNeutral":  "Ring end-to-end, neutral rn (Ω)",
	"insulationLiveNeutral":  "Insulation L-N (MΩ)",
	"insulationLiveEarth":    "Insulation L-E (MΩ)",
	"insulationNeutralEarth": "Insulation N-E (MΩ)",
	"polarity":               "Polarity (✓ or ✗)",
	"zs":                     "Earth fault loop impedance (Ω)",
	"protectiveDevice":       "Protective device, e.g. B32",
	"rcdRating":              "RCD rated residual current, e.g. 30mA",
	"rcdOneX":                "RCD trip time at 1×IΔn (ms)",
	"pfcLiveNeutral":         "Prospective fault current L-N (kA)",
	"pfcLiveEarth":           "Prospective fault current L-E (kA)",
	"functionalTesting":      "Functional testing (✓ or ✗)",
}
