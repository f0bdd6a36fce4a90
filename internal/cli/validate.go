package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/voltcheck/internal/errors"
	"github.com/AndreyAkinshin/voltcheck/internal/output"
	"github.com/AndreyAkinshin/voltcheck/internal/records"
	"github.com/AndreyAkinshin/voltcheck/internal/report"
	"github.com/AndreyAkinshin/voltcheck/internal/runner"
)

// validateOptions holds parsed validate command options.
type validateOptions struct {
	Paths       []string
	Format      string
	Out         string
	Sheet       string
	HeaderRow   int
	Strict      bool
	ShowPassing bool
}

// cmdValidate validates record files and prints or writes a report.
func cmdValidate(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printValidateUsage()
		return 0
	}

	flags, err := parseCommandFlags("validate", args,
		[]string{"format", "out", "catalog", "sheet", "header-row"},
		[]string{"strict", "show-passing"})
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}
	if len(flags.args) == 0 {
		out.ErrorPrefix("validate: at least one record file or directory is required")
		out.Errorln("usage: voltcheck validate <path>... [--format=text|json|yaml|xlsx] [--out=<path>]")
		return errors.ExitConfigError
	}

	proj, logger, exitCode := loadProject(opts)
	if proj == nil {
		return exitCode
	}
	if code := useCatalogFlag(proj, flags.value("catalog"), logger); code != 0 {
		return code
	}

	cfg := proj.Config
	vo := validateOptions{
		Paths:       flags.args,
		Format:      cfg.Report.Format,
		Out:         flags.value("out"),
		Sheet:       cfg.Input.Sheet,
		HeaderRow:   cfg.Input.HeaderRow,
		Strict:      cfg.Report.Strict,
		ShowPassing: cfg.Report.ShowPassing || (opts != nil && opts.Verbose),
	}
	if flags.has("format") {
		vo.Format = flags.value("format")
	}
	if flags.has("sheet") {
		vo.Sheet = flags.value("sheet")
	}
	if flags.has("header-row") {
		n, err := strconv.Atoi(flags.value("header-row"))
		if err != nil || n < 1 {
			out.ErrorPrefix("validate: --header-row must be a positive integer, got %q", flags.value("header-row"))
			return errors.ExitConfigError
		}
		vo.HeaderRow = n
	}
	if flags.boolSet("strict") {
		vo.Strict = flags.bool("strict")
	}
	if flags.boolSet("show-passing") {
		vo.ShowPassing = flags.bool("show-passing")
	}

	if !slices.Contains(report.Formats, vo.Format) {
		out.ErrorPrefix("validate: unknown format %q (expected %s)", vo.Format, strings.Join(report.Formats, ", "))
		return errors.ExitConfigError
	}
	if report.Binary(vo.Format) && vo.Out == "" {
		out.ErrorPrefix("validate: --format=%s requires --out=<path>", vo.Format)
		return errors.ExitConfigError
	}

	entries, err := records.Load(vo.Paths, records.Options{
		Sheet:     vo.Sheet,
		HeaderRow: vo.HeaderRow,
		Logger:    logger,
	})
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	outcomes, err := runner.Run(ctx, entries, proj.Catalog, runner.Options{
		Workers: cfg.Parallel,
		Logger:  logger,
	})
	if err != nil {
		out.ErrorPrefix("validate: %v", err)
		return errors.ExitRuntimeError
	}

	rep, err := report.Build(outcomes, report.Meta{
		Project:   cfg.Project.Name,
		Site:      cfg.Project.Site,
		Inspector: cfg.Project.Inspector,
		Catalog:   proj.CatalogInfo,
	})
	if err != nil {
		out.ErrorPrefix("validate: %v", err)
		return errors.ExitRuntimeError
	}
	logger.Info("validated records",
		zap.Int("circuits", rep.Summary.Total),
		zap.Stringer("status", rep.Status),
		zap.String("report_id", rep.ID))

	if err := writeReport(vo, rep); err != nil {
		out.ErrorPrefix("validate: %v", err)
		return errors.ExitRuntimeError
	}

	return exitCodeFor(rep.Status, vo.Strict)
}

// writeReport renders rep to stdout, or to vo.Out when set.
func writeReport(vo validateOptions, rep *report.Report) error {
	if vo.Out == "" {
		return report.Write(vo.Format, out.Out(), out, rep, vo.ShowPassing)
	}

	// The report replaces --out only once it is complete.
	f, err := os.CreateTemp(filepath.Dir(vo.Out), "."+filepath.Base(vo.Out)+".*")
	if err != nil {
		return err
	}
	tmpPath := f.Name()
	err = report.Write(vo.Format, f, output.NewWithWriters(f, out.Err(), false), rep, vo.ShowPassing)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmpPath, 0644)
	}
	if err == nil {
		err = os.Rename(tmpPath, vo.Out)
	}
	if err != nil {
		os.Remove(tmpPath)
		return err
	}

	out.Info("%s report written to %s (%s)", strings.ToUpper(vo.Format), vo.Out, summaryLine(rep))
	return nil
}

func summaryLine(rep *report.Report) string {
	return fmt.Sprintf("%d circuits: %d passed, %d warnings, %d failed",
		rep.Summary.Total, rep.Summary.Passed, rep.Summary.Warnings, rep.Summary.Failed)
}

// printValidateUsage prints the help text for the validate command.
func printValidateUsage() {
	w := output.New()

	w.HelpTitle("voltcheck validate - validate circuit test records")

	w.HelpSection("Usage:")
	w.HelpUsage("voltcheck validate <path>... [options]")

	w.HelpSection("Description:")
	w.Println("  Reads test records from JSON, YAML or XLSX schedule-of-tests files")
	w.Println("  (directories are searched recursively), validates every circuit")
	w.Println("  against BS 7671 limits and reports the results.")

	w.HelpSection("Options:")
	w.HelpFlag("--format=<fmt>", "Report format: text, json, yaml or xlsx", widthFlagWithValue)
	w.HelpFlag("--out=<path>", "Write the report to a file (required for xlsx)", widthFlagWithValue)
	w.HelpFlag("--catalog=<path>", "Protective device catalog (YAML or JSON)", widthFlagWithValue)
	w.HelpFlag("--sheet=<name>", "Worksheet to read from XLSX files", widthFlagWithValue)
	w.HelpFlag("--header-row=<n>", "Row holding the XLSX column headings", widthFlagWithValue)
	w.HelpFlag("--strict", "Treat warnings as non-compliant", widthFlagWithValue)
	w.HelpFlag("--show-passing", "List passing fields as well", widthFlagWithValue)
	w.HelpFlag("-h, --help", "Show this help", widthFlagWithValue)

	w.HelpSection("Exit Codes:")
	w.HelpCommand("0", "Every circuit compliant (warnings allowed unless --strict)", 2)
	w.HelpCommand("1", "At least one circuit non-compliant", 2)
	w.HelpCommand("2", "Invalid configuration, catalog or options", 2)
	w.HelpCommand("3", "Record files missing or unreadable", 2)

	w.HelpSection("Examples:")
	w.HelpExample("voltcheck validate records/", "Validate all record files in a directory")
	w.HelpExample("voltcheck validate board.json --strict", "Fail on warnings too")
	w.HelpExample("voltcheck validate schedule.xlsx --format=xlsx --out=report.xlsx", "Write a spreadsheet report")
	w.Println("")
}
