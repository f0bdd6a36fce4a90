package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/voltcheck/internal/conformance"
	"github.com/AndreyAkinshin/voltcheck/internal/errors"
	"github.com/AndreyAkinshin/voltcheck/internal/output"
	"github.com/AndreyAkinshin/voltcheck/pkg/compliance"
)

// cmdConform runs reference cases against the compliance engine.
func cmdConform(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printConformUsage()
		return 0
	}

	flags, err := parseCommandFlags("conform", args, []string{"pattern", "catalog"}, nil)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}
	if len(flags.args) > 1 {
		out.ErrorPrefix("conform: expected at most one directory, got %d", len(flags.args))
		return errors.ExitConfigError
	}

	proj, logger, exitCode := loadProject(opts)
	if proj == nil {
		return exitCode
	}
	if code := useCatalogFlag(proj, flags.value("catalog"), logger); code != 0 {
		return code
	}

	dir := proj.Resolve(proj.Config.Conformance.Directory)
	if len(flags.args) == 1 {
		dir, err = filepath.Abs(flags.args[0])
		if err != nil {
			out.ErrorPrefix("conform: %v", err)
			return errors.ExitInputError
		}
	}
	pattern := proj.Config.Conformance.Pattern
	if flags.has("pattern") {
		pattern = flags.value("pattern")
	}

	cases, err := conformance.LoadSuite(dir, pattern)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	if len(cases) == 0 {
		out.ErrorPrefix("conform: no reference cases matching %q in %s", pattern, dir)
		return errors.ExitInputError
	}
	logger.Debug("loaded reference cases", zap.String("dir", dir), zap.Int("cases", len(cases)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	suites, err := conformance.Run(ctx, cases, proj.Catalog, logger)
	if err != nil {
		out.ErrorPrefix("conform: %v", err)
		return errors.ExitRuntimeError
	}

	printConformResults(suites)

	if _, failed := conformance.Totals(suites); failed > 0 {
		return errors.ExitFailure
	}
	return errors.ExitSuccess
}

func printConformResults(suites []conformance.SuiteResult) {
	for _, s := range suites {
		name := s.Suite
		if name == "" {
			name = "."
		}
		out.Section(name)
		for _, r := range s.Results {
			switch {
			case r.Error != nil:
				out.Println("  %s  %s: %v", out.LevelBadge(compliance.Fail), r.Case.Name, r.Error)
			case r.Passed:
				out.Info("  %s  %s", out.LevelBadge(compliance.Pass), r.Case.Name)
			default:
				out.Println("  %s  %s", out.LevelBadge(compliance.Fail), r.Case.Name)
				for _, line := range strings.Split(strings.TrimRight(r.Diff, "\n"), "\n") {
					out.Println("        %s", line)
				}
			}
		}
	}

	passed, failed := conformance.Totals(suites)
	out.SummaryHeader("Reference Cases")
	out.SummaryItem("Suites", strconv.Itoa(len(suites)))
	out.SummaryLevel("Passed", compliance.Pass, passed)
	out.SummaryLevel("Failed", compliance.Fail, failed)
	if failed > 0 {
		out.FinalFailure("%d of %d reference cases failed", failed, passed+failed)
		return
	}
	out.FinalSuccess("All %d reference cases passed", passed)
}

// printConformUsage prints the help text for the conform command.
func printConformUsage() {
	w := output.New()

	w.HelpTitle("voltcheck conform - run reference cases against the engine")

	w.HelpSection("Usage:")
	w.HelpUsage("voltcheck conform [<dir>] [options]")

	w.HelpSection("Description:")
	w.Println("  Loads JSON reference cases (a record, optional devices and the")
	w.Println("  expected outcome) and checks the engine produces that outcome.")
	w.Println("  Subdirectories become suites. Without <dir> the conformance")
	w.Println("  directory from the project configuration is used.")

	w.HelpSection("Options:")
	w.HelpFlag("--pattern=<glob>", "Case file pattern (default **/*.json)", widthFlagWithValue)
	w.HelpFlag("--catalog=<path>", "Fallback device catalog (YAML or JSON)", widthFlagWithValue)
	w.HelpFlag("-h, --help", "Show this help", widthFlagWithValue)

	w.HelpSection("Examples:")
	w.HelpExample("voltcheck conform", "Run the project's reference cases")
	w.HelpExample("voltcheck conform cases/ --pattern='zs/*.json'", "Run one suite")
	w.Println("")
}
