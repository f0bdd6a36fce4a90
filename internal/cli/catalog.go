package cli

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/voltcheck/internal/catalog"
	"github.com/AndreyAkinshin/voltcheck/internal/errors"
	"github.com/AndreyAkinshin/voltcheck/internal/output"
	"github.com/AndreyAkinshin/voltcheck/pkg/compliance"
)

var catalogFormats = []string{"text", "json", "yaml"}

// catalogListing is the machine-readable output of "catalog list". Devices
// use the catalog file layout.
type catalogListing struct {
	Catalog catalog.Info     `json:"catalog" yaml:"catalog"`
	Devices []catalog.Device `json:"devices" yaml:"devices"`
}

// cmdCatalog lists the device catalog in effect or looks up one device.
func cmdCatalog(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printCatalogUsage()
		return 0
	}

	flags, err := parseCommandFlags("catalog", args, []string{"catalog", "format"}, nil)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}
	format := "text"
	if flags.has("format") {
		format = flags.value("format")
	}
	if !slices.Contains(catalogFormats, format) {
		out.ErrorPrefix("catalog: unknown format %q (expected %s)", format, strings.Join(catalogFormats, ", "))
		return errors.ExitConfigError
	}

	sub := "list"
	rest := flags.args
	if len(rest) > 0 {
		sub, rest = rest[0], rest[1:]
	}
	switch sub {
	case "list":
		if len(rest) > 0 {
			out.ErrorPrefix("catalog list: unexpected argument %q", rest[0])
			return errors.ExitConfigError
		}
	case "lookup":
		if len(rest) != 1 {
			out.ErrorPrefix("catalog lookup: exactly one device identifier is required")
			out.Errorln("usage: voltcheck catalog lookup <id>")
			return errors.ExitConfigError
		}
	default:
		out.ErrorPrefix("catalog: unknown subcommand %q", sub)
		out.Errorln("usage: voltcheck catalog [list|lookup <id>]")
		return errors.ExitConfigError
	}

	proj, logger, exitCode := loadProject(opts)
	if proj == nil {
		return exitCode
	}
	if code := useCatalogFlag(proj, flags.value("catalog"), logger); code != 0 {
		return code
	}

	if sub == "lookup" {
		return catalogLookup(proj.Catalog, rest[0], format)
	}

	listing := catalogListing{Catalog: proj.CatalogInfo, Devices: catalog.FromEntries(proj.Catalog.Entries())}
	if format != "text" {
		if err := encode(format, listing); err != nil {
			out.ErrorPrefix("catalog: %v", err)
			return errors.ExitRuntimeError
		}
		return 0
	}

	out.Info("%s (%s, %s, %d devices)", listing.Catalog.Source, listing.Catalog.Edition, listing.Catalog.Mode, listing.Catalog.Devices)
	rows := make([][]string, 0, len(listing.Devices))
	for _, d := range listing.Devices {
		rows = append(rows, []string{d.Identifier, formatOhms(d.ZsLimit)})
	}
	out.Table([]string{"Device", "Max Zs"}, rows)
	return 0
}

func catalogLookup(c *compliance.Catalog, id, format string) int {
	d, ok := c.Lookup(id)
	if !ok {
		err := errors.NotFound("protective device", strings.TrimSpace(id))
		out.ErrorPrefix("%v", err)
		out.Hint("Identifiers are case-sensitive; run 'voltcheck catalog list' to see them")
		return errors.GetExitCode(err)
	}
	if format != "text" {
		if err := encode(format, catalog.FromEntries([]compliance.DeviceEntry{d})[0]); err != nil {
			out.ErrorPrefix("catalog: %v", err)
			return errors.ExitRuntimeError
		}
		return 0
	}
	out.Println("%s: maximum Zs %s", d.Identifier, formatOhms(d.ZsLimit))
	return 0
}

// encode writes v to stdout as indented JSON or YAML.
func encode(format string, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(out.Out())
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(out.Out())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func formatOhms(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "Ω"
}

// printCatalogUsage prints the help text for the catalog command.
func printCatalogUsage() {
	w := output.New()

	w.HelpTitle("voltcheck catalog - show protective device Zs limits")

	w.HelpSection("Usage:")
	w.HelpUsage("voltcheck catalog [list|lookup <id>] [options]")

	w.HelpSection("Subcommands:")
	w.HelpCommand("list", "List every device in the catalog (default)", 14)
	w.HelpCommand("lookup <id>", "Show the maximum Zs of one device", 14)

	w.HelpSection("Options:")
	w.HelpFlag("--catalog=<path>", "Protective device catalog (YAML or JSON)", widthFlagWithValue)
	w.HelpFlag("--format=<fmt>", "Output format: text, json or yaml", widthFlagWithValue)
	w.HelpFlag("-h, --help", "Show this help", widthFlagWithValue)

	w.HelpSection("Examples:")
	w.HelpExample("voltcheck catalog", "List the catalog in effect")
	w.HelpExample("voltcheck catalog lookup C16", "Show the Zs limit of a C16 breaker")
	w.HelpExample("voltcheck catalog --catalog=devices.yaml --format=json", "List a custom catalog as JSON")
	w.Println("")
}
