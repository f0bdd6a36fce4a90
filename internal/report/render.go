package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/voltcheck/internal/output"
	"github.com/AndreyAkinshin/voltcheck/pkg/compliance"
)

// Formats lists the supported report formats.
var Formats = []string{"text", "json", "yaml", "xlsx"}

// Binary reports whether a format must not be written to a terminal.
func Binary(format string) bool {
	return format == "xlsx"
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(r)
}

// WriteYAML writes the report as YAML.
func WriteYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// Write renders r in the named format. Text goes through out; the other
// formats are written to w.
func Write(format string, w io.Writer, out *output.Writer, r *Report, showPassing bool) error {
	switch format {
	case "text", "":
		WriteText(out, r, showPassing)
		return nil
	case "json":
		return WriteJSON(w, r)
	case "yaml":
		return WriteYAML(w, r)
	case "xlsx":
		return WriteXLSX(w, r)
	}
	return fmt.Errorf("unknown report format %q (expected %s)", format, strings.Join(Formats, ", "))
}

// WriteText prints a human-readable report. Passing fields are listed only
// with showPassing; passing circuits always get their verdict line.
func WriteText(out *output.Writer, r *Report, showPassing bool) {
	for _, it := range r.Items {
		label := it.Circuit
		if it.Description != "" {
			label += " (" + it.Description + ")"
		}
		out.CircuitVerdict(label, it.Verdict)
		for _, e := range it.Results.Entries() {
			if e.Result.Level != compliance.Pass || showPassing {
				out.FieldResult(e.Field, e.Result)
			}
		}
	}

	if failing := r.Failing(); len(failing) > 0 {
		out.SummaryHeader("Critical Issues")
		for _, it := range failing {
			out.Println("  %s", it.Circuit)
			for _, msg := range it.Verdict.CriticalIssues {
				out.CriticalIssue(msg)
			}
		}
	}

	out.SummaryHeader("Summary")
	if r.Project != "" {
		out.SummaryItem("Project", r.Project)
	}
	if r.Site != "" {
		out.SummaryItem("Site", r.Site)
	}
	out.SummaryItem("Catalog", fmt.Sprintf("%s (%s, %d devices)", r.Catalog.Source, r.Catalog.Edition, r.Catalog.Devices))
	out.SummaryItem("Report ID", r.ID)
	out.SummaryItem("Circuits", fmt.Sprint(r.Summary.Total))
	out.SummaryLevel("Passed", compliance.Pass, r.Summary.Passed)
	out.SummaryLevel("Warnings", compliance.Warning, r.Summary.Warnings)
	out.SummaryLevel("Failed", compliance.Fail, r.Summary.Failed)

	switch r.Status {
	case compliance.Pass:
		out.FinalSuccess("All %d circuits compliant", r.Summary.Total)
	case compliance.Warning:
		out.FinalWarning("%d of %d circuits need attention", r.Summary.Warnings, r.Summary.Total)
	default:
		out.FinalFailure("%d of %d circuits non-compliant", r.Summary.Failed, r.Summary.Total)
	}
}

// abbreviations keep their conventional spelling in headings.
var abbreviations = map[string]string{
	"r1r2": "R1+R2",
	"rcd":  "RCD",
	"pfc":  "PFC",
	"zs":   "Zs",
}

// ColumnTitle turns a record key such as "insulationLiveEarth" into a
// heading such as "Insulation Live Earth".
func ColumnTitle(key string) string {
	caser := cases.Title(language.BritishEnglish)
	words := splitCamel(key)
	for i, w := range words {
		if a, ok := abbreviations[strings.ToLower(w)]; ok {
			words[i] = a
		} else {
			words[i] = caser.String(w)
		}
	}
	return strings.Join(words, " ")
}

func splitCamel(s string) []string {
	var words []string
	runes := []rune(s)
	start := 0
	for i := 1; i < len(runes); i++ {
		if unicode.IsUpper(runes[i]) && !unicode.IsUpper(runes[i-1]) {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	return append(words, string(runes[start:]))
}
