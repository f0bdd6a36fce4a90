package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/AndreyAkinshin/voltcheck/pkg/compliance"
)

// newTestWriter creates a Writer with captured output for testing.
func newTestWriter() (*Writer, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	w := &Writer{
		out:   stdout,
		err:   stderr,
		color: false,
		quiet: false,
	}
	return w, stdout, stderr
}

func TestNew(t *testing.T) {
	w := New()
	if w == nil {
		t.Fatal("New() returned nil")
	}
	if w.out == nil || w.err == nil {
		t.Error("New() left a nil writer")
	}
}

func TestWriter_PrintAndError(t *testing.T) {
	w, stdout, stderr := newTestWriter()

	w.Print("hello %s", "world")
	w.Println("!")
	w.Error("error %d", 42)
	w.Errorln("")

	if got := stdout.String(); got != "hello world!\n" {
		t.Errorf("stdout = %q, want %q", got, "hello world!\n")
	}
	if got := stderr.String(); got != "error 42\n" {
		t.Errorf("stderr = %q, want %q", got, "error 42\n")
	}
}

func TestWriter_Info(t *testing.T) {
	tests := []struct {
		name   string
		quiet  bool
		expect string
	}{
		{"normal mode", false, "info message\n"},
		{"quiet mode", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, stdout, _ := newTestWriter()
			w.SetQuiet(tt.quiet)

			w.Info("info %s", "message")

			if got := stdout.String(); got != tt.expect {
				t.Errorf("Info() = %q, want %q", got, tt.expect)
			}
		})
	}
}

func TestWriter_Success(t *testing.T) {
	w, stdout, _ := newTestWriter()
	w.Success("done")
	if got := stdout.String(); got != "done\n" {
		t.Errorf("Success() = %q, want %q", got, "done\n")
	}

	w, stdout, _ = newTestWriter()
	w.SetColor(true)
	w.Success("done")
	if got := stdout.String(); got != green+"done"+reset+"\n" {
		t.Errorf("Success() with color = %q", got)
	}
}

func TestWriter_WarningAndErrorPrefix(t *testing.T) {
	w, stdout, stderr := newTestWriter()

	w.Warning("unknown field %q", "colour")
	w.ErrorPrefix("cannot read %s", "a.json")

	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
	want := "warning: unknown field \"colour\"\nvoltcheck: cannot read a.json\n"
	if got := stderr.String(); got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
}

func TestWriter_Section(t *testing.T) {
	w, stdout, _ := newTestWriter()
	w.Section("Catalog")
	if got := stdout.String(); got != "\n=== Catalog ===\n" {
		t.Errorf("Section() = %q", got)
	}

	w, stdout, _ = newTestWriter()
	w.SetQuiet(true)
	w.Section("Catalog")
	if stdout.Len() != 0 {
		t.Errorf("Section() in quiet mode = %q, want empty", stdout.String())
	}
}

func TestWriter_List(t *testing.T) {
	w, stdout, _ := newTestWriter()
	w.List([]string{"B32", "C16"})
	if got := stdout.String(); got != "  - B32\n  - C16\n" {
		t.Errorf("List() = %q", got)
	}
}

func TestWriter_Table(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.Table([]string{"Device", "Max Zs (Ω)"}, [][]string{
		{"B6", "7.28"},
		{"B125", "0.35"},
	})

	lines := strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n")
	want := []string{
		"Device  Max Zs (Ω)",
		"------  ----------",
		"B6      7.28",
		"B125    0.35",
	}
	if len(lines) != len(want) {
		t.Fatalf("Table() printed %d lines, want %d:\n%s", len(lines), len(want), stdout.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWriter_LevelBadge(t *testing.T) {
	w, _, _ := newTestWriter()
	tests := map[compliance.Level]string{
		compliance.Pass:    "PASS",
		compliance.Warning: "WARN",
		compliance.Fail:    "FAIL",
	}
	for l, want := range tests {
		if got := w.LevelBadge(l); got != want {
			t.Errorf("LevelBadge(%v) = %q, want %q", l, got, want)
		}
	}

	w.SetColor(true)
	if got := w.LevelBadge(compliance.Fail); got != red+"FAIL"+reset {
		t.Errorf("LevelBadge(fail) with color = %q", got)
	}
}

func TestWriter_CircuitOutput(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.CircuitVerdict("Kitchen ring", compliance.ComplianceVerdict{Status: compliance.Fail})
	w.FieldResult(compliance.FieldZs, compliance.ValidateZs("1.5", "B32", compliance.DefaultCatalog()))
	w.CriticalIssue("Zs too high")

	out := stdout.String()
	for _, want := range []string{"FAIL  Kitchen ring\n", "    zs ", "[suggested 1.37]", "    x Zs too high\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriter_Summary(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.SummaryHeader("Summary")
	w.SummaryItem("Records", "3")
	w.SummaryLevel("Failed", compliance.Fail, 1)
	w.FinalFailure("%d of %d circuits failed", 1, 3)

	want := "\n=== Summary ===\n\n  Records: 3\n  Failed: 1\n\n1 of 3 circuits failed\n"
	if got := stdout.String(); got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
}

func TestWriter_HelpFormatting(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.HelpTitle("voltcheck")
	w.HelpSection("Commands:")
	w.HelpCommand("validate <path>", "Validate test records", 16)
	w.HelpFlag("--strict", "Treat warnings as failures", 16)
	w.HelpEnvVar("VOLTCHECK_PARALLEL", "Worker count", 18)
	w.HelpUsage("voltcheck <command>")
	w.HelpExample("voltcheck limits", "Print the limit tables")

	out := stdout.String()
	for _, want := range []string{
		"voltcheck\n",
		"\nCommands:\n",
		"  validate <path>   Validate test records\n",
		"  --strict          Treat warnings as failures\n",
		"  VOLTCHECK_PARALLEL  Worker count\n",
		"  voltcheck <command>\n",
		"  voltcheck limits\n      Print the limit tables\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q:\n%s", want, out)
		}
	}
}

func TestWriter_ColorPlaceholders(t *testing.T) {
	w, _, _ := newTestWriter()
	got := w.colorPlaceholders("validate <path> --out=<file")
	want := "validate " + reset + colorPlaceholder + "<path>" + reset + " --out=<file"
	if got != want {
		t.Errorf("colorPlaceholders() = %q, want %q", got, want)
	}
}
