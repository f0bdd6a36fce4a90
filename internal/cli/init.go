package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/AndreyAkinshin/voltcheck/internal/config"
	"github.com/AndreyAkinshin/voltcheck/internal/errors"
	"github.com/AndreyAkinshin/voltcheck/internal/output"
	"github.com/AndreyAkinshin/voltcheck/internal/project"
)

// gitignoreMarker opens the block of entries init adds to .gitignore.
const gitignoreMarker = "# voltcheck"

// cmdInit initializes a voltcheck project in the current directory or
// fills in what an existing one is missing. Without --force an existing
// config.json is left untouched.
func cmdInit(args []string) int {
	if wantsHelp(args) {
		printInitUsage()
		return 0
	}

	flags, err := parseCommandFlags("init", args, []string{"name", "site", "inspector"}, []string{"force"})
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}
	if len(flags.args) > 0 {
		out.ErrorPrefix("init: unexpected argument %q", flags.args[0])
		return errors.ExitConfigError
	}

	cwd, err := os.Getwd()
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitRuntimeError
	}

	configDir := filepath.Join(cwd, project.ConfigDirName)
	configPath := filepath.Join(configDir, project.ConfigFileName)

	var created []string
	isNewProject := false

	if err := os.MkdirAll(configDir, 0755); err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitRuntimeError
	}

	var cfg *config.Config
	_, statErr := os.Stat(configPath)
	if os.IsNotExist(statErr) || flags.bool("force") {
		isNewProject = true
		name := flags.value("name")
		if name == "" {
			name = sanitizeProjectName(filepath.Base(cwd))
		}
		cfg = &config.Config{
			Project: config.ProjectConfig{
				Name:      name,
				Site:      flags.value("site"),
				Inspector: flags.value("inspector"),
			},
			Report: &config.ReportConfig{Format: "text"},
		}

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			out.ErrorPrefix("%v", err)
			return errors.ExitRuntimeError
		}
		data = append(data, '\n')

		if err := os.WriteFile(configPath, data, 0644); err != nil {
			out.ErrorPrefix("%v", err)
			return errors.ExitInputError
		}
		created = append(created, project.ConfigDirName+"/"+project.ConfigFileName)
	} else {
		cfg, _, err = config.LoadAndValidate(configPath)
		if err != nil {
			out.ErrorPrefix("error loading config: %v", err)
			return errors.ExitConfigError
		}
	}

	for _, dir := range []string{"records", config.DefaultConformanceDirectory} {
		path := filepath.Join(cwd, dir)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.MkdirAll(path, 0755); err != nil {
				out.Warning("could not create %s directory: %v", dir, err)
			} else {
				created = append(created, dir+"/")
			}
		}
	}

	if updateGitignore(cwd) {
		created = append(created, ".gitignore entries")
	}

	out.Println("")
	if isNewProject {
		out.Success("Initialized voltcheck project: %s", cfg.Project.Name)
	} else if len(created) > 0 {
		out.Success("Updated voltcheck project")
	} else {
		out.Info("Project already initialized (nothing to do)")
	}

	if len(created) > 0 {
		out.HelpSection("Created:")
		out.List(created)
	}

	if isNewProject {
		printNextSteps(out)
	}

	return 0
}

// sanitizeProjectName converts a directory name to a valid project name.
func sanitizeProjectName(name string) string {
	name = strings.ToLower(name)

	var result strings.Builder
	prevHyphen := false
	for _, c := range name {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			result.WriteRune(c)
			prevHyphen = false
		} else if !prevHyphen && result.Len() > 0 {
			result.WriteRune('-')
			prevHyphen = true
		}
	}

	s := strings.TrimSuffix(result.String(), "-")

	// Ensure it starts with a letter
	if len(s) > 0 && s[0] >= '0' && s[0] <= '9' {
		s = "project-" + s
	}

	if s == "" {
		s = "my-project"
	}

	return s
}

// updateGitignore adds voltcheck entries to .gitignore and reports whether
// the file changed.
func updateGitignore(root string) bool {
	gitignorePath := filepath.Join(root, ".gitignore")

	entries := []string{
		gitignoreMarker,
		"reports/",
		"*.report.xlsx",
	}

	existingContent := ""
	if data, err := os.ReadFile(gitignorePath); err == nil {
		existingContent = string(data)
	}

	if strings.Contains(existingContent, gitignoreMarker) {
		return false
	}

	var content strings.Builder
	if existingContent != "" {
		content.WriteString(existingContent)
		if !strings.HasSuffix(existingContent, "\n") {
			content.WriteString("\n")
		}
		content.WriteString("\n")
	}

	for _, entry := range entries {
		content.WriteString(entry)
		content.WriteString("\n")
	}

	if err := os.WriteFile(gitignorePath, []byte(content.String()), 0644); err != nil {
		out.Warning("could not update .gitignore: %v", err)
		return false
	}
	return true
}

// printNextSteps prints helpful guidance after initialization.
func printNextSteps(w *output.Writer) {
	w.HelpSection("Next steps:")
	w.Println("  1. Edit .voltcheck/config.json to set the site and inspector")
	w.Println("  2. Put schedule-of-tests files (JSON, YAML or XLSX) in records/")
	w.Println("  3. Run 'voltcheck validate records/' to check them")
	w.Println("  4. Add reference cases under conformance/ and run 'voltcheck conform'")
	w.Println("")
}

// printInitUsage prints the help text for the init command.
func printInitUsage() {
	w := output.New()

	w.HelpTitle("voltcheck init - initialize a voltcheck project")

	w.HelpSection("Usage:")
	w.HelpUsage("voltcheck init [options]")

	w.HelpSection("Description:")
	w.Println("  Creates .voltcheck/config.json, records/ and conformance/ in the")
	w.Println("  current directory and adds report outputs to .gitignore. Existing")
	w.Println("  files are kept unless --force is given.")

	w.HelpSection("Options:")
	w.HelpFlag("--name=<name>", "Project name (default: directory name)", widthFlagWithValue)
	w.HelpFlag("--site=<text>", "Installation address", widthFlagWithValue)
	w.HelpFlag("--inspector=<text>", "Inspector signing the schedule", widthFlagWithValue)
	w.HelpFlag("--force", "Overwrite an existing config.json", widthFlagWithValue)
	w.HelpFlag("-h, --help", "Show this help", widthFlagWithValue)
	w.Println("")
}
