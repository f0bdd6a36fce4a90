package cli

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/voltcheck/internal/output"
)

// cmdCompletion generates shell completion scripts.
func cmdCompletion(args []string) int {
	shell := ""
	alias := ""

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			printCompletionUsage()
			return 0
		case strings.HasPrefix(arg, "--alias="):
			alias = strings.TrimPrefix(arg, "--alias=")
		case arg == "--alias":
			out.ErrorPrefix("completion: --alias requires a value (--alias=<name>)")
			return 2
		case strings.HasPrefix(arg, "-"):
			out.ErrorPrefix("completion: unknown flag: %s", arg)
			printCompletionUsage()
			return 2
		default:
			if shell != "" {
				out.ErrorPrefix("completion: unexpected argument: %s", arg)
				return 2
			}
			shell = arg
		}
	}

	if shell == "" {
		out.ErrorPrefix("completion: shell required (bash, zsh, fish)")
		printCompletionUsage()
		return 2
	}

	cmdName := "voltcheck"
	if alias != "" {
		cmdName = alias
	}

	switch shell {
	case "bash":
		out.Print("%s", generateBashCompletion(cmdName))
	case "zsh":
		out.Print("%s", generateZshCompletion(cmdName))
	case "fish":
		out.Print("%s", generateFishCompletion(cmdName))
	default:
		out.ErrorPrefix("completion: unsupported shell %q (use bash, zsh, or fish)", shell)
		return 2
	}

	return 0
}

// printCompletionUsage prints the help text for the completion command.
func printCompletionUsage() {
	w := output.New()

	w.HelpTitle("voltcheck completion - generate shell completion scripts")

	w.HelpSection("Usage:")
	w.HelpUsage("voltcheck completion <shell> [--alias=<name>]")

	w.HelpSection("Arguments:")
	w.HelpFlag("<shell>", "Shell type: bash, zsh, or fish", 10)

	w.HelpSection("Options:")
	w.HelpFlag("--alias=<name>", "Generate completion for command alias", 14)
	w.HelpFlag("-h, --help", "Show this help", 14)

	w.HelpSection("Examples:")
	w.HelpExample("voltcheck completion bash", "Generate bash completion")
	w.HelpExample("voltcheck completion zsh", "Generate zsh completion")
	w.HelpExample("voltcheck completion fish", "Generate fish completion")
	w.HelpExample("voltcheck completion bash --alias=vc", "Generate bash completion for alias 'vc'")

	w.HelpSection("Installation:")
	w.Println("  Bash:  eval \"$(voltcheck completion bash)\"")
	w.Println("  Zsh:   eval \"$(voltcheck completion zsh)\"")
	w.Println("  Fish:  voltcheck completion fish | source")
	w.Println("")
}

// commandNames returns the names of all commands in help order.
func commandNames() []string {
	cmds := builtinCommands()
	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.name)
	}
	return names
}

// globalFlags returns the global CLI flags.
func globalFlags() []string {
	return []string{
		"--quiet",
		"--verbose",
		"--log-level",
		"--no-color",
		"--help",
		"--version",
	}
}

// completionWords returns the words offered after a command: its
// subcommands followed by its flags.
func completionWords(c commandInfo) []string {
	words := append([]string{}, c.subcommands...)
	return append(words, c.flags...)
}

func generateBashCompletion(cmdName string) string {
	commands := commandNames()
	flags := globalFlags()

	// Generate function name from command (replace - with _)
	funcName := "_" + strings.ReplaceAll(cmdName, "-", "_") + "_completions"

	var aliasNote string
	if cmdName == "voltcheck" {
		aliasNote = `
# Alias support:
# If you use an alias (e.g., alias vc="voltcheck"), add completion for it:
#   complete -F _voltcheck_completions vc
# Or generate completion directly for your alias:
#   eval "$(voltcheck completion bash --alias=vc)"
`
	} else {
		aliasNote = fmt.Sprintf(`
# This completion is generated for the alias "%s"
# Make sure you have the alias defined: alias %s="voltcheck"
`, cmdName, cmdName)
	}

	var cases strings.Builder
	for _, c := range builtinCommands() {
		words := completionWords(c)
		if len(words) == 0 {
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n            ;;\n",
			c.name, strings.Join(words, " "))
	}

	return fmt.Sprintf(`# voltcheck bash completion
# Add to ~/.bashrc: eval "$(voltcheck completion bash)"
%s
%s() {
    local cur prev words cword
    _init_completion || return

    local commands="%s"
    local flags="%s"

    case "${prev}" in
        --format)
            COMPREPLY=($(compgen -W "text json yaml xlsx" -- "${cur}"))
            return
            ;;
        --log-level)
            COMPREPLY=($(compgen -W "debug info warn error" -- "${cur}"))
            return
            ;;
        --out|--catalog)
            _filedir
            return
            ;;
    esac

    if [[ ${cword} -eq 1 ]]; then
        COMPREPLY=($(compgen -W "${commands} ${flags}" -- "${cur}"))
        return
    fi

    case "${words[1]}" in
%s        validate)
            _filedir
            ;;
        *)
            COMPREPLY=($(compgen -W "${flags}" -- "${cur}"))
            ;;
    esac
}

complete -F %s %s
`, aliasNote, funcName, strings.Join(commands, " "), strings.Join(flags, " "), cases.String(), funcName, cmdName)
}

func generateZshCompletion(cmdName string) string {
	// Generate function name from command (replace - with _)
	funcName := "_" + strings.ReplaceAll(cmdName, "-", "_")

	var aliasNote string
	if cmdName == "voltcheck" {
		aliasNote = `
# Alias support:
# If you use an alias (e.g., alias vc="voltcheck"), add completion for it:
#   compdef _voltcheck vc
# Or generate completion directly for your alias:
#   eval "$(voltcheck completion zsh --alias=vc)"
`
	} else {
		aliasNote = fmt.Sprintf(`
# This completion is generated for the alias "%s"
# Make sure you have the alias defined: alias %s="voltcheck"
`, cmdName, cmdName)
	}

	var commands, cases strings.Builder
	for _, c := range builtinCommands() {
		fmt.Fprintf(&commands, "        '%s:%s'\n", c.name, zshEscape(c.description))
		words := completionWords(c)
		if len(words) == 0 {
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            compadd -- %s\n            ;;\n", c.name, strings.Join(words, " "))
	}

	return fmt.Sprintf(`#compdef %s
# voltcheck zsh completion
# Add to ~/.zshrc: eval "$(voltcheck completion zsh)"
%s
%s() {
    local -a commands flags

    commands=(
%s    )

    flags=(
        '--quiet[Minimal output]'
        '--verbose[Maximum detail]'
        '--log-level=[Diagnostic log level]:level:(debug info warn error)'
        '--no-color[Disable colored output]'
        '--help[Show help]'
        '--version[Show version]'
    )

    if (( CURRENT == 2 )); then
        _describe -t commands 'command' commands
        _arguments -s $flags[@]
        return
    fi

    case "${words[2]}" in
%s        *)
            _arguments -s $flags[@]
            ;;
    esac
}

compdef %s %s
`, cmdName, aliasNote, funcName, commands.String(), cases.String(), funcName, cmdName)
}

// zshEscape escapes colons, which separate a zsh completion from its
// description.
func zshEscape(s string) string {
	return strings.ReplaceAll(s, ":", `\:`)
}

func generateFishCompletion(cmdName string) string {
	var sb strings.Builder

	var aliasNote string
	if cmdName == "voltcheck" {
		aliasNote = `# Alias support:
# If you use an alias (e.g., alias vc="voltcheck"), add completion for it:
#   complete -c vc -w voltcheck
# Or generate completion directly for your alias:
#   voltcheck completion fish --alias=vc | source
`
	} else {
		aliasNote = fmt.Sprintf(`# This completion is generated for the alias "%s"
# Make sure you have the alias defined: alias %s="voltcheck"
`, cmdName, cmdName)
	}

	sb.WriteString(fmt.Sprintf(`# voltcheck fish completion
# Add to config: voltcheck completion fish | source

%s
# Disable file completion by default
complete -c %s -f

`, aliasNote, cmdName))

	for _, c := range builtinCommands() {
		sb.WriteString(fmt.Sprintf("complete -c %s -n '__fish_use_subcommand' -a '%s' -d '%s'\n",
			cmdName, c.name, strings.ReplaceAll(c.description, "'", `\'`)))
	}

	sb.WriteString("\n# Global flags\n")
	sb.WriteString(fmt.Sprintf("complete -c %s -s q -l quiet -d 'Minimal output'\n", cmdName))
	sb.WriteString(fmt.Sprintf("complete -c %s -s v -l verbose -d 'Maximum detail'\n", cmdName))
	sb.WriteString(fmt.Sprintf("complete -c %s -l log-level -d 'Diagnostic log level' -xa 'debug info warn error'\n", cmdName))
	sb.WriteString(fmt.Sprintf("complete -c %s -l no-color -d 'Disable colored output'\n", cmdName))
	sb.WriteString(fmt.Sprintf("complete -c %s -l help -d 'Show help'\n", cmdName))
	sb.WriteString(fmt.Sprintf("complete -c %s -l version -d 'Show version'\n", cmdName))

	for _, c := range builtinCommands() {
		if len(c.subcommands) == 0 && len(c.flags) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n# %s\n", c.name))
		for _, sub := range c.subcommands {
			sb.WriteString(fmt.Sprintf("complete -c %s -n '__fish_seen_subcommand_from %s' -a '%s'\n", cmdName, c.name, sub))
		}
		for _, flag := range c.flags {
			sb.WriteString(fmt.Sprintf("complete -c %s -n '__fish_seen_subcommand_from %s' -l %s\n",
				cmdName, c.name, strings.TrimPrefix(flag, "--")))
		}
		if c.name == "validate" {
			sb.WriteString(fmt.Sprintf("complete -c %s -n '__fish_seen_subcommand_from validate' -F\n", cmdName))
		}
	}

	return sb.String()
}
