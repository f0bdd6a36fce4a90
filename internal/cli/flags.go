package cli

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/AndreyAkinshin/voltcheck/pkg/compliance"
)

// commandFlags holds the options and positional arguments of one command.
type commandFlags struct {
	values map[string]string
	bools  map[string]bool
	args   []string
}

// parseCommandFlags parses "--name=value", "--name value" and boolean
// "--name" options. Names are given without dashes. Everything after "--"
// is positional.
func parseCommandFlags(cmd string, args []string, valueFlags, boolFlags []string) (*commandFlags, error) {
	f := &commandFlags{values: make(map[string]string), bools: make(map[string]bool)}
	isValue := make(map[string]bool, len(valueFlags))
	for _, name := range valueFlags {
		isValue[name] = true
	}
	isBool := make(map[string]bool, len(boolFlags))
	for _, name := range boolFlags {
		isBool[name] = true
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			f.args = append(f.args, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "--") || arg == "-" {
			if strings.HasPrefix(arg, "-") && arg != "-" {
				return nil, fmt.Errorf("%s: unknown option %q", cmd, arg)
			}
			f.args = append(f.args, arg)
			continue
		}

		name, value, hasValue := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		switch {
		case isValue[name]:
			if !hasValue {
				if i+1 >= len(args) {
					return nil, fmt.Errorf("%s: --%s requires a value", cmd, name)
				}
				i++
				value = args[i]
			}
			f.values[name] = value
		case isBool[name]:
			if hasValue {
				b, err := strconv.ParseBool(value)
				if err != nil {
					return nil, fmt.Errorf("%s: --%s expects true or false, got %q", cmd, name, value)
				}
				f.bools[name] = b
			} else {
				f.bools[name] = true
			}
		default:
			return nil, fmt.Errorf("%s: unknown option %q", cmd, "--"+name)
		}
	}
	return f, nil
}

func (f *commandFlags) value(name string) string {
	return f.values[name]
}

func (f *commandFlags) has(name string) bool {
	_, ok := f.values[name]
	return ok
}

func (f *commandFlags) bool(name string) bool {
	return f.bools[name]
}

// boolSet reports whether a boolean flag was given at all, so that an
// explicit --strict=false can override the configuration.
func (f *commandFlags) boolSet(name string) bool {
	_, ok := f.bools[name]
	return ok
}

// flagName turns a record key into its kebab-case flag name:
// "insulationLiveEarth" becomes "insulation-live-earth".
func flagName(key string) string {
	var b strings.Builder
	runes := []rune(key)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && !unicode.IsUpper(runes[i-1]) {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// recordFlags maps each record field's flag name to its record key.
func recordFlags() map[string]string {
	m := make(map[string]string, len(compliance.RecordKeys()))
	for _, key := range compliance.RecordKeys() {
		m[flagName(key)] = key
	}
	return m
}

// recordFlagNames lists the record field flags in record order, with dashes.
func recordFlagNames() []string {
	keys := compliance.RecordKeys()
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		names = append(names, "--"+flagName(key))
	}
	return names
}
