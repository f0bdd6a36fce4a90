package conformance

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/AndreyAkinshin/voltcheck/pkg/compliance"
)

// Actual renders engine output in the shape of Expected so the two can be
// compared key by key.
func Actual(results compliance.TestValidationResults, verdict compliance.ComplianceVerdict) map[string]any {
	issues := make([]any, len(verdict.CriticalIssues))
	for i, msg := range verdict.CriticalIssues {
		issues[i] = msg
	}
	levels := make(map[string]any)
	messages := make(map[string]any)
	for _, e := range results.Entries() {
		levels[string(e.Field)] = e.Result.Level.String()
		messages[string(e.Field)] = e.Result.Message
	}
	return map[string]any{
		"status":             verdict.Status.String(),
		"criticalIssues":     issues,
		"criticalIssueCount": float64(len(verdict.CriticalIssues)),
		"levels":             levels,
		"messages":           messages,
	}
}

// Compare checks actual against the keys present in expected, a decoded
// "output" object. Arrays are compared as multisets; strings under
// "messages" are substring matches.
func Compare(expected, actual map[string]any) (bool, string) {
	return compareValues(expected, actual, "")
}

func compareValues(expected, actual any, path string) (bool, string) {
	if expected == nil && actual == nil {
		return true, ""
	}
	if expected == nil || actual == nil {
		return false, fmt.Sprintf("%s: expected %v, got %v", pathStr(path), expected, actual)
	}

	switch exp := expected.(type) {
	case string:
		act, ok := actual.(string)
		if ok && (exp == act || (strings.HasPrefix(path, "messages.") && strings.Contains(act, exp))) {
			return true, ""
		}
		return false, fmt.Sprintf("%s: expected %q, got %q", pathStr(path), exp, actual)
	case float64:
		if act, ok := actual.(float64); ok && act == exp {
			return true, ""
		}
		return false, fmt.Sprintf("%s: expected %v, got %v", pathStr(path), exp, actual)
	case map[string]any:
		return compareMaps(exp, actual, path)
	case []any:
		return compareArrays(exp, actual, path)
	default:
		if reflect.DeepEqual(expected, actual) {
			return true, ""
		}
		return false, fmt.Sprintf("%s: expected %v (%T), got %v (%T)", pathStr(path), expected, expected, actual, actual)
	}
}

// compareMaps checks only the keys of expected; extra actual keys are fine.
func compareMaps(expected map[string]any, actual any, path string) (bool, string) {
	actMap, ok := actual.(map[string]any)
	if !ok {
		return false, fmt.Sprintf("%s: expected object, got %T", pathStr(path), actual)
	}

	for _, key := range SortedKeys(expected) {
		actVal, ok := actMap[key]
		if !ok {
			return false, fmt.Sprintf("%s: missing key %q", pathStr(path), key)
		}
		keyPath := key
		if path != "" {
			keyPath = path + "." + key
		}
		if ok, diff := compareValues(expected[key], actVal, keyPath); !ok {
			return false, diff
		}
	}
	return true, ""
}

func compareArrays(expected []any, actual any, path string) (bool, string) {
	actArr, ok := actual.([]any)
	if !ok {
		return false, fmt.Sprintf("%s: expected array, got %T", pathStr(path), actual)
	}
	if len(expected) != len(actArr) {
		return false, fmt.Sprintf("%s: expected %d elements, got %d", pathStr(path), len(expected), len(actArr))
	}

	matched := make([]bool, len(actArr))
	for i, exp := range expected {
		found := false
		for j, act := range actArr {
			if matched[j] {
				continue
			}
			if ok, _ := compareValues(exp, act, ""); ok {
				matched[j] = true
				found = true
				break
			}
		}
		if !found {
			return false, fmt.Sprintf("%s[%d]: no matching element found for %v", pathStr(path), i, exp)
		}
	}
	return true, ""
}

// pathStr formats a path for error messages.
func pathStr(path string) string {
	if path == "" {
		return "root"
	}
	return path
}

// SortedKeys returns sorted keys of a map for deterministic iteration.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
