package messagetemplate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// Render replaces every literal {key} token in content with the string form
// of vars[key]. Tokens without a value are left as they are and keys that no
// token references are ignored. All tokens are replaced in a single pass, so
// substituted values are never scanned again.
func Render(content string, vars map[string]any) string {
	if len(vars) == 0 || content == "" {
		return content
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		if k == "" {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return content
	}
	// longer tokens first so a key is never shadowed by one of its prefixes
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", FormatValue(vars[k]))
	}

	return strings.NewReplacer(pairs...).Replace(content)
}

// FormatValue converts a variable value to the text inserted into a message.
// Whole numbers never use exponent notation.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// ExtractVariables lists the distinct placeholder names in content in order
// of first appearance.
func ExtractVariables(content string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(content, -1)
	vars := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		name := m[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		vars = append(vars, name)
	}
	return vars
}

// MissingVariables lists placeholders in content that vars has no value for.
func MissingVariables(content string, vars map[string]any) []string {
	missing := []string{}
	for _, name := range ExtractVariables(content) {
		if _, ok := vars[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// UsedVariables lists the keys of vars that content references, in order of
// first appearance in content.
func UsedVariables(content string, vars map[string]any) []string {
	used := []string{}
	for _, name := range ExtractVariables(content) {
		if _, ok := vars[name]; ok {
			used = append(used, name)
		}
	}
	return used
}
