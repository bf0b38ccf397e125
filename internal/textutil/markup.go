package textutil

import (
	"html"
	"regexp"
	"strings"
)

var (
	// lineBreakPattern matches <br>, <br/> and <BR /> only.
	lineBreakPattern = regexp.MustCompile(`(?i)<br\s*/?>`)
	bbCodePattern    = regexp.MustCompile(`\[/?[a-zA-Z0-9_]+(?:=[^\]]+)?\]`)
)

// CleanMarkup unescapes HTML entities and turns line-break tags into
// newline characters.
func CleanMarkup(value string) string {
	value = lineBreakPattern.ReplaceAllString(value, "\n")
	return html.UnescapeString(value)
}

// CleanValue applies CleanMarkup to every string reachable from value,
// descending into maps and slices. Other values are returned unchanged.
func CleanValue(value any) any {
	switch v := value.(type) {
	case string:
		return CleanMarkup(v)
	case map[string]any:
		for key, inner := range v {
			v[key] = CleanValue(inner)
		}
		return v
	case []any:
		for i, inner := range v {
			v[i] = CleanValue(inner)
		}
		return v
	default:
		return value
	}
}

// StripBBCode removes [tag], [/tag] and [tag=value] markers.
func StripBBCode(value string) string {
	return bbCodePattern.ReplaceAllString(value, "")
}

// ContainsFold reports whether substr occurs in s ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
