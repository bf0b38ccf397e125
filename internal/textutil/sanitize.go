package textutil

import "strings"

// SanitizeToken turns an archive or content name into a lowercase token safe
// for staging directory names. ASCII letters, digits, '-' and '_' survive;
// every other rune becomes '_'. Empty results map to "unknown".
func SanitizeToken(value string) string {
	token := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, strings.TrimSpace(value))
	token = strings.Trim(token, "_-")
	if token == "" {
		return "unknown"
	}
	return token
}
