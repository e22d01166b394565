package usecase

import (
	"regexp"
	"strings"
)

// nonKeyCharsRegex strips everything outside [a-z0-9] from a lowered key
var nonKeyCharsRegex = regexp.MustCompile(`[^a-z0-9]`)

// NormalizeKey reduces a disease label or table key to its canonical
// comparison form: lowercase, the recurring "caterpillers" misspelling fixed,
// and all punctuation/whitespace removed. "Stem-Bleeding!!" and "stembleeding"
// normalize to the same key.
func NormalizeKey(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = strings.ReplaceAll(result, "caterpillers", "caterpillars")
	return nonKeyCharsRegex.ReplaceAllString(result, "")
}

// keysMatch reports bidirectional substring containment between two
// normalized keys. The loose match is deliberate: it lets label variants like
// "stembleeding" and "stembleedingdisease" address the same table entry.
// Empty keys never match.
func keysMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
