// Package naming derives filesystem and package identifiers from free-form
// project names.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// reservedNames are device names that cannot be used as a file or folder
// name on Windows, regardless of extension.
var reservedNames = map[string]bool{
	"con": true, "prn": true, "aux": true, "nul": true,
	"com1": true, "com2": true, "com3": true, "com4": true, "com5": true,
	"com6": true, "com7": true, "com8": true, "com9": true,
	"lpt1": true, "lpt2": true, "lpt3": true, "lpt4": true, "lpt5": true,
	"lpt6": true, "lpt7": true, "lpt8": true, "lpt9": true,
}

// ToDashCase lowercases s, folds accented letters to their base form and
// joins the remaining alphanumeric runs with "-".
//
//	ToDashCase("Héllo World!") // "hello-world"
func ToDashCase(s string) string {
	return join(s, '-')
}

// ToSnakeCase is ToDashCase with "_" as the separator.
func ToSnakeCase(s string) string {
	return join(s, '_')
}

// join is total and idempotent: its output only contains [a-z0-9] runs
// separated by a single sep, which it maps to itself.
func join(s string, sep byte) string {
	var b strings.Builder
	pending := false
	for _, r := range norm.NFKD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte(sep)
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// IsFilesystemSafe reports whether s is non-empty, contains only
// [a-z0-9_-] and is not a reserved device name.
func IsFilesystemSafe(s string) bool {
	if s == "" || reservedNames[s] {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
