// Package email holds helpers for working with principal email addresses.
package email

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalize trims and lower-cases an address for storage and lookup.
func Normalize(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// NamesFromAddress guesses a given and family name from the local part of an
// address such as "jane.doe@clinic.org". Separators are dots, underscores,
// hyphens and plus signs. A missing family name is returned empty.
func NamesFromAddress(addr string) (first, last string) {
	local := addr
	if at := strings.IndexByte(addr, '@'); at >= 0 {
		local = addr[:at]
	}
	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return title(parts[0]), ""
	default:
		return title(parts[0]), title(parts[len(parts)-1])
	}
}

func title(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
