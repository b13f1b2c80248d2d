// Package slug derives URL-safe identifiers from display names.
package slug

import "strings"

// Make lowercases the input, collapses every run of non-alphanumeric
// characters to a single hyphen and strips leading/trailing hyphens.
// The transform is idempotent: Make(Make(s)) == Make(s).
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastHyphen := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.Trim(b.String(), "-")
}
