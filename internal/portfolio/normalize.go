package portfolio

import "strings"

// NormalizeUsername lowercases the input and strips every character outside
// [a-z0-9]. The result is the portfolio's URL slug. Idempotent.
func NormalizeUsername(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
