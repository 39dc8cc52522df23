package services

import "strings"

// NormalizePhone strips everything but digits and a leading '+', then prefixes
// defaultCountryCode when the number carries no country code of its own.
// The country code is canonicalized the same way and always starts with '+',
// so NormalizePhone(NormalizePhone(x, cc), cc) == NormalizePhone(x, cc).
func NormalizePhone(raw, defaultCountryCode string) string {
	number := stripPhone(raw)
	if strings.HasPrefix(number, "+") {
		return number
	}
	return countryPrefix(defaultCountryCode) + number
}

func stripPhone(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func countryPrefix(cc string) string {
	cc = strings.TrimPrefix(stripPhone(cc), "+")
	if cc == "" {
		return ""
	}
	return "+" + cc
}
