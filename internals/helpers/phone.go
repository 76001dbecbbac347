package helper

import "strings"

// OnlyDigits strips everything but 0-9.
func OnlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizePhone formats Korean mobile/landline numbers with dashes.
// Unrecognized shapes are returned as-is.
func NormalizePhone(raw string) string {
	digits := OnlyDigits(raw)
	switch {
	case len(digits) == 11 && strings.HasPrefix(digits, "010"):
		return digits[:3] + "-" + digits[3:7] + "-" + digits[7:]
	case len(digits) == 10:
		return digits[:3] + "-" + digits[3:6] + "-" + digits[6:]
	default:
		return raw
	}
}
