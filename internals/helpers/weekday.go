package helper

import "strings"

// Weekday tokens as persisted in students.allowed_weekdays and
// policy.allowed_weekdays. Membership is order-insensitive; writes go out in
// canonical MON..SUN order.
var weekdayOrder = []string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

var weekdayRank = func() map[string]int {
	m := make(map[string]int, len(weekdayOrder))
	for i, d := range weekdayOrder {
		m[d] = i
	}
	return m
}()

// ParseWeekdays decodes a comma-joined token set. Unknown tokens and
// duplicates are dropped; the result is in canonical order.
func ParseWeekdays(s string) []string {
	seen := make(map[string]bool, 7)
	for _, tok := range strings.Split(s, ",") {
		tok = strings.ToUpper(strings.TrimSpace(tok))
		if _, ok := weekdayRank[tok]; ok {
			seen[tok] = true
		}
	}
	out := make([]string, 0, len(seen))
	for _, d := range weekdayOrder {
		if seen[d] {
			out = append(out, d)
		}
	}
	return out
}

// JoinWeekdays encodes a token set back to the persisted form, canonical
// order, invalid tokens dropped.
func JoinWeekdays(days []string) string {
	return strings.Join(ParseWeekdays(strings.Join(days, ",")), ",")
}
