package service

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

var koWeek = []string{"일", "월", "화", "수", "목", "금", "토"}

// SummaryItem is one (date,slot) the student selected; duplicates are folded
// before the text is assembled.
type SummaryItem struct {
	Date string
	Slot string
}

// formatWon groups digits by thousands the way the parent-facing UI shows
// prices (15000 -> 15,000).
func formatWon(n int) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func fmtMD(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d/%d", int(d.Month()), d.Day())
}

// BuildSummaryText renders the parent notification: header, student line,
// period, meal count and total, the optional bank-transfer note from policy
// (clipped to 700 runes), then one line per date listing 점심/저녁.
func BuildSummaryText(studentName string, items []SummaryItem, totalAmount int, extraText string) string {
	uniq := map[string]SummaryItem{}
	for _, it := range items {
		if strings.TrimSpace(it.Date) == "" {
			continue
		}
		slot := strings.ToUpper(strings.TrimSpace(it.Slot))
		if slot != "LUNCH" && slot != "DINNER" {
			continue
		}
		uniq[it.Date+"|"+slot] = SummaryItem{Date: it.Date, Slot: slot}
	}

	byDate := map[string]map[string]bool{}
	for _, it := range uniq {
		if byDate[it.Date] == nil {
			byDate[it.Date] = map[string]bool{}
		}
		byDate[it.Date][it.Slot] = true
	}
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	period := "-"
	if len(dates) >= 1 {
		period = fmtMD(dates[0])
		if dates[0] != dates[len(dates)-1] {
			period += "~" + fmtMD(dates[len(dates)-1])
		}
	}

	lines := make([]string, 0, len(dates))
	for _, d := range dates {
		wd := ""
		if t, err := time.Parse("2006-01-02", d); err == nil {
			wd = koWeek[int(t.Weekday())]
		}
		parts := []string{}
		if byDate[d]["LUNCH"] {
			parts = append(parts, "점심")
		}
		if byDate[d]["DINNER"] {
			parts = append(parts, "저녁")
		}
		lines = append(lines, fmt.Sprintf("%s(%s) %s", fmtMD(d), wd, strings.Join(parts, ", ")))
	}
	detail := strings.Join(lines, "\n")
	if detail == "" {
		detail = "-"
	}

	var b strings.Builder
	b.WriteString("[메디컬로드맵 도시락 신청]\n\n")
	b.WriteString(fmt.Sprintf("※ %s학생\n", strings.TrimSpace(studentName)))
	b.WriteString(fmt.Sprintf("- 기간: %s\n", period))
	b.WriteString(fmt.Sprintf("- 식수: %d식\n", len(uniq)))
	b.WriteString(fmt.Sprintf("- 비용: %s원\n", formatWon(totalAmount)))

	extra := strings.TrimSpace(extraText)
	if extra != "" {
		r := []rune(extra)
		if len(r) > 700 {
			r = r[:700]
		}
		b.WriteString(fmt.Sprintf("\n\n※ 입금 계좌\n%s\n", string(r)))
	}

	b.WriteString(fmt.Sprintf("\n\n※ 신청내역\n%s", detail))
	return b.String()
}
