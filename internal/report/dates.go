package report

import (
	"fmt"
	"time"
)

// dateLayouts are the accepted input timestamp formats, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormatDate renders an ISO-8601 timestamp string for display. Mode
// "short" yields YYYY-MM-DD, "relative" yields a human phrase like
// "Today" or "2 weeks ago", and any other mode yields a full
// timestamp. An empty input yields "Unknown" and an unparseable input
// is returned unchanged.
func FormatDate(dateStr, mode string) string {
	if dateStr == "" {
		return "Unknown"
	}

	var t time.Time
	var err error
	for _, layout := range dateLayouts {
		if t, err = time.Parse(layout, dateStr); err == nil {
			break
		}
	}
	if err != nil {
		return dateStr
	}

	switch mode {
	case "short":
		return t.Format("2006-01-02")
	case "relative":
		return relativeDate(t, time.Now())
	default:
		return t.Format("2006-01-02 15:04:05")
	}
}

// relativeDate describes how long before now t was, in whole elapsed
// days: Today, Yesterday, then days, weeks, months, and years.
func relativeDate(t, now time.Time) string {
	days := int(now.Sub(t).Hours() / 24)

	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return plural(days/7, "week")
	case days < 365:
		return plural(days/30, "month")
	default:
		return plural(days/365, "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
