package present

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Short month names as rendered by the es-ES locale.
var shortMonths = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// FormatDate renders an ISO-8601 timestamp as "15 mar 2025".
// Input that does not parse is returned unchanged.
func FormatDate(iso string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return FormatTime(t)
		}
	}
	return iso
}

// FormatTime renders t (in its own location) as "15 mar 2025".
func FormatTime(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), shortMonths[t.Month()-1], t.Year())
}

// FormatCount renders an integer with Spanish digit grouping, 1250000 -> "1.250.000".
func FormatCount(n int64) string {
	return message.NewPrinter(language.Spanish).Sprintf("%d", n)
}

// FormatUptime renders an uptime percentage with one decimal.
func FormatUptime(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 1, 64) + "%"
}

// FormatResponseTime renders a latency in milliseconds.
func FormatResponseTime(ms int64) string {
	return strconv.FormatInt(ms, 10) + "ms"
}
