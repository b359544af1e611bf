package sheetdb

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"whs-backend/internal/rowstore"
)

// dateLayout is the literal format used on every read and write, so a
// formatted date always parses back to the same day.
const dateLayout = "01/02/2006"

func parseDate(c rowstore.Cell) (time.Time, bool) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(c.String()))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// ParseHours accepts the two forms hours arrive in: a decimal ("7.5")
// or a clock duration ("7:30", "7:30:00").
func ParseHours(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) > 3 {
			return 0, false
		}
		h, err := strconv.Atoi(parts[0])
		if err != nil || h < 0 {
			return 0, false
		}
		m, err := strconv.Atoi(parts[1])
		if err != nil || m < 0 || m > 59 {
			return 0, false
		}
		return float64(h) + float64(m)/60, true
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return f, true
}

// formatClock renders fractional hours as the "H:M:00" text the totals
// block on the roster sheet uses.
func formatClock(hours float64) string {
	h := int(hours)
	m := int((hours - float64(h)) * 60)
	return fmt.Sprintf("%d:%d:00", h, m)
}
