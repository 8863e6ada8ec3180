package utils

import (
	"fmt"
	"strings"
	"time"
)

// NormalizePhone strips everything but digits and formats a 10-digit number as
// "ddddd ddddd". Shorter or longer inputs are returned digits-only.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 10 {
		return digits[:5] + " " + digits[5:]
	}
	return digits
}

// csvDateLayouts are the date formats accepted on import rows.
var csvDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	time.RFC3339,
}

// ParseFlexibleDate parses a date in any of the accepted CSV layouts.
func ParseFlexibleDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range csvDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}
