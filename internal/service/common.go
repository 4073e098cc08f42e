package service

import (
	"fmt"
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// dayKey identifies the local calendar day of an instant. Day equality
// is always decided in the device's local calendar, not UTC midnight.
func dayKey(t time.Time) string {
	return t.In(time.Local).Format(dayLayout)
}

func parseDay(value string) (time.Time, error) {
	t, err := time.ParseInLocation(dayLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

func beginningOfDay(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func normalizeName(name string) string {
	return strings.TrimSpace(name)
}

func validateBodyFat(v *float64) error {
	if v == nil {
		return nil
	}
	if *v < 0 || *v > 100 {
		return fmt.Errorf("body-fat must be between 0 and 100")
	}
	return nil
}
