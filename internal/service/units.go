package service

import (
	"fmt"
	"strings"
)

// Weights are persisted in kilograms regardless of display preference.
// The display factor is applied at presentation time and reversed on
// input before anything is stored.
const lbsPerKg = 2.20462

const (
	UnitKg  = "kg"
	UnitLbs = "lbs"
)

func normalizeUnit(unit string) (string, error) {
	u := strings.ToLower(strings.TrimSpace(unit))
	switch u {
	case "", UnitKg:
		return UnitKg, nil
	case "lb", UnitLbs:
		return UnitLbs, nil
	default:
		return "", fmt.Errorf("invalid weight unit %q (use kg or lbs)", unit)
	}
}

// DisplayWeight converts canonical kilograms for presentation. Pure;
// never touches storage.
func DisplayWeight(weightKg float64, unit string) (float64, error) {
	u, err := normalizeUnit(unit)
	if err != nil {
		return 0, err
	}
	if u == UnitLbs {
		return weightKg * lbsPerKg, nil
	}
	return weightKg, nil
}

// ParseWeight reverses the display conversion on input.
func ParseWeight(value float64, unit string) (float64, error) {
	if value <= 0 {
		return 0, fmt.Errorf("weight must be > 0")
	}
	u, err := normalizeUnit(unit)
	if err != nil {
		return 0, err
	}
	if u == UnitLbs {
		return value / lbsPerKg, nil
	}
	return value, nil
}
