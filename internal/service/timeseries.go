package service

import (
	"math"
	"time"

	"github.com/lapsekit/lapse-cli/internal/model"
)

// DefaultSnapTolerance is the pointer-to-data-point distance, as a
// fraction of the visible date range, within which a chart selection
// locks onto an existing entry.
const DefaultSnapTolerance = 0.03

type SelectorConfig struct {
	MinDate       time.Time // optional configured lower bound
	MaxDate       time.Time // optional configured upper bound
	Now           time.Time // defaults to time.Now
	SnapTolerance float64   // defaults to DefaultSnapTolerance
}

// Selector resolves a continuous pointer position over the date axis
// into a selected date, snapping to nearby entries. It is a read-only
// view over a loaded series; reloading builds a fresh selector.
type Selector struct {
	entries   []model.WeightEntry
	entryDays []time.Time
	lower     time.Time
	upper     time.Time
	today     time.Time
	tolerance float64
}

type Selection struct {
	Date    time.Time
	Entry   *model.WeightEntry
	Snapped bool
}

// NewSelector builds the selection domain for a series sorted
// ascending by day. The upper bound is always clamped to today:
// future dates can never hold data.
func NewSelector(entries []model.WeightEntry, cfg SelectorConfig) *Selector {
	now := cfg.Now
	if now.IsZero() {
		now = time.Now()
	}
	today := beginningOfDay(now)

	s := &Selector{
		entries:   entries,
		entryDays: make([]time.Time, 0, len(entries)),
		today:     today,
		tolerance: cfg.SnapTolerance,
	}
	if s.tolerance <= 0 {
		s.tolerance = DefaultSnapTolerance
	}

	var dataMin, dataMax time.Time
	for _, entry := range entries {
		day, err := parseDay(entry.Day)
		if err != nil {
			continue
		}
		s.entryDays = append(s.entryDays, day)
		if dataMin.IsZero() || day.Before(dataMin) {
			dataMin = day
		}
		if dataMax.IsZero() || day.After(dataMax) {
			dataMax = day
		}
	}

	upper := cfg.MaxDate
	if upper.IsZero() {
		upper = dataMax
	}
	if upper.IsZero() || upper.After(today) {
		upper = today
	} else {
		upper = beginningOfDay(upper)
	}

	lower := cfg.MinDate
	if lower.IsZero() {
		lower = dataMin
	}
	if lower.IsZero() {
		// Empty series: the domain collapses to a single instant.
		lower = upper
	} else {
		lower = beginningOfDay(lower)
	}
	if lower.After(upper) {
		lower = upper
	}

	s.lower = lower
	s.upper = upper
	return s
}

func (s *Selector) Domain() (time.Time, time.Time) {
	return s.lower, s.upper
}

// Select maps a pointer fraction (0..1 across the visible axis) to a
// date, snapping onto the nearest entry when it is within tolerance.
// An unsnapped selection means "no data for this day".
func (s *Selector) Select(fraction float64) Selection {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	width := s.upper.Sub(s.lower)
	instant := s.lower.Add(time.Duration(fraction * float64(width)))
	if instant.After(s.today) {
		instant = s.today
	}

	if len(s.entryDays) == 0 {
		return Selection{Date: instant}
	}

	nearest := 0
	nearestDist := time.Duration(math.MaxInt64)
	for i, day := range s.entryDays {
		dist := absDuration(day.Sub(instant))
		if dist < nearestDist {
			nearest = i
			nearestDist = dist
		}
	}

	// A single-entry (or collapsed) domain always snaps.
	tolerance := time.Duration(s.tolerance * float64(width))
	if len(s.entryDays) == 1 || width == 0 || nearestDist <= tolerance {
		return Selection{
			Date:    s.entryDays[nearest],
			Entry:   &s.entries[nearest],
			Snapped: true,
		}
	}
	return Selection{Date: instant}
}

// PageDay moves the selection to the adjacent calendar day. Paging
// beyond the domain, or forward past today, is a no-op.
func (s *Selector) PageDay(current time.Time, forward bool) (time.Time, bool) {
	step := -1
	if forward {
		step = 1
	}
	next := beginningOfDay(current).AddDate(0, 0, step)
	if next.Before(s.lower) || next.After(s.upper) || next.After(s.today) {
		return beginningOfDay(current), false
	}
	return next, true
}

// EntryFor returns the entry whose day matches date, if any.
func (s *Selector) EntryFor(date time.Time) (*model.WeightEntry, bool) {
	key := dayKey(date)
	for i := range s.entries {
		if s.entries[i].Day == key {
			return &s.entries[i], true
		}
	}
	return nil, false
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// TrendSummary condenses a series for the chart header.
type TrendSummary struct {
	Count      int
	FirstDay   string
	LastDay    string
	FirstKg    float64
	LastKg     float64
	MinKg      float64
	MaxKg      float64
	DeltaKg    float64
	AverageKg  float64
	AvgBodyFat *float64
}

func Trend(entries []model.WeightEntry) TrendSummary {
	summary := TrendSummary{Count: len(entries)}
	if len(entries) == 0 {
		return summary
	}

	first := entries[0]
	last := entries[len(entries)-1]
	summary.FirstDay = first.Day
	summary.LastDay = last.Day
	summary.FirstKg = first.WeightKg
	summary.LastKg = last.WeightKg
	summary.MinKg = first.WeightKg
	summary.MaxKg = first.WeightKg

	var totalKg, totalFat float64
	fatCount := 0
	for _, entry := range entries {
		totalKg += entry.WeightKg
		if entry.WeightKg < summary.MinKg {
			summary.MinKg = entry.WeightKg
		}
		if entry.WeightKg > summary.MaxKg {
			summary.MaxKg = entry.WeightKg
		}
		if entry.BodyFatPct != nil {
			totalFat += *entry.BodyFatPct
			fatCount++
		}
	}
	summary.DeltaKg = last.WeightKg - first.WeightKg
	summary.AverageKg = totalKg / float64(len(entries))
	if fatCount > 0 {
		avg := totalFat / float64(fatCount)
		summary.AvgBodyFat = &avg
	}
	return summary
}
