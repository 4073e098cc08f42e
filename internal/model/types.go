package model

import (
	"time"

	"github.com/lapsekit/lapse-cli/internal/geometry"
)

type Category struct {
	ID        string
	Name      string
	Order     int
	IsDefault bool
	IsActive  bool
	CreatedAt time.Time
}

// Photo is the record for one capture. Day is the local calendar day
// (YYYY-MM-DD); at most one photo exists per (day, category). WeightKg
// and BodyFatPct are a denormalized cache of the linked weight entry.
type Photo struct {
	ID             string
	Day            string
	CapturedAt     time.Time
	FileName       string
	CategoryID     string
	IsFaceBlurred  bool
	BodyConfidence *float64
	WeightKg       *float64
	BodyFatPct     *float64
}

// WeightEntry is the authoritative measurement for a day. Weight is
// always canonical kilograms; display conversion happens at read time.
type WeightEntry struct {
	ID            string
	Day           string
	WeightKg      float64
	BodyFatPct    *float64
	LinkedPhotoID *string
	CreatedAt     time.Time
}

type DailyNote struct {
	ID             string
	Day            string
	Content        string
	CreatedAt      time.Time
	LastModifiedAt time.Time
}

// BodyGuideline is the alignment contour captured for a category.
// Points stay in the pixel space of the reference image.
type BodyGuideline struct {
	CategoryID    string
	Points        []geometry.Point
	ImageSize     geometry.Size
	IsFrontCamera bool
	CreatedAt     time.Time
}
