package service

import "errors"

// Failure taxonomy. Invariant violations surface as wrapped sentinels
// so callers can branch with errors.Is; storage misses recover to
// absent results wherever a sensible empty state exists.
var (
	// ErrDuplicateForDay: a fresh save hit a day that already has a
	// photo in that category. Recoverable by calling ReplacePhoto.
	ErrDuplicateForDay = errors.New("photo already exists for this day and category")

	// ErrQuotaExceeded: the active custom category limit was reached.
	ErrQuotaExceeded = errors.New("custom category limit reached")

	ErrNotRenamable = errors.New("default category cannot be renamed")
	ErrNotDeletable = errors.New("default category cannot be deactivated")

	// ErrDecodeFailure: a stored record or image could not be read
	// back. Callers treat it as missing (placeholder), never fatal.
	ErrDecodeFailure = errors.New("stored data could not be decoded")
)

// MaxCustomCategories bounds active custom categories per user.
const MaxCustomCategories = 3
