package storage

import (
	"bytes"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

func init() {
	exif.RegisterParsers(mknote.All...)
}

// CaptureTime extracts the EXIF capture timestamp from image bytes.
// Images without usable EXIF data are common (screenshots, exports),
// so a miss is reported via ok rather than an error.
func CaptureTime(content []byte) (time.Time, bool) {
	x, err := exif.Decode(bytes.NewReader(content))
	if err != nil {
		return time.Time{}, false
	}
	tm, err := x.DateTime()
	if err != nil {
		return time.Time{}, false
	}
	return tm, true
}
