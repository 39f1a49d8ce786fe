package photos

import (
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// photoDate returns the best available date for a photo: the EXIF
// capture date when the file carries decodable EXIF data, otherwise
// the file modification time. RAW formats goexif cannot parse simply
// fall through to mtime, matching how cameras without EXIF support
// are handled.
func photoDate(path string) (time.Time, DateSource) {
	if t, ok := exifDate(path); ok {
		return t, SourceEXIF
	}

	info, err := os.Stat(path)
	if err != nil {
		// Caller's mkdir/move will surface the real error.
		return time.Now(), SourceModTime
	}
	return info.ModTime(), SourceModTime
}

// exifDate extracts DateTimeOriginal (or DateTime) from EXIF data.
func exifDate(path string) (time.Time, bool) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, false
	}

	// DateTime tries DateTimeOriginal first, then DateTime.
	t, err := x.DateTime()
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
