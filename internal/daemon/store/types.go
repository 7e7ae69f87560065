package store

import (
	"encoding/base64"
	"math"
	"time"
	"unicode/utf8"
)

// Grace is the slack readers add on top of the dismiss window before they
// consider a record stale. The daemon expires records at exactly the dismiss
// window; readers tolerate poll and clock jitter on top of that.
const Grace = 2 * time.Second

// Record is the single "latest new file" notification.
type Record struct {
	Path       string
	Name       string
	Size       int64
	ObservedAt time.Time
}

// Fresh reports whether a reader at now should still show the record.
func (r Record) Fresh(now time.Time, dismiss time.Duration) bool {
	return now.Sub(r.ObservedAt) <= dismiss+Grace
}

// wireRecord is the JSON form. Pointers let the decoder tell a missing key
// from a zero value. JSON strings cannot carry arbitrary bytes, so a path that
// is not valid UTF-8 is also written base64-encoded to path_raw, which Load
// prefers over the lossy path.
type wireRecord struct {
	Path    *string  `json:"path"`
	PathRaw *string  `json:"path_raw,omitempty"`
	Name    *string  `json:"name"`
	Size    *int64   `json:"size"`
	Time    *float64 `json:"time"`
}

func encodeRawPath(path string) *string {
	if utf8.ValidString(path) {
		return nil
	}
	raw := base64.StdEncoding.EncodeToString([]byte(path))
	return &raw
}

func toUnixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func fromUnixSeconds(secs float64) time.Time {
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(frac*float64(time.Second)))
}
