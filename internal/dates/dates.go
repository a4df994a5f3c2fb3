// Package dates normalizes the published-date strings the sources emit into
// comparable UTC timestamps.
package dates

import (
	"regexp"
	"strings"
	"time"
)

// acceptedFormats is the ordered list of layouts observed across the
// configured feeds and the News API. First successful parse wins.
var acceptedFormats = []string{
	time.RFC3339,          // 2026-08-28T07:15:04Z or with numeric offset (News API)
	"2006-01-02T15:04:05", // ISO without zone, assumed UTC
	time.RFC1123Z,         // Mon, 02 Jan 2006 15:04:05 -0700 (most RSS feeds)
	time.RFC1123,          // Mon, 02 Jan 2006 15:04:05 GMT
	time.RFC822Z,
	time.RFC822,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// trailingZoneName matches an RFC-822 style named-zone suffix ("EST", "AEST").
var trailingZoneName = regexp.MustCompile(` [A-Za-z]{2,5}$`)

// Normalize parses a source-specific published-date string into a UTC
// timestamp. Absent, empty or unparseable input yields the zero time, which
// sorts after every real timestamp in a most-recent-first ordering; this is a
// total function and callers never branch on an error.
func Normalize(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "N/A" {
		return time.Time{}
	}

	for _, layout := range acceptedFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}

	// Some feeds carry a zone name Go cannot resolve to an offset. Coerce it
	// to UTC and retry the numeric-zone layouts.
	if trailingZoneName.MatchString(raw) {
		coerced := trailingZoneName.ReplaceAllString(raw, " +0000")
		for _, layout := range []string{time.RFC1123Z, time.RFC822Z} {
			if t, err := time.Parse(layout, coerced); err == nil {
				return t.UTC()
			}
		}
	}

	return time.Time{}
}

// IsSentinel reports whether ts is the fallback value for unparseable dates.
func IsSentinel(ts time.Time) bool {
	return ts.IsZero()
}
