// Package timeutil converts between the UTC instants the storage layer works
// with and the KST display timezone the API speaks.
package timeutil

import "time"

const displayLayout = "2006-01-02 15:04:05"

// Query parameters accept both a bare local timestamp and full RFC 3339.
var parseLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	displayLayout,
}

var displayLocation = loadDisplayLocation()

func loadDisplayLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

// Location returns the display timezone.
func Location() *time.Location {
	return displayLocation
}

// ParseInDisplay interprets a caller-supplied timestamp in the display
// timezone and returns the UTC instant.
func ParseInDisplay(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range parseLayouts {
		t, err := time.ParseInLocation(layout, value, displayLocation)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// FormatDisplay renders a stored UTC instant as a display-timezone string.
func FormatDisplay(t time.Time) string {
	return t.In(displayLocation).Format(displayLayout)
}
