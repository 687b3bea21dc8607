package timezone

import (
	"strings"
	"sync"
	"time"
	_ "time/tzdata"
)

const dateLayout = "2006-01-02"

var (
	locMu     sync.RWMutex
	locations = map[string]*time.Location{}
)

// LocationByName resolves an IANA zone such as "Europe/Athens", caching the
// result. Unknown or empty names resolve to UTC.
func LocationByName(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "UTC") {
		return time.UTC
	}

	locMu.RLock()
	loc, ok := locations[name]
	locMu.RUnlock()
	if ok {
		return loc
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		loc = time.UTC
	}

	locMu.Lock()
	locations[name] = loc
	locMu.Unlock()
	return loc
}

// ParseDate reads a YYYY-MM-DD date as local midnight at the destination.
func ParseDate(date, tzName string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, strings.TrimSpace(date), LocationByName(tzName))
}

func ParseTimeWithOffset(timeStr string, tzName string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05-0700",
		"2006-01-02T15:04:05Z",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t, nil
		}
	}

	loc := LocationByName(tzName)
	simpleFormats := []string{
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		dateLayout,
	}
	for _, format := range simpleFormats {
		if t, err := time.ParseInLocation(format, timeStr, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &time.ParseError{
		Value:   timeStr,
		Message: "unable to parse time string",
	}
}
