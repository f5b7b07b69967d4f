// Package biztime centralises how the billing core reads the clock and
// interprets provider timestamps. Storage and comparisons are always UTC;
// the business timezone only sets the scheduler location.
package biztime

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// DefaultTimezone is the timezone clubs are billed in.
const DefaultTimezone = "America/Sao_Paulo"

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Clock returns the current instant. Use cases hold one so tests can pin time.
type Clock func() time.Time

// Init initializes the business timezone. Should be called once at startup.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// Location returns the business timezone, initializing the default on first use.
func Location() *time.Location {
	if err := Init(""); err != nil {
		panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FixedClock always reports t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// ParseTimestamp accepts the timestamp shapes the payment provider and
// operators send: RFC 3339 with or without fraction, numeric offsets without a
// colon, naive date-times (taken as UTC) and bare dates.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}
