// Package schedule converts free-form event date/time input into a
// channel-ready local schedule with an IANA timezone.
package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"eventcast/internal/domain/event"
	"eventcast/internal/pkg/errs"
)

const (
	localLayout = "2006-01-02T15:04:05"

	// defaultDuration fills in the end time when the caller omits one.
	defaultDuration = 3 * time.Hour
)

// Schedule carries local wall-clock timestamps (no offset) plus the IANA
// zone they are local to. StartLocal < EndLocal and Timezone is never empty.
type Schedule struct {
	StartLocal string
	EndLocal   string
	Timezone   string
}

// clockPattern accepts "H:MM AM/PM" and "H AM/PM".
var clockPattern = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*(AM|PM)$`)

// regionTimezones maps a venue state/region to its predominant IANA zone.
// Split-zone states get the zone covering the larger population.
var regionTimezones = map[string]string{
	"AL": "America/Chicago",
	"AK": "America/Anchorage",
	"AZ": "America/Phoenix",
	"AR": "America/Chicago",
	"CA": "America/Los_Angeles",
	"CO": "America/Denver",
	"CT": "America/New_York",
	"DC": "America/New_York",
	"DE": "America/New_York",
	"FL": "America/New_York",
	"GA": "America/New_York",
	"HI": "Pacific/Honolulu",
	"ID": "America/Boise",
	"IL": "America/Chicago",
	"IN": "America/Indiana/Indianapolis",
	"IA": "America/Chicago",
	"KS": "America/Chicago",
	"KY": "America/New_York",
	"LA": "America/Chicago",
	"ME": "America/New_York",
	"MD": "America/New_York",
	"MA": "America/New_York",
	"MI": "America/Detroit",
	"MN": "America/Chicago",
	"MS": "America/Chicago",
	"MO": "America/Chicago",
	"MT": "America/Denver",
	"NE": "America/Chicago",
	"NV": "America/Los_Angeles",
	"NH": "America/New_York",
	"NJ": "America/New_York",
	"NM": "America/Denver",
	"NY": "America/New_York",
	"NC": "America/New_York",
	"ND": "America/Chicago",
	"OH": "America/New_York",
	"OK": "America/Chicago",
	"OR": "America/Los_Angeles",
	"PA": "America/New_York",
	"RI": "America/New_York",
	"SC": "America/New_York",
	"SD": "America/Chicago",
	"TN": "America/Chicago",
	"TX": "America/Chicago",
	"UT": "America/Denver",
	"VT": "America/New_York",
	"VA": "America/New_York",
	"WA": "America/Los_Angeles",
	"WV": "America/New_York",
	"WI": "America/Chicago",
	"WY": "America/Denver",
}

// Normalizer is a pure scheduler: output depends only on its inputs, the
// static region table and the configured default region.
type Normalizer struct {
	defaultRegion string
}

func NewNormalizer(defaultRegion string) *Normalizer {
	return &Normalizer{defaultRegion: strings.ToUpper(strings.TrimSpace(defaultRegion))}
}

// Normalize resolves the event's free-form clock strings and the venue
// region into a Schedule.
//
// Known limitation: an end time that crosses midnight is not rolled over to
// the next calendar date; an end clock at or before the start clock is
// rejected as ErrInvalidTimeRange.
func (n *Normalizer) Normalize(e event.Event, v event.Venue) (Schedule, error) {
	start, err := parseClock(e.StartTime())
	if err != nil {
		return Schedule{}, err
	}

	date := e.Date().Time()
	startLocal := time.Date(date.Year(), date.Month(), date.Day(), start.hour, start.minute, 0, 0, time.UTC)

	var endLocal time.Time
	if e.EndTime() == "" {
		endLocal = startLocal.Add(defaultDuration)
	} else {
		end, err := parseClock(e.EndTime())
		if err != nil {
			return Schedule{}, err
		}
		endLocal = time.Date(date.Year(), date.Month(), date.Day(), end.hour, end.minute, 0, 0, time.UTC)
		if !endLocal.After(startLocal) {
			return Schedule{}, errs.Mark(
				errs.Newf("end %q is not after start %q", e.EndTime(), e.StartTime()),
				errs.ErrInvalidTimeRange,
			)
		}
	}

	return Schedule{
		StartLocal: startLocal.Format(localLayout),
		EndLocal:   endLocal.Format(localLayout),
		Timezone:   n.resolveTimezone(v.State()),
	}, nil
}

// resolveTimezone never fails: an unrecognized region falls back to the
// configured default region's zone so a bad venue record cannot sink the
// whole distribution request.
func (n *Normalizer) resolveTimezone(region string) string {
	if tz, ok := regionTimezones[strings.ToUpper(strings.TrimSpace(region))]; ok {
		return tz
	}
	if tz, ok := regionTimezones[n.defaultRegion]; ok {
		return tz
	}
	return "America/Chicago"
}

type clockTime struct {
	hour   int
	minute int
}

func parseClock(value string) (clockTime, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return clockTime{}, errs.Mark(
			fmt.Errorf("unparseable clock string %q", value),
			errs.ErrInvalidTimeFormat,
		)
	}

	hour, _ := strconv.Atoi(m[1])
	if hour < 1 || hour > 12 {
		return clockTime{}, errs.Mark(
			fmt.Errorf("clock hour %d out of range", hour),
			errs.ErrInvalidTimeFormat,
		)
	}

	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
		if minute > 59 {
			return clockTime{}, errs.Mark(
				fmt.Errorf("clock minute %d out of range", minute),
				errs.ErrInvalidTimeFormat,
			)
		}
	}

	if hour == 12 {
		hour = 0
	}
	if strings.EqualFold(m[3], "PM") {
		hour += 12
	}

	return clockTime{hour: hour, minute: minute}, nil
}
