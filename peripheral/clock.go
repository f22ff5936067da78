package peripheral

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Timezone offset limits, in minutes east of UTC.
const (
	ZONE_MIN = -12 * 60
	ZONE_MAX = 14 * 60
)

var zoneRegexp = regexp.MustCompile(`^([+-]?)([0-9]{1,2}):([0-9]{2})$`)

// Fields is a broken down time.
type Fields struct {
	Year     int
	Month    int
	Day      int
	Hour     int
	Minute   int
	Second   int
	Weekday  string // Lower case English day name.
	Yearday  int
	Timezone string // Offset as [-]HH:MM; empty for UTC.
}

// Clock is the real-time clock. The simulation only advances when set or
// slept upon.
type Clock struct {
	Verbose bool

	now    time.Time
	offset int // Minutes east of UTC.
}

// NewClock returns a clock set to the epoch, in UTC.
func NewClock(epoch int64) (clock *Clock) {
	clock = &Clock{
		now: time.Unix(epoch, 0).UTC(),
	}

	return
}

// Time returns the current epoch, in whole seconds.
func (clock *Clock) Time() int64 {
	return clock.now.Unix()
}

// SetTime sets the current epoch.
func (clock *Clock) SetTime(epoch int64) (err error) {
	if epoch < 0 {
		err = fmt.Errorf("%w: %d", ErrTimeInvalid, epoch)
		return
	}

	clock.now = time.Unix(epoch, 0).UTC()
	return
}

// Sleep advances the clock.
func (clock *Clock) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}

	if clock.Verbose {
		log.Printf("time: sleep %v", d)
	}

	clock.now = clock.now.Add(d)
}

// ParseZone converts a [+-]H:MM offset to minutes east of UTC.
func ParseZone(zone string) (offset int, err error) {
	match := zoneRegexp.FindStringSubmatch(strings.TrimSpace(zone))
	if match == nil {
		err = fmt.Errorf("%w: %q", ErrZoneInvalid, zone)
		return
	}

	hours, _ := strconv.Atoi(match[2])
	minutes, _ := strconv.Atoi(match[3])
	switch minutes {
	case 0, 15, 30, 45:
	default:
		err = fmt.Errorf("%w: %q", ErrZoneInvalid, zone)
		return
	}

	offset = hours*60 + minutes
	if match[1] == "-" {
		offset = -offset
	}

	if offset < ZONE_MIN || offset > ZONE_MAX {
		err = fmt.Errorf("%w: %q", ErrZoneInvalid, zone)
		offset = 0
		return
	}

	return
}

// FormatZone converts minutes east of UTC to [-]HH:MM.
func FormatZone(offset int) string {
	sign := ""
	if offset < 0 {
		sign = "-"
		offset = -offset
	}

	return fmt.Sprintf("%s%02d:%02d", sign, offset/60, offset%60)
}

// Zone returns the timezone offset.
func (clock *Clock) Zone() string {
	return FormatZone(clock.offset)
}

// SetZone sets the timezone offset.
func (clock *Clock) SetZone(zone string) (err error) {
	offset, err := ParseZone(zone)
	if err != nil {
		return
	}

	clock.offset = offset
	return
}

func (clock *Clock) location() *time.Location {
	return time.FixedZone(clock.Zone(), clock.offset*60)
}

// Now returns the current time in the clock's timezone.
func (clock *Clock) Now() Fields {
	return fieldsOf(clock.now.In(clock.location()), clock.Zone())
}

// At returns an epoch in the clock's timezone.
func (clock *Clock) At(epoch int64) (fields Fields, err error) {
	if epoch < 0 {
		err = fmt.Errorf("%w: %d", ErrTimeInvalid, epoch)
		return
	}

	fields = fieldsOf(time.Unix(epoch, 0).In(clock.location()), clock.Zone())
	return
}

func fieldsOf(t time.Time, zone string) Fields {
	return Fields{
		Year:     t.Year(),
		Month:    int(t.Month()),
		Day:      t.Day(),
		Hour:     t.Hour(),
		Minute:   t.Minute(),
		Second:   t.Second(),
		Weekday:  strings.ToLower(t.Weekday().String()),
		Yearday:  t.YearDay(),
		Timezone: zone,
	}
}

// Mktime converts broken down time to an epoch. Weekday and Yearday are
// ignored. Fields without a timezone are UTC.
func Mktime(fields Fields) (epoch int64, err error) {
	offset := 0
	if fields.Timezone != "" {
		offset, err = ParseZone(fields.Timezone)
		if err != nil {
			return
		}
	}

	loc := time.FixedZone(FormatZone(offset), offset*60)
	t := time.Date(fields.Year, time.Month(fields.Month), fields.Day,
		fields.Hour, fields.Minute, fields.Second, 0, loc)

	epoch = t.Unix()
	return
}
