package value

import (
	"math"
	"time"
)

// Epoch selects the calendar origin used for day serials.
type Epoch int

const (
	// Windows1900 counts 1900-01-01 as day 1 and keeps the phantom
	// 1900-02-29 as day 60.
	Windows1900 Epoch = iota
	// Mac1904 counts 1904-01-01 as day 0.
	Mac1904
)

// String returns the string representation of the epoch.
func (e Epoch) String() string {
	if e == Mac1904 {
		return "mac_1904"
	}
	return "windows_1900"
}

const (
	secondsPerDay = 86400
	nanosPerDay   = secondsPerDay * int64(time.Second)
)

var (
	windowsBase    = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	windowsEarly   = time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC)
	windowsLeapDay = time.Date(1900, time.March, 1, 0, 0, 0, 0, time.UTC)
	macBase        = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// wall drops the location so serials follow the clock reading of t.
func wall(t time.Time) time.Time {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return time.Date(y, mo, d, h, mi, s, t.Nanosecond(), time.UTC)
}

func daysSince(t, base time.Time) float64 {
	secs := t.Unix() - base.Unix()
	return float64(secs)/secondsPerDay + float64(t.Nanosecond())/float64(nanosPerDay)
}

// ToSerial converts the wall-clock reading of t to a day serial.
func ToSerial(t time.Time, epoch Epoch) float64 {
	t = wall(t)
	if epoch == Mac1904 {
		return daysSince(t, macBase)
	}
	if t.Before(windowsLeapDay) {
		return daysSince(t, windowsEarly)
	}
	return daysSince(t, windowsBase)
}

// FromSerial converts a day serial to a UTC time. Fractions are rounded to
// the nearest microsecond. Serial 60 in the 1900 epoch, which names a day
// that never existed, maps to 1900-02-28.
func FromSerial(serial float64, epoch Epoch) time.Time {
	days := math.Floor(serial)
	nanos := int64(math.Round((serial-days)*float64(nanosPerDay)/1e3)) * 1e3
	if nanos >= nanosPerDay {
		days++
		nanos -= nanosPerDay
	}

	base := windowsBase
	switch {
	case epoch == Mac1904:
		base = macBase
	case days < 60:
		base = windowsEarly
	case days == 60:
		base = windowsEarly
		days = 59
	}
	return base.AddDate(0, 0, int(days)).Add(time.Duration(nanos))
}

// DurationToSerial expresses d as a fractional number of days.
func DurationToSerial(d time.Duration) float64 {
	return float64(d) / float64(nanosPerDay)
}

// SerialToDuration converts a fractional number of days to a duration,
// rounded to the nearest microsecond.
func SerialToDuration(serial float64) time.Duration {
	return time.Duration(math.Round(serial*secondsPerDay*1e6)) * time.Microsecond
}
