package core

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

const secsPerDay = 24 * 60 * 60

// Date is a calendar date at day granularity, stored as a signed count of
// days since the Unix epoch (1970-01-01). It deliberately carries no
// time-of-day or timezone semantics; all arithmetic is plain integer day
// offsets, so week alignment and day differences never depend on DST or
// wall-clock conversions.
type Date int

// NewDate builds a Date from a year/month/day triple. Out-of-range values
// are normalized the same way time.Date normalizes them.
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date(t.Unix() / secsPerDay)
}

// ParseDate parses a "2006-01-02" string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(DateLayout, CleanString(s), time.UTC)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing date %q", s)
	}
	return Date(t.Unix() / secsPerDay), nil
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar date in local time.
func Today() Date {
	return DateOf(time.Now())
}

// Time returns the date as a UTC midnight instant; for formatting only.
func (d Date) Time() time.Time {
	return time.Unix(int64(d)*secsPerDay, 0).UTC()
}

func (d Date) Year() int         { return d.Time().Year() }
func (d Date) Month() time.Month { return d.Time().Month() }

// Day returns the day of the month, 1-31.
func (d Date) Day() int { return d.Time().Day() }

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date { return d + Date(n) }

// DaysUntil returns the signed whole-day count from d to target.
func (d Date) DaysUntil(target Date) int { return int(target) - int(d) }

func (d Date) Before(other Date) bool { return d < other }
func (d Date) After(other Date) bool  { return d > other }

// WeekdayIndex returns the day of week with Monday as 0 and Sunday as 6.
// The epoch 1970-01-01 was a Thursday, hence the +3 shift.
func (d Date) WeekdayIndex() int {
	return ((int(d)+3)%7 + 7) % 7
}

// StartOfWeek returns the Monday on or before d.
func (d Date) StartOfWeek() Date { return d.AddDays(-d.WeekdayIndex()) }

// EndOfWeek returns the Sunday on or after d.
func (d Date) EndOfWeek() Date { return d.StartOfWeek().AddDays(6) }

func (d Date) String() string { return d.Time().Format(DateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return errors.Errorf("invalid date %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements sql.Scanner; accepts DATE columns and date strings.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}
	return fmt.Errorf("cannot scan %T into core.Date", src)
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) { return d.Time(), nil }
