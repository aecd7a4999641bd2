package models

import (
	"errors"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date with day precision. It serializes as "YYYY-MM-DD"
// both in JSON and in storage, so lexical and chronological order agree.
type Date struct {
	time.Time
}

var ErrInvalidDate = errors.New("invalid date: use YYYY-MM-DD")

// ParseDate parses "YYYY-MM-DD". RFC3339 timestamps are accepted too and
// truncated to the day, since mobile clients tend to send full instants.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}, nil
	}
	return Date{}, ErrInvalidDate
}

// NewDate builds a Date from year, month and day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Before reports whether d falls on an earlier day than other.
func (d Date) Before(other Date) bool {
	return d.String() < other.String()
}

// After reports whether d falls on a later day than other.
func (d Date) After(other Date) bool {
	return d.String() > other.String()
}
