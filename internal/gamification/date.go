package gamification

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// legacyDateLayout is the JavaScript Date.toDateString format found in
// previously persisted ledgers.
const legacyDateLayout = "Mon Jan 02 2006"

// Date is a calendar date without a time of day. The zero Date means
// "never".
type Date struct {
	time.Time
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return Date{}, fmt.Errorf("time.Parse(%s) > %w", value, err)
	}
	return Date{Time: t}, nil
}

// AddDays returns the date n days after d. n may be negative.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if value == "" {
		*d = Date{}
		return nil
	}

	if t, err := time.Parse(dateLayout, value); err == nil {
		d.Time = t
		return nil
	}
	if t, err := time.Parse(legacyDateLayout, value); err == nil {
		d.Time = t
		return nil
	}
	return fmt.Errorf("unable to parse date %q", value)
}
