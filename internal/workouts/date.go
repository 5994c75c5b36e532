package workouts

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical wire and display form of a CalendarDate.
const DateLayout = "2006-01-02"

// CalendarDate is a day without time-of-day. The zero value means "no date".
// Comparisons are done on the typed value, never on its string form.
type CalendarDate struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) CalendarDate {
	return CalendarDate{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the time-of-day of t, keeping the calendar day of t's own location.
func DateOf(t time.Time) CalendarDate {
	if t.IsZero() {
		return CalendarDate{}
	}
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate accepts only the strict yyyy-MM-dd form.
func ParseDate(s string) (CalendarDate, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return CalendarDate{}, InvalidInput(fmt.Sprintf("invalid date [%s], expected yyyy-MM-dd", s), err)
	}
	return CalendarDate{t: t}, nil
}

func MustParseDate(s string) CalendarDate {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d CalendarDate) IsZero() bool {
	return d.t.IsZero()
}

// Time returns midnight UTC of the day.
func (d CalendarDate) Time() time.Time {
	return d.t
}

func (d CalendarDate) AddDays(n int) CalendarDate {
	if d.IsZero() {
		return d
	}
	return CalendarDate{t: d.t.AddDate(0, 0, n)}
}

func (d CalendarDate) Before(other CalendarDate) bool {
	return d.t.Before(other.t)
}

func (d CalendarDate) After(other CalendarDate) bool {
	return d.t.After(other.t)
}

func (d CalendarDate) Equal(other CalendarDate) bool {
	return d.t.Equal(other.t)
}

// Compare returns -1, 0 or +1.
func (d CalendarDate) Compare(other CalendarDate) int {
	return d.t.Compare(other.t)
}

// Within reports whether start <= d <= end.
func (d CalendarDate) Within(start, end CalendarDate) bool {
	return !d.Before(start) && !d.After(end)
}

func (d CalendarDate) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

func (d CalendarDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *CalendarDate) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = CalendarDate{}
		return nil
	}
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d CalendarDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *CalendarDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return InvalidInput("date must be a string", err)
	}
	return d.UnmarshalText([]byte(s))
}
