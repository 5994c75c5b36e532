// Package progress derives the estimated one-repetition-max (e1RM) of an
// exercise entry and folds entries into per-exercise time series.
package progress

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/nicklany01/workout-scheduler/internal/workouts"
)

// MaxRepsWithWeight is the first rep count at which the Brzycki-style
// denominator (1.0278 - 0.0278*reps) stops being positive.
const MaxRepsWithWeight = 37

var (
	ErrRepsOutOfRange = workouts.InvalidInput(fmt.Sprintf("reps must be below %d when weight is set", MaxRepsWithWeight), nil)
	ErrNegativeInput  = workouts.InvalidInput("sets, reps and weight must not be negative", nil)
)

// Estimate returns reps for rep-only entries (weight == 0), otherwise
// weight / (1.0278 - 0.0278*reps) rounded to two decimals. Sets do not
// take part in the formula.
func Estimate(sets, reps int, weight float64) (float64, error) {
	if sets < 0 || reps < 0 || weight < 0 || math.IsNaN(weight) {
		return 0, ErrNegativeInput
	}
	if weight == 0 {
		return float64(reps), nil
	}
	if reps >= MaxRepsWithWeight {
		return 0, ErrRepsOutOfRange
	}
	return round2(weight / (1.0278 - 0.0278*float64(reps))), nil
}

func EstimateEntry(el workouts.ExerciseLog) (float64, error) {
	return Estimate(el.Sets, el.Reps, el.Weight)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type Point struct {
	Date  workouts.CalendarDate `json:"date"`
	Value float64               `json:"value"`
}

// Series is ordered by date ascending, one point per date.
// It marshals to a JSON object whose keys keep that order.
type Series []Point

func (s Series) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Date.String())
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Series) UnmarshalJSON(data []byte) error {
	var m map[workouts.CalendarDate]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	out := make(Series, 0, len(m))
	for d, v := range m {
		out = append(out, Point{Date: d, Value: v})
	}
	out.sort()
	*s = out
	return nil
}

func (s Series) sort() {
	slices.SortFunc(s, func(a, b Point) int {
		return a.Date.Compare(b.Date)
	})
}

// DatedEntry is one exercise log entry together with the date of its log.
type DatedEntry struct {
	Date  workouts.CalendarDate
	Entry workouts.ExerciseLog
}

// Fold builds one series per exercise name. When a date holds several
// entries of the same exercise, the highest estimate wins. Entries that
// cannot be estimated are skipped and reported in the joined error.
func Fold(entries []DatedEntry) (map[string]Series, error) {
	byExercise := make(map[string]map[workouts.CalendarDate]float64)
	var errs []error
	for _, de := range entries {
		est, err := EstimateEntry(de.Entry)
		if err != nil {
			errs = append(errs, fmt.Errorf("estimate [%s] on [%s]: %w", de.Entry.Exercise, de.Date, err))
			continue
		}

		days, ok := byExercise[de.Entry.Exercise]
		if !ok {
			days = make(map[workouts.CalendarDate]float64)
			byExercise[de.Entry.Exercise] = days
		}
		if current, seen := days[de.Date]; !seen || est > current {
			days[de.Date] = est
		}
	}

	result := make(map[string]Series, len(byExercise))
	for name, days := range byExercise {
		series := make(Series, 0, len(days))
		for d, v := range days {
			series = append(series, Point{Date: d, Value: v})
		}
		series.sort()
		result[name] = series
	}

	return result, errors.Join(errs...)
}

// FoldLogs flattens logs into dated entries and folds them.
func FoldLogs(logs []workouts.Log) (map[string]Series, error) {
	var entries []DatedEntry
	for _, l := range logs {
		for _, el := range l.Entries {
			entries = append(entries, DatedEntry{Date: l.Date, Entry: el})
		}
	}
	return Fold(entries)
}

// Stamp returns the estimate placed on date and on the following day.
func Stamp(date workouts.CalendarDate, estimate float64) Series {
	return Series{
		{Date: date, Value: estimate},
		{Date: date.AddDays(1), Value: estimate},
	}
}
