package workouts

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Muscle string

const (
	MuscleTriceps    Muscle = "Triceps"
	MuscleBiceps     Muscle = "Biceps"
	MuscleForearms   Muscle = "Forearms"
	MuscleChest      Muscle = "Chest"
	MuscleFrontDelts Muscle = "Front Delts"
	MuscleSideDelts  Muscle = "Side Delts"
	MuscleRearDelts  Muscle = "Rear Delts"
	MuscleLats       Muscle = "Lats"
	MuscleTraps      Muscle = "Traps"
	MuscleQuads      Muscle = "Quads"
	MuscleHamstrings Muscle = "Hamstrings"
	MuscleCalves     Muscle = "Calves"
	MuscleAbs        Muscle = "Abs"
	MuscleObliques   Muscle = "Obliques"
	MuscleGlutes     Muscle = "Glutes"
	MuscleCardio     Muscle = "Cardio"
)

// AllMuscles is in the same order the muscle table is seeded.
var AllMuscles = []Muscle{
	MuscleTriceps,
	MuscleBiceps,
	MuscleForearms,
	MuscleChest,
	MuscleFrontDelts,
	MuscleSideDelts,
	MuscleRearDelts,
	MuscleLats,
	MuscleTraps,
	MuscleQuads,
	MuscleHamstrings,
	MuscleCalves,
	MuscleAbs,
	MuscleObliques,
	MuscleGlutes,
	MuscleCardio,
}

var musclesByLowerName = func() map[string]Muscle {
	m := make(map[string]Muscle, len(AllMuscles))
	for _, muscle := range AllMuscles {
		m[strings.ToLower(string(muscle))] = muscle
	}
	return m
}()

// ParseMuscle is case-insensitive and returns the canonical spelling.
func ParseMuscle(name string) (Muscle, error) {
	muscle, ok := musclesByLowerName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", InvalidReference(fmt.Sprintf("unknown muscle [%s]", name))
	}
	return muscle, nil
}

func (m Muscle) Valid() bool {
	_, ok := musclesByLowerName[strings.ToLower(string(m))]
	return ok
}

func (m *Muscle) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return InvalidInput("muscle must be a string", err)
	}
	parsed, err := ParseMuscle(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// UnmarshalText accepts any casing, e.g. muscles listed in TOML files.
func (m *Muscle) UnmarshalText(text []byte) error {
	parsed, err := ParseMuscle(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

