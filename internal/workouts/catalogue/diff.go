package catalogue

import (
	"sort"

	"github.com/nicklany01/workout-scheduler/internal/workouts"
)

type Op int

const (
	OpInsert Op = iota + 1
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Change is one step needed to move the stored catalogue to the desired
// one. Muscles is only set for inserts. There is no update: an exercise
// present on both sides is left as it is, muscles included.
type Change struct {
	Op      Op
	Name    string
	Muscles []workouts.Muscle
}

// Visible describes one exercise the user can currently see.
type Visible struct {
	Name   string
	Global bool
}

// Diff compares the visible catalogue with the desired one, keyed by
// exercise name. Global exercises are never deleted. Deletes come first,
// each group ordered by name.
func Diff(current []Visible, desired map[string][]workouts.Muscle) []Change {
	currentByName := make(map[string]Visible, len(current))
	for _, v := range current {
		currentByName[v.Name] = v
	}

	var deletes, inserts []Change
	for _, v := range current {
		if v.Global {
			continue
		}
		if _, keep := desired[v.Name]; !keep {
			deletes = append(deletes, Change{Op: OpDelete, Name: v.Name})
		}
	}
	for name, muscles := range desired {
		if _, exists := currentByName[name]; exists {
			continue
		}
		inserts = append(inserts, Change{Op: OpInsert, Name: name, Muscles: muscles})
	}

	sort.Slice(deletes, func(i, j int) bool { return deletes[i].Name < deletes[j].Name })
	sort.Slice(inserts, func(i, j int) bool { return inserts[i].Name < inserts[j].Name })

	return append(deletes, inserts...)
}
