package workouts

import (
	"fmt"
	"strings"
)

type UserID int64

// Exercise is a catalogue entry. A nil OwnerID marks a global exercise
// visible to every user.
type Exercise struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	OwnerID *UserID  `json:"ownerId,omitempty"`
	Muscles []Muscle `json:"muscles"`
}

func (e Exercise) IsGlobal() bool {
	return e.OwnerID == nil
}

// ExerciseLog is one performed exercise on a given day.
type ExerciseLog struct {
	Exercise string  `json:"exercise"`
	Sets     int     `json:"sets"`
	Reps     int     `json:"reps"`
	Weight   float64 `json:"weight"`
}

func (el ExerciseLog) Validate() error {
	if strings.TrimSpace(el.Exercise) == "" {
		return InvalidInput("exercise name empty", nil)
	}
	if el.Sets < 0 || el.Reps < 0 || el.Weight < 0 {
		return InvalidInput(fmt.Sprintf("negative sets/reps/weight for [%s]", el.Exercise), nil)
	}
	return nil
}

// Log holds everything a user did on one calendar date. Entries keep
// the order in which they were submitted.
type Log struct {
	ID      int64         `json:"id"`
	UserID  UserID        `json:"userId"`
	Date    CalendarDate  `json:"date"`
	Entries []ExerciseLog `json:"exerciseLogs"`
}

type User struct {
	ID            UserID `json:"id"`
	Username      string `json:"username"`
	PasswordHash  string `json:"-"`
	PreferredName string `json:"preferredname"`
	Email         string `json:"email"`
}
