package models

import (
	"strings"
	"time"
)

type Option struct {
	ID   string `bson:"id" json:"id"`
	Text string `bson:"text" json:"text"`
}

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// DifficultyLevels is the fixed bucket order used during selection.
var DifficultyLevels = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

type Question struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Content       string    `bson:"content" json:"content"`
	Options       []Option  `bson:"options" json:"options"`
	CorrectAnswer string    `bson:"correct_answer" json:"correct_answer"`
	Explanation   string    `bson:"explanation" json:"explanation"`
	ConceptID     string    `bson:"concept_id" json:"concept_id"`
	SubConcept    string    `bson:"sub_concept,omitempty" json:"sub_concept,omitempty"`
	Difficulty    string    `bson:"difficulty" json:"difficulty"`
	Source        string    `bson:"source" json:"source"`
	YearAppeared  int       `bson:"year_appeared,omitempty" json:"year_appeared,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// HasSource reports whether the question carries a citable source.
// Questions without one may sit in storage but must never reach an
// assembled test.
func (q *Question) HasSource() bool {
	return strings.TrimSpace(q.Source) != ""
}

// ValidDifficulty reports whether the value is one of the three
// recognized difficulty levels.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
