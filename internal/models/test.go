package models

import "time"

// DefaultQuestionCount is used when a test request does not specify one.
const DefaultQuestionCount = 65

// DefaultTestDurationSeconds is the fixed duration written on every
// assembled test (3 hours).
const DefaultTestDurationSeconds = 10800

// Test is an assembled mock test. Written exactly once, after the full
// question count is satisfied and sources are validated; partial
// assemblies are never persisted.
type Test struct {
	ID              string    `bson:"_id,omitempty" json:"id"`
	QuestionIDs     []string  `bson:"question_ids" json:"question_ids"`
	TotalQuestions  int       `bson:"total_questions" json:"total_questions"`
	DurationSeconds int       `bson:"duration_seconds" json:"duration_seconds"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}

// DifficultyDistribution holds the requested fraction of questions per
// difficulty level. Fractions must be non-negative and sum within 10%
// of 1.0.
type DifficultyDistribution struct {
	Easy   float64 `json:"easy"`
	Medium float64 `json:"medium"`
	Hard   float64 `json:"hard"`
}

// Sum returns the total of the three fractions.
func (d DifficultyDistribution) Sum() float64 {
	return d.Easy + d.Medium + d.Hard
}

// Fraction returns the fraction for a difficulty level.
func (d DifficultyDistribution) Fraction(level string) float64 {
	switch level {
	case DifficultyEasy:
		return d.Easy
	case DifficultyMedium:
		return d.Medium
	case DifficultyHard:
		return d.Hard
	}
	return 0
}

// DefaultDifficultyDistribution is applied when a test request does not
// supply its own mix.
func DefaultDifficultyDistribution() DifficultyDistribution {
	return DifficultyDistribution{Easy: 0.3, Medium: 0.5, Hard: 0.2}
}

// TestConfig carries the request-scoped assembly options. It is never
// persisted.
type TestConfig struct {
	QuestionCount          int                     `json:"question_count"`
	FocusConcepts          []string                `json:"focus_concepts"`
	DifficultyDistribution *DifficultyDistribution `json:"difficulty_distribution"`
}
