package models

import "time"

const (
	SessionStatusInProgress = "in_progress"
	SessionStatusCompleted  = "completed"
)

// TestSession records an attempt at an assembled test. Only creation is
// handled here; answer and review-flag state belongs to the session
// collaborator.
type TestSession struct {
	ID               string    `bson:"_id,omitempty" json:"id"`
	TestID           string    `bson:"test_id" json:"test_id"`
	UserID           string    `bson:"user_id" json:"user_id"`
	Status           string    `bson:"status" json:"status"`
	TimeSpentSeconds int       `bson:"time_spent_seconds" json:"time_spent_seconds"`
	StartTime        time.Time `bson:"start_time" json:"start_time"`
}
