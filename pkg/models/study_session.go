package models

import "time"

// StudySession is one logged block of study time. Append-only.
type StudySession struct {
	ID              int64     `json:"id" db:"id"`
	Username        string    `json:"username" db:"username"`
	Subject         string    `json:"subject" db:"subject"`
	Topic           string    `json:"topic" db:"topic"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	SessionDate     time.Time `json:"session_date" db:"session_date"`
	CreatedAt       string    `json:"created_at" db:"created_at"`
}
