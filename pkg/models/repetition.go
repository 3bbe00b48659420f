package models

import "time"

// Repetition is the spaced-repetition entry for one (user, subject, topic).
// One row per key, upserted; ReviewCount indexes into the interval table.
type Repetition struct {
	ID             int64     `json:"id" db:"id"`
	Username       string    `json:"username" db:"username"`
	Subject        string    `json:"subject" db:"subject"`
	Topic          string    `json:"topic" db:"topic"`
	NextReviewDate time.Time `json:"next_review_date" db:"next_review_date"`
	ReviewCount    int       `json:"review_count" db:"review_count"`
	Difficulty     int       `json:"difficulty" db:"difficulty"` // 1-3, scales the interval table
	CreatedAt      string    `json:"created_at" db:"created_at"`
}
