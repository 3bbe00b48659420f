package models

import "time"

// DailyGoal is a per-subject minute target for one day.
type DailyGoal struct {
	ID               int64     `json:"id" db:"id"`
	Username         string    `json:"username" db:"username"`
	GoalDate         time.Time `json:"goal_date" db:"goal_date"`
	Subject          string    `json:"subject" db:"subject"`
	TargetMinutes    int       `json:"target_minutes" db:"target_minutes"`
	CompletedMinutes int       `json:"completed_minutes" db:"completed_minutes"`
	Completed        bool      `json:"completed" db:"completed"`
}
