package models

// User is the learner account. The application is built for a single named
// student, but the row is keyed by username like any other account table.
type User struct {
	ID          int64  `json:"id" db:"id"`
	Username    string `json:"username" db:"username"`
	TotalPoints int    `json:"total_points" db:"total_points"`
	Level       int    `json:"level" db:"level"`
	Streak      int    `json:"streak" db:"streak"`
	CreatedAt   string `json:"created_at" db:"created_at"`
}
