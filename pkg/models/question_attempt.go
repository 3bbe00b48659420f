package models

// QuestionAttempt records a single answered question. Append-only.
type QuestionAttempt struct {
	ID            int64  `json:"id" db:"id"`
	Username      string `json:"username" db:"username"`
	Subject       string `json:"subject" db:"subject"`
	Topic         string `json:"topic" db:"topic"`
	QuestionID    string `json:"question_id" db:"question_id"`
	UserAnswer    string `json:"user_answer" db:"user_answer"`
	CorrectAnswer string `json:"correct_answer" db:"correct_answer"`
	IsCorrect     bool   `json:"is_correct" db:"is_correct"`
	AttemptDate   string `json:"attempt_date" db:"attempt_date"`
}
