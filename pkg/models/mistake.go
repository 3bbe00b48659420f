package models

// Mistake is a wrong answer kept for review. Feeds the spaced-repetition
// candidate list until marked reviewed.
type Mistake struct {
	ID          int64  `json:"id" db:"id"`
	Username    string `json:"username" db:"username"`
	Subject     string `json:"subject" db:"subject"`
	Topic       string `json:"topic" db:"topic"`
	QuestionID  string `json:"question_id" db:"question_id"`
	MistakeDate string `json:"mistake_date" db:"mistake_date"`
	Reviewed    bool   `json:"reviewed" db:"reviewed"`
}
