package models

// FutureLesson is a completed enrichment lesson (beyond the core curriculum).
type FutureLesson struct {
	ID             int64  `json:"id" db:"id"`
	Username       string `json:"username" db:"username"`
	Title          string `json:"title" db:"lesson_title"`
	LessonType     string `json:"type" db:"lesson_type"`
	CompletionDate string `json:"completion_date" db:"completion_date"`
}
