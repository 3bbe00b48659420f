package database

import (
	"context"
	"fmt"
	"time"

	"github.com/example/tunamentor/pkg/models"
)

// QuestionAttemptRepository handles database operations for question attempts
type QuestionAttemptRepository struct{}

// NewQuestionAttemptRepository creates a new repository instance
func NewQuestionAttemptRepository() *QuestionAttemptRepository {
	return &QuestionAttemptRepository{}
}

// Create records one answered question.
func (r *QuestionAttemptRepository) Create(ctx context.Context, attempt *models.QuestionAttempt) error {
	query := DB.Rebind(`
		INSERT INTO question_attempts (username, subject, topic, question_id, user_answer, correct_answer, is_correct, attempt_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	result, err := DB.ExecContext(ctx, query,
		attempt.Username,
		attempt.Subject,
		attempt.Topic,
		attempt.QuestionID,
		attempt.UserAnswer,
		attempt.CorrectAnswer,
		attempt.IsCorrect,
		attempt.AttemptDate,
	)
	if err != nil {
		return fmt.Errorf("failed to create question attempt: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	attempt.ID = id

	return nil
}

// CountSince returns total and correct attempt counts on or after the date.
func (r *QuestionAttemptRepository) CountSince(ctx context.Context, username string, since time.Time) (total int, correct int, err error) {
	row := DB.QueryRowContext(ctx, DB.Rebind(`
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END), 0)
		FROM question_attempts
		WHERE username = ? AND attempt_date >= ?
	`), username, since.Format("2006-01-02"))
	if err := row.Scan(&total, &correct); err != nil {
		return 0, 0, fmt.Errorf("failed to count attempts: %v", err)
	}
	return total, correct, nil
}

// CountForDate returns total and correct attempt counts for one specific day.
func (r *QuestionAttemptRepository) CountForDate(ctx context.Context, username string, date time.Time) (total int, correct int, err error) {
	row := DB.QueryRowContext(ctx, DB.Rebind(`
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END), 0)
		FROM question_attempts
		WHERE username = ? AND attempt_date = ?
	`), username, date.Format("2006-01-02"))
	if err := row.Scan(&total, &correct); err != nil {
		return 0, 0, fmt.Errorf("failed to count day attempts: %v", err)
	}
	return total, correct, nil
}

// SubjectCountForDate returns how many questions were attempted in one
// subject on one day.
func (r *QuestionAttemptRepository) SubjectCountForDate(ctx context.Context, username, subject string, date time.Time) (int, error) {
	var count int
	err := DB.GetContext(ctx, &count, DB.Rebind(`
		SELECT COUNT(*) FROM question_attempts
		WHERE username = ? AND subject = ? AND attempt_date = ?
	`), username, subject, date.Format("2006-01-02"))
	if err != nil {
		return 0, fmt.Errorf("failed to count subject attempts: %v", err)
	}
	return count, nil
}

// topicAccuracyRow is the scan target for per-topic aggregation.
type topicAccuracyRow struct {
	Subject string `db:"subject"`
	Topic   string `db:"topic"`
	Total   int    `db:"total"`
	Correct int    `db:"correct"`
}

// TopicAccuracy returns per-topic totals for topics with at least minAttempts
// attempts, least accurate first.
func (r *QuestionAttemptRepository) TopicAccuracy(ctx context.Context, username string, minAttempts int) ([]models.WeakArea, error) {
	var rows []topicAccuracyRow
	err := DB.SelectContext(ctx, &rows, DB.Rebind(`
		SELECT subject, topic,
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END), 0) AS correct
		FROM question_attempts
		WHERE username = ?
		GROUP BY subject, topic
		HAVING COUNT(*) >= ?
		ORDER BY CAST(correct AS REAL) / total ASC, subject, topic
	`), username, minAttempts)
	if err != nil {
		return nil, fmt.Errorf("failed to get topic accuracy: %v", err)
	}

	areas := make([]models.WeakArea, 0, len(rows))
	for _, row := range rows {
		accuracy := 0.0
		if row.Total > 0 {
			accuracy = float64(row.Correct) / float64(row.Total) * 100
		}
		areas = append(areas, models.WeakArea{
			Subject:  row.Subject,
			Topic:    row.Topic,
			Attempts: row.Total,
			Accuracy: accuracy,
		})
	}
	return areas, nil
}

// SubjectAccuracy returns per-subject attempt totals and correct counts.
func (r *QuestionAttemptRepository) SubjectAccuracy(ctx context.Context, username string) (map[string][2]int, error) {
	rows, err := DB.QueryContext(ctx, DB.Rebind(`
		SELECT subject,
			COUNT(*),
			COALESCE(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END), 0)
		FROM question_attempts
		WHERE username = ?
		GROUP BY subject
	`), username)
	if err != nil {
		return nil, fmt.Errorf("failed to get subject accuracy: %v", err)
	}
	defer rows.Close()

	result := make(map[string][2]int)
	for rows.Next() {
		var subject string
		var total, correct int
		if err := rows.Scan(&subject, &total, &correct); err != nil {
			return nil, fmt.Errorf("failed to scan accuracy row: %v", err)
		}
		result[subject] = [2]int{total, correct}
	}
	return result, rows.Err()
}
