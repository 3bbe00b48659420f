package database

import (
	"context"
	"fmt"

	"github.com/example/tunamentor/pkg/models"
)

// MistakeRepository handles database operations for the mistake notebook
type MistakeRepository struct{}

// NewMistakeRepository creates a new repository instance
func NewMistakeRepository() *MistakeRepository {
	return &MistakeRepository{}
}

// Create saves a wrong answer for later review.
func (r *MistakeRepository) Create(ctx context.Context, mistake *models.Mistake) error {
	query := DB.Rebind(`
		INSERT INTO mistakes (username, subject, topic, question_id, mistake_date, reviewed)
		VALUES (?, ?, ?, ?, ?, 0)
	`)
	result, err := DB.ExecContext(ctx, query,
		mistake.Username,
		mistake.Subject,
		mistake.Topic,
		mistake.QuestionID,
		mistake.MistakeDate,
	)
	if err != nil {
		return fmt.Errorf("failed to create mistake: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	mistake.ID = id

	return nil
}

// GetUnreviewed returns mistakes not yet reviewed, oldest first.
func (r *MistakeRepository) GetUnreviewed(ctx context.Context, username string) ([]models.Mistake, error) {
	var mistakes []models.Mistake
	err := DB.SelectContext(ctx, &mistakes, DB.Rebind(`
		SELECT * FROM mistakes
		WHERE username = ? AND reviewed = 0
		ORDER BY mistake_date ASC, id ASC
	`), username)
	if err != nil {
		return nil, fmt.Errorf("failed to get unreviewed mistakes: %v", err)
	}
	return mistakes, nil
}

// MarkReviewed flags a mistake as reviewed.
func (r *MistakeRepository) MarkReviewed(ctx context.Context, id int64) error {
	result, err := DB.ExecContext(ctx, DB.Rebind(`UPDATE mistakes SET reviewed = 1 WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to mark mistake reviewed: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %v", err)
	}
	if affected == 0 {
		return fmt.Errorf("mistake %d not found", id)
	}
	return nil
}

// CountByTopic returns mistake counts grouped by subject and topic.
func (r *MistakeRepository) CountByTopic(ctx context.Context, username string) (map[string]int, error) {
	rows, err := DB.QueryContext(ctx, DB.Rebind(`
		SELECT subject || ' / ' || topic, COUNT(*) FROM mistakes
		WHERE username = ?
		GROUP BY subject, topic
	`), username)
	if err != nil {
		return nil, fmt.Errorf("failed to count mistakes: %v", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("failed to scan mistake count: %v", err)
		}
		counts[key] = n
	}
	return counts, rows.Err()
}
