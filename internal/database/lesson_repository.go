package database

import (
	"context"
	"fmt"

	"github.com/example/tunamentor/pkg/models"
)

// FutureLessonRepository handles database operations for enrichment lessons
type FutureLessonRepository struct{}

// NewFutureLessonRepository creates a new repository instance
func NewFutureLessonRepository() *FutureLessonRepository {
	return &FutureLessonRepository{}
}

// Create records a finished enrichment lesson.
func (r *FutureLessonRepository) Create(ctx context.Context, lesson *models.FutureLesson) error {
	query := DB.Rebind(`
		INSERT INTO future_lessons (username, lesson_title, lesson_type)
		VALUES (?, ?, ?)
	`)
	result, err := DB.ExecContext(ctx, query,
		lesson.Username,
		lesson.Title,
		lesson.LessonType,
	)
	if err != nil {
		return fmt.Errorf("failed to create future lesson: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	lesson.ID = id

	return nil
}

// GetByUser returns completed enrichment lessons, newest first.
func (r *FutureLessonRepository) GetByUser(ctx context.Context, username string) ([]models.FutureLesson, error) {
	var lessons []models.FutureLesson
	err := DB.SelectContext(ctx, &lessons, DB.Rebind(`
		SELECT * FROM future_lessons
		WHERE username = ?
		ORDER BY completion_date DESC, id DESC
	`), username)
	if err != nil {
		return nil, fmt.Errorf("failed to get future lessons: %v", err)
	}
	return lessons, nil
}
