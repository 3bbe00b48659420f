package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/tunamentor/pkg/models"
)

// RepetitionRepository handles database operations for spaced repetition entries
type RepetitionRepository struct{}

// NewRepetitionRepository creates a new repository instance
func NewRepetitionRepository() *RepetitionRepository {
	return &RepetitionRepository{}
}

// Upsert inserts a repetition entry or, if the (username, subject, topic) pair
// already exists, resets it to the given state.
func (r *RepetitionRepository) Upsert(ctx context.Context, rep *models.Repetition) error {
	var query string
	if DB.DriverName() == "postgres" {
		query = `
			INSERT INTO spaced_repetition (username, subject, topic, next_review_date, review_count, difficulty)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (username, subject, topic) DO UPDATE SET
				next_review_date = EXCLUDED.next_review_date,
				review_count = EXCLUDED.review_count,
				difficulty = EXCLUDED.difficulty
		`
	} else {
		query = `
			INSERT INTO spaced_repetition (username, subject, topic, next_review_date, review_count, difficulty)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (username, subject, topic) DO UPDATE SET
				next_review_date = excluded.next_review_date,
				review_count = excluded.review_count,
				difficulty = excluded.difficulty
		`
	}

	_, err := DB.ExecContext(ctx, query,
		rep.Username,
		rep.Subject,
		rep.Topic,
		rep.NextReviewDate.Format("2006-01-02"),
		rep.ReviewCount,
		rep.Difficulty,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert repetition: %v", err)
	}
	return nil
}

// Get returns the repetition entry for one topic, or nil when none exists.
func (r *RepetitionRepository) Get(ctx context.Context, username, subject, topic string) (*models.Repetition, error) {
	var rep models.Repetition
	err := DB.GetContext(ctx, &rep, DB.Rebind(`
		SELECT * FROM spaced_repetition
		WHERE username = ? AND subject = ? AND topic = ?
	`), username, subject, topic)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get repetition: %v", err)
	}
	return &rep, nil
}

// Update rewrites the schedule state of an existing entry.
func (r *RepetitionRepository) Update(ctx context.Context, rep *models.Repetition) error {
	result, err := DB.ExecContext(ctx, DB.Rebind(`
		UPDATE spaced_repetition
		SET next_review_date = ?, review_count = ?, difficulty = ?
		WHERE username = ? AND subject = ? AND topic = ?
	`),
		rep.NextReviewDate.Format("2006-01-02"),
		rep.ReviewCount,
		rep.Difficulty,
		rep.Username,
		rep.Subject,
		rep.Topic,
	)
	if err != nil {
		return fmt.Errorf("failed to update repetition: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %v", err)
	}
	if affected == 0 {
		return fmt.Errorf("repetition for %s/%s not found", rep.Subject, rep.Topic)
	}
	return nil
}

// Due returns entries whose review date is on or before the given day,
// most overdue first.
func (r *RepetitionRepository) Due(ctx context.Context, username string, date time.Time) ([]models.Repetition, error) {
	var reps []models.Repetition
	err := DB.SelectContext(ctx, &reps, DB.Rebind(`
		SELECT * FROM spaced_repetition
		WHERE username = ? AND next_review_date <= ?
		ORDER BY next_review_date ASC, subject, topic
	`), username, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to get due repetitions: %v", err)
	}
	return reps, nil
}

// All returns every scheduled entry for a user ordered by review date.
func (r *RepetitionRepository) All(ctx context.Context, username string) ([]models.Repetition, error) {
	var reps []models.Repetition
	err := DB.SelectContext(ctx, &reps, DB.Rebind(`
		SELECT * FROM spaced_repetition
		WHERE username = ?
		ORDER BY next_review_date ASC, subject, topic
	`), username)
	if err != nil {
		return nil, fmt.Errorf("failed to list repetitions: %v", err)
	}
	return reps, nil
}
