package database

import (
	"context"
	"fmt"
	"time"

	"github.com/example/tunamentor/pkg/models"
)

// DailyGoalRepository handles database operations for daily goals
type DailyGoalRepository struct{}

// NewDailyGoalRepository creates a new repository instance
func NewDailyGoalRepository() *DailyGoalRepository {
	return &DailyGoalRepository{}
}

// Upsert creates or replaces the goal for (user, date, subject).
func (r *DailyGoalRepository) Upsert(ctx context.Context, goal *models.DailyGoal) error {
	var query string
	if DB.DriverName() == "postgres" {
		query = `
			INSERT INTO daily_goals (username, goal_date, subject, target_minutes, completed_minutes)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (username, goal_date, subject) DO UPDATE SET
				target_minutes = EXCLUDED.target_minutes,
				completed_minutes = EXCLUDED.completed_minutes
		`
	} else {
		query = `
			INSERT INTO daily_goals (username, goal_date, subject, target_minutes, completed_minutes)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (username, goal_date, subject) DO UPDATE SET
				target_minutes = excluded.target_minutes,
				completed_minutes = excluded.completed_minutes
		`
	}

	_, err := DB.ExecContext(ctx, query,
		goal.Username,
		goal.GoalDate.Format("2006-01-02"),
		goal.Subject,
		goal.TargetMinutes,
		goal.CompletedMinutes,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert daily goal: %v", err)
	}
	return nil
}

// GetForDate returns all goals set for one day.
func (r *DailyGoalRepository) GetForDate(ctx context.Context, username string, date time.Time) ([]models.DailyGoal, error) {
	var goals []models.DailyGoal
	err := DB.SelectContext(ctx, &goals, DB.Rebind(`
		SELECT * FROM daily_goals
		WHERE username = ? AND goal_date = ?
		ORDER BY subject
	`), username, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to get daily goals: %v", err)
	}
	return goals, nil
}

// AddCompletedMinutes credits study time against a goal. Missing goal rows
// are ignored so free study outside the plan is not an error.
func (r *DailyGoalRepository) AddCompletedMinutes(ctx context.Context, username string, date time.Time, subject string, minutes int) error {
	_, err := DB.ExecContext(ctx, DB.Rebind(`
		UPDATE daily_goals
		SET completed_minutes = completed_minutes + ?
		WHERE username = ? AND goal_date = ? AND subject = ?
	`), minutes, username, date.Format("2006-01-02"), subject)
	if err != nil {
		return fmt.Errorf("failed to add completed minutes: %v", err)
	}
	return nil
}

// MarkCompleted flags a goal as done once its target is reached. Returns
// true when the flag flipped, false when the target is not met yet or the
// flag was already set, so the completion bonus is paid once.
func (r *DailyGoalRepository) MarkCompleted(ctx context.Context, username string, date time.Time, subject string) (bool, error) {
	result, err := DB.ExecContext(ctx, DB.Rebind(`
		UPDATE daily_goals SET completed = 1
		WHERE username = ? AND goal_date = ? AND subject = ?
		  AND completed = 0 AND completed_minutes >= target_minutes
	`), username, date.Format("2006-01-02"), subject)
	if err != nil {
		return false, fmt.Errorf("failed to mark goal completed: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %v", err)
	}
	return affected > 0, nil
}

// CompletedCountSince returns how many goals reached their target on or
// after the date.
func (r *DailyGoalRepository) CompletedCountSince(ctx context.Context, username string, since time.Time) (int, error) {
	var count int
	err := DB.GetContext(ctx, &count, DB.Rebind(`
		SELECT COUNT(*) FROM daily_goals
		WHERE username = ? AND goal_date >= ? AND completed_minutes >= target_minutes AND target_minutes > 0
	`), username, since.Format("2006-01-02"))
	if err != nil {
		return 0, fmt.Errorf("failed to count completed goals: %v", err)
	}
	return count, nil
}
