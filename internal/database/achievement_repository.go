package database

import (
	"context"
	"fmt"
	"time"

	"github.com/example/tunamentor/pkg/models"
)

// AchievementRepository handles database operations for achievements
type AchievementRepository struct{}

// NewAchievementRepository creates a new repository instance
func NewAchievementRepository() *AchievementRepository {
	return &AchievementRepository{}
}

// Has reports whether the user already earned the named achievement.
func (r *AchievementRepository) Has(ctx context.Context, username, name string) (bool, error) {
	var count int
	err := DB.GetContext(ctx, &count, DB.Rebind(`
		SELECT COUNT(*) FROM achievements
		WHERE username = ? AND achievement_name = ?
	`), username, name)
	if err != nil {
		return false, fmt.Errorf("failed to check achievement: %v", err)
	}
	return count > 0, nil
}

// Award records an achievement and credits its bonus points in one
// transaction. Returns the user's new point total.
func (r *AchievementRepository) Award(ctx context.Context, achievement *models.Achievement) (int, error) {
	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO achievements (username, achievement_name, achievement_description, points_awarded)
		VALUES (?, ?, ?, ?)
	`),
		achievement.Username,
		achievement.Name,
		achievement.Description,
		achievement.Points,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert achievement: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %v", err)
	}
	achievement.ID = id

	_, err = tx.ExecContext(ctx, tx.Rebind(`
		UPDATE users SET total_points = total_points + ? WHERE username = ?
	`), achievement.Points, achievement.Username)
	if err != nil {
		return 0, fmt.Errorf("failed to add achievement points: %v", err)
	}

	var total int
	err = tx.GetContext(ctx, &total, tx.Rebind(`
		SELECT total_points FROM users WHERE username = ?
	`), achievement.Username)
	if err != nil {
		return 0, fmt.Errorf("failed to read point total: %v", err)
	}

	_, err = tx.ExecContext(ctx, tx.Rebind(`
		UPDATE users SET level = ? WHERE username = ?
	`), levelFor(total), achievement.Username)
	if err != nil {
		return 0, fmt.Errorf("failed to update level: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %v", err)
	}
	return total, nil
}

// EarnedSince returns how many achievements were earned on or after the date
// and their combined bonus points.
func (r *AchievementRepository) EarnedSince(ctx context.Context, username string, since time.Time) (count int, points int, err error) {
	row := DB.QueryRowContext(ctx, DB.Rebind(`
		SELECT COUNT(*), COALESCE(SUM(points_awarded), 0) FROM achievements
		WHERE username = ? AND achieved_date >= ?
	`), username, since.Format("2006-01-02"))
	if err := row.Scan(&count, &points); err != nil {
		return 0, 0, fmt.Errorf("failed to count achievements: %v", err)
	}
	return count, points, nil
}

// GetByUser returns all achievements of a user, newest first.
func (r *AchievementRepository) GetByUser(ctx context.Context, username string) ([]models.Achievement, error) {
	var achievements []models.Achievement
	err := DB.SelectContext(ctx, &achievements, DB.Rebind(`
		SELECT * FROM achievements
		WHERE username = ?
		ORDER BY achieved_date DESC, id DESC
	`), username)
	if err != nil {
		return nil, fmt.Errorf("failed to get achievements: %v", err)
	}
	return achievements, nil
}
