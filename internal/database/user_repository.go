package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/tunamentor/pkg/models"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// levelFor derives the level from a point total. Level is never below 1.
func levelFor(totalPoints int) int {
	level := totalPoints / 100
	if level < 1 {
		level = 1
	}
	return level
}

// GetOrCreate returns the user row, creating it on first login.
func (r *UserRepository) GetOrCreate(ctx context.Context, username string) (*models.User, error) {
	var query string
	if DB.DriverName() == "postgres" {
		query = "INSERT INTO users (username) VALUES ($1) ON CONFLICT (username) DO NOTHING"
	} else {
		query = "INSERT OR IGNORE INTO users (username) VALUES (?)"
	}
	if _, err := DB.ExecContext(ctx, query, username); err != nil {
		return nil, fmt.Errorf("failed to create user: %v", err)
	}
	return r.GetByUsername(ctx, username)
}

// GetByUsername returns a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := DB.GetContext(ctx, &user,
		DB.Rebind("SELECT id, username, total_points, level, streak, created_at FROM users WHERE username = ?"), username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return &user, nil
}

// AddPoints applies a point delta (may be negative) and recomputes the stored
// level in the same transaction. Returns the new total.
func (r *UserRepository) AddPoints(ctx context.Context, username string, delta int) (int, error) {
	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		tx.Rebind("UPDATE users SET total_points = total_points + ? WHERE username = ?"), delta, username); err != nil {
		return 0, fmt.Errorf("failed to update points: %v", err)
	}

	var total int
	if err := tx.GetContext(ctx, &total,
		tx.Rebind("SELECT total_points FROM users WHERE username = ?"), username); err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("user %q not found", username)
		}
		return 0, fmt.Errorf("failed to read points: %v", err)
	}

	if _, err := tx.ExecContext(ctx,
		tx.Rebind("UPDATE users SET level = ? WHERE username = ?"), levelFor(total), username); err != nil {
		return 0, fmt.Errorf("failed to update level: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %v", err)
	}
	return total, nil
}

// SpendPoints deducts points only if the balance covers the amount. Returns
// false, with no state change, when it doesn't.
func (r *UserRepository) SpendPoints(ctx context.Context, username string, amount int) (bool, error) {
	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	var total int
	if err := tx.GetContext(ctx, &total,
		tx.Rebind("SELECT total_points FROM users WHERE username = ?"), username); err != nil {
		return false, fmt.Errorf("failed to read points: %v", err)
	}

	if total < amount {
		return false, nil
	}

	total -= amount
	if _, err := tx.ExecContext(ctx,
		tx.Rebind("UPDATE users SET total_points = ?, level = ? WHERE username = ?"),
		total, levelFor(total), username); err != nil {
		return false, fmt.Errorf("failed to update points: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit: %v", err)
	}
	return true, nil
}

// UpdateStreak stores the current consecutive-study-day count.
func (r *UserRepository) UpdateStreak(ctx context.Context, username string, streak int) error {
	_, err := DB.ExecContext(ctx,
		DB.Rebind("UPDATE users SET streak = ? WHERE username = ?"), streak, username)
	if err != nil {
		return fmt.Errorf("failed to update streak: %v", err)
	}
	return nil
}
