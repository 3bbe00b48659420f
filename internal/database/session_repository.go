package database

import (
	"context"
	"fmt"
	"time"

	"github.com/example/tunamentor/pkg/models"
)

// StudySessionRepository handles database operations for study sessions
type StudySessionRepository struct{}

// NewStudySessionRepository creates a new repository instance
func NewStudySessionRepository() *StudySessionRepository {
	return &StudySessionRepository{}
}

// Create appends a study session to the log.
func (r *StudySessionRepository) Create(ctx context.Context, session *models.StudySession) error {
	query := DB.Rebind(`
		INSERT INTO study_sessions (username, subject, topic, duration_minutes, session_date)
		VALUES (?, ?, ?, ?, ?)
	`)
	result, err := DB.ExecContext(ctx, query,
		session.Username,
		session.Subject,
		session.Topic,
		session.DurationMinutes,
		session.SessionDate.Format("2006-01-02"),
	)
	if err != nil {
		return fmt.Errorf("failed to create study session: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	session.ID = id

	return nil
}

// TotalMinutesSince returns total logged study minutes on or after the date.
func (r *StudySessionRepository) TotalMinutesSince(ctx context.Context, username string, since time.Time) (int, error) {
	var total int
	err := DB.GetContext(ctx, &total, DB.Rebind(`
		SELECT COALESCE(SUM(duration_minutes), 0) FROM study_sessions
		WHERE username = ? AND session_date >= ?
	`), username, since.Format("2006-01-02"))
	if err != nil {
		return 0, fmt.Errorf("failed to sum study minutes: %v", err)
	}
	return total, nil
}

// SubjectBreakdownSince returns per-subject study minutes on or after the date.
func (r *StudySessionRepository) SubjectBreakdownSince(ctx context.Context, username string, since time.Time) (map[string]int, error) {
	rows, err := DB.QueryContext(ctx, DB.Rebind(`
		SELECT subject, SUM(duration_minutes) FROM study_sessions
		WHERE username = ? AND session_date >= ?
		GROUP BY subject
	`), username, since.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to get subject breakdown: %v", err)
	}
	defer rows.Close()

	breakdown := make(map[string]int)
	for rows.Next() {
		var subject string
		var minutes int
		if err := rows.Scan(&subject, &minutes); err != nil {
			return nil, fmt.Errorf("failed to scan breakdown row: %v", err)
		}
		breakdown[subject] = minutes
	}
	return breakdown, rows.Err()
}

// MinutesForDate returns study minutes logged on one specific day, optionally
// restricted to a subject (empty subject means all subjects).
func (r *StudySessionRepository) MinutesForDate(ctx context.Context, username string, date time.Time, subject string) (int, error) {
	var total int
	var err error
	if subject == "" {
		err = DB.GetContext(ctx, &total, DB.Rebind(`
			SELECT COALESCE(SUM(duration_minutes), 0) FROM study_sessions
			WHERE username = ? AND session_date = ?
		`), username, date.Format("2006-01-02"))
	} else {
		err = DB.GetContext(ctx, &total, DB.Rebind(`
			SELECT COALESCE(SUM(duration_minutes), 0) FROM study_sessions
			WHERE username = ? AND session_date = ? AND subject = ?
		`), username, date.Format("2006-01-02"), subject)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to sum day minutes: %v", err)
	}
	return total, nil
}

// StudyDates returns the distinct study dates for a user, newest first.
// Used to compute the consecutive-day streak.
func (r *StudySessionRepository) StudyDates(ctx context.Context, username string, limit int) ([]string, error) {
	// CAST keeps the driver from turning the date column into a timestamp.
	var dates []string
	err := DB.SelectContext(ctx, &dates, DB.Rebind(`
		SELECT DISTINCT CAST(session_date AS TEXT) FROM study_sessions
		WHERE username = ?
		ORDER BY 1 DESC
		LIMIT ?
	`), username, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get study dates: %v", err)
	}
	return dates, nil
}

// DistinctTopicsSince counts distinct topics studied on or after the date.
func (r *StudySessionRepository) DistinctTopicsSince(ctx context.Context, username string, since time.Time) (int, error) {
	var count int
	err := DB.GetContext(ctx, &count, DB.Rebind(`
		SELECT COUNT(DISTINCT subject || '/' || topic) FROM study_sessions
		WHERE username = ? AND session_date >= ? AND topic != ''
	`), username, since.Format("2006-01-02"))
	if err != nil {
		return 0, fmt.Errorf("failed to count distinct topics: %v", err)
	}
	return count, nil
}

// TopicsStudiedOn returns the distinct topics studied on a given day.
func (r *StudySessionRepository) TopicsStudiedOn(ctx context.Context, username string, date time.Time) (int, error) {
	var count int
	err := DB.GetContext(ctx, &count, DB.Rebind(`
		SELECT COUNT(DISTINCT topic) FROM study_sessions
		WHERE username = ? AND session_date = ? AND topic != ''
	`), username, date.Format("2006-01-02"))
	if err != nil {
		return 0, fmt.Errorf("failed to count topics: %v", err)
	}
	return count, nil
}
