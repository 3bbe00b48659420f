package spaced_repetition

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/example/tunamentor/internal/database"
	"github.com/example/tunamentor/pkg/models"
)

// BaseIntervals are the review gaps in days. ReviewCount indexes into this
// table; counts past the end stay on the last interval.
var BaseIntervals = []int{1, 3, 7, 14, 30, 90}

// Multiplier returns the interval scale for a difficulty level (1-3).
// Harder topics come back sooner.
func Multiplier(difficulty int) float64 {
	switch difficulty {
	case 2:
		return 0.75
	case 3:
		return 0.5
	default:
		return 1.0
	}
}

// IntervalDays returns the scaled review interval for a review count and
// difficulty. Always at least one day.
func IntervalDays(reviewCount, difficulty int) int {
	idx := reviewCount
	if idx < 0 {
		idx = 0
	}
	if idx >= len(BaseIntervals) {
		idx = len(BaseIntervals) - 1
	}

	days := int(math.Ceil(float64(BaseIntervals[idx]) * Multiplier(difficulty)))
	if days < 1 {
		days = 1
	}
	return days
}

// Scheduler manages the per-topic review schedule. The clock is injected so
// date arithmetic is testable.
type Scheduler struct {
	repo *database.RepetitionRepository
	now  func() time.Time
}

// NewScheduler creates a scheduler over the repetition table.
func NewScheduler(repo *database.RepetitionRepository) *Scheduler {
	return &Scheduler{
		repo: repo,
		now:  time.Now,
	}
}

// NewSchedulerWithClock creates a scheduler with a fixed clock for tests.
func NewSchedulerWithClock(repo *database.RepetitionRepository, now func() time.Time) *Scheduler {
	return &Scheduler{repo: repo, now: now}
}

func (s *Scheduler) today() time.Time {
	t := s.now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddToSchedule puts a topic on the review schedule starting tomorrow.
// Re-adding an already scheduled topic resets it, last write wins.
func (s *Scheduler) AddToSchedule(ctx context.Context, username, subject, topic string) error {
	rep := &models.Repetition{
		Username:       username,
		Subject:        subject,
		Topic:          topic,
		NextReviewDate: s.today().AddDate(0, 0, IntervalDays(0, 1)),
		ReviewCount:    0,
		Difficulty:     1,
	}
	if err := s.repo.Upsert(ctx, rep); err != nil {
		return fmt.Errorf("failed to schedule review: %v", err)
	}
	return nil
}

// RecordReview applies a review outcome. Success moves the entry one step
// deeper into the interval table; failure resets it to tomorrow.
func (s *Scheduler) RecordReview(ctx context.Context, username, subject, topic string, success bool) (*models.Repetition, error) {
	rep, err := s.repo.Get(ctx, username, subject, topic)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, fmt.Errorf("no scheduled review for %s/%s", subject, topic)
	}

	if success {
		rep.ReviewCount++
	} else {
		rep.ReviewCount = 0
	}
	rep.NextReviewDate = s.today().AddDate(0, 0, IntervalDays(rep.ReviewCount, rep.Difficulty))

	if err := s.repo.Update(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// DueReviews lists entries due today or earlier, most overdue first.
func (s *Scheduler) DueReviews(ctx context.Context, username string) ([]models.Repetition, error) {
	return s.repo.Due(ctx, username, s.today())
}

// Schedule lists every entry on the schedule ordered by review date.
func (s *Scheduler) Schedule(ctx context.Context, username string) ([]models.Repetition, error) {
	return s.repo.All(ctx, username)
}

// ProjectedDates returns the future review dates a topic would follow if
// every review from its current state succeeds.
func (s *Scheduler) ProjectedDates(rep *models.Repetition, steps int) []time.Time {
	dates := make([]time.Time, 0, steps)
	date := rep.NextReviewDate
	count := rep.ReviewCount
	for i := 0; i < steps; i++ {
		dates = append(dates, date)
		count++
		date = date.AddDate(0, 0, IntervalDays(count, rep.Difficulty))
	}
	return dates
}
