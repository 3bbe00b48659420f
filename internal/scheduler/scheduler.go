package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/tunamentor/internal/database"
	"github.com/example/tunamentor/internal/spaced_repetition"
	"github.com/example/tunamentor/pkg/models"
)

// Reminder hours keep the nudges out of sleeping time.
const (
	reminderStartHour = 8
	reminderEndHour   = 22
)

// Reminder is a pending study nudge produced by the background scan.
type Reminder struct {
	CreatedAt time.Time           `json:"created_at"`
	Message   string              `json:"message"`
	DueCount  int                 `json:"due_count"`
	Due       []models.Repetition `json:"due"`
}

// Scheduler runs the background jobs: the hourly due-review scan and the
// daily goal seeding at midnight. Reminders are kept in memory for the API
// to serve, there is no push channel in a single-user app.
type Scheduler struct {
	scheduler *gocron.Scheduler
	reviews   *spaced_repetition.Scheduler
	username  string
	seedGoals func(ctx context.Context, username string, date time.Time) error
	logger    *slog.Logger

	mu           sync.Mutex
	lastReminder *Reminder
}

// New creates a scheduler instance. seedGoals is called once per day to
// materialize the plan's targets into the daily_goals table.
func New(username string, seedGoals func(ctx context.Context, username string, date time.Time) error, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		reviews:   spaced_repetition.NewScheduler(database.NewRepetitionRepository()),
		username:  username,
		seedGoals: seedGoals,
		logger:    logger,
	}
}

// Start begins running all scheduled tasks.
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.scanDueReviews)
	s.scheduler.Every(1).Day().At("00:05").Do(s.rolloverDailyGoals)

	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// LastReminder returns the most recent reminder, or nil when none is
// pending. Reading clears it.
func (s *Scheduler) LastReminder() *Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.lastReminder
	s.lastReminder = nil
	return r
}

// scanDueReviews checks the review queue and records a reminder when topics
// are waiting.
func (s *Scheduler) scanDueReviews() {
	hour := time.Now().Hour()
	if hour < reminderStartHour || hour > reminderEndHour {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	due, err := s.reviews.DueReviews(ctx, s.username)
	if err != nil {
		s.logger.Error("due review scan failed", "error", err)
		return
	}
	if len(due) == 0 {
		return
	}

	s.mu.Lock()
	s.lastReminder = &Reminder{
		CreatedAt: time.Now(),
		Message:   fmt.Sprintf("🔄 %d konu tekrar için hazır! Unutmadan gözden geçir!", len(due)),
		DueCount:  len(due),
		Due:       due,
	}
	s.mu.Unlock()

	s.logger.Info("review reminder queued", "due", len(due))
}

// rolloverDailyGoals seeds the new day's goal targets from the plan.
func (s *Scheduler) rolloverDailyGoals() {
	if s.seedGoals == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if err := s.seedGoals(ctx, s.username, today); err != nil {
		s.logger.Error("daily goal rollover failed", "error", err)
		return
	}
	s.logger.Info("daily goals seeded", "date", today.Format("2006-01-02"))
}

// RunManualScan forces a due-review scan regardless of the hour. Used by the
// reminders endpoint for an on-demand refresh.
func (s *Scheduler) RunManualScan(ctx context.Context) (*Reminder, error) {
	due, err := s.reviews.DueReviews(ctx, s.username)
	if err != nil {
		return nil, err
	}
	if len(due) == 0 {
		return nil, nil
	}
	return &Reminder{
		CreatedAt: time.Now(),
		Message:   fmt.Sprintf("🔄 %d konu tekrar için hazır! Unutmadan gözden geçir!", len(due)),
		DueCount:  len(due),
		Due:       due,
	}, nil
}
