package scheduler

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/example/tunamentor/internal/database"
	"github.com/example/tunamentor/pkg/models"
)

func testScheduler(t *testing.T) *Scheduler {
	t.Helper()
	require.NoError(t, database.Connect("sqlite", filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() { database.Close() })

	_, err := database.NewUserRepository().GetOrCreate(context.Background(), "tuna")
	require.NoError(t, err)

	seed := func(ctx context.Context, username string, date time.Time) error { return nil }
	return New("tuna", seed, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func scheduleReview(t *testing.T, daysFromNow int) {
	t.Helper()
	require.NoError(t, database.NewRepetitionRepository().Upsert(context.Background(), &models.Repetition{
		Username:       "tuna",
		Subject:        "Matematik",
		Topic:          "Olasılık",
		NextReviewDate: time.Now().UTC().AddDate(0, 0, daysFromNow),
		ReviewCount:    1,
		Difficulty:     1,
	}))
}

func TestRunManualScanNothingDue(t *testing.T) {
	s := testScheduler(t)

	reminder, err := s.RunManualScan(context.Background())
	require.NoError(t, err)
	require.Nil(t, reminder)
}

func TestRunManualScanWithDueReview(t *testing.T) {
	s := testScheduler(t)
	scheduleReview(t, -1)

	reminder, err := s.RunManualScan(context.Background())
	require.NoError(t, err)
	require.NotNil(t, reminder)
	require.Equal(t, 1, reminder.DueCount)
	require.Len(t, reminder.Due, 1)
	require.Contains(t, reminder.Message, "1 konu")
}

func TestRunManualScanIgnoresFutureReviews(t *testing.T) {
	s := testScheduler(t)
	scheduleReview(t, 3)

	reminder, err := s.RunManualScan(context.Background())
	require.NoError(t, err)
	require.Nil(t, reminder)
}

func TestLastReminderReadsAndClears(t *testing.T) {
	s := testScheduler(t)

	require.Nil(t, s.LastReminder())

	s.mu.Lock()
	s.lastReminder = &Reminder{Message: "test", DueCount: 2}
	s.mu.Unlock()

	got := s.LastReminder()
	require.NotNil(t, got)
	require.Equal(t, 2, got.DueCount)

	// A second read finds nothing.
	require.Nil(t, s.LastReminder())
}
