package spaced_repetition

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/tunamentor/internal/database"
	"github.com/example/tunamentor/pkg/models"
)

func TestIntervalDays(t *testing.T) {
	tests := []struct {
		reviewCount int
		difficulty  int
		want        int
	}{
		{0, 1, 1},
		{1, 1, 3},
		{2, 1, 7},
		{5, 1, 90},
		{9, 1, 90}, // past the table, stays on the last step
		{1, 2, 3},  // ceil(3 * 0.75)
		{2, 2, 6},  // ceil(7 * 0.75)
		{2, 3, 4},  // ceil(7 * 0.5)
		{0, 3, 1},
		{-1, 1, 1},
	}

	for _, tt := range tests {
		got := IntervalDays(tt.reviewCount, tt.difficulty)
		if got != tt.want {
			t.Errorf("IntervalDays(%d, %d) = %d, want %d", tt.reviewCount, tt.difficulty, got, tt.want)
		}
	}
}

func TestMultiplier(t *testing.T) {
	tests := []struct {
		difficulty int
		want       float64
	}{
		{1, 1.0},
		{2, 0.75},
		{3, 0.5},
		{0, 1.0},
		{7, 1.0},
	}

	for _, tt := range tests {
		if got := Multiplier(tt.difficulty); got != tt.want {
			t.Errorf("Multiplier(%d) = %v, want %v", tt.difficulty, got, tt.want)
		}
	}
}

func testScheduler(t *testing.T) (*Scheduler, time.Time) {
	t.Helper()
	if err := database.Connect("sqlite", filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	// The repetition table references users, so the account must exist.
	if _, err := database.NewUserRepository().GetOrCreate(context.Background(), "tuna"); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	fixed := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	s := NewSchedulerWithClock(database.NewRepetitionRepository(), func() time.Time { return fixed })
	return s, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
}

func TestAddToSchedule(t *testing.T) {
	s, today := testScheduler(t)
	ctx := context.Background()

	if err := s.AddToSchedule(ctx, "tuna", "Matematik", "Üslü İfadeler"); err != nil {
		t.Fatalf("AddToSchedule() error: %v", err)
	}

	due, err := s.DueReviews(ctx, "tuna")
	if err != nil {
		t.Fatalf("DueReviews() error: %v", err)
	}
	if len(due) != 0 {
		t.Errorf("topic due on day one, want due tomorrow: %+v", due)
	}

	schedule, err := s.Schedule(ctx, "tuna")
	if err != nil {
		t.Fatalf("Schedule() error: %v", err)
	}
	if len(schedule) != 1 {
		t.Fatalf("schedule has %d entries, want 1", len(schedule))
	}
	if !schedule[0].NextReviewDate.Equal(today.AddDate(0, 0, 1)) {
		t.Errorf("next review %v, want %v", schedule[0].NextReviewDate, today.AddDate(0, 0, 1))
	}
}

func TestAddToScheduleResetsExisting(t *testing.T) {
	s, today := testScheduler(t)
	ctx := context.Background()

	if err := s.AddToSchedule(ctx, "tuna", "Matematik", "Üslü İfadeler"); err != nil {
		t.Fatalf("AddToSchedule() error: %v", err)
	}
	for i := 0; i < 3; i++ {
		// Walk the entry deeper into the interval table.
		if _, err := s.RecordReview(ctx, "tuna", "Matematik", "Üslü İfadeler", true); err != nil {
			t.Fatalf("RecordReview() error: %v", err)
		}
	}

	// A fresh mistake on the topic resets the schedule.
	if err := s.AddToSchedule(ctx, "tuna", "Matematik", "Üslü İfadeler"); err != nil {
		t.Fatalf("AddToSchedule() error: %v", err)
	}

	schedule, err := s.Schedule(ctx, "tuna")
	if err != nil {
		t.Fatalf("Schedule() error: %v", err)
	}
	if len(schedule) != 1 {
		t.Fatalf("schedule has %d entries after re-add, want 1", len(schedule))
	}
	if schedule[0].ReviewCount != 0 {
		t.Errorf("review count after reset = %d, want 0", schedule[0].ReviewCount)
	}
	if !schedule[0].NextReviewDate.Equal(today.AddDate(0, 0, 1)) {
		t.Errorf("next review %v, want tomorrow", schedule[0].NextReviewDate)
	}
}

func TestRecordReview(t *testing.T) {
	s, today := testScheduler(t)
	ctx := context.Background()

	if err := s.AddToSchedule(ctx, "tuna", "Türkçe", "Sözcükte Anlam"); err != nil {
		t.Fatalf("AddToSchedule() error: %v", err)
	}

	rep, err := s.RecordReview(ctx, "tuna", "Türkçe", "Sözcükte Anlam", true)
	if err != nil {
		t.Fatalf("RecordReview() error: %v", err)
	}
	if rep.ReviewCount != 1 {
		t.Errorf("review count = %d, want 1", rep.ReviewCount)
	}
	if !rep.NextReviewDate.Equal(today.AddDate(0, 0, 3)) {
		t.Errorf("next review %v, want today+3", rep.NextReviewDate)
	}

	rep, err = s.RecordReview(ctx, "tuna", "Türkçe", "Sözcükte Anlam", false)
	if err != nil {
		t.Fatalf("RecordReview() error: %v", err)
	}
	if rep.ReviewCount != 0 {
		t.Errorf("review count after failure = %d, want 0", rep.ReviewCount)
	}
	if !rep.NextReviewDate.Equal(today.AddDate(0, 0, 1)) {
		t.Errorf("next review after failure %v, want tomorrow", rep.NextReviewDate)
	}
}

func TestRecordReviewUnknownTopic(t *testing.T) {
	s, _ := testScheduler(t)

	if _, err := s.RecordReview(context.Background(), "tuna", "Matematik", "Olasılık", true); err == nil {
		t.Fatal("RecordReview() on an unscheduled topic should fail")
	}
}

func TestProjectedDates(t *testing.T) {
	s, _ := testScheduler(t)

	start := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	rep := &models.Repetition{
		NextReviewDate: start,
		ReviewCount:    0,
		Difficulty:     1,
	}

	dates := s.ProjectedDates(rep, 3)
	want := []time.Time{
		start,
		start.AddDate(0, 0, 3),
		start.AddDate(0, 0, 3+7),
	}
	if len(dates) != len(want) {
		t.Fatalf("got %d dates, want %d", len(dates), len(want))
	}
	for i := range want {
		if !dates[i].Equal(want[i]) {
			t.Errorf("date %d = %v, want %v", i, dates[i], want[i])
		}
	}
}
