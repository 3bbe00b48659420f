package gamification

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

var testDay = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func testEngine(t *testing.T, matchDay bool) *Engine {
	t.Helper()
	require.NoError(t, database.Connect("sqlite", filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() { database.Close() })

	e := NewEngine(
		func(time.Time) bool { return matchDay },
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	e.now = func() time.Time { return testDay }

	_, err := e.users.GetOrCreate(context.Background(), "tuna")
	require.NoError(t, err)
	return e
}

func logSession(t *testing.T, e *Engine, date time.Time, subject, topic string, minutes int) {
	t.Helper()
	require.NoError(t, e.sessions.Create(context.Background(), &models.StudySession{
		Username:        "tuna",
		Subject:         subject,
		Topic:           topic,
		DurationMinutes: minutes,
		SessionDate:     date,
	}))
}

func logAttempts(t *testing.T, e *Engine, subject string, count int, correct bool) {
	t.Helper()
	for i := 0; i < count; i++ {
		require.NoError(t, e.attempts.Create(context.Background(), &models.QuestionAttempt{
			Username:    "tuna",
			Subject:     subject,
			Topic:       "Konu",
			QuestionID:  "q",
			IsCorrect:   correct,
			AttemptDate: testDay.Format("2006-01-02"),
		}))
	}
}

func TestAddPoints(t *testing.T) {
	e := testEngine(t, false)
	ctx := context.Background()

	total, err := e.AddPoints(ctx, "tuna", 50, "correct_answer")
	require.NoError(t, err)
	require.Equal(t, 50, total)
}

func TestAddPointsAwardsPointThresholdAchievement(t *testing.T) {
	e := testEngine(t, false)
	ctx := context.Background()

	// Crossing 100 points earns the badge and its 50-point bonus.
	total, err := e.AddPoints(ctx, "tuna", 100, "daily_goal")
	require.NoError(t, err)
	require.Equal(t, 150, total)

	earned, err := e.Achievements(ctx, "tuna")
	require.NoError(t, err)
	require.Len(t, earned, 1)
	require.Equal(t, "💯 Yüzler Kulübü", earned[0].Name)

	// The badge is not awarded twice.
	total, err = e.AddPoints(ctx, "tuna", 10, "correct_answer")
	require.NoError(t, err)
	require.Equal(t, 160, total)
}

func TestAddPointsAwardsFirstAttemptAchievement(t *testing.T) {
	e := testEngine(t, false)
	ctx := context.Background()

	logAttempts(t, e, "Matematik", 1, true)
	total, err := e.AddPoints(ctx, "tuna", 10, "correct_answer")
	require.NoError(t, err)
	// 10 for the answer plus the 25-point badge.
	require.Equal(t, 35, total)
}

func TestStreak(t *testing.T) {
	e := testEngine(t, false)
	ctx := context.Background()

	streak, err := e.Streak(ctx, "tuna")
	require.NoError(t, err)
	require.Equal(t, 0, streak)

	logSession(t, e, testDay, "Matematik", "Olasılık", 25)
	logSession(t, e, testDay.AddDate(0, 0, -1), "Türkçe", "Fiilimsiler", 25)
	logSession(t, e, testDay.AddDate(0, 0, -2), "Matematik", "Olasılık", 25)

	streak, err = e.Streak(ctx, "tuna")
	require.NoError(t, err)
	require.Equal(t, 3, streak)
}

func TestStreakSurvivesMissingToday(t *testing.T) {
	e := testEngine(t, false)
	ctx := context.Background()

	// Studied yesterday and the day before, not yet today.
	logSession(t, e, testDay.AddDate(0, 0, -1), "Matematik", "Olasılık", 25)
	logSession(t, e, testDay.AddDate(0, 0, -2), "Matematik", "Olasılık", 25)

	streak, err := e.Streak(ctx, "tuna")
	require.NoError(t, err)
	require.Equal(t, 2, streak)
}

func TestStreakBreaksOnGap(t *testing.T) {
	e := testEngine(t, false)
	ctx := context.Background()

	logSession(t, e, testDay, "Matematik", "Olasılık", 25)
	logSession(t, e, testDay.AddDate(0, 0, -3), "Matematik", "Olasılık", 25)

	streak, err := e.Streak(ctx, "tuna")
	require.NoError(t, err)
	require.Equal(t, 1, streak)
}

func TestUserStats(t *testing.T) {
	e := testEngine(t, false)
	ctx := context.Background()

	_, err := e.users.AddPoints(ctx, "tuna", 130)
	require.NoError(t, err)

	stats, err := e.UserStats(ctx, "tuna")
	require.NoError(t, err)
	require.Equal(t, 130, stats.TotalPoints)
	require.Equal(t, 1, stats.Level)
	require.Equal(t, 70, stats.NextLevelPoints)
}

func TestDailyChallenges(t *testing.T) {
	e := testEngine(t, false)
	ctx := context.Background()

	challenges, err := e.DailyChallenges(ctx, "tuna")
	require.NoError(t, err)
	require.Len(t, challenges, 4)
	for _, ch := range challenges {
		require.False(t, ch.Completed, "challenge %s completed with no activity", ch.ID)
	}

	// Five math questions and 30 study minutes complete two challenges.
	logAttempts(t, e, "Matematik", 5, true)
	logSession(t, e, testDay, "Matematik", "Olasılık", 30)

	challenges, err = e.DailyChallenges(ctx, "tuna")
	require.NoError(t, err)
	byID := make(map[string]Challenge, len(challenges))
	for _, ch := range challenges {
		byID[ch.ID] = ch
	}
	require.True(t, byID["daily_math"].Completed)
	require.Equal(t, 5, byID["daily_math"].Progress)
	require.True(t, byID["daily_study"].Completed)
	require.True(t, byID["daily_topic"].Completed)
}

func TestDailyChallengesMatchDay(t *testing.T) {
	e := testEngine(t, true)

	challenges, err := e.DailyChallenges(context.Background(), "tuna")
	require.NoError(t, err)
	require.Len(t, challenges, 5)
	require.Equal(t, "match_day", challenges[len(challenges)-1].ID)
}

func TestWeeklyGoals(t *testing.T) {
	e := testEngine(t, false)
	ctx := context.Background()

	logSession(t, e, testDay, "Matematik", "Olasılık", 120)
	logAttempts(t, e, "Matematik", 8, true)
	logAttempts(t, e, "Matematik", 2, false)

	goals, err := e.WeeklyGoals(ctx, "tuna")
	require.NoError(t, err)

	require.InDelta(t, 2.0, goals["study_hours"].Current, 0.01)
	require.False(t, goals["study_hours"].Completed)
	require.Equal(t, float64(10), goals["questions_solved"].Current)
	require.InDelta(t, 80.0, goals["accuracy_rate"].Current, 0.01)
	require.True(t, goals["accuracy_rate"].Completed)
}

func TestSpendPoints(t *testing.T) {
	e := testEngine(t, false)
	ctx := context.Background()

	_, err := e.users.AddPoints(ctx, "tuna", 30)
	require.NoError(t, err)

	ok, err := e.SpendPoints(ctx, "tuna", 100)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = e.SpendPoints(ctx, "tuna", 30)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAwardUsesPointValues(t *testing.T) {
	e := testEngine(t, false)
	ctx := context.Background()

	earned, total, err := e.Award(ctx, "tuna", "correct_answer")
	require.NoError(t, err)
	require.Equal(t, PointValues["correct_answer"], earned)
	require.Equal(t, earned, total)

	earned, total, err = e.Award(ctx, "tuna", "spaced_repetition_completion")
	require.NoError(t, err)
	require.Equal(t, PointValues["spaced_repetition_completion"], earned)
	require.Equal(t, 30, total)

	_, _, err = e.Award(ctx, "tuna", "mystery_reason")
	require.Error(t, err)
}
