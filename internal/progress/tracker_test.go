package progress

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/example/tunamentor/internal/database"
	"github.com/example/tunamentor/pkg/models"
)

var trackerDay = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func testTracker(t *testing.T) *Tracker {
	t.Helper()
	require.NoError(t, database.Connect("sqlite", filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() { database.Close() })

	_, err := database.NewUserRepository().GetOrCreate(context.Background(), "tuna")
	require.NoError(t, err)
	return NewTrackerWithClock(func() time.Time { return trackerDay })
}

func seedActivity(t *testing.T, tr *Tracker) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, tr.sessions.Create(ctx, &models.StudySession{
		Username: "tuna", Subject: "Matematik", Topic: "Olasılık",
		DurationMinutes: 90, SessionDate: trackerDay,
	}))
	require.NoError(t, tr.sessions.Create(ctx, &models.StudySession{
		Username: "tuna", Subject: "Türkçe", Topic: "Fiilimsiler",
		DurationMinutes: 30, SessionDate: trackerDay.AddDate(0, 0, -2),
	}))
	// Outside the week window.
	require.NoError(t, tr.sessions.Create(ctx, &models.StudySession{
		Username: "tuna", Subject: "Matematik", Topic: "Olasılık",
		DurationMinutes: 60, SessionDate: trackerDay.AddDate(0, 0, -10),
	}))

	day := trackerDay.Format("2006-01-02")
	for i := 0; i < 4; i++ {
		require.NoError(t, tr.attempts.Create(ctx, &models.QuestionAttempt{
			Username: "tuna", Subject: "Matematik", Topic: "Olasılık",
			QuestionID: "q", IsCorrect: i < 3, AttemptDate: day,
		}))
	}
}

func TestStudyStatsWeek(t *testing.T) {
	tr := testTracker(t)
	seedActivity(t, tr)

	stats, err := tr.StudyStats(context.Background(), "tuna", "week")
	require.NoError(t, err)

	require.Equal(t, 120, stats.TotalMinutes)
	require.InDelta(t, 2.0, stats.TotalStudyHours, 0.01)
	require.Equal(t, 90, stats.SubjectBreakdown["Matematik"])
	require.Equal(t, 30, stats.SubjectBreakdown["Türkçe"])
	require.Equal(t, 4, stats.QuestionsSolved)
	require.InDelta(t, 75.0, stats.Accuracy, 0.01)
}

func TestStudyStatsAllTime(t *testing.T) {
	tr := testTracker(t)
	seedActivity(t, tr)

	stats, err := tr.StudyStats(context.Background(), "tuna", "all")
	require.NoError(t, err)
	require.Equal(t, 180, stats.TotalMinutes)
}

func TestStudyStatsEmpty(t *testing.T) {
	tr := testTracker(t)

	stats, err := tr.StudyStats(context.Background(), "tuna", "week")
	require.NoError(t, err)
	require.Zero(t, stats.TotalMinutes)
	require.Zero(t, stats.QuestionsSolved)
	require.Zero(t, stats.Accuracy)
}

func TestWeakAreas(t *testing.T) {
	tr := testTracker(t)
	ctx := context.Background()
	day := trackerDay.Format("2006-01-02")

	// A struggling topic, a strong topic and one with too few attempts.
	seed := []struct {
		topic   string
		correct int
		total   int
	}{
		{"Olasılık", 1, 4},
		{"Üslü İfadeler", 5, 5},
		{"Kareköklü İfadeler", 0, 2},
	}
	for _, s := range seed {
		for i := 0; i < s.total; i++ {
			require.NoError(t, tr.attempts.Create(ctx, &models.QuestionAttempt{
				Username: "tuna", Subject: "Matematik", Topic: s.topic,
				QuestionID: "q", IsCorrect: i < s.correct, AttemptDate: day,
			}))
		}
	}
	require.NoError(t, tr.mistakes.Create(ctx, &models.Mistake{
		Username: "tuna", Subject: "Matematik", Topic: "Olasılık",
		QuestionID: "q", MistakeDate: day,
	}))

	areas, err := tr.WeakAreas(ctx, "tuna", 5)
	require.NoError(t, err)

	require.Len(t, areas, 1)
	require.Equal(t, "Olasılık", areas[0].Topic)
	require.InDelta(t, 25.0, areas[0].Accuracy, 0.01)
	require.Equal(t, 1, areas[0].MistakeCount)
	require.NotEmpty(t, areas[0].Suggestion)
}

func TestPrediction(t *testing.T) {
	tr := testTracker(t)
	seedActivity(t, tr)

	prediction, err := tr.Prediction(context.Background(), "tuna")
	require.NoError(t, err)

	require.Equal(t, 475, prediction.TargetScore)
	require.GreaterOrEqual(t, prediction.EstimatedScore, 300)
	require.LessOrEqual(t, prediction.EstimatedScore, 500)
	require.Equal(t, prediction.TargetScore-prediction.EstimatedScore, prediction.ScoreGap)
	require.NotEmpty(t, prediction.RankingEstimate)
	require.NotEmpty(t, prediction.Recommendation)
	require.NotEmpty(t, prediction.TimeToTarget)
}

func TestProgressData(t *testing.T) {
	tr := testTracker(t)
	seedActivity(t, tr)

	data, err := tr.ProgressData(context.Background(), "tuna", "week")
	require.NoError(t, err)

	require.Equal(t, 120, data.TotalMinutes)
	require.NotEmpty(t, data.DailyBreakdown)
	require.NotEmpty(t, data.ReviewIntervals)
	require.NotEmpty(t, data.OptimalDifficulty)
	require.Contains(t, []string{"improving", "declining", "stable"}, data.ProgressTrend)
	require.InDelta(t, 75.0, data.SubjectAccuracy["Matematik"], 0.01)
}

func TestSummarize(t *testing.T) {
	tr := testTracker(t)
	seedActivity(t, tr)

	summary, err := tr.Summarize(context.Background(), "tuna")
	require.NoError(t, err)

	require.InDelta(t, 2.0, summary.StudyHours, 0.01)
	require.Equal(t, 4, summary.QuestionsSolved)
	require.InDelta(t, 75.0, summary.Accuracy, 0.01)
	require.Equal(t, "Matematik", summary.FavoriteSubject)
}
