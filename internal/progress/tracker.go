package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/example/tunamentor/internal/database"
	"github.com/example/tunamentor/pkg/models"
)

// targetScore is the LGS score the whole program aims at.
const targetScore = 475

// weakAreaMinAttempts filters out topics with too few attempts to judge.
const weakAreaMinAttempts = 3

// Tracker computes analytics by aggregating the session, attempt and mistake
// logs. The clock is injected for deterministic period boundaries in tests.
type Tracker struct {
	sessions     *database.StudySessionRepository
	attempts     *database.QuestionAttemptRepository
	mistakes     *database.MistakeRepository
	achievements *database.AchievementRepository
	now          func() time.Time
}

// NewTracker wires a tracker over the repositories.
func NewTracker() *Tracker {
	return &Tracker{
		sessions:     database.NewStudySessionRepository(),
		attempts:     database.NewQuestionAttemptRepository(),
		mistakes:     database.NewMistakeRepository(),
		achievements: database.NewAchievementRepository(),
		now:          time.Now,
	}
}

// NewTrackerWithClock wires a tracker with a fixed clock for tests.
func NewTrackerWithClock(now func() time.Time) *Tracker {
	t := NewTracker()
	t.now = now
	return t
}

func (t *Tracker) today() time.Time {
	n := t.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// periodStart turns a period name into its first day. Unknown periods fall
// back to all time.
func (t *Tracker) periodStart(period string) time.Time {
	switch period {
	case "week":
		return t.today().AddDate(0, 0, -6)
	case "month":
		return t.today().AddDate(0, 0, -29)
	default:
		return time.Time{}
	}
}

// StudyStats aggregates study time and question performance for a period
// ("week", "month" or "all").
func (t *Tracker) StudyStats(ctx context.Context, username, period string) (*models.StudyStats, error) {
	since := t.periodStart(period)

	minutes, err := t.sessions.TotalMinutesSince(ctx, username, since)
	if err != nil {
		return nil, err
	}
	breakdown, err := t.sessions.SubjectBreakdownSince(ctx, username, since)
	if err != nil {
		return nil, err
	}
	total, correct, err := t.attempts.CountSince(ctx, username, since)
	if err != nil {
		return nil, err
	}

	accuracy := 0.0
	if total > 0 {
		accuracy = float64(correct) / float64(total) * 100
	}

	return &models.StudyStats{
		TotalStudyHours:  float64(minutes) / 60,
		TotalMinutes:     minutes,
		SubjectBreakdown: breakdown,
		QuestionsSolved:  total,
		Accuracy:         accuracy,
	}, nil
}

// WeakAreas returns the lowest-accuracy topics joined with mistake counts.
// Topics above 80% accuracy are not weak regardless of rank.
func (t *Tracker) WeakAreas(ctx context.Context, username string, limit int) ([]models.WeakArea, error) {
	areas, err := t.attempts.TopicAccuracy(ctx, username, weakAreaMinAttempts)
	if err != nil {
		return nil, err
	}
	mistakeCounts, err := t.mistakes.CountByTopic(ctx, username)
	if err != nil {
		return nil, err
	}

	out := make([]models.WeakArea, 0, limit)
	for _, area := range areas {
		if area.Accuracy > 80 {
			continue
		}
		area.MistakeCount = mistakeCounts[area.Subject+" / "+area.Topic]
		area.Suggestion = suggestionFor(area.Accuracy)
		out = append(out, area)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// ProgressData assembles the whole progress-page payload for a period.
func (t *Tracker) ProgressData(ctx context.Context, username, period string) (*models.ProgressData, error) {
	stats, err := t.StudyStats(ctx, username, period)
	if err != nil {
		return nil, err
	}
	weakAreas, err := t.WeakAreas(ctx, username, 5)
	if err != nil {
		return nil, err
	}
	subjectAccuracy, err := t.subjectAccuracy(ctx, username)
	if err != nil {
		return nil, err
	}
	daily, err := t.dailyBreakdown(ctx, username)
	if err != nil {
		return nil, err
	}
	trend, err := t.progressTrend(ctx, username)
	if err != nil {
		return nil, err
	}
	points, err := t.pointsEarned(ctx, username, period)
	if err != nil {
		return nil, err
	}

	return &models.ProgressData{
		StudyStats:        *stats,
		PointsEarned:      points,
		EstimatedScore:    EstimateExamScore(stats),
		WeakAreas:         weakAreas,
		SubjectAccuracy:   subjectAccuracy,
		DailyBreakdown:    daily,
		ProgressTrend:     trend,
		ReviewIntervals:   IntervalsForAccuracy(stats.Accuracy),
		OptimalDifficulty: OptimalDifficulty(stats.Accuracy),
	}, nil
}

// Prediction builds the exam outlook from all-time stats.
func (t *Tracker) Prediction(ctx context.Context, username string) (*models.Prediction, error) {
	stats, err := t.StudyStats(ctx, username, "all")
	if err != nil {
		return nil, err
	}
	score := EstimateExamScore(stats)

	var ranking string
	var probability int
	switch {
	case score >= 475:
		ranking, probability = "Top 500", 95
	case score >= 450:
		ranking, probability = "Top 1000", 85
	case score >= 425:
		ranking, probability = "Top 2000", 75
	default:
		ranking, probability = "Top 5000", 60
	}

	gap := targetScore - score
	if gap < 0 {
		gap = 0
	}

	return &models.Prediction{
		EstimatedScore:     score,
		TargetScore:        targetScore,
		ScoreGap:           gap,
		RankingEstimate:    ranking,
		SuccessProbability: probability,
		Recommendation:     improvementPlan(score),
		TimeToTarget:       timeToTarget(score),
	}, nil
}

// WeeklySummary gathers the numbers the parent report is built from.
type WeeklySummary struct {
	StudyHours          float64  `json:"study_hours"`
	QuestionsSolved     int      `json:"questions_solved"`
	Accuracy            float64  `json:"accuracy"`
	AccuracyImprovement float64  `json:"accuracy_improvement"`
	PointsEarned        int      `json:"points_earned"`
	NewAchievements     int      `json:"new_achievements"`
	FavoriteSubject     string   `json:"favorite_subject"`
	NeedsAttention      []string `json:"needs_attention"`
}

// Summarize computes this week's summary against the week before.
func (t *Tracker) Summarize(ctx context.Context, username string) (*WeeklySummary, error) {
	weekStart := t.today().AddDate(0, 0, -6)

	stats, err := t.StudyStats(ctx, username, "week")
	if err != nil {
		return nil, err
	}
	improvement, err := t.accuracyImprovement(ctx, username)
	if err != nil {
		return nil, err
	}
	points, err := t.pointsEarned(ctx, username, "week")
	if err != nil {
		return nil, err
	}
	newAchievements, _, err := t.achievements.EarnedSince(ctx, username, weekStart)
	if err != nil {
		return nil, err
	}
	weakAreas, err := t.WeakAreas(ctx, username, 3)
	if err != nil {
		return nil, err
	}

	favorite := ""
	most := 0
	for subject, minutes := range stats.SubjectBreakdown {
		if minutes > most || (minutes == most && subject < favorite) {
			favorite, most = subject, minutes
		}
	}

	attention := make([]string, 0, len(weakAreas))
	seen := make(map[string]bool)
	for _, area := range weakAreas {
		if !seen[area.Subject] {
			attention = append(attention, area.Subject)
			seen[area.Subject] = true
		}
	}

	return &WeeklySummary{
		StudyHours:          stats.TotalStudyHours,
		QuestionsSolved:     stats.QuestionsSolved,
		Accuracy:            stats.Accuracy,
		AccuracyImprovement: improvement,
		PointsEarned:        points,
		NewAchievements:     newAchievements,
		FavoriteSubject:     favorite,
		NeedsAttention:      attention,
	}, nil
}

func (t *Tracker) subjectAccuracy(ctx context.Context, username string) (map[string]float64, error) {
	bySubject, err := t.attempts.SubjectAccuracy(ctx, username)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(bySubject))
	for subject, counts := range bySubject {
		if counts[0] > 0 {
			out[subject] = float64(counts[1]) / float64(counts[0]) * 100
		}
	}
	return out, nil
}

// dailyBreakdown maps the last seven days to study minutes, keyed by Turkish
// day name.
func (t *Tracker) dailyBreakdown(ctx context.Context, username string) (map[string]int, error) {
	out := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		day := t.today().AddDate(0, 0, -i)
		minutes, err := t.sessions.MinutesForDate(ctx, username, day, "")
		if err != nil {
			return nil, err
		}
		out[TurkishDay(day.Weekday())] = minutes
	}
	return out, nil
}

// accuracyImprovement is this week's accuracy minus last week's, in
// percentage points.
func (t *Tracker) accuracyImprovement(ctx context.Context, username string) (float64, error) {
	weekStart := t.today().AddDate(0, 0, -6)
	twoWeeksStart := t.today().AddDate(0, 0, -13)

	thisTotal, thisCorrect, err := t.attempts.CountSince(ctx, username, weekStart)
	if err != nil {
		return 0, err
	}
	bothTotal, bothCorrect, err := t.attempts.CountSince(ctx, username, twoWeeksStart)
	if err != nil {
		return 0, err
	}

	prevTotal := bothTotal - thisTotal
	prevCorrect := bothCorrect - thisCorrect
	if thisTotal == 0 || prevTotal == 0 {
		return 0, nil
	}

	thisAcc := float64(thisCorrect) / float64(thisTotal) * 100
	prevAcc := float64(prevCorrect) / float64(prevTotal) * 100
	return thisAcc - prevAcc, nil
}

func (t *Tracker) progressTrend(ctx context.Context, username string) (string, error) {
	delta, err := t.accuracyImprovement(ctx, username)
	if err != nil {
		return "", err
	}
	switch {
	case delta > 2:
		return "improving", nil
	case delta < -2:
		return "declining", nil
	default:
		return "stable", nil
	}
}

// pointsEarned approximates points gained in a period from the logs that
// carry dates: correct answers at their standard value plus achievement
// bonuses. Other awards are not dated and fall outside the period view.
func (t *Tracker) pointsEarned(ctx context.Context, username, period string) (int, error) {
	since := t.periodStart(period)
	_, correct, err := t.attempts.CountSince(ctx, username, since)
	if err != nil {
		return 0, err
	}
	_, bonus, err := t.achievements.EarnedSince(ctx, username, since)
	if err != nil {
		return 0, err
	}
	return correct*10 + bonus, nil
}

// TurkishDay returns the Turkish name of a weekday.
func TurkishDay(day time.Weekday) string {
	names := map[time.Weekday]string{
		time.Monday:    "Pazartesi",
		time.Tuesday:   "Salı",
		time.Wednesday: "Çarşamba",
		time.Thursday:  "Perşembe",
		time.Friday:    "Cuma",
		time.Saturday:  "Cumartesi",
		time.Sunday:    "Pazar",
	}
	if name, ok := names[day]; ok {
		return name
	}
	return fmt.Sprintf("Gün %d", int(day))
}
