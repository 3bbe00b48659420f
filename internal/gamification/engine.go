package gamification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/tunamentor/internal/database"
	"github.com/example/tunamentor/pkg/models"
)

// PointValues maps reward reasons to point amounts.
var PointValues = map[string]int{
	"correct_answer":               10,
	"streak_bonus":                 5,
	"daily_goal":                   50,
	"weekly_goal":                  200,
	"study_session_completed":      15,
	"spaced_repetition_completion": 20,
}

// Challenge is one daily task with live progress.
type Challenge struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Reward      int    `json:"reward"`
	Progress    int    `json:"progress"`
	Target      int    `json:"target"`
	Completed   bool   `json:"completed"`
}

// GoalProgress is one weekly goal line.
type GoalProgress struct {
	Target    float64 `json:"target"`
	Current   float64 `json:"current"`
	Completed bool    `json:"completed"`
}

// Engine owns points, levels, achievements and daily challenges. Challenge
// progress is read from the logged data, never invented.
type Engine struct {
	users        *database.UserRepository
	achievements *database.AchievementRepository
	sessions     *database.StudySessionRepository
	attempts     *database.QuestionAttemptRepository
	goals        *database.DailyGoalRepository
	repetitions  *database.RepetitionRepository

	// matchDay reports whether a date is a match day; injected to keep the
	// fixture list out of this package.
	matchDay func(time.Time) bool
	now      func() time.Time
	logger   *slog.Logger
}

// NewEngine wires the engine over the repositories.
func NewEngine(matchDay func(time.Time) bool, logger *slog.Logger) *Engine {
	return &Engine{
		users:        database.NewUserRepository(),
		achievements: database.NewAchievementRepository(),
		sessions:     database.NewStudySessionRepository(),
		attempts:     database.NewQuestionAttemptRepository(),
		goals:        database.NewDailyGoalRepository(),
		repetitions:  database.NewRepetitionRepository(),
		matchDay:     matchDay,
		now:          time.Now,
		logger:       logger,
	}
}

func (e *Engine) today() time.Time {
	t := e.now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddPoints credits points for a reason, recomputes the level and runs the
// achievement check. Returns the new total.
func (e *Engine) AddPoints(ctx context.Context, username string, points int, reason string) (int, error) {
	total, err := e.users.AddPoints(ctx, username, points)
	if err != nil {
		return 0, err
	}
	e.logger.Debug("points awarded", "username", username, "points", points, "reason", reason, "total", total)

	total, err = e.checkAchievements(ctx, username, total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Award pays the standard reward for a reason from PointValues. Returns the
// amount paid and the new total.
func (e *Engine) Award(ctx context.Context, username, reason string) (int, int, error) {
	points, ok := PointValues[reason]
	if !ok {
		return 0, 0, fmt.Errorf("unknown reward reason: %s", reason)
	}
	total, err := e.AddPoints(ctx, username, points, reason)
	if err != nil {
		return 0, 0, err
	}
	return points, total, nil
}

// SpendPoints deducts points when the balance allows it. Returns false and
// changes nothing when it does not.
func (e *Engine) SpendPoints(ctx context.Context, username string, points int) (bool, error) {
	return e.users.SpendPoints(ctx, username, points)
}

// UserStats returns the sidebar snapshot: points, level, streak and the
// distance to the next level.
func (e *Engine) UserStats(ctx context.Context, username string) (*models.UserStats, error) {
	user, err := e.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	streak, err := e.Streak(ctx, username)
	if err != nil {
		return nil, err
	}
	if streak != user.Streak {
		if err := e.users.UpdateStreak(ctx, username, streak); err != nil {
			return nil, err
		}
	}

	return &models.UserStats{
		TotalPoints:     user.TotalPoints,
		Level:           user.Level,
		Streak:          streak,
		NextLevelPoints: (user.Level+1)*100 - user.TotalPoints,
	}, nil
}

// Streak counts consecutive study days ending today or yesterday. A day
// without logged study breaks the chain.
func (e *Engine) Streak(ctx context.Context, username string) (int, error) {
	dates, err := e.sessions.StudyDates(ctx, username, 366)
	if err != nil {
		return 0, err
	}
	if len(dates) == 0 {
		return 0, nil
	}

	today := e.today()
	expected := today
	if dates[0] != today.Format("2006-01-02") {
		// No study yet today, the streak may still be alive from yesterday.
		expected = today.AddDate(0, 0, -1)
	}

	streak := 0
	for _, d := range dates {
		if d != expected.Format("2006-01-02") {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak, nil
}

// DailyChallenges builds today's challenge list with progress from the logs.
// On match days a fifth challenge covering the other four is appended.
func (e *Engine) DailyChallenges(ctx context.Context, username string) ([]Challenge, error) {
	today := e.today()

	mathCount, err := e.attempts.SubjectCountForDate(ctx, username, "Matematik", today)
	if err != nil {
		return nil, err
	}
	minutes, err := e.sessions.MinutesForDate(ctx, username, today, "")
	if err != nil {
		return nil, err
	}
	topics, err := e.sessions.TopicsStudiedOn(ctx, username, today)
	if err != nil {
		return nil, err
	}

	// Review challenge: done when something is scheduled and nothing is due.
	due, err := e.repetitions.Due(ctx, username, today)
	if err != nil {
		return nil, err
	}
	scheduled, err := e.repetitions.All(ctx, username)
	if err != nil {
		return nil, err
	}
	reviewDone := 0
	if len(scheduled) > 0 && len(due) == 0 {
		reviewDone = 1
	}

	challenges := []Challenge{
		{ID: "daily_math", Description: "Matematik'te 5 soru çöz", Reward: 25, Progress: mathCount, Target: 5},
		{ID: "daily_study", Description: "30 dakika çalış", Reward: 30, Progress: minutes, Target: 30},
		{ID: "daily_topic", Description: "Yeni bir konu öğren", Reward: 20, Progress: topics, Target: 1},
		{ID: "daily_review", Description: "Eski konuları tekrar et", Reward: 15, Progress: reviewDone, Target: 1},
	}

	completed := 0
	for i := range challenges {
		if challenges[i].Progress >= challenges[i].Target {
			challenges[i].Progress = challenges[i].Target
			challenges[i].Completed = true
			completed++
		}
	}

	if e.matchDay != nil && e.matchDay(today) {
		challenges = append(challenges, Challenge{
			ID:          "match_day",
			Description: "Maç öncesi tüm görevleri tamamla!",
			Reward:      100,
			Progress:    completed,
			Target:      4,
			Completed:   completed >= 4,
		})
	}

	return challenges, nil
}

// CanWatchFullMatch reports whether enough daily challenges are done to earn
// the full-match privilege (3 of the 4 base challenges).
func (e *Engine) CanWatchFullMatch(ctx context.Context, username string) (bool, error) {
	remaining, err := e.RemainingTasks(ctx, username)
	if err != nil {
		return false, err
	}
	return remaining == 0, nil
}

// RemainingTasks counts how many more challenges stand between the student
// and the full-match privilege.
func (e *Engine) RemainingTasks(ctx context.Context, username string) (int, error) {
	challenges, err := e.DailyChallenges(ctx, username)
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, c := range challenges {
		if c.ID != "match_day" && c.Completed {
			completed++
		}
	}
	if completed >= 3 {
		return 0, nil
	}
	return 3 - completed, nil
}

// WeeklyGoals returns this week's goal table with live progress.
func (e *Engine) WeeklyGoals(ctx context.Context, username string) (map[string]GoalProgress, error) {
	weekStart := e.today().AddDate(0, 0, -6)

	minutes, err := e.sessions.TotalMinutesSince(ctx, username, weekStart)
	if err != nil {
		return nil, err
	}
	total, correct, err := e.attempts.CountSince(ctx, username, weekStart)
	if err != nil {
		return nil, err
	}
	topics, err := e.sessions.DistinctTopicsSince(ctx, username, weekStart)
	if err != nil {
		return nil, err
	}

	accuracy := 0.0
	if total > 0 {
		accuracy = float64(correct) / float64(total) * 100
	}
	hours := float64(minutes) / 60

	goals := map[string]GoalProgress{
		"study_hours":      {Target: 15, Current: hours, Completed: hours >= 15},
		"questions_solved": {Target: 100, Current: float64(total), Completed: total >= 100},
		"topics_learned":   {Target: 5, Current: float64(topics), Completed: topics >= 5},
		"accuracy_rate":    {Target: 80, Current: accuracy, Completed: total > 0 && accuracy >= 80},
	}
	return goals, nil
}

// Achievements returns everything the student has earned, newest first.
func (e *Engine) Achievements(ctx context.Context, username string) ([]models.Achievement, error) {
	return e.achievements.GetByUser(ctx, username)
}

// achievementRule is a threshold check against the logged data.
type achievementRule struct {
	Name        string
	Description string
	Points      int
	earned      func(ctx context.Context, e *Engine, username string, totalPoints int) (bool, error)
}

var achievementRules = []achievementRule{
	{
		Name:        "🏁 İlk Adımlar",
		Description: "İlk sorunu çözdün!",
		Points:      25,
		earned: func(ctx context.Context, e *Engine, username string, _ int) (bool, error) {
			total, _, err := e.attempts.CountSince(ctx, username, time.Time{})
			return total >= 1, err
		},
	},
	{
		Name:        "💯 Yüzler Kulübü",
		Description: "100 puana ulaştın!",
		Points:      50,
		earned: func(_ context.Context, _ *Engine, _ string, totalPoints int) (bool, error) {
			return totalPoints >= 100, nil
		},
	},
	{
		Name:        "🧮 Matematik Aşığı",
		Description: "Matematik'te 50 soru çözdün!",
		Points:      50,
		earned: func(ctx context.Context, e *Engine, username string, _ int) (bool, error) {
			bySubject, err := e.attempts.SubjectAccuracy(ctx, username)
			if err != nil {
				return false, err
			}
			return bySubject["Matematik"][0] >= 50, nil
		},
	},
	{
		Name:        "🎯 Keskin Nişancı",
		Description: "En az 50 soruda %90 doğruluk!",
		Points:      200,
		earned: func(ctx context.Context, e *Engine, username string, _ int) (bool, error) {
			total, correct, err := e.attempts.CountSince(ctx, username, time.Time{})
			if err != nil {
				return false, err
			}
			return total >= 50 && float64(correct)/float64(total) >= 0.9, nil
		},
	},
	{
		Name:        "🔄 Aralıklı Tekrar Şampiyonu",
		Description: "30 başarılı tekrar tamamladın!",
		Points:      1000,
		earned: func(ctx context.Context, e *Engine, username string, _ int) (bool, error) {
			reps, err := e.repetitions.All(ctx, username)
			if err != nil {
				return false, err
			}
			reviews := 0
			for _, rep := range reps {
				reviews += rep.ReviewCount
			}
			return reviews >= 30, nil
		},
	},
	{
		Name:        "⚽ Fenerbahçe Akademisyeni",
		Description: "Günlük hedefini 10 kez tuttun!",
		Points:      600,
		earned: func(ctx context.Context, e *Engine, username string, _ int) (bool, error) {
			count, err := e.goals.CompletedCountSince(ctx, username, time.Time{})
			return count >= 10, err
		},
	},
}

// checkAchievements awards every rule that newly holds. Award bonuses do not
// re-enter the check, so point-threshold rules cannot cascade.
func (e *Engine) checkAchievements(ctx context.Context, username string, totalPoints int) (int, error) {
	total := totalPoints
	for _, rule := range achievementRules {
		has, err := e.achievements.Has(ctx, username, rule.Name)
		if err != nil {
			return total, err
		}
		if has {
			continue
		}

		ok, err := rule.earned(ctx, e, username, total)
		if err != nil {
			return total, err
		}
		if !ok {
			continue
		}

		newTotal, err := e.achievements.Award(ctx, &models.Achievement{
			Username:    username,
			Name:        rule.Name,
			Description: rule.Description,
			Points:      rule.Points,
		})
		if err != nil {
			return total, fmt.Errorf("failed to award achievement %q: %v", rule.Name, err)
		}
		total = newTotal
		e.logger.Info("achievement earned", "username", username, "achievement", rule.Name, "bonus", rule.Points)
	}
	return total, nil
}
