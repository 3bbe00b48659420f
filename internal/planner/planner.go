package planner

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/example/tunamentor/internal/database"
	"github.com/example/tunamentor/internal/progress"
	"github.com/example/tunamentor/pkg/models"
)

// DailyPlan is one day's full study schedule.
type DailyPlan struct {
	Date             string            `json:"date"`
	TotalMinutes     int               `json:"total_time_minutes"`
	Sessions         []Session         `json:"sessions"`
	Breaks           []Break           `json:"breaks"`
	MatchInfo        MatchInfo         `json:"fenerbahce_info"`
	PrioritySubjects []string          `json:"priority_subjects"`
	Goals            DailyGoals        `json:"goals"`
	Motivation       string            `json:"motivational_message"`
	WeakAreas        []models.WeakArea `json:"weak_areas"`
}

// MatchInfo carries the club context attached to a plan.
type MatchInfo struct {
	IsMatchDay bool   `json:"is_match_day"`
	Adjustment string `json:"adjustment"`
	Motivation string `json:"motivation"`
}

// DailyGoals summarizes what completing the plan means.
type DailyGoals struct {
	StudyTime        string `json:"study_time"`
	PomodoroSessions int    `json:"pomodoro_sessions"`
	SubjectsCovered  int    `json:"subjects_covered"`
	AccuracyTarget   string `json:"accuracy_target"`
	BonusGoal        string `json:"bonus_goal"`
}

// WeeklyPlan is a seven-day schedule with weekly goals and the pending
// review queue.
type WeeklyPlan struct {
	WeekStart        string                `json:"week_start"`
	TotalStudyHours  float64               `json:"total_study_hours"`
	DailyPlans       map[string]*DailyPlan `json:"daily_plans"`
	WeeklyGoals      map[string][2]float64 `json:"weekly_goals"`
	SpacedRepetition []models.Repetition   `json:"spaced_repetition"`
	MotivationTheme  string                `json:"motivation_theme"`
}

// Planner builds study plans from the weak-area analysis and the review
// schedule. Club awareness is injected to keep the fixture list elsewhere.
type Planner struct {
	tracker     *progress.Tracker
	goals       *database.DailyGoalRepository
	repetitions *database.RepetitionRepository
	matchDay    func(time.Time) bool
	rnd         *rand.Rand
	now         func() time.Time
}

// NewPlanner wires a planner.
func NewPlanner(tracker *progress.Tracker, matchDay func(time.Time) bool, rnd *rand.Rand) *Planner {
	return &Planner{
		tracker:     tracker,
		goals:       database.NewDailyGoalRepository(),
		repetitions: database.NewRepetitionRepository(),
		matchDay:    matchDay,
		rnd:         rnd,
		now:         time.Now,
	}
}

func (p *Planner) today() time.Time {
	t := p.now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DailyPlan builds the plan for one day. The first plan of a day also seeds
// the daily_goals table with per-subject targets; re-planning later the same
// day leaves recorded progress alone.
func (p *Planner) DailyPlan(ctx context.Context, username string, availableHours float64, date time.Time) (*DailyPlan, error) {
	weakAreas, err := p.tracker.WeakAreas(ctx, username, 3)
	if err != nil {
		return nil, err
	}

	weakSubjects := make([]string, 0, len(weakAreas))
	seen := make(map[string]bool)
	for _, area := range weakAreas {
		if !seen[area.Subject] {
			weakSubjects = append(weakSubjects, area.Subject)
			seen[area.Subject] = true
		}
	}

	totalMinutes := int(availableHours * 60)
	allocation := Allocate(totalMinutes, SubjectWeights, weakSubjects)
	sessions := ChunkIntoSessions(allocation)

	if err := p.seedDailyGoals(ctx, username, date, allocation); err != nil {
		return nil, err
	}

	planned := 0
	subjects := make(map[string]bool)
	for _, s := range sessions {
		planned += s.Duration
		subjects[s.Subject] = true
	}

	matchInfo := MatchInfo{
		Adjustment: "normal",
		Motivation: "💛💙 Fenerbahçe ruhuyla çalışma zamanı! Her soru bir gol! ⚽",
	}
	if p.matchDay != nil && p.matchDay(date) {
		matchInfo.IsMatchDay = true
		matchInfo.Adjustment = "light"
		matchInfo.Motivation = "⚽ Bugün maç günü! Görevlerini bitir, maçı gönül rahatlığıyla izle! 💛💙"
	}

	return &DailyPlan{
		Date:             date.Format("2006-01-02"),
		TotalMinutes:     totalMinutes,
		Sessions:         sessions,
		Breaks:           Breaks(len(sessions)),
		MatchInfo:        matchInfo,
		PrioritySubjects: PrioritySubjects(weakAreas),
		Goals: DailyGoals{
			StudyTime:        formatMinutes(planned),
			PomodoroSessions: len(sessions),
			SubjectsCovered:  len(subjects),
			AccuracyTarget:   "75% ve üzeri",
			BonusGoal:        "Tüm görevleri tamamla → Fenerbahçe maçı izleme hakkı! ⚽",
		},
		Motivation: DailyMotivation(p.rnd),
		WeakAreas:  weakAreas,
	}, nil
}

// WeeklyPlan builds seven daily plans starting today. Weekends get three
// hours, weekdays two and a half.
func (p *Planner) WeeklyPlan(ctx context.Context, username string) (*WeeklyPlan, error) {
	start := p.today()
	daily := make(map[string]*DailyPlan, 7)
	totalHours := 0.0

	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i)
		hours := 2.5
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			hours = 3.0
		}
		plan, err := p.DailyPlan(ctx, username, hours, date)
		if err != nil {
			return nil, err
		}
		daily[date.Format("2006-01-02")] = plan
		totalHours += hours
	}

	reps, err := p.repetitions.All(ctx, username)
	if err != nil {
		return nil, err
	}
	weekEnd := start.AddDate(0, 0, 7)
	upcoming := make([]models.Repetition, 0)
	for _, rep := range reps {
		if rep.NextReviewDate.Before(weekEnd) {
			upcoming = append(upcoming, rep)
		}
	}

	return &WeeklyPlan{
		WeekStart:       start.Format("2006-01-02"),
		TotalStudyHours: totalHours,
		DailyPlans:      daily,
		WeeklyGoals: map[string][2]float64{
			"study_hours":       {totalHours, 15.0},
			"pomodoro_sessions": {42, 36},
			"questions_solved":  {100, 80},
			"accuracy_rate":     {80, 75},
			"subjects_covered":  {6, 4},
		},
		SpacedRepetition: upcoming,
		MotivationTheme:  "Bu hafta Fenerbahçe ruhuyla çalışıyoruz! 💛💙",
	}, nil
}

// PrioritySubjects picks today's focus: every weight-4 subject, then weak
// subjects, capped at three.
func PrioritySubjects(weakAreas []models.WeakArea) []string {
	priority := make([]string, 0, 3)
	seen := make(map[string]bool)

	for _, subject := range []string{"Matematik", "Türkçe", "Fen Bilimleri", "T.C. İnkılap Tarihi", "Din Kültürü", "İngilizce"} {
		if SubjectWeights[subject] >= 4 && !seen[subject] {
			priority = append(priority, subject)
			seen[subject] = true
		}
	}
	for _, area := range weakAreas[:min(2, len(weakAreas))] {
		if !seen[area.Subject] {
			priority = append(priority, area.Subject)
			seen[area.Subject] = true
		}
	}

	if len(priority) > 3 {
		priority = priority[:3]
	}
	return priority
}

// StudyRecommendations is the canned advice list shown alongside plans.
func StudyRecommendations() []string {
	return []string{
		"🎯 Matematik'te cebirsel ifadeler konusuna extra odaklan",
		"📚 Türkçe paragraf sorularında hızını artır",
		"⏰ Pomodoro tekniğiyle odaklanmayı sürdür",
		"🔄 Geçen haftaki yanlış sorularını tekrar çöz",
		"⚽ Fenerbahçe maç günü motivasyonunu kullan",
	}
}

// DailyMotivation picks a motivational line.
func DailyMotivation(rnd *rand.Rand) string {
	motivations := []string{
		"🎯 Bugün bir adım daha LGS hedefine yaklaş!",
		"⚽ Fenerbahçe sahada nasıl mücadele ediyorsa, sen de derslerinde öyle mücadele et!",
		"💪 Her Pomodoro seansı bir antrenman! Şampiyonlar böyle doğar!",
		"🌟 Bugün öğreneceklerin yarının gücün olacak! Forza Tuna!",
		"🏆 LGS 2026 yolunda bir gün daha! Hedefine odaklan!",
	}
	return motivations[rnd.Intn(len(motivations))]
}

// seedDailyGoals writes the allocation as goal targets for the day, once.
func (p *Planner) seedDailyGoals(ctx context.Context, username string, date time.Time, allocation map[string]int) error {
	existing, err := p.goals.GetForDate(ctx, username, date)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for subject, minutes := range allocation {
		if minutes < minSessionMinutes {
			continue
		}
		goal := &models.DailyGoal{
			Username:      username,
			GoalDate:      date,
			Subject:       subject,
			TargetMinutes: minutes,
		}
		if err := p.goals.Upsert(ctx, goal); err != nil {
			return err
		}
	}
	return nil
}

func formatMinutes(minutes int) string {
	return fmt.Sprintf("%d dakika", minutes)
}
