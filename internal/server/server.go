package server

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/example/tunamentor/internal/ai"
	"github.com/example/tunamentor/internal/club"
	"github.com/example/tunamentor/internal/config"
	"github.com/example/tunamentor/internal/curriculum"
	"github.com/example/tunamentor/internal/database"
	"github.com/example/tunamentor/internal/gamification"
	"github.com/example/tunamentor/internal/planner"
	"github.com/example/tunamentor/internal/progress"
	"github.com/example/tunamentor/internal/report"
	"github.com/example/tunamentor/internal/scheduler"
	"github.com/example/tunamentor/internal/spaced_repetition"
)

// Server is the HTTP API. All components are constructed once here and
// shared by the handlers; nothing above the database layer is global.
type Server struct {
	cfg      *config.Config
	echo     *echo.Echo
	logger   *slog.Logger
	bank     *curriculum.Bank
	coach    *ai.Coach
	club     *club.Club
	engine   *gamification.Engine
	tracker  *progress.Tracker
	planner  *planner.Planner
	reviews  *spaced_repetition.Scheduler
	reports  *report.Builder
	jobs     *scheduler.Scheduler
	users    *database.UserRepository
	sessions *database.StudySessionRepository
	attempts *database.QuestionAttemptRepository
	mistakes *database.MistakeRepository
	goals    *database.DailyGoalRepository
	lessons  *database.FutureLessonRepository
}

// New wires the full application.
func New(cfg *config.Config, logger *slog.Logger) *Server {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	fbClub := club.New(rnd)
	tracker := progress.NewTracker()
	coach := ai.NewCoach(&ai.Config{
		APIKey:    cfg.OpenAIKey,
		ChatModel: cfg.OpenAIModel,
		Timeout:   cfg.AITimeout,
	}, rnd, logger)

	dayPlanner := planner.NewPlanner(tracker, fbClub.IsMatchDay, rnd)

	s := &Server{
		cfg:      cfg,
		echo:     echo.New(),
		logger:   logger,
		bank:     curriculum.NewBank(rnd),
		coach:    coach,
		club:     fbClub,
		engine:   gamification.NewEngine(fbClub.IsMatchDay, logger),
		tracker:  tracker,
		planner:  dayPlanner,
		reviews:  spaced_repetition.NewScheduler(database.NewRepetitionRepository()),
		reports:  report.NewBuilder(tracker, coach),
		users:    database.NewUserRepository(),
		sessions: database.NewStudySessionRepository(),
		attempts: database.NewQuestionAttemptRepository(),
		mistakes: database.NewMistakeRepository(),
		goals:    database.NewDailyGoalRepository(),
		lessons:  database.NewFutureLessonRepository(),
	}

	s.jobs = scheduler.New(cfg.StudentName, func(ctx context.Context, username string, date time.Time) error {
		hours := 2.5
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			hours = 3.0
		}
		_, err := dayPlanner.DailyPlan(ctx, username, hours, date)
		return err
	}, logger)

	s.routes()
	return s
}

func (s *Server) routes() {
	e := s.echo
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	api := e.Group("/api")

	api.POST("/login", s.Login)
	api.GET("/home", s.Home)

	api.GET("/curriculum", s.Subjects)
	api.GET("/curriculum/:subject/topics", s.Topics)
	api.GET("/curriculum/:subject/topics/:topic/lesson", s.Lesson)
	api.POST("/ai/explain", s.ExplainTopic)
	api.GET("/ai/recommendation", s.Recommendation)

	api.GET("/questions", s.GetQuestion)
	api.GET("/questions/practice", s.PracticeQuestions)
	api.POST("/answers", s.SubmitAnswer)

	api.POST("/study-sessions", s.LogStudySession)

	api.GET("/progress", s.Progress)
	api.GET("/progress/summary", s.WeeklySummary)
	api.GET("/prediction", s.Prediction)

	api.GET("/plans/daily", s.DailyPlan)
	api.GET("/plans/weekly", s.WeeklyPlan)
	api.GET("/plans/recommendations", s.StudyRecommendations)

	api.GET("/club", s.ClubInfo)
	api.GET("/club/match-bonus", s.MatchBonus)

	api.GET("/gamification", s.Gamification)
	api.POST("/points/spend", s.SpendPoints)

	api.GET("/reviews/due", s.DueReviews)
	api.GET("/reviews/schedule", s.ReviewSchedule)
	api.POST("/reviews", s.RecordReview)

	api.GET("/future-lessons", s.FutureLessons)
	api.POST("/future-lessons", s.CompleteFutureLesson)

	api.GET("/reminders", s.Reminders)

	parent := api.Group("/parent", s.parentAuth)
	parent.GET("/report", s.ParentReport)
	parent.GET("/report/text", s.ParentReportText)
	parent.GET("/report/xlsx", s.ParentReportExcel)
	parent.POST("/questions/import", s.ImportQuestions)
}

// parentAuth gates the parent area behind the shared password, passed in the
// X-Parent-Password header.
func (s *Server) parentAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get("X-Parent-Password") != s.cfg.ParentPassword {
			return echo.NewHTTPError(http.StatusUnauthorized, "ebeveyn şifresi hatalı")
		}
		return next(c)
	}
}

// Start runs the background jobs and serves HTTP until the listener fails.
func (s *Server) Start() error {
	s.jobs.Start()
	return s.echo.Start(fmt.Sprintf(":%d", s.cfg.Port))
}

// Shutdown stops the jobs and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.jobs.Stop()
	return s.echo.Shutdown(ctx)
}

// username resolves the acting user. Single-user app: it is always the
// configured student.
func (s *Server) username() string {
	return s.cfg.StudentName
}
