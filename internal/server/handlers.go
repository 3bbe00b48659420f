package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/example/tunamentor/internal/club"
	"github.com/example/tunamentor/internal/curriculum"
	"github.com/example/tunamentor/internal/planner"
	"github.com/example/tunamentor/pkg/models"
)

type loginRequest struct {
	Username string `json:"username"`
}

// Login accepts only the configured student and makes sure the account row
// exists. There is no password on the student side, the app runs on a family
// machine.
func (s *Server) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "geçersiz istek")
	}
	if req.Username != s.cfg.StudentName {
		return echo.NewHTTPError(http.StatusUnauthorized, "bu uygulama sadece "+s.cfg.StudentName+" için")
	}

	user, err := s.users.GetOrCreate(c.Request().Context(), req.Username)
	if err != nil {
		s.logger.Error("login failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "giriş yapılamadı")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":     user,
		"greeting": s.coach.DailyGreeting(s.cfg.StudentName),
	})
}

// Home is the dashboard payload: stats, today's challenges and the club
// corner in one round trip.
func (s *Server) Home(c echo.Context) error {
	ctx := c.Request().Context()
	username := s.username()

	stats, err := s.engine.UserStats(ctx, username)
	if err != nil {
		s.logger.Error("failed to load user stats", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "istatistikler yüklenemedi")
	}
	challenges, err := s.engine.DailyChallenges(ctx, username)
	if err != nil {
		s.logger.Error("failed to load daily challenges", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "günlük görevler yüklenemedi")
	}
	due, err := s.reviews.DueReviews(ctx, username)
	if err != nil {
		s.logger.Error("failed to load due reviews", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "tekrarlar yüklenemedi")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"greeting":    s.coach.DailyGreeting(s.cfg.StudentName),
		"stats":       stats,
		"challenges":  challenges,
		"due_reviews": len(due),
		"next_match":  s.club.NextMatch(),
		"quote":       s.club.MotivationQuote(),
	})
}

// Subjects lists the curriculum subjects with question counts.
func (s *Server) Subjects(c echo.Context) error {
	type subjectInfo struct {
		Name          string `json:"name"`
		TopicCount    int    `json:"topic_count"`
		QuestionCount int    `json:"question_count"`
	}

	subjects := curriculum.Subjects()
	out := make([]subjectInfo, 0, len(subjects))
	for _, subject := range subjects {
		out = append(out, subjectInfo{
			Name:          subject,
			TopicCount:    len(curriculum.Topics(subject)),
			QuestionCount: s.bank.Count(subject),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Topics lists the topics of one subject.
func (s *Server) Topics(c echo.Context) error {
	subject := c.Param("subject")
	topics := curriculum.Topics(subject)
	if len(topics) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "ders bulunamadı")
	}

	type topicInfo struct {
		Name     string `json:"name"`
		Priority int    `json:"priority"`
	}
	infos := make([]topicInfo, 0, len(topics))
	for _, t := range topics {
		infos = append(infos, topicInfo{Name: t, Priority: curriculum.TopicPriority(subject, t)})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"subject": subject,
		"topics":  infos,
	})
}

// Lesson returns the built-in lesson content for a topic.
func (s *Server) Lesson(c echo.Context) error {
	subject := c.Param("subject")
	topic := c.Param("topic")
	return c.JSON(http.StatusOK, echo.Map{
		"subject": subject,
		"topic":   topic,
		"content": curriculum.LessonContent(subject, topic),
	})
}

type explainRequest struct {
	Subject string `json:"subject"`
	Topic   string `json:"topic"`
}

// ExplainTopic asks the AI coach for a topic explanation. Falls back to the
// built-in lesson text when the coach is offline.
func (s *Server) ExplainTopic(c echo.Context) error {
	var req explainRequest
	if err := c.Bind(&req); err != nil || req.Subject == "" || req.Topic == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "ders ve konu gerekli")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"subject":     req.Subject,
		"topic":       req.Topic,
		"explanation": s.coach.ExplainTopic(c.Request().Context(), req.Subject, req.Topic),
		"ai_powered":  s.coach.Enabled(),
	})
}

// Recommendation asks the AI coach for study advice based on current progress.
func (s *Server) Recommendation(c echo.Context) error {
	ctx := c.Request().Context()
	data, err := s.tracker.ProgressData(ctx, s.username(), "week")
	if err != nil {
		s.logger.Error("failed to load progress data", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "ilerleme verisi yüklenemedi")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"recommendation": s.coach.StudyRecommendation(ctx, data),
		"ai_powered":     s.coach.Enabled(),
	})
}

// GetQuestion picks one question for a subject and topic. The correct answer
// is not stripped from the payload, checking happens server side anyway and
// the client shows the explanation after answering.
func (s *Server) GetQuestion(c echo.Context) error {
	subject := c.QueryParam("subject")
	if subject == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "subject parametresi gerekli")
	}
	question := s.bank.Question(subject, c.QueryParam("topic"))
	return c.JSON(http.StatusOK, question)
}

// PracticeQuestions returns a random set for a practice run.
func (s *Server) PracticeQuestions(c echo.Context) error {
	subject := c.QueryParam("subject")
	if subject == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "subject parametresi gerekli")
	}
	count := 5
	if v, err := strconv.Atoi(c.QueryParam("count")); err == nil && v > 0 {
		count = v
	}
	return c.JSON(http.StatusOK, s.bank.PracticeQuestions(subject, count))
}

type answerRequest struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

// SubmitAnswer checks an answer, logs the attempt and either pays points or
// records the mistake and queues the topic for review.
func (s *Server) SubmitAnswer(c echo.Context) error {
	var req answerRequest
	if err := c.Bind(&req); err != nil || req.QuestionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "question_id ve answer gerekli")
	}

	ctx := c.Request().Context()
	username := s.username()

	question, ok := s.bank.Get(req.QuestionID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "soru bulunamadı")
	}
	correct := s.bank.CheckAnswer(req.QuestionID, req.Answer)
	today := time.Now().Format("2006-01-02")

	err := s.attempts.Create(ctx, &models.QuestionAttempt{
		Username:      username,
		Subject:       question.Subject,
		Topic:         question.Topic,
		QuestionID:    question.ID,
		UserAnswer:    req.Answer,
		CorrectAnswer: question.CorrectAnswer,
		IsCorrect:     correct,
		AttemptDate:   today,
	})
	if err != nil {
		s.logger.Error("failed to record attempt", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cevap kaydedilemedi")
	}

	resp := echo.Map{
		"correct":        correct,
		"correct_answer": question.CorrectAnswer,
		"explanation":    question.Explanation,
	}

	if correct {
		earned, total, err := s.engine.Award(ctx, username, "correct_answer")
		if err != nil {
			s.logger.Error("failed to add points", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "puan eklenemedi")
		}
		resp["points_earned"] = earned
		resp["total_points"] = total
	} else {
		if err := s.mistakes.Create(ctx, &models.Mistake{
			Username:    username,
			Subject:     question.Subject,
			Topic:       question.Topic,
			QuestionID:  question.ID,
			MistakeDate: today,
		}); err != nil {
			s.logger.Error("failed to record mistake", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "hata kaydedilemedi")
		}
		if err := s.reviews.AddToSchedule(ctx, username, question.Subject, question.Topic); err != nil {
			s.logger.Error("failed to schedule review", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "tekrar planlanamadı")
		}
		resp["encouragement"] = s.coach.Encouragement()
	}

	return c.JSON(http.StatusOK, resp)
}

type sessionRequest struct {
	Subject         string `json:"subject"`
	Topic           string `json:"topic"`
	DurationMinutes int    `json:"duration_minutes"`
}

// LogStudySession records a finished study block, credits the session points
// and checks whether today's goal for the subject just got completed.
func (s *Server) LogStudySession(c echo.Context) error {
	var req sessionRequest
	if err := c.Bind(&req); err != nil || req.Subject == "" || req.DurationMinutes <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "subject ve pozitif duration_minutes gerekli")
	}

	ctx := c.Request().Context()
	username := s.username()
	now := time.Now()

	if err := s.sessions.Create(ctx, &models.StudySession{
		Username:        username,
		Subject:         req.Subject,
		Topic:           req.Topic,
		DurationMinutes: req.DurationMinutes,
		SessionDate:     now,
	}); err != nil {
		s.logger.Error("failed to record study session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "çalışma kaydedilemedi")
	}

	if err := s.goals.AddCompletedMinutes(ctx, username, now, req.Subject, req.DurationMinutes); err != nil {
		s.logger.Error("failed to update goal minutes", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "hedef güncellenemedi")
	}

	points := 0
	goalCompleted := false
	if done, err := s.goals.MarkCompleted(ctx, username, now, req.Subject); err != nil {
		s.logger.Error("failed to mark goal completed", "error", err)
	} else if done {
		goalCompleted = true
		if bonus, _, err := s.engine.Award(ctx, username, "daily_goal"); err != nil {
			s.logger.Error("failed to add goal bonus", "error", err)
		} else {
			points += bonus
		}
	}

	earned, total, err := s.engine.Award(ctx, username, "study_session_completed")
	if err != nil {
		s.logger.Error("failed to add session points", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "puan eklenemedi")
	}
	points += earned

	return c.JSON(http.StatusOK, echo.Map{
		"points_earned":  points,
		"total_points":   total,
		"goal_completed": goalCompleted,
	})
}

// Progress returns the full analytics payload for a period ("week", "month"
// or "all").
func (s *Server) Progress(c echo.Context) error {
	period := c.QueryParam("period")
	if period == "" {
		period = "week"
	}
	data, err := s.tracker.ProgressData(c.Request().Context(), s.username(), period)
	if err != nil {
		s.logger.Error("failed to load progress data", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "ilerleme verisi yüklenemedi")
	}
	return c.JSON(http.StatusOK, data)
}

// WeeklySummary is the condensed week-in-review card.
func (s *Server) WeeklySummary(c echo.Context) error {
	summary, err := s.tracker.Summarize(c.Request().Context(), s.username())
	if err != nil {
		s.logger.Error("failed to build weekly summary", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "haftalık özet oluşturulamadı")
	}
	return c.JSON(http.StatusOK, summary)
}

// Prediction returns the exam score outlook.
func (s *Server) Prediction(c echo.Context) error {
	prediction, err := s.tracker.Prediction(c.Request().Context(), s.username())
	if err != nil {
		s.logger.Error("failed to build prediction", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "tahmin oluşturulamadı")
	}
	return c.JSON(http.StatusOK, prediction)
}

// DailyPlan builds today's study plan for the given available hours.
func (s *Server) DailyPlan(c echo.Context) error {
	hours := 2.0
	if v, err := strconv.ParseFloat(c.QueryParam("hours"), 64); err == nil && v > 0 {
		hours = v
	}
	plan, err := s.planner.DailyPlan(c.Request().Context(), s.username(), hours, time.Now())
	if err != nil {
		s.logger.Error("failed to build daily plan", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "günlük plan oluşturulamadı")
	}
	return c.JSON(http.StatusOK, plan)
}

// WeeklyPlan builds the plan for the next seven days.
func (s *Server) WeeklyPlan(c echo.Context) error {
	plan, err := s.planner.WeeklyPlan(c.Request().Context(), s.username())
	if err != nil {
		s.logger.Error("failed to build weekly plan", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "haftalık plan oluşturulamadı")
	}
	return c.JSON(http.StatusOK, plan)
}

// StudyRecommendations returns the static technique tips.
func (s *Server) StudyRecommendations(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"recommendations": planner.StudyRecommendations(),
		"techniques": echo.Map{
			"Matematik":     planner.StudyTechniques("Matematik"),
			"Türkçe":        planner.StudyTechniques("Türkçe"),
			"Fen Bilimleri": planner.StudyTechniques("Fen Bilimleri"),
		},
	})
}

// ClubInfo is the Fenerbahçe corner: fixtures, season snapshot and a player
// spotlight.
func (s *Server) ClubInfo(c echo.Context) error {
	resp := echo.Map{
		"next_match": s.club.NextMatch(),
		"fixtures":   s.club.Fixtures(5),
		"season":     s.club.Season(),
		"player":     s.club.PlayerSpotlight(),
		"schedule":   s.club.WeekSchedule(),
		"motivation": s.club.MatchDayMotivation(),
	}
	// ?result=win|draw|loss after a match adds the follow-up message.
	if result := c.QueryParam("result"); result != "" {
		resp["post_match"] = club.PostMatchMotivation(result)
	}
	return c.JSON(http.StatusOK, resp)
}

// MatchBonus computes the match-watching reward from today's challenge
// completion.
func (s *Server) MatchBonus(c echo.Context) error {
	ctx := c.Request().Context()
	username := s.username()

	challenges, err := s.engine.DailyChallenges(ctx, username)
	if err != nil {
		s.logger.Error("failed to load daily challenges", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "günlük görevler yüklenemedi")
	}
	completed := 0
	for _, ch := range challenges {
		if ch.Completed {
			completed++
		}
	}
	return c.JSON(http.StatusOK, club.CalculateMatchBonus(completed, len(challenges)))
}

// Gamification is the full game-layer payload: stats, challenges, weekly
// goals and achievements.
func (s *Server) Gamification(c echo.Context) error {
	ctx := c.Request().Context()
	username := s.username()

	stats, err := s.engine.UserStats(ctx, username)
	if err != nil {
		s.logger.Error("failed to load user stats", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "istatistikler yüklenemedi")
	}
	challenges, err := s.engine.DailyChallenges(ctx, username)
	if err != nil {
		s.logger.Error("failed to load daily challenges", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "günlük görevler yüklenemedi")
	}
	weekly, err := s.engine.WeeklyGoals(ctx, username)
	if err != nil {
		s.logger.Error("failed to load weekly goals", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "haftalık hedefler yüklenemedi")
	}
	achievements, err := s.engine.Achievements(ctx, username)
	if err != nil {
		s.logger.Error("failed to load achievements", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "başarımlar yüklenemedi")
	}
	canWatch, err := s.engine.CanWatchFullMatch(ctx, username)
	if err != nil {
		s.logger.Error("failed to check match permission", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "maç izni kontrol edilemedi")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"stats":          stats,
		"challenges":     challenges,
		"weekly_goals":   weekly,
		"achievements":   achievements,
		"can_watch_full": canWatch,
	})
}

type spendRequest struct {
	Points int    `json:"points"`
	Reason string `json:"reason"`
}

// SpendPoints deducts points, refusing to go below zero.
func (s *Server) SpendPoints(c echo.Context) error {
	var req spendRequest
	if err := c.Bind(&req); err != nil || req.Points <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "pozitif points gerekli")
	}
	ok, err := s.engine.SpendPoints(c.Request().Context(), s.username(), req.Points)
	if err != nil {
		s.logger.Error("failed to spend points", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "puan harcanamadı")
	}
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{"success": false, "message": "yeterli puan yok"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// DueReviews lists the topics scheduled for review today or earlier.
func (s *Server) DueReviews(c echo.Context) error {
	due, err := s.reviews.DueReviews(c.Request().Context(), s.username())
	if err != nil {
		s.logger.Error("failed to load due reviews", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "tekrarlar yüklenemedi")
	}
	return c.JSON(http.StatusOK, due)
}

// ReviewSchedule is the full repetition schedule with projected dates.
func (s *Server) ReviewSchedule(c echo.Context) error {
	schedule, err := s.reviews.Schedule(c.Request().Context(), s.username())
	if err != nil {
		s.logger.Error("failed to load review schedule", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "tekrar programı yüklenemedi")
	}

	type entry struct {
		models.Repetition
		Upcoming []string `json:"upcoming"`
	}
	out := make([]entry, 0, len(schedule))
	for _, rep := range schedule {
		e := entry{Repetition: rep}
		for _, d := range s.reviews.ProjectedDates(&rep, 3) {
			e.Upcoming = append(e.Upcoming, d.Format("2006-01-02"))
		}
		out = append(out, e)
	}
	return c.JSON(http.StatusOK, out)
}

type reviewRequest struct {
	Subject string `json:"subject"`
	Topic   string `json:"topic"`
	Success bool   `json:"success"`
}

// RecordReview marks a scheduled review done and pays points on success.
func (s *Server) RecordReview(c echo.Context) error {
	var req reviewRequest
	if err := c.Bind(&req); err != nil || req.Subject == "" || req.Topic == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "subject ve topic gerekli")
	}

	ctx := c.Request().Context()
	username := s.username()

	rep, err := s.reviews.RecordReview(ctx, username, req.Subject, req.Topic, req.Success)
	if err != nil {
		s.logger.Error("failed to record review", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "tekrar kaydedilemedi")
	}

	resp := echo.Map{"repetition": rep}
	if req.Success {
		earned, total, err := s.engine.Award(ctx, username, "spaced_repetition_completion")
		if err != nil {
			s.logger.Error("failed to add review points", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "puan eklenemedi")
		}
		resp["points_earned"] = earned
		resp["total_points"] = total
	}
	return c.JSON(http.StatusOK, resp)
}

// FutureLessons lists the completed enrichment lessons.
func (s *Server) FutureLessons(c echo.Context) error {
	lessons, err := s.lessons.GetByUser(c.Request().Context(), s.username())
	if err != nil {
		s.logger.Error("failed to load future lessons", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "dersler yüklenemedi")
	}
	return c.JSON(http.StatusOK, lessons)
}

type futureLessonRequest struct {
	Title string `json:"title"`
	Type  string `json:"type"`
	Cost  int    `json:"cost"`
}

// CompleteFutureLesson spends points on an enrichment lesson and records it.
// The spend happens first so an insufficient balance never creates a row.
func (s *Server) CompleteFutureLesson(c echo.Context) error {
	var req futureLessonRequest
	if err := c.Bind(&req); err != nil || req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title gerekli")
	}

	ctx := c.Request().Context()
	username := s.username()

	if req.Cost > 0 {
		ok, err := s.engine.SpendPoints(ctx, username, req.Cost)
		if err != nil {
			s.logger.Error("failed to spend points", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "puan harcanamadı")
		}
		if !ok {
			return c.JSON(http.StatusOK, echo.Map{"success": false, "message": "yeterli puan yok"})
		}
	}

	if err := s.lessons.Create(ctx, &models.FutureLesson{
		Username:   username,
		Title:      req.Title,
		LessonType: req.Type,
	}); err != nil {
		s.logger.Error("failed to record future lesson", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "ders kaydedilemedi")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Reminders returns the pending background reminder, running a manual scan
// when none is waiting.
func (s *Server) Reminders(c echo.Context) error {
	if reminder := s.jobs.LastReminder(); reminder != nil {
		return c.JSON(http.StatusOK, reminder)
	}
	reminder, err := s.jobs.RunManualScan(c.Request().Context())
	if err != nil {
		s.logger.Error("reminder scan failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "hatırlatıcılar yüklenemedi")
	}
	if reminder == nil {
		return c.JSON(http.StatusOK, echo.Map{"due_count": 0})
	}
	return c.JSON(http.StatusOK, reminder)
}
