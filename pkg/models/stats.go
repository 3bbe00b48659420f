package models

// StudyStats are aggregates over the session and attempt logs for a period.
type StudyStats struct {
	TotalStudyHours  float64        `json:"total_study_hours"`
	TotalMinutes     int            `json:"total_minutes"`
	SubjectBreakdown map[string]int `json:"subject_breakdown"`
	QuestionsSolved  int            `json:"questions_solved"`
	Accuracy         float64        `json:"accuracy"` // percent, 0-100
}

// UserStats is the gamification snapshot shown in the sidebar.
type UserStats struct {
	TotalPoints     int `json:"total_points"`
	Level           int `json:"level"`
	Streak          int `json:"streak"`
	NextLevelPoints int `json:"next_level_points"`
}

// WeakArea is a (subject, topic) pair with low historical accuracy.
type WeakArea struct {
	Subject      string  `json:"subject"`
	Topic        string  `json:"topic"`
	Accuracy     float64 `json:"accuracy"` // percent
	Attempts     int     `json:"attempts"`
	MistakeCount int     `json:"mistake_count"`
	Suggestion   string  `json:"suggestion"`
}

// Prediction is the exam-score outlook derived from current stats.
type Prediction struct {
	EstimatedScore     int    `json:"estimated_score"`
	TargetScore        int    `json:"target_score"`
	ScoreGap           int    `json:"score_gap"`
	RankingEstimate    string `json:"ranking_estimate"`
	SuccessProbability int    `json:"success_probability"`
	Recommendation     string `json:"recommendation"`
	TimeToTarget       string `json:"time_to_target"`
}

// ProgressData is the full analytics payload for the progress page.
type ProgressData struct {
	StudyStats
	PointsEarned      int                `json:"points_earned"`
	EstimatedScore    int                `json:"estimated_lgs_score"`
	WeakAreas         []WeakArea         `json:"weak_areas"`
	SubjectAccuracy   map[string]float64 `json:"subject_accuracy"`
	DailyBreakdown    map[string]int     `json:"daily_breakdown"`
	ProgressTrend     string             `json:"progress_trend"`
	ReviewIntervals   []int              `json:"review_intervals"`
	OptimalDifficulty string             `json:"optimal_difficulty"`
}
