package progress

import (
	"testing"
	"time"

	"github.com/example/tunamentor/pkg/models"
)

func TestEstimateExamScore(t *testing.T) {
	tests := []struct {
		name  string
		stats models.StudyStats
		want  int
	}{
		{"no activity", models.StudyStats{}, 300},
		{"perfect everything", models.StudyStats{Accuracy: 100, TotalStudyHours: 100, QuestionsSolved: 1000}, 500},
		{"accuracy only", models.StudyStats{Accuracy: 80}, 380},
		{"half of everything", models.StudyStats{Accuracy: 50, TotalStudyHours: 50, QuestionsSolved: 500}, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateExamScore(&tt.stats)
			if got != tt.want {
				t.Errorf("EstimateExamScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEstimateExamScoreCapsVolume(t *testing.T) {
	// Hours and questions above the cap must not push the score past 500.
	stats := models.StudyStats{Accuracy: 100, TotalStudyHours: 500, QuestionsSolved: 9000}
	if got := EstimateExamScore(&stats); got != 500 {
		t.Errorf("EstimateExamScore() = %d, want 500", got)
	}
}

func TestIntervalsForAccuracy(t *testing.T) {
	tests := []struct {
		accuracy  float64
		wantFirst int
		wantLast  int
	}{
		{95, 1, 90},
		{90, 1, 90},
		{75, 1, 45},
		{70, 1, 45},
		{40, 1, 15},
	}

	for _, tt := range tests {
		got := IntervalsForAccuracy(tt.accuracy)
		if len(got) != 6 {
			t.Fatalf("IntervalsForAccuracy(%v) has %d steps, want 6", tt.accuracy, len(got))
		}
		if got[0] != tt.wantFirst || got[5] != tt.wantLast {
			t.Errorf("IntervalsForAccuracy(%v) = %v, want first %d last %d",
				tt.accuracy, got, tt.wantFirst, tt.wantLast)
		}
	}
}

func TestOptimalDifficulty(t *testing.T) {
	tests := []struct {
		accuracy float64
		want     string
	}{
		{92, "challenge_mode"},
		{85, "challenge_mode"},
		{84.9, "optimal_zone"},
		{65, "optimal_zone"},
		{64, "support_mode"},
		{0, "support_mode"},
	}

	for _, tt := range tests {
		if got := OptimalDifficulty(tt.accuracy); got != tt.want {
			t.Errorf("OptimalDifficulty(%v) = %q, want %q", tt.accuracy, got, tt.want)
		}
	}
}

func TestTimeToTarget(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{480, "Hedefe ulaştın! 🎯"},
		{475, "Hedefe ulaştın! 🎯"},
		{460, "2-3 hafta yoğun çalışma"},
		{430, "1-2 ay düzenli çalışma"},
		{350, "3-4 ay sistemli çalışma"},
	}

	for _, tt := range tests {
		if got := timeToTarget(tt.score); got != tt.want {
			t.Errorf("timeToTarget(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestTurkishDay(t *testing.T) {
	tests := []struct {
		day  time.Weekday
		want string
	}{
		{time.Monday, "Pazartesi"},
		{time.Wednesday, "Çarşamba"},
		{time.Sunday, "Pazar"},
	}

	for _, tt := range tests {
		if got := TurkishDay(tt.day); got != tt.want {
			t.Errorf("TurkishDay(%v) = %q, want %q", tt.day, got, tt.want)
		}
	}
}
