package progress

import "github.com/example/tunamentor/pkg/models"

// EstimateExamScore maps aggregate performance onto the LGS score scale.
// Accuracy carries half the weight, study volume and question volume the
// rest. Result is truncated and clamped to the valid 300-500 range.
func EstimateExamScore(stats *models.StudyStats) int {
	accuracyFactor := stats.Accuracy / 100
	studyFactor := stats.TotalStudyHours / 100
	if studyFactor > 1 {
		studyFactor = 1
	}
	questionFactor := float64(stats.QuestionsSolved) / 1000
	if questionFactor > 1 {
		questionFactor = 1
	}

	performance := accuracyFactor*0.5 + studyFactor*0.3 + questionFactor*0.2
	score := 300 + int(performance*200)

	if score < 300 {
		return 300
	}
	if score > 500 {
		return 500
	}
	return score
}

// IntervalsForAccuracy returns the review-interval table matched to overall
// accuracy. Stronger recall earns longer gaps.
func IntervalsForAccuracy(accuracy float64) []int {
	switch {
	case accuracy >= 90:
		return []int{1, 4, 10, 20, 40, 90}
	case accuracy >= 70:
		return []int{1, 2, 5, 10, 20, 45}
	default:
		return []int{1, 1, 2, 4, 8, 15}
	}
}

// OptimalDifficulty places current accuracy in a difficulty band.
func OptimalDifficulty(accuracy float64) string {
	switch {
	case accuracy >= 85:
		return "challenge_mode"
	case accuracy >= 65:
		return "optimal_zone"
	default:
		return "support_mode"
	}
}

// suggestionFor picks the study advice band for a weak area.
func suggestionFor(accuracy float64) string {
	switch {
	case accuracy < 60:
		return "Temel kavramları baştan çalış ve görsel materyallerle pekiştir"
	case accuracy < 75:
		return "Daha fazla pratik yap ve temel kuralları tekrar et"
	default:
		return "Konuyu aralıklı tekrar programına ekle"
	}
}

// improvementPlan returns the study advice for a current score band.
func improvementPlan(score int) string {
	switch {
	case score >= 450:
		return "Mükemmel! Son rötuşlar için zayıf konuları tekrar et."
	case score >= 400:
		return "İyi durumdasın! Matematik ve Türkçe'ye daha fazla odaklan."
	default:
		return "Daha çok çalışma gerekiyor. Günlük çalışma süresini artır ve koçundan yardım al!"
	}
}

// timeToTarget estimates how long closing the gap to the target will take.
func timeToTarget(score int) string {
	gap := targetScore - score
	switch {
	case gap <= 0:
		return "Hedefe ulaştın! 🎯"
	case gap <= 25:
		return "2-3 hafta yoğun çalışma"
	case gap <= 50:
		return "1-2 ay düzenli çalışma"
	default:
		return "3-4 ay sistemli çalışma"
	}
}
