package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/example/tunamentor/internal/ai"
	"github.com/example/tunamentor/internal/curriculum"
	"github.com/example/tunamentor/internal/database"
	"github.com/example/tunamentor/internal/progress"
)

// MistakeInsight is one row of the mistake analysis section.
type MistakeInsight struct {
	Subject    string `json:"subject"`
	Topic      string `json:"topic"`
	Count      int    `json:"count"`
	Suggestion string `json:"suggestion"`
}

// Recommendation is one actionable suggestion for the parents.
type Recommendation struct {
	Area       string `json:"area"`
	Suggestion string `json:"suggestion"`
}

// WeeklyReport is the parent-facing weekly summary.
type WeeklyReport struct {
	StudentName        string             `json:"student_name"`
	ReportDate         string             `json:"report_date"`
	StudyHours         float64            `json:"study_hours"`
	SuccessRate        float64            `json:"success_rate"`
	CompletedTasks     int                `json:"completed_tasks"`
	PointsEarned       int                `json:"points_earned"`
	DailyBreakdown     map[string]int     `json:"daily_breakdown"`
	SubjectPerformance map[string]float64 `json:"subject_performance"`
	CommonMistakes     []MistakeInsight   `json:"common_mistakes"`
	CoachAssessment    string             `json:"coach_assessment"`
	Recommendations    []Recommendation   `json:"recommendations"`
}

// Builder assembles weekly reports from the analytics layer and the coach.
type Builder struct {
	tracker *progress.Tracker
	goals   *database.DailyGoalRepository
	coach   *ai.Coach
	now     func() time.Time
}

// NewBuilder wires a report builder.
func NewBuilder(tracker *progress.Tracker, coach *ai.Coach) *Builder {
	return &Builder{
		tracker: tracker,
		goals:   database.NewDailyGoalRepository(),
		coach:   coach,
		now:     time.Now,
	}
}

// Build assembles the report for the past week.
func (b *Builder) Build(ctx context.Context, username, studentName string) (*WeeklyReport, error) {
	data, err := b.tracker.ProgressData(ctx, username, "week")
	if err != nil {
		return nil, err
	}
	summary, err := b.tracker.Summarize(ctx, username)
	if err != nil {
		return nil, err
	}

	weekStart := b.now().AddDate(0, 0, -6)
	completedTasks, err := b.goals.CompletedCountSince(ctx, username, weekStart)
	if err != nil {
		return nil, err
	}

	mistakes := make([]MistakeInsight, 0, len(data.WeakAreas))
	for _, area := range data.WeakAreas {
		if area.MistakeCount == 0 {
			continue
		}
		mistakes = append(mistakes, MistakeInsight{
			Subject:    area.Subject,
			Topic:      area.Topic,
			Count:      area.MistakeCount,
			Suggestion: area.Suggestion,
		})
	}

	return &WeeklyReport{
		StudentName:        studentName,
		ReportDate:         b.now().Format("02/01/2006"),
		StudyHours:         data.TotalStudyHours,
		SuccessRate:        data.Accuracy,
		CompletedTasks:     completedTasks,
		PointsEarned:       data.PointsEarned,
		DailyBreakdown:     data.DailyBreakdown,
		SubjectPerformance: data.SubjectAccuracy,
		CommonMistakes:     mistakes,
		CoachAssessment:    b.coach.ParentAssessment(ctx, studentName, summary),
		Recommendations:    b.recommendations(data.TotalStudyHours, data.Accuracy, data.QuestionsSolved),
	}, nil
}

// recommendations builds the parent advice list. The first two entries are
// conditional on the week's numbers, the rest are standing advice.
func (b *Builder) recommendations(studyHours, accuracy float64, questions int) []Recommendation {
	recs := make([]Recommendation, 0, 6)

	if studyHours < 10 {
		recs = append(recs, Recommendation{
			Area:       "Çalışma Süresi",
			Suggestion: "Günlük çalışma süresini 30 dakika artırın. Kısa molalarla bölümler halinde çalışması daha etkili olacaktır.",
		})
	}
	if questions > 0 && accuracy < 75 {
		recs = append(recs, Recommendation{
			Area:       "Doğruluk Oranı",
			Suggestion: "Hızdan ziyade doğruluğa odaklanmasını sağlayın. Yanlış sorularını tekrar çözmesini teşvik edin.",
		})
	}

	recs = append(recs,
		Recommendation{
			Area:       "Matematik",
			Suggestion: "Günlük en az 5 problem çözmesini sağlayın. Adım adım çözüm yapmaya odaklanmalı.",
		},
		Recommendation{
			Area:       "Türkçe",
			Suggestion: "Her gün 1 paragraf okuyup özetlemesini isteyin. Kelime haznesini geliştirici kitaplar okutun.",
		},
		Recommendation{
			Area:       "Motivasyon",
			Suggestion: "Fenerbahçe maç günlerini motivasyon aracı olarak kullanın. Başarılarını kutlayın.",
		},
		Recommendation{
			Area:       "Dinlenme",
			Suggestion: "Çalışma-dinlenme dengesini koruyun. Yeterli uyku ve fiziksel aktivite sağlayın.",
		},
	)
	return recs
}

// dayOrder keeps map-backed sections in weekday order.
var dayOrder = []string{"Pazartesi", "Salı", "Çarşamba", "Perşembe", "Cuma", "Cumartesi", "Pazar"}

// Text renders the downloadable plain-text version of a report.
func Text(report *WeeklyReport) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `LGS KOÇU - HAFTALIK İLERLEME RAPORU
Öğrenci: %s
Rapor Tarihi: %s

═══════════════════════════════════════════════════════

📊 GENEL PERFORMANS
• Toplam Çalışma Süresi: %.1f saat
• Başarı Oranı: %%%.1f
• Tamamlanan Görev: %d
• Kazanılan Puan: %d

📈 GÜNLÜK ÇALIŞMA DAĞILIMI
`, report.StudentName, report.ReportDate, report.StudyHours, report.SuccessRate, report.CompletedTasks, report.PointsEarned)

	for _, day := range dayOrder {
		minutes, ok := report.DailyBreakdown[day]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "• %s: %d saat %d dakika\n", day, minutes/60, minutes%60)
	}

	sb.WriteString("\n📚 DERS BAZINDA PERFORMANS\n")
	for _, subject := range curriculum.Subjects() {
		if accuracy, ok := report.SubjectPerformance[subject]; ok {
			fmt.Fprintf(&sb, "• %s: %%%.1f\n", subject, accuracy)
		}
	}

	sb.WriteString("\n🔍 HATA ANALİZİ\n")
	for _, mistake := range report.CommonMistakes {
		fmt.Fprintf(&sb, "• %s - %s: %d hata\n  Öneri: %s\n\n", mistake.Subject, mistake.Topic, mistake.Count, mistake.Suggestion)
	}

	fmt.Fprintf(&sb, "🤖 KOÇUN DEĞERLENDİRMESİ\n%s\n\n💡 EBEVEYN ÖNERİLERİ\n", report.CoachAssessment)
	for i, rec := range report.Recommendations {
		fmt.Fprintf(&sb, "%d. %s: %s\n", i+1, rec.Area, rec.Suggestion)
	}

	sb.WriteString("\n═══════════════════════════════════════════════════════\nBu rapor LGS Koçu tarafından otomatik olarak oluşturulmuştur.\n")
	return sb.String()
}

// Excel renders the report as an xlsx workbook with summary, daily, subject,
// mistake and recommendation sheets.
func Excel(report *WeeklyReport) (*excelize.File, error) {
	f := excelize.NewFile()

	summary := "Özet"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %v", err)
	}

	summaryRows := [][]interface{}{
		{"Öğrenci", report.StudentName},
		{"Rapor Tarihi", report.ReportDate},
		{"Toplam Çalışma (saat)", report.StudyHours},
		{"Başarı Oranı (%)", report.SuccessRate},
		{"Tamamlanan Görev", report.CompletedTasks},
		{"Kazanılan Puan", report.PointsEarned},
	}
	for i, row := range summaryRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summary, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary row: %v", err)
		}
	}

	if _, err := f.NewSheet("Günlük Dağılım"); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %v", err)
	}
	if err := f.SetSheetRow("Günlük Dağılım", "A1", &[]interface{}{"Gün", "Dakika"}); err != nil {
		return nil, fmt.Errorf("failed to write header: %v", err)
	}
	rowNum := 2
	for _, day := range dayOrder {
		if minutes, ok := report.DailyBreakdown[day]; ok {
			cell, _ := excelize.CoordinatesToCellName(1, rowNum)
			if err := f.SetSheetRow("Günlük Dağılım", cell, &[]interface{}{day, minutes}); err != nil {
				return nil, fmt.Errorf("failed to write daily row: %v", err)
			}
			rowNum++
		}
	}

	if _, err := f.NewSheet("Ders Performansı"); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %v", err)
	}
	if err := f.SetSheetRow("Ders Performansı", "A1", &[]interface{}{"Ders", "Doğruluk (%)"}); err != nil {
		return nil, fmt.Errorf("failed to write header: %v", err)
	}
	rowNum = 2
	for _, subject := range curriculum.Subjects() {
		if accuracy, ok := report.SubjectPerformance[subject]; ok {
			cell, _ := excelize.CoordinatesToCellName(1, rowNum)
			if err := f.SetSheetRow("Ders Performansı", cell, &[]interface{}{subject, accuracy}); err != nil {
				return nil, fmt.Errorf("failed to write subject row: %v", err)
			}
			rowNum++
		}
	}

	if _, err := f.NewSheet("Hata Analizi"); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %v", err)
	}
	if err := f.SetSheetRow("Hata Analizi", "A1", &[]interface{}{"Ders", "Konu", "Hata Sayısı", "Öneri"}); err != nil {
		return nil, fmt.Errorf("failed to write header: %v", err)
	}
	for i, mistake := range report.CommonMistakes {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{mistake.Subject, mistake.Topic, mistake.Count, mistake.Suggestion}
		if err := f.SetSheetRow("Hata Analizi", cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write mistake row: %v", err)
		}
	}

	if _, err := f.NewSheet("Öneriler"); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %v", err)
	}
	if err := f.SetSheetRow("Öneriler", "A1", &[]interface{}{"Alan", "Öneri"}); err != nil {
		return nil, fmt.Errorf("failed to write header: %v", err)
	}
	for i, rec := range report.Recommendations {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow("Öneriler", cell, &[]interface{}{rec.Area, rec.Suggestion}); err != nil {
			return nil, fmt.Errorf("failed to write recommendation row: %v", err)
		}
	}

	return f, nil
}
