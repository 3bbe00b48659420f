package report

import (
	"strings"
	"testing"
)

func sampleReport() *WeeklyReport {
	return &WeeklyReport{
		StudentName:    "Tuna",
		ReportDate:     "13/03/2026",
		StudyHours:     12.5,
		SuccessRate:    78.3,
		CompletedTasks: 9,
		PointsEarned:   430,
		DailyBreakdown: map[string]int{
			"Pazartesi": 90,
			"Çarşamba":  125,
			"Pazar":     60,
		},
		SubjectPerformance: map[string]float64{
			"Matematik": 72.0,
			"Türkçe":    85.5,
		},
		CommonMistakes: []MistakeInsight{
			{Subject: "Matematik", Topic: "Olasılık", Count: 4, Suggestion: "Daha fazla pratik yap ve temel kuralları tekrar et"},
		},
		CoachAssessment: "Tuna bu hafta güzel bir çalışma sergiledi.",
		Recommendations: []Recommendation{
			{Area: "Matematik", Suggestion: "Günlük en az 5 problem çözmesini sağlayın."},
		},
	}
}

func TestText(t *testing.T) {
	got := Text(sampleReport())

	for _, want := range []string{
		"Öğrenci: Tuna",
		"Rapor Tarihi: 13/03/2026",
		"Toplam Çalışma Süresi: 12.5 saat",
		"Başarı Oranı: %78.3",
		"Tamamlanan Görev: 9",
		"Kazanılan Puan: 430",
		"• Çarşamba: 2 saat 5 dakika",
		"• Matematik: %72.0",
		"• Matematik - Olasılık: 4 hata",
		"KOÇUN DEĞERLENDİRMESİ",
		"1. Matematik:",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report text missing %q", want)
		}
	}
}

func TestTextDayOrder(t *testing.T) {
	got := Text(sampleReport())

	// Days appear Monday first regardless of map iteration order.
	monday := strings.Index(got, "Pazartesi")
	wednesday := strings.Index(got, "Çarşamba")
	sunday := strings.Index(got, "• Pazar:")
	if !(monday < wednesday && wednesday < sunday) {
		t.Errorf("days out of order: Pazartesi@%d Çarşamba@%d Pazar@%d", monday, wednesday, sunday)
	}

	// Days with no logged study are left out entirely.
	if strings.Contains(got, "Salı") {
		t.Error("report lists a day with no data")
	}
}

func TestExcel(t *testing.T) {
	f, err := Excel(sampleReport())
	if err != nil {
		t.Fatalf("Excel() error: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Özet", "Günlük Dağılım", "Ders Performansı", "Hata Analizi", "Öneriler"} {
		if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
			t.Errorf("missing sheet %q", sheet)
		}
	}

	name, err := f.GetCellValue("Özet", "B1")
	if err != nil {
		t.Fatalf("GetCellValue() error: %v", err)
	}
	if name != "Tuna" {
		t.Errorf("summary B1 = %q, want Tuna", name)
	}

	day, err := f.GetCellValue("Günlük Dağılım", "A2")
	if err != nil {
		t.Fatalf("GetCellValue() error: %v", err)
	}
	if day != "Pazartesi" {
		t.Errorf("daily A2 = %q, want Pazartesi", day)
	}

	area, err := f.GetCellValue("Öneriler", "A2")
	if err != nil {
		t.Fatalf("GetCellValue() error: %v", err)
	}
	if area != "Matematik" {
		t.Errorf("recommendation A2 = %q, want Matematik", area)
	}
}

func TestRecommendationsConditional(t *testing.T) {
	b := &Builder{}

	// A slow, inaccurate week triggers both conditional entries.
	recs := b.recommendations(5, 60, 40)
	if len(recs) != 6 {
		t.Fatalf("got %d recommendations, want 6", len(recs))
	}
	if recs[0].Area != "Çalışma Süresi" || recs[1].Area != "Doğruluk Oranı" {
		t.Errorf("conditional areas = %q, %q", recs[0].Area, recs[1].Area)
	}

	// A strong week gets only the standing advice.
	recs = b.recommendations(15, 90, 200)
	if len(recs) != 4 {
		t.Fatalf("got %d recommendations, want 4", len(recs))
	}

	// No questions answered means accuracy is not judged.
	recs = b.recommendations(15, 0, 0)
	if len(recs) != 4 {
		t.Fatalf("got %d recommendations for an idle week, want 4", len(recs))
	}
}
