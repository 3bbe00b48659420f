package curriculum

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.csv")
	if err := os.WriteFile(path, []byte(lines), 0644); err != nil {
		t.Fatalf("failed to write csv: %v", err)
	}
	return path
}

func TestImportQuestionsFromCSV(t *testing.T) {
	csv := "id,subject,topic,text,opt1,opt2,opt3,opt4,answer,explanation\n" +
		"imp_001,Matematik,Olasılık,Bir zar atılıyor. 4 gelme olasılığı nedir?,A) 1/2,B) 1/4,C) 1/6,D) 1/8,C) 1/6,Bir zarın 6 yüzü vardır.\n" +
		"imp_002,Türkçe,Fiilimsiler,Hangi cümlede fiilimsi vardır?,A) Koşan çocuk düştü.,B) Çocuk düştü.,C) Hava güzel.,D) Geldi.,A) Koşan çocuk düştü.,Koşan sözcüğü sıfat-fiildir.\n"

	bank := NewBank(rand.New(rand.NewSource(1)))
	config := DefaultImportConfig()
	config.FilePath = writeCSV(t, csv)

	result, err := ImportQuestions(bank, config)
	if err != nil {
		t.Fatalf("ImportQuestions() error: %v", err)
	}

	if result.Imported != 2 {
		t.Errorf("imported = %d, want 2 (errors: %v)", result.Imported, result.Errors)
	}
	if result.TotalProcessed != 2 {
		t.Errorf("processed = %d, want 2", result.TotalProcessed)
	}
	if !bank.CheckAnswer("imp_001", "C) 1/6") {
		t.Error("imported question not answerable")
	}
	q, ok := bank.Get("imp_002")
	if !ok {
		t.Fatal("imp_002 not found after import")
	}
	if q.Topic != "Fiilimsiler" || len(q.Options) != 4 {
		t.Errorf("imp_002 = %+v", q)
	}
}

func TestImportSkipsIncompleteRows(t *testing.T) {
	csv := "id,subject,topic,text,opt1,opt2,opt3,opt4,answer,explanation\n" +
		",Matematik,Olasılık,ID eksik,A) 1,B) 2,C) 3,D) 4,A) 1,\n" +
		"imp_003,Matematik,Olasılık,Seçenek eksik,A) 1,B) 2,,,A) 1,\n" +
		"imp_004,Matematik,Olasılık,Cevap eksik,A) 1,B) 2,C) 3,D) 4,,\n"

	bank := NewBank(rand.New(rand.NewSource(1)))
	config := DefaultImportConfig()
	config.FilePath = writeCSV(t, csv)

	result, err := ImportQuestions(bank, config)
	if err != nil {
		t.Fatalf("ImportQuestions() error: %v", err)
	}

	if result.Imported != 0 {
		t.Errorf("imported = %d, want 0", result.Imported)
	}
	if result.Skipped != 3 {
		t.Errorf("skipped = %d, want 3", result.Skipped)
	}
	// Rows with malformed data, not just missing fields, produce error lines.
	if len(result.Errors) != 2 {
		t.Errorf("errors = %v, want 2 entries", result.Errors)
	}
}

func TestImportSkipsDuplicateIDs(t *testing.T) {
	// mat_001 is a built-in question ID.
	csv := "id,subject,topic,text,opt1,opt2,opt3,opt4,answer,explanation\n" +
		"mat_001,Matematik,Olasılık,Kopya soru,A) 1,B) 2,C) 3,D) 4,A) 1,\n"

	bank := NewBank(rand.New(rand.NewSource(1)))
	config := DefaultImportConfig()
	config.FilePath = writeCSV(t, csv)

	result, err := ImportQuestions(bank, config)
	if err != nil {
		t.Fatalf("ImportQuestions() error: %v", err)
	}
	if result.Imported != 0 || result.Skipped != 1 {
		t.Errorf("result = %+v, want the duplicate skipped", result)
	}

	// The original question is untouched.
	q, _ := bank.Get("mat_001")
	if q.Text == "Kopya soru" {
		t.Error("duplicate import overwrote the original question")
	}
}

func TestImportMissingFile(t *testing.T) {
	bank := NewBank(rand.New(rand.NewSource(1)))
	config := DefaultImportConfig()
	config.FilePath = filepath.Join(t.TempDir(), "missing.csv")

	if _, err := ImportQuestions(bank, config); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestColumnToIndex(t *testing.T) {
	tests := []struct {
		column string
		want   int
	}{
		{"A", 0},
		{"B", 1},
		{"J", 9},
		{"Z", 25},
		{"AA", 26},
		{"", -1},
		{"1", -1},
	}

	for _, tt := range tests {
		if got := columnToIndex(tt.column); got != tt.want {
			t.Errorf("columnToIndex(%q) = %d, want %d", tt.column, got, tt.want)
		}
	}
}
