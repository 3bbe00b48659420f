package curriculum

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/example/tunamentor/pkg/models"
)

func testBank() *Bank {
	return NewBank(rand.New(rand.NewSource(1)))
}

func TestBankPreloadsBuiltins(t *testing.T) {
	b := testBank()
	if b.Count("Matematik") != 3 {
		t.Errorf("Matematik count = %d, want 3", b.Count("Matematik"))
	}
	if b.Count("Türkçe") != 2 {
		t.Errorf("Türkçe count = %d, want 2", b.Count("Türkçe"))
	}
	if b.Count("İngilizce") != 0 {
		t.Errorf("İngilizce count = %d, want 0", b.Count("İngilizce"))
	}
}

func TestQuestionByTopic(t *testing.T) {
	b := testBank()
	q := b.Question("Matematik", "Üslü İfadeler")
	if q.ID != "mat_002" {
		t.Errorf("got question %s, want mat_002", q.ID)
	}
}

func TestQuestionFallsBackToSubject(t *testing.T) {
	b := testBank()
	q := b.Question("Matematik", "Olasılık")
	if q.Subject != "Matematik" {
		t.Errorf("fallback question subject = %q, want Matematik", q.Subject)
	}
	if strings.HasPrefix(q.ID, "fallback_") {
		t.Errorf("got placeholder %s, want a real Matematik question", q.ID)
	}
}

func TestQuestionPlaceholder(t *testing.T) {
	b := testBank()
	q := b.Question("İngilizce", "Friendship")

	if q.ID != "fallback_İngilizce_Friendship" {
		t.Errorf("placeholder ID = %q", q.ID)
	}
	if len(q.Options) != 4 {
		t.Errorf("placeholder has %d options, want 4", len(q.Options))
	}
	if q.CorrectAnswer != "A) Seçenek 1" {
		t.Errorf("placeholder answer = %q", q.CorrectAnswer)
	}
}

func TestCheckAnswer(t *testing.T) {
	b := testBank()

	if !b.CheckAnswer("mat_001", "B) 28") {
		t.Error("correct answer rejected")
	}
	if b.CheckAnswer("mat_001", "A) 24") {
		t.Error("wrong answer accepted")
	}
	if b.CheckAnswer("mat_001", "28") {
		t.Error("partial answer accepted, matching is exact")
	}
	if b.CheckAnswer("nonexistent_id", "B) 28") {
		t.Error("unknown question ID accepted")
	}
}

func TestGet(t *testing.T) {
	b := testBank()

	q, ok := b.Get("fen_001")
	if !ok {
		t.Fatal("Get(fen_001) not found")
	}
	if q.Subject != "Fen Bilimleri" {
		t.Errorf("subject = %q", q.Subject)
	}

	if _, ok := b.Get("missing"); ok {
		t.Error("Get(missing) reported found")
	}
}

func TestPracticeQuestions(t *testing.T) {
	b := testBank()

	got := b.PracticeQuestions("Matematik", 2)
	if len(got) != 2 {
		t.Fatalf("got %d questions, want 2", len(got))
	}
	if got[0].ID == got[1].ID {
		t.Error("practice set contains a duplicate question")
	}

	// Asking for more than the pool returns the whole pool.
	got = b.PracticeQuestions("Matematik", 10)
	if len(got) != 3 {
		t.Errorf("got %d questions, want all 3", len(got))
	}
}

func TestAddGroupsBySubject(t *testing.T) {
	b := testBank()
	b.Add([]models.Question{{
		ID:            "eng_001",
		Subject:       "İngilizce",
		Topic:         "Friendship",
		Text:          "Which one is a greeting?",
		Options:       []string{"A) Hello", "B) Table", "C) Run", "D) Blue"},
		CorrectAnswer: "A) Hello",
	}})

	if b.Count("İngilizce") != 1 {
		t.Errorf("İngilizce count = %d, want 1", b.Count("İngilizce"))
	}
	if !b.CheckAnswer("eng_001", "A) Hello") {
		t.Error("added question not answerable")
	}
}
