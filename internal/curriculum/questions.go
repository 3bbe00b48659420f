package curriculum

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/example/tunamentor/pkg/models"
)

// Bank is the in-memory multiple-choice question bank, keyed by subject.
// The random source is injected so question selection is testable.
type Bank struct {
	mu        sync.RWMutex
	questions map[string][]models.Question
	rnd       *rand.Rand
}

// NewBank returns a bank preloaded with the built-in questions.
func NewBank(rnd *rand.Rand) *Bank {
	b := &Bank{
		questions: make(map[string][]models.Question),
		rnd:       rnd,
	}
	b.Add(builtinQuestions())
	return b
}

// Add appends questions to the bank, grouped by subject.
func (b *Bank) Add(questions []models.Question) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, q := range questions {
		b.questions[q.Subject] = append(b.questions[q.Subject], q)
	}
}

// Count returns the number of questions stored for a subject.
func (b *Bank) Count(subject string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.questions[subject])
}

// Question picks a random question for the subject and topic. When the topic
// has no questions it falls back to any question of the subject, and when the
// subject is empty too it returns a synthetic placeholder so the quiz flow
// never dead-ends.
func (b *Bank) Question(subject, topic string) models.Question {
	b.mu.RLock()
	defer b.mu.RUnlock()

	pool := make([]models.Question, 0)
	for _, q := range b.questions[subject] {
		if q.Topic == topic {
			pool = append(pool, q)
		}
	}
	if len(pool) == 0 {
		pool = b.questions[subject]
	}
	if len(pool) > 0 {
		return pool[b.rnd.Intn(len(pool))]
	}

	return models.Question{
		ID:            fmt.Sprintf("fallback_%s_%s", subject, topic),
		Subject:       subject,
		Topic:         topic,
		Text:          fmt.Sprintf("%s konusundan bir soru hazırlanıyor...", topic),
		Options:       []string{"A) Seçenek 1", "B) Seçenek 2", "C) Seçenek 3", "D) Seçenek 4"},
		CorrectAnswer: "A) Seçenek 1",
		Explanation:   "Bu bir örnek sorudur.",
	}
}

// Get returns a question by ID.
func (b *Bank) Get(id string) (models.Question, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, subjectQuestions := range b.questions {
		for _, q := range subjectQuestions {
			if q.ID == id {
				return q, true
			}
		}
	}
	return models.Question{}, false
}

// CheckAnswer compares the answer against the stored correct option, exact
// string match. Unknown question IDs are wrong by definition.
func (b *Bank) CheckAnswer(questionID, answer string) bool {
	q, ok := b.Get(questionID)
	if !ok {
		return false
	}
	return q.CorrectAnswer == answer
}

// PracticeQuestions returns up to count random distinct questions for an
// exam-style practice set.
func (b *Bank) PracticeQuestions(subject string, count int) []models.Question {
	b.mu.RLock()
	defer b.mu.RUnlock()

	pool := b.questions[subject]
	if len(pool) <= count {
		out := make([]models.Question, len(pool))
		copy(out, pool)
		return out
	}

	perm := b.rnd.Perm(len(pool))
	out := make([]models.Question, 0, count)
	for _, idx := range perm[:count] {
		out = append(out, pool[idx])
	}
	return out
}

func builtinQuestions() []models.Question {
	return []models.Question{
		{
			ID:            "mat_001",
			Subject:       "Matematik",
			Topic:         "Çarpanlar ve Katlar",
			Text:          "12 sayısının pozitif bölenlerinin toplamı kaçtır?",
			Options:       []string{"A) 24", "B) 28", "C) 30", "D) 32"},
			CorrectAnswer: "B) 28",
			Explanation:   "12'nin pozitif bölenleri: 1, 2, 3, 4, 6, 12. Toplamları: 1+2+3+4+6+12 = 28",
		},
		{
			ID:            "mat_002",
			Subject:       "Matematik",
			Topic:         "Üslü İfadeler",
			Text:          "2⁴ × 2³ işleminin sonucu kaçtır?",
			Options:       []string{"A) 2⁷", "B) 2¹²", "C) 4⁷", "D) 4¹²"},
			CorrectAnswer: "A) 2⁷",
			Explanation:   "Aynı tabanlı sayıların çarpımında üsler toplanır: 2⁴ × 2³ = 2⁴⁺³ = 2⁷",
		},
		{
			ID:            "mat_003",
			Subject:       "Matematik",
			Topic:         "Cebirsel İfadeler",
			Text:          "3x + 2 = 14 denkleminde x kaçtır?",
			Options:       []string{"A) 3", "B) 4", "C) 5", "D) 6"},
			CorrectAnswer: "B) 4",
			Explanation:   "3x + 2 = 14 → 3x = 12 → x = 4",
		},
		{
			ID:            "tur_001",
			Subject:       "Türkçe",
			Topic:         "Sözcükte Anlam",
			Text:          "'Kitabı masanın üzerine koydu.' cümlesinde 'üzerine' sözcüğü hangi anlamda kullanılmıştır?",
			Options:       []string{"A) Zaman", "B) Yer", "C) Sebep", "D) Amaç"},
			CorrectAnswer: "B) Yer",
			Explanation:   "'Üzerine' sözcüğü burada yer bildiren bir edat olarak kullanılmıştır.",
		},
		{
			ID:            "tur_002",
			Subject:       "Türkçe",
			Topic:         "Cümlenin Öğeleri",
			Text:          "'Çocuklar parkta top oynuyor.' cümlesinde özne hangisidir?",
			Options:       []string{"A) Çocuklar", "B) parkta", "C) top", "D) oynuyor"},
			CorrectAnswer: "A) Çocuklar",
			Explanation:   "'Kim?' sorusunun cevabı olan 'Çocuklar' sözcüğü öznedir.",
		},
		{
			ID:            "fen_001",
			Subject:       "Fen Bilimleri",
			Topic:         "DNA ve Genetik Kod",
			Text:          "DNA'nın açılımı nedir?",
			Options:       []string{"A) Deoksiribonükleik Asit", "B) Ribonükleik Asit", "C) Amino Asit", "D) Yağ Asidi"},
			CorrectAnswer: "A) Deoksiribonükleik Asit",
			Explanation:   "DNA, Deoksiribonükleik Asitin kısaltmasıdır ve kalıtsal bilgileri taşır.",
		},
		{
			ID:            "ink_001",
			Subject:       "T.C. İnkılap Tarihi",
			Topic:         "Bir Kahraman Doğuyor",
			Text:          "Mustafa Kemal Atatürk hangi yılda doğmuştur?",
			Options:       []string{"A) 1880", "B) 1881", "C) 1882", "D) 1883"},
			CorrectAnswer: "B) 1881",
			Explanation:   "Mustafa Kemal Atatürk 1881 yılında Selanik'te doğmuştur.",
		},
	}
}
