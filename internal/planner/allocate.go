package planner

import "sort"

// Pomodoro timing constants, in minutes.
const (
	PomodoroMinutes         = 25
	ShortBreakMinutes       = 5
	LongBreakMinutes        = 15
	SessionsBeforeLongBreak = 4

	// Sessions shorter than this are not worth sitting down for.
	minSessionMinutes = 15
)

// SubjectWeights are the LGS exam weights used to split study time.
var SubjectWeights = map[string]int{
	"Matematik":           4,
	"Türkçe":              4,
	"Fen Bilimleri":       4,
	"T.C. İnkılap Tarihi": 1,
	"Din Kültürü":         1,
	"İngilizce":           1,
}

// Allocate splits a day's study minutes across subjects. 70% of the total is
// divided proportionally to the weights with largest-remainder rounding, so
// the base pool is assigned in full. The remaining 30% is split evenly across
// up to three weak subjects and left unassigned when there are none.
func Allocate(totalMinutes int, weights map[string]int, weakSubjects []string) map[string]int {
	allocation := make(map[string]int, len(weights))

	totalWeight := 0
	for _, w := range weights {
		totalWeight += w
	}
	if totalWeight > 0 {
		basePool := totalMinutes * 7 / 10

		type share struct {
			subject   string
			remainder int
		}
		shares := make([]share, 0, len(weights))
		assigned := 0
		for subject, weight := range weights {
			minutes := weight * basePool / totalWeight
			allocation[subject] = minutes
			assigned += minutes
			shares = append(shares, share{subject, weight * basePool % totalWeight})
		}

		// Hand the rounding leftover to the largest remainders, ties by name.
		sort.Slice(shares, func(i, j int) bool {
			if shares[i].remainder != shares[j].remainder {
				return shares[i].remainder > shares[j].remainder
			}
			return shares[i].subject < shares[j].subject
		})
		for i := 0; i < basePool-assigned; i++ {
			allocation[shares[i%len(shares)].subject]++
		}
	}

	if len(weakSubjects) > 3 {
		weakSubjects = weakSubjects[:3]
	}
	if len(weakSubjects) > 0 {
		extra := totalMinutes * 3 / 10 / len(weakSubjects)
		for _, subject := range weakSubjects {
			allocation[subject] += extra
		}
	}

	return allocation
}

// Session is one planned study block.
type Session struct {
	ID         int      `json:"id"`
	Subject    string   `json:"subject"`
	Duration   int      `json:"duration"`
	Type       string   `json:"type"`
	Priority   string   `json:"priority"`
	Techniques []string `json:"techniques"`
	BreakAfter int      `json:"break_after"`
}

// ChunkIntoSessions turns a per-subject allocation into Pomodoro blocks.
// Full 25-minute blocks come first, a trailing block keeps remainders of at
// least 15 minutes, smaller remainders are dropped. Every fourth session is
// followed by the long break.
func ChunkIntoSessions(allocation map[string]int) []Session {
	subjects := make([]string, 0, len(allocation))
	for subject := range allocation {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)

	sessions := make([]Session, 0)
	id := 1

	breakAfter := func(sessionID int) int {
		if sessionID%SessionsBeforeLongBreak == 0 {
			return LongBreakMinutes
		}
		return ShortBreakMinutes
	}

	for _, subject := range subjects {
		minutes := allocation[subject]

		if minutes >= PomodoroMinutes {
			for i := 0; i < minutes/PomodoroMinutes; i++ {
				sessions = append(sessions, Session{
					ID:         id,
					Subject:    subject,
					Duration:   PomodoroMinutes,
					Type:       "pomodoro",
					Priority:   subjectPriority(subject),
					Techniques: StudyTechniques(subject),
					BreakAfter: breakAfter(id),
				})
				id++
			}
			if rem := minutes % PomodoroMinutes; rem >= minSessionMinutes {
				sessions = append(sessions, Session{
					ID:         id,
					Subject:    subject,
					Duration:   rem,
					Type:       "review",
					Priority:   "low",
					Techniques: []string{"hızlı tekrar", "soru çözme"},
					BreakAfter: ShortBreakMinutes,
				})
				id++
			}
		} else if minutes >= minSessionMinutes {
			sessions = append(sessions, Session{
				ID:         id,
				Subject:    subject,
				Duration:   minutes,
				Type:       "mini_session",
				Priority:   "medium",
				Techniques: []string{"konu özeti", "hızlı soru"},
				BreakAfter: ShortBreakMinutes,
			})
			id++
		}
	}

	return sessions
}

// Break is a planned pause between sessions.
type Break struct {
	AfterSession int      `json:"after_session"`
	Duration     int      `json:"duration"`
	Type         string   `json:"type"`
	Activities   []string `json:"activity_suggestions"`
}

// Breaks builds the pause schedule for a session count. The last session has
// no break after it.
func Breaks(sessionCount int) []Break {
	breaks := make([]Break, 0)
	for i := 1; i < sessionCount; i++ {
		duration := ShortBreakMinutes
		kind := "short"
		if i%SessionsBeforeLongBreak == 0 {
			duration = LongBreakMinutes
			kind = "long"
		}
		breaks = append(breaks, Break{
			AfterSession: i,
			Duration:     duration,
			Type:         kind,
			Activities:   BreakActivities(duration),
		})
	}
	return breaks
}

// BreakActivities suggests what to do in a pause of the given length.
func BreakActivities(duration int) []string {
	if duration >= LongBreakMinutes {
		return []string{
			"🚶‍♂️ Kısa yürüyüş yap",
			"💧 Su iç ve hafif atıştır",
			"🧘‍♂️ Nefes egzersizi yap",
			"⚽ Fenerbahçe haberlerini kontrol et",
			"📱 Arkadaşlarınla kısa sohbet",
		}
	}
	return []string{
		"💧 Su iç",
		"👀 Gözlerini dinlendir",
		"🤸‍♂️ Hafif germe hareketleri",
		"🎵 Sevdiğin müziği dinle",
		"🌬️ Derin nefes al",
	}
}

// StudyTechniques returns the recommended techniques for a subject.
func StudyTechniques(subject string) []string {
	techniques := map[string][]string{
		"Matematik":           {"problem çözme", "formül tekrarı", "adım adım çözüm", "hata analizi"},
		"Türkçe":              {"metin analizi", "kelime çalışması", "paragraf özetleme", "soru teknikleri"},
		"Fen Bilimleri":       {"kavram haritası", "deney analizi", "görsel öğrenme", "formül uygulaması"},
		"T.C. İnkılap Tarihi": {"kronoloji", "neden-sonuç", "önemli kişiler", "tarih analizi"},
		"Din Kültürü":         {"kavram öğrenme", "ayet-hadis", "örneklerle pekiştirme", "değerler"},
		"İngilizce":           {"kelime çalışması", "dilbilgisi", "okuma-anlama", "dinleme"},
	}
	if t, ok := techniques[subject]; ok {
		return t
	}
	return []string{"genel çalışma", "soru çözme"}
}

func subjectPriority(subject string) string {
	switch {
	case SubjectWeights[subject] >= 4:
		return "high"
	case SubjectWeights[subject] >= 2:
		return "medium"
	default:
		return "low"
	}
}
