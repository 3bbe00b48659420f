package club

import (
	"fmt"
	"math/rand"
	"time"
)

// Fixture is one scheduled Fenerbahçe match.
type Fixture struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	Opponent    string `json:"opponent"`
	HomeAway    string `json:"home_away"`
	Venue       string `json:"venue"`
	Competition string `json:"competition"`
}

// MatchBonus is the match-watching privilege earned from daily tasks.
type MatchBonus struct {
	CanWatchFull bool   `json:"can_watch_full"`
	WatchTime    string `json:"watch_time"`
	Message      string `json:"bonus_message"`
	BonusPoints  int    `json:"bonus_points"`
}

// WeekSchedule is the study intensity advice for the current match week.
type WeekSchedule struct {
	HasMatch             bool   `json:"has_match"`
	MatchDate            string `json:"match_date,omitempty"`
	Opponent             string `json:"opponent,omitempty"`
	DaysUntilMatch       int    `json:"days_until_match,omitempty"`
	Intensity            string `json:"intensity,omitempty"`
	RecommendedStudyTime int    `json:"recommended_study_time,omitempty"`
	Message              string `json:"message,omitempty"`
}

// Player is a squad member used for motivational spotlights.
type Player struct {
	Name       string `json:"name"`
	Position   string `json:"position"`
	Motivation string `json:"motivation"`
}

// SeasonProgress is the league-table snapshot shown on the club page.
type SeasonProgress struct {
	MatchesPlayed  int    `json:"matches_played"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	Points         int    `json:"points"`
	LeaguePosition int    `json:"league_position"`
	NextTarget     string `json:"next_target"`
}

// Club holds the fixture list and the motivational content. Fixtures are
// sample data generated from the injected random source; the clock is
// injected so match-day logic is testable.
type Club struct {
	fixtures []Fixture
	rnd      *rand.Rand
	now      func() time.Time
}

// New builds a club with a generated 2025-2026 season fixture list.
func New(rnd *rand.Rand) *Club {
	c := &Club{rnd: rnd, now: time.Now}
	c.fixtures = c.generateFixtures()
	return c
}

// NewWithClock builds a club with a fixed clock for tests.
func NewWithClock(rnd *rand.Rand, now func() time.Time) *Club {
	c := &Club{rnd: rnd, now: now}
	c.fixtures = c.generateFixtures()
	return c
}

func (c *Club) generateFixtures() []Fixture {
	opponents := []string{
		"Galatasaray", "Beşiktaş", "Trabzonspor", "Başakşehir",
		"Alanyaspor", "Antalyaspor", "Kasımpaşa", "Konyaspor",
		"Sivasspor", "Gaziantep FK", "Adana Demirspor", "Kayserispor",
	}
	competitions := []string{"Süper Lig", "Türkiye Kupası", "UEFA"}
	minutes := []string{"00", "30"}

	seasonStart := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	fixtures := make([]Fixture, 0, 20)

	for i := 0; i < 20; i++ {
		date := seasonStart.AddDate(0, 0, i*7+c.rnd.Intn(7))
		opponent := opponents[c.rnd.Intn(len(opponents))]
		homeAway := "H"
		venue := "Ülker Stadyumu"
		if c.rnd.Intn(2) == 1 {
			homeAway = "A"
			venue = opponent + " Stadyumu"
		}

		fixtures = append(fixtures, Fixture{
			Date:        date.Format("2006-01-02"),
			Time:        fmt.Sprintf("%d:%s", 16+c.rnd.Intn(6), minutes[c.rnd.Intn(2)]),
			Opponent:    opponent,
			HomeAway:    homeAway,
			Venue:       venue,
			Competition: competitions[c.rnd.Intn(len(competitions))],
		})
	}

	// Weekly spacing keeps the list date-ordered already, but the random
	// in-week offset can swap neighbors.
	for i := 1; i < len(fixtures); i++ {
		for j := i; j > 0 && fixtures[j].Date < fixtures[j-1].Date; j-- {
			fixtures[j], fixtures[j-1] = fixtures[j-1], fixtures[j]
		}
	}
	return fixtures
}

func (c *Club) today() string {
	return c.now().Format("2006-01-02")
}

// NextMatch returns the next fixture on or after today, or the season's last
// fixture when the season is over.
func (c *Club) NextMatch() *Fixture {
	if len(c.fixtures) == 0 {
		return nil
	}
	today := c.today()
	for i := range c.fixtures {
		if c.fixtures[i].Date >= today {
			return &c.fixtures[i]
		}
	}
	return &c.fixtures[len(c.fixtures)-1]
}

// Fixtures returns up to limit upcoming fixtures.
func (c *Club) Fixtures(limit int) []Fixture {
	today := c.today()
	out := make([]Fixture, 0, limit)
	for _, f := range c.fixtures {
		if f.Date >= today {
			out = append(out, f)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// IsMatchDay reports whether the given date has a fixture.
func (c *Club) IsMatchDay(date time.Time) bool {
	day := date.Format("2006-01-02")
	for _, f := range c.fixtures {
		if f.Date == day {
			return true
		}
	}
	return false
}

// WeekSchedule maps match proximity onto study intensity. Match day or the
// day before calls for light study, a match within three days for normal
// tempo, anything further for intensive work.
func (c *Club) WeekSchedule() WeekSchedule {
	next := c.NextMatch()
	if next == nil {
		return WeekSchedule{HasMatch: false}
	}

	matchDate, err := time.Parse("2006-01-02", next.Date)
	if err != nil {
		return WeekSchedule{HasMatch: false}
	}
	now := c.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(matchDate.Sub(today).Hours() / 24)

	schedule := WeekSchedule{
		HasMatch:       true,
		MatchDate:      next.Date,
		Opponent:       next.Opponent,
		DaysUntilMatch: days,
	}
	switch {
	case days <= 1:
		schedule.Intensity = "light"
		schedule.RecommendedStudyTime = 60
		schedule.Message = "Maç günü! Hafif çalışma, sonra maç keyfi! ⚽"
	case days <= 3:
		schedule.Intensity = "normal"
		schedule.RecommendedStudyTime = 120
		schedule.Message = "Maç yaklaşıyor! Normal tempoda çalışmaya devam! 💛💙"
	default:
		schedule.Intensity = "intensive"
		schedule.RecommendedStudyTime = 150
		schedule.Message = "Maça uzun var! Yoğun çalışma zamanı! 🔥"
	}
	return schedule
}

// CalculateMatchBonus grades the day's task completion into watch time and
// bonus points.
func CalculateMatchBonus(tasksCompleted, totalTasks int) MatchBonus {
	rate := 0.0
	if totalTasks > 0 {
		rate = float64(tasksCompleted) / float64(totalTasks)
	}

	switch {
	case rate >= 0.8:
		return MatchBonus{
			CanWatchFull: true,
			WatchTime:    "Full match",
			Message:      "🎉 Harika! Tam maç izleme hakkın var!",
			BonusPoints:  50,
		}
	case rate >= 0.5:
		return MatchBonus{
			WatchTime:   "Second half only",
			Message:     "⚽ İyi! İkinci yarıyı izleyebilirsin!",
			BonusPoints: 25,
		}
	default:
		return MatchBonus{
			WatchTime:   "30 minutes only",
			Message:     "⏰ Görevlerini tamamla, daha fazla izle!",
			BonusPoints: 10,
		}
	}
}

// MotivationQuote picks a club-themed study quote.
func (c *Club) MotivationQuote() string {
	quotes := []string{
		"Futbolda en güzel zafer, hak edilen zaferdir! Sen de çalışarak hak et! ⚽",
		"Fenerbahçe ruhu demek, asla vazgeçmemek demek! LGS'de de vazgeçme! 💛💙",
		"Her maçtan önce hazırlık, her sınavdan önce çalışma! Forza FB! 🏆",
		"Takım oyunu önemli! Sen de derslerinle takım halinde çalış! ⚽",
		"Kadıköy'ün coşkusu, senin çalışma enerjin olsun! 🔥",
	}
	return quotes[c.rnd.Intn(len(quotes))]
}

// MatchDayMotivation picks the louder match-day variant.
func (c *Club) MatchDayMotivation() string {
	quotes := []string{
		"🔥 BUGÜN MAÇ GÜNÜ! Önce görevlerini tamamla, sonra coşkuyla maçı izle! ⚽",
		"💛💙 Fenerbahçe ruhuyla bugün çalış! Maç öncesi hazırlığını tamamla! 🏆",
		"⚡ FORZA FENERBAHÇE! Sen de sahada olduğun gibi çalışmada da şampiyon ol! 🎯",
		"🎉 Maç günü enerjisi! Görevlerini bitir, maçı hak ederek izle! ⚽",
	}
	return quotes[c.rnd.Intn(len(quotes))]
}

// PostMatchMotivation returns the message matching a result ("win", "draw"
// or anything else for a loss).
func PostMatchMotivation(result string) string {
	switch result {
	case "win":
		return "🎉 FENERBAHÇE KAZANDI! Bu coşkuyla çalışmalarına devam et! Şampiyonluk yolunda! 🏆"
	case "draw":
		return "⚖️ Berabere bitti ama mücadele devam ediyor! Sen de çalışmada mücadeleni sürdür! 💪"
	default:
		return "😔 Bugün olmadı ama Fenerbahçe ruhu asla pes etmez! Sen de çalışmanda pes etme! 💛💙"
	}
}

// PlayerSpotlight features one player as a study role model.
func (c *Club) PlayerSpotlight() Player {
	players := []Player{
		{Name: "Edin Džeko", Position: "Forvet", Motivation: "Tecrübe ve çalışkanlık! Džeko gibi sabırla çalış! ⚽"},
		{Name: "İrfan Can Kahveci", Position: "Orta Saha", Motivation: "Yaratıcılık ve teknik! İrfan Can gibi zeki ol! 🎯"},
		{Name: "Dominik Livakovic", Position: "Kaleci", Motivation: "Konsantrasyon ve odaklanma! Livakovic gibi odaklan! 🥅"},
	}
	return players[c.rnd.Intn(len(players))]
}

// Season returns the season snapshot. Sample data, as with the fixtures.
func (c *Club) Season() SeasonProgress {
	return SeasonProgress{
		MatchesPlayed:  12,
		Wins:           8,
		Draws:          2,
		Losses:         2,
		GoalsFor:       24,
		GoalsAgainst:   10,
		Points:         26,
		LeaguePosition: 2,
		NextTarget:     "Şampiyonluk! 🏆",
	}
}
