package club

import (
	"math/rand"
	"testing"
	"time"
)

func testClub() *Club {
	fixed := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	return NewWithClock(rand.New(rand.NewSource(42)), func() time.Time { return fixed })
}

func TestGenerateFixtures(t *testing.T) {
	c := testClub()

	if len(c.fixtures) != 20 {
		t.Fatalf("got %d fixtures, want 20", len(c.fixtures))
	}
	for i := 1; i < len(c.fixtures); i++ {
		if c.fixtures[i].Date < c.fixtures[i-1].Date {
			t.Errorf("fixtures out of order at %d: %s before %s", i, c.fixtures[i-1].Date, c.fixtures[i].Date)
		}
	}
	for _, f := range c.fixtures {
		if f.HomeAway == "H" && f.Venue != "Ülker Stadyumu" {
			t.Errorf("home fixture at %q", f.Venue)
		}
		if f.Opponent == "" || f.Competition == "" {
			t.Errorf("incomplete fixture: %+v", f)
		}
	}
}

func TestNextMatch(t *testing.T) {
	c := testClub()

	next := c.NextMatch()
	if next == nil {
		t.Fatal("NextMatch() = nil mid-season")
	}
	if next.Date < "2025-10-01" {
		t.Errorf("next match %s is in the past", next.Date)
	}

	// After the season the last fixture is returned.
	late := NewWithClock(rand.New(rand.NewSource(42)), func() time.Time {
		return time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)
	})
	if got := late.NextMatch(); got.Date != late.fixtures[len(late.fixtures)-1].Date {
		t.Errorf("post-season NextMatch() = %s, want the last fixture", got.Date)
	}
}

func TestFixturesLimit(t *testing.T) {
	c := testClub()
	got := c.Fixtures(5)
	if len(got) != 5 {
		t.Fatalf("got %d fixtures, want 5", len(got))
	}
	for _, f := range got {
		if f.Date < "2025-10-01" {
			t.Errorf("past fixture %s in upcoming list", f.Date)
		}
	}
}

func TestIsMatchDay(t *testing.T) {
	c := testClub()

	matchDate, err := time.Parse("2006-01-02", c.fixtures[0].Date)
	if err != nil {
		t.Fatalf("bad fixture date: %v", err)
	}
	if !c.IsMatchDay(matchDate) {
		t.Errorf("IsMatchDay(%s) = false for a fixture date", c.fixtures[0].Date)
	}
	if c.IsMatchDay(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("IsMatchDay() = true before the season starts")
	}
}

func TestWeekSchedule(t *testing.T) {
	tests := []struct {
		daysUntil int
		intensity string
		minutes   int
	}{
		{0, "light", 60},
		{1, "light", 60},
		{2, "normal", 120},
		{3, "normal", 120},
		{4, "intensive", 150},
	}

	matchDate := time.Date(2025, 10, 11, 0, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		today := matchDate.AddDate(0, 0, -tt.daysUntil)
		c := &Club{
			fixtures: []Fixture{{Date: "2025-10-11", Opponent: "Galatasaray"}},
			rnd:      rand.New(rand.NewSource(1)),
			now:      func() time.Time { return today },
		}

		schedule := c.WeekSchedule()
		if !schedule.HasMatch {
			t.Fatalf("days=%d: HasMatch = false", tt.daysUntil)
		}
		if schedule.Intensity != tt.intensity || schedule.RecommendedStudyTime != tt.minutes {
			t.Errorf("days=%d: intensity %q time %d, want %q %d",
				tt.daysUntil, schedule.Intensity, schedule.RecommendedStudyTime, tt.intensity, tt.minutes)
		}
	}
}

func TestCalculateMatchBonus(t *testing.T) {
	tests := []struct {
		completed int
		total     int
		full      bool
		points    int
	}{
		{4, 4, true, 50},
		{4, 5, true, 50}, // 80% is enough
		{2, 4, false, 25},
		{3, 5, false, 25},
		{1, 4, false, 10},
		{0, 4, false, 10},
		{0, 0, false, 10},
	}

	for _, tt := range tests {
		got := CalculateMatchBonus(tt.completed, tt.total)
		if got.CanWatchFull != tt.full || got.BonusPoints != tt.points {
			t.Errorf("CalculateMatchBonus(%d, %d) = full:%v points:%d, want full:%v points:%d",
				tt.completed, tt.total, got.CanWatchFull, got.BonusPoints, tt.full, tt.points)
		}
	}
}

func TestPostMatchMotivation(t *testing.T) {
	if got := PostMatchMotivation("win"); got == PostMatchMotivation("loss") {
		t.Error("win and loss messages are identical")
	}
	if PostMatchMotivation("draw") == "" {
		t.Error("empty draw message")
	}
}
