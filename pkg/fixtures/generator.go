// Package fixtures builds round-robin schedules with the circle method.
package fixtures

import (
	"math/rand"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/nvbf/league-manager/pkg/league"
	timehelper "github.com/nvbf/league-manager/pkg/timeHelper"
)

const (
	DefaultWeeks   = 5
	DefaultWeekday = time.Tuesday
	DefaultLeague  = "Seasonal League"
)

// DefaultTimeSlots is the kickoff pool shuffled each week.
var DefaultTimeSlots = []string{"8:00", "10:00", "12:00", "14:00"}

type Settings struct {
	Weeks         int
	Weekday       time.Weekday
	TimeSlots     []string
	League        string
	MinutesPlayed int
}

func DefaultSettings() Settings {
	return Settings{
		Weeks:         DefaultWeeks,
		Weekday:       DefaultWeekday,
		TimeSlots:     append([]string(nil), DefaultTimeSlots...),
		League:        DefaultLeague,
		MinutesPlayed: league.DefaultMinutesPlayed,
	}
}

type Generator struct {
	settings Settings
	clock    clockwork.Clock
	rand     *rand.Rand
}

// New returns a generator. A nil clock uses the real clock and a nil source
// is seeded from the clock.
func New(settings Settings, clock clockwork.Clock, src rand.Source) *Generator {
	defaults := DefaultSettings()
	if settings.Weeks <= 0 {
		settings.Weeks = defaults.Weeks
	}
	if len(settings.TimeSlots) == 0 {
		settings.TimeSlots = defaults.TimeSlots
	}
	if settings.League == "" {
		settings.League = defaults.League
	}
	if settings.MinutesPlayed <= 0 {
		settings.MinutesPlayed = defaults.MinutesPlayed
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if src == nil {
		src = rand.NewSource(clock.Now().UnixNano())
	}
	return &Generator{
		settings: settings,
		clock:    clock,
		rand:     rand.New(src),
	}
}

func (g *Generator) Settings() Settings {
	return g.settings
}

// Generate returns settings.Weeks rounds of fixtures for teams. Callers must
// reject fewer than two teams; with fewer the result is empty. Repeated calls
// produce independent schedules.
func (g *Generator) Generate(teams []league.Team) []league.Match {
	// nil marks the bye slot of an odd-sized list.
	list := make([]*league.Team, 0, len(teams)+1)
	for i := range teams {
		list = append(list, &teams[i])
	}
	if len(list)%2 != 0 {
		list = append(list, nil)
	}
	n := len(list)

	dates := timehelper.WeeklyDates(g.clock.Now(), g.settings.Weekday, g.settings.Weeks)

	var fixtures []league.Match
	for week := 0; week < g.settings.Weeks; week++ {
		slots := g.shuffledSlots()
		slot := 0

		for i := 0; i < n/2; i++ {
			home, away := list[i], list[n-1-i]
			if week%2 == 1 {
				home, away = away, home
			}
			if home == nil || away == nil {
				continue
			}

			fixtures = append(fixtures, league.Match{
				MatchDay:      week + 1,
				HomeTeamID:    home.ID,
				AwayTeamID:    away.ID,
				MinutesPlayed: g.settings.MinutesPlayed,
				League:        g.settings.League,
				Date:          dates[week],
				Time:          slots[slot%len(slots)],
				Status:        league.StatusUpcoming,
			})
			slot++
		}

		if n > 2 {
			last := list[n-1]
			copy(list[2:], list[1:n-1])
			list[1] = last
		}
	}
	return fixtures
}

func (g *Generator) shuffledSlots() []string {
	slots := append([]string(nil), g.settings.TimeSlots...)
	g.rand.Shuffle(len(slots), func(i, j int) {
		slots[i], slots[j] = slots[j], slots[i]
	})
	return slots
}
