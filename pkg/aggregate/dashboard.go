package aggregate

import (
	"sort"

	"github.com/nvbf/league-manager/pkg/league"
)

type Summary struct {
	Teams           int     `json:"teams"`
	Players         int     `json:"players"`
	PlayedMatches   int     `json:"playedMatches"`
	UpcomingMatches int     `json:"upcomingMatches"`
	TotalGoals      int     `json:"totalGoals"`
	TotalAssists    int     `json:"totalAssists"`
	AverageGoals    float64 `json:"averageGoals"`
}

func (e *Engine) Summary() Summary {
	s := Summary{
		Teams:        len(e.snapshot.Teams),
		Players:      len(e.snapshot.Players),
		TotalGoals:   len(e.snapshot.Goals),
		TotalAssists: len(e.snapshot.Assists),
	}
	for _, m := range e.snapshot.Matches {
		switch m.Status {
		case league.StatusPlayed:
			s.PlayedMatches++
		case league.StatusUpcoming:
			s.UpcomingMatches++
		}
	}
	if s.PlayedMatches > 0 {
		s.AverageGoals = float64(s.TotalGoals) / float64(s.PlayedMatches)
	}
	return s
}

// RecentActivity returns the n newest events across all four kinds. Each
// event carries its Kind.
func (e *Engine) RecentActivity(n int) []league.PlayerEvent {
	var all []league.PlayerEvent
	for _, kind := range league.EventKinds {
		for _, ev := range e.snapshot.Events(kind) {
			ev.Kind = kind
			all = append(all, ev)
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})
	if n >= 0 && len(all) > n {
		all = all[:n]
	}
	return all
}
