package stats

import (
	"github.com/nvbf/league-manager/pkg/aggregate"
	"github.com/nvbf/league-manager/pkg/league"
)

const (
	dashboardScorers = 5
	dashboardEvents  = 5
)

type PlayerProfile struct {
	Player  league.Player            `json:"player"`
	Team    *league.Team             `json:"team"`
	Stats   aggregate.PlayerStats    `json:"stats"`
	Records []aggregate.PlayerRecord `json:"records"`
}

// Activity is an event resolved against its player and team.
type Activity struct {
	league.PlayerEvent
	PlayerName string `json:"playerName"`
	TeamName   string `json:"teamName"`
}

type Dashboard struct {
	Summary        aggregate.Summary            `json:"summary"`
	TopScorers     []aggregate.LeaderboardEntry `json:"topScorers"`
	RecentActivity []Activity                   `json:"recentActivity"`
}
