package aggregate

import (
	"sort"
	"strings"
	"time"

	"github.com/nvbf/league-manager/pkg/league"
)

// TopScorersLimit is the size of the top scorers table.
const TopScorersLimit = 10

type PlayerStats struct {
	Goals       int `json:"goals"`
	Assists     int `json:"assists"`
	YellowCards int `json:"yellowCards"`
	RedCards    int `json:"redCards"`
	// Matches counts distinct matches in which the player has at least one event.
	Matches int `json:"matches"`
}

// TotalCards is yellow plus red cards.
func (s PlayerStats) TotalCards() int {
	return s.YellowCards + s.RedCards
}

type LeaderboardEntry struct {
	Player league.Player `json:"player"`
	Stats  PlayerStats   `json:"stats"`
}

type PlayerRecord struct {
	ID            string    `json:"id"`
	PlayerID      string    `json:"playerId"`
	MatchID       string    `json:"matchId"`
	MatchDay      int       `json:"matchDay"`
	MatchDate     time.Time `json:"matchDate"`
	Date          string    `json:"date"`
	Opponent      string    `json:"opponent"`
	Goals         int       `json:"goals"`
	Assists       int       `json:"assists"`
	YellowCards   int       `json:"yellowCards"`
	RedCards      int       `json:"redCards"`
	MinutesPlayed int       `json:"minutesPlayed"`
}

type Category string

const (
	CategoryGoals   Category = "goals"
	CategoryAssists Category = "assists"
	CategoryCards   Category = "cards"
)

// Value extracts the figure a leaderboard of this category ranks on.
func (c Category) Value(s PlayerStats) int {
	switch c {
	case CategoryAssists:
		return s.Assists
	case CategoryCards:
		return s.TotalCards()
	default:
		return s.Goals
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategoryGoals || c == CategoryAssists || c == CategoryCards
}

// Stats counts a player's events across the four collections.
func (e *Engine) Stats(playerID string) PlayerStats {
	return PlayerStats{
		Goals:       len(e.byPlayer[league.KindGoal][playerID]),
		Assists:     len(e.byPlayer[league.KindAssist][playerID]),
		YellowCards: len(e.byPlayer[league.KindYellowCard][playerID]),
		RedCards:    len(e.byPlayer[league.KindRedCard][playerID]),
		Matches:     len(e.playerMatchIDs(playerID)),
	}
}

// playerMatchIDs returns the distinct match ids touched by the player, in
// first-seen order over goals, assists, yellow cards then red cards.
func (e *Engine) playerMatchIDs(playerID string) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, kind := range league.EventKinds {
		for _, ev := range e.byPlayer[kind][playerID] {
			if seen[ev.MatchID] {
				continue
			}
			seen[ev.MatchID] = true
			ids = append(ids, ev.MatchID)
		}
	}
	return ids
}

func (e *Engine) entries() []LeaderboardEntry {
	out := make([]LeaderboardEntry, 0, len(e.snapshot.Players))
	for _, p := range e.snapshot.Players {
		out = append(out, LeaderboardEntry{Player: p, Stats: e.Stats(p.ID)})
	}
	return out
}

// TopScorers ranks every player by goals and returns the first ten. Equal
// goal counts keep snapshot order.
func (e *Engine) TopScorers() []LeaderboardEntry {
	all := e.entries()
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Stats.Goals > all[j].Stats.Goals
	})
	if len(all) > TopScorersLimit {
		all = all[:TopScorersLimit]
	}
	return all
}

// Leaderboard ranks players on category. Without a query, players with a zero
// value are left out; with one, only players whose name contains it
// (case-insensitive) are kept, zero values included.
func (e *Engine) Leaderboard(category Category, query string) []LeaderboardEntry {
	query = strings.ToLower(strings.TrimSpace(query))

	var out []LeaderboardEntry
	for _, entry := range e.entries() {
		if query != "" {
			if !strings.Contains(strings.ToLower(entry.Player.Name), query) {
				continue
			}
		} else if category.Value(entry.Stats) == 0 {
			continue
		}
		out = append(out, entry)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return category.Value(out[i].Stats) > category.Value(out[j].Stats)
	})
	return out
}

// PlayerRecords rebuilds one record per match the player has events in.
// Matches missing from the snapshot are dropped.
func (e *Engine) PlayerRecords(playerID string) []PlayerRecord {
	var teamID string
	if p, ok := e.players[playerID]; ok {
		teamID = p.TeamID
	}

	var records []PlayerRecord
	for _, matchID := range e.playerMatchIDs(playerID) {
		match, ok := e.matches[matchID]
		if !ok {
			e.gap(Gap{Kind: GapMatchForEvent, MatchID: matchID, PlayerID: playerID})
			continue
		}

		opponentID := match.HomeTeamID
		if match.HomeTeamID == teamID {
			opponentID = match.AwayTeamID
		}
		opponent := UnknownOpponent
		if t, ok := e.teams[opponentID]; ok {
			opponent = t.Name
		} else {
			e.gap(Gap{Kind: GapOpponentTeam, MatchID: matchID, TeamID: opponentID, PlayerID: playerID})
		}

		minutes := match.MinutesPlayed
		if minutes == 0 {
			minutes = league.DefaultMinutesPlayed
		}

		records = append(records, PlayerRecord{
			ID:            playerID + "_" + matchID,
			PlayerID:      playerID,
			MatchID:       matchID,
			MatchDay:      match.MatchDay,
			MatchDate:     match.CreatedAt,
			Date:          match.Date,
			Opponent:      opponent,
			Goals:         countInMatch(e.byPlayer[league.KindGoal][playerID], matchID),
			Assists:       countInMatch(e.byPlayer[league.KindAssist][playerID], matchID),
			YellowCards:   countInMatch(e.byPlayer[league.KindYellowCard][playerID], matchID),
			RedCards:      countInMatch(e.byPlayer[league.KindRedCard][playerID], matchID),
			MinutesPlayed: minutes,
		})
	}
	return records
}

func countInMatch(events []league.PlayerEvent, matchID string) int {
	n := 0
	for _, ev := range events {
		if ev.MatchID == matchID {
			n++
		}
	}
	return n
}

// SortRecordsByDate orders records newest first, by match creation time.
func SortRecordsByDate(records []PlayerRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].MatchDate.After(records[j].MatchDate)
	})
}
