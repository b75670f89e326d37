package aggregate

import (
	"sort"

	"github.com/nvbf/league-manager/pkg/league"
)

type StandingsRow struct {
	TeamID         string  `json:"teamId"`
	Name           string  `json:"name"`
	Logo           *string `json:"logo"`
	Color          string  `json:"color"`
	Played         int     `json:"played"`
	Won            int     `json:"won"`
	Drawn          int     `json:"drawn"`
	Lost           int     `json:"lost"`
	GoalsFor       int     `json:"goalsFor"`
	GoalsAgainst   int     `json:"goalsAgainst"`
	GoalDifference int     `json:"goalDifference"`
	Points         int     `json:"points"`
}

// Standings builds the league table from played matches. Rows are ordered by
// points, then goal difference, then goals scored, all descending.
func (e *Engine) Standings() []StandingsRow {
	rows := make([]*StandingsRow, 0, len(e.snapshot.Teams))
	byTeam := make(map[string]*StandingsRow, len(e.snapshot.Teams))
	for _, t := range e.snapshot.Teams {
		row := &StandingsRow{
			TeamID: t.ID,
			Name:   t.Name,
			Logo:   t.Logo,
			Color:  t.PrimaryColor,
		}
		rows = append(rows, row)
		byTeam[t.ID] = row
	}

	for _, m := range e.snapshot.Matches {
		if !m.IsPlayed() {
			continue
		}
		home, away := byTeam[m.HomeTeamID], byTeam[m.AwayTeamID]
		if home == nil || away == nil {
			e.gap(Gap{Kind: GapTeamForMatch, MatchID: m.ID, TeamID: missingTeam(home, m.HomeTeamID, m.AwayTeamID)})
			continue
		}

		home.Played++
		away.Played++
		home.GoalsFor += m.HomeScore
		home.GoalsAgainst += m.AwayScore
		away.GoalsFor += m.AwayScore
		away.GoalsAgainst += m.HomeScore

		switch {
		case m.HomeScore > m.AwayScore:
			home.Won++
			home.Points += league.PointsWin
			away.Lost++
		case m.HomeScore < m.AwayScore:
			away.Won++
			away.Points += league.PointsWin
			home.Lost++
		default:
			home.Drawn++
			away.Drawn++
			home.Points += league.PointsDraw
			away.Points += league.PointsDraw
		}
	}

	out := make([]StandingsRow, len(rows))
	for i, row := range rows {
		row.GoalDifference = row.GoalsFor - row.GoalsAgainst
		out[i] = *row
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].GoalDifference != out[j].GoalDifference {
			return out[i].GoalDifference > out[j].GoalDifference
		}
		return out[i].GoalsFor > out[j].GoalsFor
	})
	return out
}

func missingTeam(home *StandingsRow, homeID, awayID string) string {
	if home == nil {
		return homeID
	}
	return awayID
}
