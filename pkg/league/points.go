package league

const (
	PointsWin  = 3
	PointsDraw = 1
	PointsLoss = 0
)

// MatchPoints returns the league points earned by each side for a final score.
func MatchPoints(homeScore, awayScore int) (home, away int) {
	switch {
	case homeScore > awayScore:
		return PointsWin, PointsLoss
	case homeScore < awayScore:
		return PointsLoss, PointsWin
	default:
		return PointsDraw, PointsDraw
	}
}

// ApplyScores sets HomePoints and AwayPoints. Matches that have not been
// played carry no points.
func (m *Match) ApplyScores() {
	if !m.IsPlayed() {
		m.HomePoints, m.AwayPoints = 0, 0
		return
	}
	m.HomePoints, m.AwayPoints = MatchPoints(m.HomeScore, m.AwayScore)
}
