package stats

import (
	"context"

	"golang.org/x/xerrors"

	"github.com/nvbf/league-manager/pkg/aggregate"
	"github.com/nvbf/league-manager/pkg/league"
	"github.com/nvbf/league-manager/pkg/logging"
)

// StatsService answers read-only aggregate queries. Every call works on a
// freshly loaded snapshot.
type StatsService struct {
	loader league.SnapshotLoader
}

func NewStatsService(loader league.SnapshotLoader) *StatsService {
	return &StatsService{loader: loader}
}

func (s *StatsService) engine(ctx context.Context) (*aggregate.Engine, error) {
	snapshot, err := s.loader.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.New(snapshot, aggregate.WithGapHook(logGap)), nil
}

func logGap(g aggregate.Gap) {
	logging.Default().Warn("skipped unresolved reference",
		"kind", g.Kind,
		"match", g.MatchID,
		"team", g.TeamID,
		"player", g.PlayerID,
	)
}

func (s *StatsService) Standings(ctx context.Context) ([]aggregate.StandingsRow, error) {
	e, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}
	return e.Standings(), nil
}

// TopScorers returns up to limit scorers. Limits outside 1..10 mean 10.
func (s *StatsService) TopScorers(ctx context.Context, limit int) ([]aggregate.LeaderboardEntry, error) {
	e, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}
	scorers := e.TopScorers()
	if limit > 0 && limit < len(scorers) {
		scorers = scorers[:limit]
	}
	return scorers, nil
}

// Leaderboard ranks players on category, goals when empty.
func (s *StatsService) Leaderboard(ctx context.Context, category aggregate.Category, query string) ([]aggregate.LeaderboardEntry, error) {
	if category == "" {
		category = aggregate.CategoryGoals
	}
	if !category.Valid() {
		return nil, xerrors.Errorf("%w: unknown category %q", league.ErrInvalidInput, category)
	}

	e, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}
	entries := e.Leaderboard(category, query)
	if entries == nil {
		entries = []aggregate.LeaderboardEntry{}
	}
	return entries, nil
}

func (s *StatsService) PlayerProfile(ctx context.Context, playerID string) (*PlayerProfile, error) {
	e, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}
	player, ok := e.Player(playerID)
	if !ok {
		return nil, league.ErrNotFound
	}

	records := e.PlayerRecords(playerID)
	aggregate.SortRecordsByDate(records)
	if records == nil {
		records = []aggregate.PlayerRecord{}
	}

	profile := &PlayerProfile{
		Player:  player,
		Stats:   e.Stats(playerID),
		Records: records,
	}
	if team, ok := e.Team(player.TeamID); ok {
		profile.Team = &team
	}
	return profile, nil
}

func (s *StatsService) Dashboard(ctx context.Context) (*Dashboard, error) {
	e, err := s.engine(ctx)
	if err != nil {
		return nil, err
	}

	scorers := e.TopScorers()
	if len(scorers) > dashboardScorers {
		scorers = scorers[:dashboardScorers]
	}

	recent := e.RecentActivity(dashboardEvents)
	activity := make([]Activity, 0, len(recent))
	for _, ev := range recent {
		a := Activity{PlayerEvent: ev}
		if p, ok := e.Player(ev.PlayerID); ok {
			a.PlayerName = p.Name
		}
		if t, ok := e.Team(ev.TeamID); ok {
			a.TeamName = t.Name
		}
		activity = append(activity, a)
	}

	return &Dashboard{
		Summary:        e.Summary(),
		TopScorers:     scorers,
		RecentActivity: activity,
	}, nil
}
