package matches

import (
	"context"
	"errors"

	"golang.org/x/xerrors"

	"github.com/nvbf/league-manager/pkg/fixtures"
	"github.com/nvbf/league-manager/pkg/league"
	"github.com/nvbf/league-manager/pkg/logging"
)

type Store interface {
	league.TeamStore
	league.MatchStore
	league.EventStore
}

type MatchesService struct {
	store     Store
	generator *fixtures.Generator
}

func NewMatchesService(store Store, generator *fixtures.Generator) *MatchesService {
	return &MatchesService{
		store:     store,
		generator: generator,
	}
}

// ListMatches returns matches newest match day first, optionally filtered by status.
func (s *MatchesService) ListMatches(ctx context.Context, status league.MatchStatus) ([]league.Match, error) {
	switch status {
	case "", league.StatusUpcoming, league.StatusPlayed:
	default:
		return nil, xerrors.Errorf("%w: unknown status %q", league.ErrInvalidInput, status)
	}

	matches, err := s.store.ListMatches(ctx)
	if err != nil || status == "" {
		return matches, err
	}

	out := []league.Match{}
	for _, m := range matches {
		if m.Status == status {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *MatchesService) GetMatch(ctx context.Context, id string) (league.Match, error) {
	return s.store.GetMatch(ctx, id)
}

// CreateMatch stores a match, computing points when it has been played, and
// records the optional events against it.
func (s *MatchesService) CreateMatch(ctx context.Context, request CreateMatchRequest) (league.Match, error) {
	match := request.Match
	match.ID = ""

	if match.HomeTeamID != "" && match.HomeTeamID == match.AwayTeamID {
		return league.Match{}, league.ErrSameTeam
	}
	if err := league.Validate(ctx, request); err != nil {
		return league.Match{}, err
	}
	if err := s.requireTeams(ctx, match.HomeTeamID, match.AwayTeamID); err != nil {
		return league.Match{}, err
	}
	if match.MinutesPlayed == 0 {
		match.MinutesPlayed = league.DefaultMinutesPlayed
	}
	match.ApplyScores()

	stored, err := s.store.AddMatch(ctx, match)
	if err != nil {
		return league.Match{}, err
	}

	if request.Events != nil && request.Events.Len() > 0 {
		if err := s.store.RecordMatchEvents(ctx, stored.ID, stored.MatchDay, *request.Events); err != nil {
			return stored, err
		}
	}

	logging.Default().Info("match created",
		"match", stored.ID,
		"matchDay", stored.MatchDay,
		"status", stored.Status,
	)
	return stored, nil
}

// UpdateMatch applies the patch. Points are recomputed whenever a score
// changes.
func (s *MatchesService) UpdateMatch(ctx context.Context, id string, request UpdateMatchRequest) (league.Match, error) {
	if err := league.Validate(ctx, request); err != nil {
		return league.Match{}, err
	}

	current, err := s.store.GetMatch(ctx, id)
	if err != nil {
		return league.Match{}, err
	}

	update := request.MatchUpdate
	next := current
	update.Apply(&next)
	if next.HomeTeamID == next.AwayTeamID {
		return league.Match{}, league.ErrSameTeam
	}
	if update.HomeTeamID != nil || update.AwayTeamID != nil {
		if err := s.requireTeams(ctx, next.HomeTeamID, next.AwayTeamID); err != nil {
			return league.Match{}, err
		}
	}

	if update.ScoresChanged() {
		home, away := league.MatchPoints(next.HomeScore, next.AwayScore)
		update.HomePoints, update.AwayPoints = &home, &away
		next.HomePoints, next.AwayPoints = home, away
	}

	if err := s.store.UpdateMatch(ctx, id, update); err != nil {
		return league.Match{}, err
	}

	if request.Events != nil {
		if err := s.store.DeleteMatchEvents(ctx, id); err != nil {
			return league.Match{}, err
		}
		if err := s.store.RecordMatchEvents(ctx, id, next.MatchDay, *request.Events); err != nil {
			return league.Match{}, err
		}
	}
	return next, nil
}

func (s *MatchesService) DeleteMatch(ctx context.Context, id string) error {
	if err := s.store.DeleteMatch(ctx, id); err != nil {
		return err
	}
	logging.Default().Info("match deleted", "match", id)
	return nil
}

// GenerateFixtures schedules a round robin for every team and stores the
// fixtures one at a time. Existing fixtures are not checked for duplicates.
func (s *MatchesService) GenerateFixtures(ctx context.Context) ([]league.Match, error) {
	teams, err := s.store.ListTeams(ctx)
	if err != nil {
		return nil, err
	}
	if len(teams) < 2 {
		return nil, league.ErrNotEnoughTeams
	}

	schedule := s.generator.Generate(teams)
	stored := make([]league.Match, 0, len(schedule))
	for _, f := range schedule {
		m, err := s.store.AddMatch(ctx, f)
		if err != nil {
			return stored, xerrors.Errorf("failed to store fixture %d of %d: %w", len(stored)+1, len(schedule), err)
		}
		stored = append(stored, m)
	}

	logging.Default().Info("fixtures generated", "teams", len(teams), "fixtures", len(stored))
	return stored, nil
}

func (s *MatchesService) requireTeams(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		_, err := s.store.GetTeam(ctx, id)
		if errors.Is(err, league.ErrNotFound) {
			return xerrors.Errorf("%w: unknown team %s", league.ErrInvalidInput, id)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
