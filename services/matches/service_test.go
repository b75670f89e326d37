package matches

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xorcare/pointer"

	"github.com/nvbf/league-manager/pkg/fixtures"
	"github.com/nvbf/league-manager/pkg/league"
	"github.com/nvbf/league-manager/repos/memstore"
)

func newService(t *testing.T, teamNames ...string) (*MatchesService, *memstore.Store, []string) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC))
	store := memstore.New(clock)
	generator := fixtures.New(fixtures.DefaultSettings(), clock, rand.NewSource(1))

	var ids []string
	for _, name := range teamNames {
		id, err := store.AddTeam(context.Background(), league.Team{Name: name})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return NewMatchesService(store, generator), store, ids
}

func played(home, away string, homeScore, awayScore int) CreateMatchRequest {
	return CreateMatchRequest{Match: league.Match{
		HomeTeamID: home,
		AwayTeamID: away,
		HomeScore:  homeScore,
		AwayScore:  awayScore,
		Status:     league.StatusPlayed,
	}}
}

func TestCreateMatchComputesPoints(t *testing.T) {
	ctx := context.Background()
	s, store, teams := newService(t, "A", "B")

	request := played(teams[0], teams[1], 2, 1)
	request.Events = &league.EventBatch{
		Goals:   []league.EventInput{{PlayerID: "p1", TeamID: teams[0]}, {PlayerID: "p1", TeamID: teams[0]}, {PlayerID: "p2", TeamID: teams[1]}},
		Assists: []league.EventInput{{PlayerID: "p3", TeamID: teams[0]}},
	}

	match, err := s.CreateMatch(ctx, request)
	require.NoError(t, err)
	assert.Equal(t, 1, match.MatchDay)
	assert.Equal(t, 3, match.HomePoints)
	assert.Equal(t, 0, match.AwayPoints)
	assert.Equal(t, league.DefaultMinutesPlayed, match.MinutesPlayed)

	snapshot, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snapshot.Goals, 3)
	assert.Len(t, snapshot.Assists, 1)
	assert.Equal(t, match.ID, snapshot.Goals[0].MatchID)
}

func TestCreateUpcomingMatchHasNoPoints(t *testing.T) {
	s, _, teams := newService(t, "A", "B")

	request := played(teams[0], teams[1], 4, 0)
	request.Status = league.StatusUpcoming

	match, err := s.CreateMatch(context.Background(), request)
	require.NoError(t, err)
	assert.Zero(t, match.HomePoints)
	assert.Zero(t, match.AwayPoints)
}

func TestCreateMatchRejects(t *testing.T) {
	ctx := context.Background()
	s, _, teams := newService(t, "A", "B")

	_, err := s.CreateMatch(ctx, played(teams[0], teams[0], 1, 0))
	assert.ErrorIs(t, err, league.ErrSameTeam)

	_, err = s.CreateMatch(ctx, played(teams[0], "missing", 1, 0))
	assert.ErrorIs(t, err, league.ErrInvalidInput)

	_, err = s.CreateMatch(ctx, played(teams[0], "", 1, 0))
	assert.ErrorIs(t, err, league.ErrInvalidInput)

	bad := played(teams[0], teams[1], 1, 0)
	bad.Status = "postponed"
	_, err = s.CreateMatch(ctx, bad)
	assert.ErrorIs(t, err, league.ErrInvalidInput)
}

func TestUpdateMatchRecomputesPoints(t *testing.T) {
	ctx := context.Background()
	s, store, teams := newService(t, "A", "B")

	request := played(teams[0], teams[1], 0, 0)
	request.Status = league.StatusUpcoming
	match, err := s.CreateMatch(ctx, request)
	require.NoError(t, err)

	status := league.StatusPlayed
	updated, err := s.UpdateMatch(ctx, match.ID, UpdateMatchRequest{MatchUpdate: league.MatchUpdate{
		HomeScore: pointer.Int(2),
		AwayScore: pointer.Int(2),
		Status:    &status,
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.HomePoints)
	assert.Equal(t, 1, updated.AwayPoints)

	_, err = s.UpdateMatch(ctx, match.ID, UpdateMatchRequest{MatchUpdate: league.MatchUpdate{
		AwayScore: pointer.Int(3),
	}})
	require.NoError(t, err)

	stored, err := store.GetMatch(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.HomeScore)
	assert.Equal(t, 3, stored.AwayScore)
	assert.Equal(t, 0, stored.HomePoints)
	assert.Equal(t, 3, stored.AwayPoints)

	_, err = s.UpdateMatch(ctx, match.ID, UpdateMatchRequest{MatchUpdate: league.MatchUpdate{
		Time: pointer.String("18:00"),
	}})
	require.NoError(t, err)
	stored, _ = store.GetMatch(ctx, match.ID)
	assert.Equal(t, 3, stored.AwayPoints)
}

func TestUpdateMatchReplacesEvents(t *testing.T) {
	ctx := context.Background()
	s, store, teams := newService(t, "A", "B")

	request := played(teams[0], teams[1], 1, 0)
	request.Events = &league.EventBatch{Goals: []league.EventInput{{PlayerID: "p1", TeamID: teams[0]}}}
	match, err := s.CreateMatch(ctx, request)
	require.NoError(t, err)

	_, err = s.UpdateMatch(ctx, match.ID, UpdateMatchRequest{
		MatchUpdate: league.MatchUpdate{AwayScore: pointer.Int(1)},
		Events: &league.EventBatch{
			Goals: []league.EventInput{{PlayerID: "p1", TeamID: teams[0]}, {PlayerID: "p9", TeamID: teams[1]}},
			Reds:  []league.EventInput{{PlayerID: "p9", TeamID: teams[1]}},
		},
	})
	require.NoError(t, err)

	snapshot, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snapshot.Goals, 2)
	assert.Len(t, snapshot.RedCards, 1)
}

func TestUpdateMatchRejectsSameTeam(t *testing.T) {
	ctx := context.Background()
	s, _, teams := newService(t, "A", "B")

	match, err := s.CreateMatch(ctx, played(teams[0], teams[1], 1, 0))
	require.NoError(t, err)

	_, err = s.UpdateMatch(ctx, match.ID, UpdateMatchRequest{MatchUpdate: league.MatchUpdate{
		AwayTeamID: pointer.String(teams[0]),
	}})
	assert.ErrorIs(t, err, league.ErrSameTeam)

	_, err = s.UpdateMatch(ctx, "missing", UpdateMatchRequest{})
	assert.ErrorIs(t, err, league.ErrNotFound)
}

func TestDeleteMatchRemovesEvents(t *testing.T) {
	ctx := context.Background()
	s, store, teams := newService(t, "A", "B")

	request := played(teams[0], teams[1], 1, 0)
	request.Events = &league.EventBatch{Yellows: []league.EventInput{{PlayerID: "p1", TeamID: teams[0]}}}
	match, err := s.CreateMatch(ctx, request)
	require.NoError(t, err)

	require.NoError(t, s.DeleteMatch(ctx, match.ID))

	snapshot, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Matches)
	assert.Empty(t, snapshot.YellowCards)
	assert.ErrorIs(t, s.DeleteMatch(ctx, match.ID), league.ErrNotFound)
}

func TestListMatchesByStatus(t *testing.T) {
	ctx := context.Background()
	s, _, teams := newService(t, "A", "B")

	_, err := s.CreateMatch(ctx, played(teams[0], teams[1], 1, 0))
	require.NoError(t, err)
	upcoming := played(teams[1], teams[0], 0, 0)
	upcoming.Status = league.StatusUpcoming
	_, err = s.CreateMatch(ctx, upcoming)
	require.NoError(t, err)

	all, err := s.ListMatches(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 2, all[0].MatchDay)

	playedOnly, err := s.ListMatches(ctx, league.StatusPlayed)
	require.NoError(t, err)
	require.Len(t, playedOnly, 1)
	assert.Equal(t, 1, playedOnly[0].MatchDay)

	_, err = s.ListMatches(ctx, "cancelled")
	assert.ErrorIs(t, err, league.ErrInvalidInput)
}

func TestGenerateFixtures(t *testing.T) {
	ctx := context.Background()
	s, store, _ := newService(t, "A", "B", "C", "D")

	generated, err := s.GenerateFixtures(ctx)
	require.NoError(t, err)
	require.Len(t, generated, 10)
	for _, m := range generated {
		assert.NotEmpty(t, m.ID)
		assert.Equal(t, league.StatusUpcoming, m.Status)
		assert.GreaterOrEqual(t, m.MatchDay, 1)
		assert.LessOrEqual(t, m.MatchDay, 5)
	}
	assert.Equal(t, "2026-10-20", generated[0].Date)

	_, err = s.GenerateFixtures(ctx)
	require.NoError(t, err)

	stored, err := store.ListMatches(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 20)
}

func TestGenerateFixturesNeedsTwoTeams(t *testing.T) {
	s, _, _ := newService(t, "Lonely")

	_, err := s.GenerateFixtures(context.Background())
	assert.ErrorIs(t, err, league.ErrNotEnoughTeams)
}
