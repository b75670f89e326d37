package teams

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xorcare/pointer"

	"github.com/nvbf/league-manager/pkg/league"
	"github.com/nvbf/league-manager/repos/memstore"
)

type fakeUploader struct {
	folder      string
	contentType string
	body        []byte
}

func (f *fakeUploader) Upload(_ context.Context, folder, contentType string, r io.Reader) (string, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.folder, f.contentType, f.body = folder, contentType, body
	return "https://cdn.test/" + folder + "/x", nil
}

func newService(t *testing.T) (*TeamsService, *memstore.Store, *fakeUploader) {
	t.Helper()
	store := memstore.New(nil)
	uploader := &fakeUploader{}
	return NewTeamsService(store, uploader), store, uploader
}

func TestCreateTeamValidates(t *testing.T) {
	s, _, _ := newService(t)

	_, err := s.CreateTeam(context.Background(), league.Team{})
	assert.ErrorIs(t, err, league.ErrInvalidInput)

	team, err := s.CreateTeam(context.Background(), league.Team{ID: "ignored", Name: "Lions"})
	require.NoError(t, err)
	assert.NotEqual(t, "ignored", team.ID)
}

func TestGetTeamIncludesSquad(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newService(t)

	lions, err := s.CreateTeam(ctx, league.Team{Name: "Lions"})
	require.NoError(t, err)
	tigers, err := s.CreateTeam(ctx, league.Team{Name: "Tigers"})
	require.NoError(t, err)

	ana, err := s.CreatePlayer(ctx, league.Player{Name: "Ana", TeamID: lions.ID, IsManager: true})
	require.NoError(t, err)
	_, err = s.CreatePlayer(ctx, league.Player{Name: "Bo", TeamID: lions.ID})
	require.NoError(t, err)
	_, err = s.CreatePlayer(ctx, league.Player{Name: "Cy", TeamID: tigers.ID})
	require.NoError(t, err)

	detail, err := s.GetTeam(ctx, lions.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Players, 2)
	require.NotNil(t, detail.Manager)
	assert.Equal(t, ana.ID, detail.Manager.ID)

	detail, err = s.GetTeam(ctx, tigers.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.Manager)

	_, err = s.GetTeam(ctx, "missing")
	assert.ErrorIs(t, err, league.ErrNotFound)
}

func TestCreatePlayerRequiresTeam(t *testing.T) {
	s, _, _ := newService(t)

	_, err := s.CreatePlayer(context.Background(), league.Player{Name: "Ana", TeamID: "missing"})
	assert.ErrorIs(t, err, league.ErrInvalidInput)
}

func TestManagerIsUnique(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newService(t)

	team, _ := s.CreateTeam(ctx, league.Team{Name: "Lions"})
	first, err := s.CreatePlayer(ctx, league.Player{Name: "Ana", TeamID: team.ID, IsManager: true})
	require.NoError(t, err)
	second, err := s.CreatePlayer(ctx, league.Player{Name: "Bo", TeamID: team.ID, IsManager: true})
	require.NoError(t, err)

	players, err := s.ListPlayers(ctx, team.ID)
	require.NoError(t, err)
	managers := 0
	for _, p := range players {
		if p.IsManager {
			managers++
			assert.Equal(t, second.ID, p.ID)
		}
	}
	assert.Equal(t, 1, managers)

	require.NoError(t, s.UpdatePlayer(ctx, first.ID, league.PlayerUpdate{IsManager: pointer.Bool(true)}))
	require.NoError(t, s.SetManager(ctx, team.ID, first.ID))

	p, err := s.GetPlayer(ctx, second.ID)
	require.NoError(t, err)
	assert.False(t, p.IsManager)
}

func TestDeleteTeamWithPlayers(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newService(t)

	team, _ := s.CreateTeam(ctx, league.Team{Name: "Lions"})
	player, err := s.CreatePlayer(ctx, league.Player{Name: "Ana", TeamID: team.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteTeam(ctx, team.ID), league.ErrTeamHasPlayers)

	require.NoError(t, s.DeletePlayer(ctx, player.ID))
	require.NoError(t, s.DeleteTeam(ctx, team.ID))
}

func TestUploadTeamLogo(t *testing.T) {
	ctx := context.Background()
	s, store, uploader := newService(t)

	team, _ := s.CreateTeam(ctx, league.Team{Name: "Lions"})
	url, err := s.UploadTeamLogo(ctx, team.ID, "image/png", bytes.NewReader([]byte("png")))
	require.NoError(t, err)

	assert.Equal(t, logoFolder, uploader.folder)
	assert.Equal(t, "image/png", uploader.contentType)

	stored, err := store.GetTeam(ctx, team.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Logo)
	assert.Equal(t, url, *stored.Logo)

	_, err = s.UploadTeamLogo(ctx, "missing", "image/png", bytes.NewReader(nil))
	assert.ErrorIs(t, err, league.ErrNotFound)
}

func TestUploadsDisabled(t *testing.T) {
	ctx := context.Background()
	store := memstore.New(nil)
	s := NewTeamsService(store, nil)

	team, _ := s.CreateTeam(ctx, league.Team{Name: "Lions"})
	player, err := s.CreatePlayer(ctx, league.Player{Name: "Ana", TeamID: team.ID})
	require.NoError(t, err)

	_, err = s.UploadPlayerPhoto(ctx, player.ID, "image/png", bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrUploadsDisabled)
}
