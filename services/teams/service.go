package teams

import (
	"context"
	"errors"
	"io"

	"golang.org/x/xerrors"

	"github.com/nvbf/league-manager/pkg/aggregate"
	"github.com/nvbf/league-manager/pkg/league"
	"github.com/nvbf/league-manager/pkg/logging"
)

const (
	logoFolder  = "team-logos"
	photoFolder = "player-photos"
)

var ErrUploadsDisabled = errors.New("image uploads are not configured")

type Store interface {
	league.TeamStore
	league.PlayerStore
}

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, folder, contentType string, r io.Reader) (string, error)
}

type TeamsService struct {
	store    Store
	uploader Uploader
}

// NewTeamsService returns the service. uploader may be nil when no bucket is
// configured.
func NewTeamsService(store Store, uploader Uploader) *TeamsService {
	return &TeamsService{
		store:    store,
		uploader: uploader,
	}
}

func (s *TeamsService) ListTeams(ctx context.Context) ([]league.Team, error) {
	return s.store.ListTeams(ctx)
}

func (s *TeamsService) GetTeam(ctx context.Context, id string) (*TeamDetail, error) {
	team, err := s.store.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	players, err := s.store.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	engine := aggregate.New(&league.Snapshot{Teams: []league.Team{team}, Players: players})
	detail := &TeamDetail{
		Team:    team,
		Players: engine.TeamPlayers(id),
	}
	if manager, ok := engine.TeamManager(id); ok {
		detail.Manager = &manager
	}
	if detail.Players == nil {
		detail.Players = []league.Player{}
	}
	return detail, nil
}

func (s *TeamsService) CreateTeam(ctx context.Context, team league.Team) (league.Team, error) {
	team.ID = ""
	if err := league.Validate(ctx, team); err != nil {
		return league.Team{}, err
	}
	id, err := s.store.AddTeam(ctx, team)
	if err != nil {
		return league.Team{}, err
	}
	team.ID = id
	logging.Default().Info("team created", "team", id, "name", team.Name)
	return team, nil
}

func (s *TeamsService) UpdateTeam(ctx context.Context, id string, update league.TeamUpdate) error {
	if err := league.Validate(ctx, update); err != nil {
		return err
	}
	return s.store.UpdateTeam(ctx, id, update)
}

func (s *TeamsService) DeleteTeam(ctx context.Context, id string) error {
	if err := s.store.DeleteTeam(ctx, id); err != nil {
		return err
	}
	logging.Default().Info("team deleted", "team", id)
	return nil
}

// ListPlayers returns every player, or the players of teamID when set.
func (s *TeamsService) ListPlayers(ctx context.Context, teamID string) ([]league.Player, error) {
	players, err := s.store.ListPlayers(ctx)
	if err != nil || teamID == "" {
		return players, err
	}

	out := []league.Player{}
	for _, p := range players {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *TeamsService) GetPlayer(ctx context.Context, id string) (league.Player, error) {
	return s.store.GetPlayer(ctx, id)
}

// CreatePlayer adds a player to an existing team. A new manager replaces the
// team's previous one.
func (s *TeamsService) CreatePlayer(ctx context.Context, player league.Player) (league.Player, error) {
	player.ID = ""
	if err := league.Validate(ctx, player); err != nil {
		return league.Player{}, err
	}
	if err := s.requireTeam(ctx, player.TeamID); err != nil {
		return league.Player{}, err
	}

	manager := player.IsManager
	player.IsManager = false
	id, err := s.store.AddPlayer(ctx, player)
	if err != nil {
		return league.Player{}, err
	}
	player.ID = id

	if manager {
		if err := s.store.SetManager(ctx, player.TeamID, id); err != nil {
			return league.Player{}, err
		}
		player.IsManager = true
	}
	return player, nil
}

func (s *TeamsService) UpdatePlayer(ctx context.Context, id string, update league.PlayerUpdate) error {
	if err := league.Validate(ctx, update); err != nil {
		return err
	}
	if update.TeamID != nil {
		if err := s.requireTeam(ctx, *update.TeamID); err != nil {
			return err
		}
	}

	manager := update.IsManager
	update.IsManager = nil
	if manager != nil && !*manager {
		update.IsManager = manager
	}
	if err := s.store.UpdatePlayer(ctx, id, update); err != nil {
		return err
	}

	if manager != nil && *manager {
		player, err := s.store.GetPlayer(ctx, id)
		if err != nil {
			return err
		}
		return s.store.SetManager(ctx, player.TeamID, id)
	}
	return nil
}

func (s *TeamsService) DeletePlayer(ctx context.Context, id string) error {
	return s.store.DeletePlayer(ctx, id)
}

func (s *TeamsService) SetManager(ctx context.Context, teamID, playerID string) error {
	if err := s.store.SetManager(ctx, teamID, playerID); err != nil {
		return err
	}
	logging.Default().Info("team manager changed", "team", teamID, "player", playerID)
	return nil
}

func (s *TeamsService) UploadTeamLogo(ctx context.Context, teamID, contentType string, r io.Reader) (string, error) {
	if _, err := s.store.GetTeam(ctx, teamID); err != nil {
		return "", err
	}
	url, err := s.upload(ctx, logoFolder, contentType, r)
	if err != nil {
		return "", err
	}
	return url, s.store.UpdateTeam(ctx, teamID, league.TeamUpdate{Logo: &url})
}

func (s *TeamsService) UploadPlayerPhoto(ctx context.Context, playerID, contentType string, r io.Reader) (string, error) {
	if _, err := s.store.GetPlayer(ctx, playerID); err != nil {
		return "", err
	}
	url, err := s.upload(ctx, photoFolder, contentType, r)
	if err != nil {
		return "", err
	}
	return url, s.store.UpdatePlayer(ctx, playerID, league.PlayerUpdate{Photo: &url})
}

func (s *TeamsService) upload(ctx context.Context, folder, contentType string, r io.Reader) (string, error) {
	if s.uploader == nil {
		return "", ErrUploadsDisabled
	}
	return s.uploader.Upload(ctx, folder, contentType, r)
}

func (s *TeamsService) requireTeam(ctx context.Context, teamID string) error {
	_, err := s.store.GetTeam(ctx, teamID)
	if errors.Is(err, league.ErrNotFound) {
		return xerrors.Errorf("%w: unknown team %s", league.ErrInvalidInput, teamID)
	}
	return err
}
