package docstore

import (
	"context"

	"cloud.google.com/go/firestore"
	"golang.org/x/xerrors"

	"github.com/nvbf/league-manager/pkg/league"
)

func setTeamID(t *league.Team, id string) { t.ID = id }
func setPlayerID(p *league.Player, id string) { p.ID = id }

func (s *Store) ListTeams(ctx context.Context) ([]league.Team, error) {
	return getAll(s.col(teamsCollection).Documents(ctx), setTeamID)
}

func (s *Store) GetTeam(ctx context.Context, id string) (league.Team, error) {
	return getDoc(ctx, s.col(teamsCollection).Doc(id), setTeamID)
}

func (s *Store) AddTeam(ctx context.Context, team league.Team) (string, error) {
	ref, _, err := s.col(teamsCollection).Add(ctx, team)
	if err != nil {
		return "", xerrors.Errorf("failed to add team: %w", err)
	}
	return ref.ID, nil
}

func (s *Store) UpdateTeam(ctx context.Context, id string, update league.TeamUpdate) error {
	return s.update(ctx, s.col(teamsCollection).Doc(id), teamUpdates(update))
}

// DeleteTeam refuses while any player still references the team.
func (s *Store) DeleteTeam(ctx context.Context, id string) error {
	ref := s.col(teamsCollection).Doc(id)
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return wrapErr(err, "failed to get team")
		}

		q := s.col(playersCollection).Where("team_id", "==", id).Limit(1)
		players, err := tx.Documents(q).GetAll()
		if err != nil {
			return xerrors.Errorf("failed to query team players: %w", err)
		}
		if len(players) > 0 {
			return league.ErrTeamHasPlayers
		}
		return tx.Delete(ref)
	})
}

func (s *Store) ListPlayers(ctx context.Context) ([]league.Player, error) {
	return getAll(s.col(playersCollection).Documents(ctx), setPlayerID)
}

func (s *Store) GetPlayer(ctx context.Context, id string) (league.Player, error) {
	return getDoc(ctx, s.col(playersCollection).Doc(id), setPlayerID)
}

func (s *Store) AddPlayer(ctx context.Context, player league.Player) (string, error) {
	ref, _, err := s.col(playersCollection).Add(ctx, player)
	if err != nil {
		return "", xerrors.Errorf("failed to add player: %w", err)
	}
	return ref.ID, nil
}

func (s *Store) UpdatePlayer(ctx context.Context, id string, update league.PlayerUpdate) error {
	return s.update(ctx, s.col(playersCollection).Doc(id), playerUpdates(update))
}

func (s *Store) DeletePlayer(ctx context.Context, id string) error {
	ref := s.col(playersCollection).Doc(id)
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return wrapErr(err, "failed to get player")
		}
		return tx.Delete(ref)
	})
}

// SetManager moves the manager flag to playerID inside one transaction.
func (s *Store) SetManager(ctx context.Context, teamID, playerID string) error {
	teamRef := s.col(teamsCollection).Doc(teamID)
	playerRef := s.col(playersCollection).Doc(playerID)

	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(teamRef); err != nil {
			return wrapErr(err, "failed to get team")
		}
		doc, err := tx.Get(playerRef)
		if err != nil {
			return wrapErr(err, "failed to get player")
		}
		player, err := decode(doc, setPlayerID)
		if err != nil {
			return err
		}
		if player.TeamID != teamID {
			return league.ErrPlayerNotInTeam
		}

		q := s.col(playersCollection).Where("team_id", "==", teamID)
		docs, err := tx.Documents(q).GetAll()
		if err != nil {
			return xerrors.Errorf("failed to query team players: %w", err)
		}
		for _, d := range docs {
			err := tx.Update(d.Ref, []firestore.Update{
				{Path: "is_manager", Value: d.Ref.ID == playerID},
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// update applies updates, or only checks existence when there is nothing to write.
func (s *Store) update(ctx context.Context, ref *firestore.DocumentRef, updates []firestore.Update) error {
	if len(updates) == 0 {
		_, err := ref.Get(ctx)
		return wrapErr(err, "failed to get "+ref.Path)
	}
	_, err := ref.Update(ctx, updates)
	return wrapErr(err, "failed to update "+ref.Path)
}

func teamUpdates(u league.TeamUpdate) []firestore.Update {
	var updates []firestore.Update

	if u.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *u.Name})
	}
	if u.Logo != nil {
		updates = append(updates, firestore.Update{Path: "logo", Value: *u.Logo})
	}
	if u.PrimaryColor != nil {
		updates = append(updates, firestore.Update{Path: "primary_color", Value: *u.PrimaryColor})
	}
	if u.Founded != nil {
		updates = append(updates, firestore.Update{Path: "founded", Value: *u.Founded})
	}
	if u.Stadium != nil {
		updates = append(updates, firestore.Update{Path: "stadium", Value: *u.Stadium})
	}
	return updates
}

func playerUpdates(u league.PlayerUpdate) []firestore.Update {
	var updates []firestore.Update

	if u.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *u.Name})
	}
	if u.Position != nil {
		updates = append(updates, firestore.Update{Path: "position", Value: *u.Position})
	}
	if u.Number != nil {
		updates = append(updates, firestore.Update{Path: "number", Value: *u.Number})
	}
	if u.TeamID != nil {
		updates = append(updates, firestore.Update{Path: "team_id", Value: *u.TeamID})
	}
	if u.IsManager != nil {
		updates = append(updates, firestore.Update{Path: "is_manager", Value: *u.IsManager})
	}
	if u.Photo != nil {
		updates = append(updates, firestore.Update{Path: "photo", Value: *u.Photo})
	}
	return updates
}
