package docstore

import (
	"context"

	"cloud.google.com/go/firestore"
	"golang.org/x/xerrors"

	"github.com/nvbf/league-manager/pkg/league"
)

func setMatchID(m *league.Match, id string) { m.ID = id }

// ListMatches returns matches ordered by match day, newest first.
func (s *Store) ListMatches(ctx context.Context) ([]league.Match, error) {
	q := s.col(matchesCollection).OrderBy("matchDay", firestore.Desc)
	return getAll(q.Documents(ctx), setMatchID)
}

func (s *Store) GetMatch(ctx context.Context, id string) (league.Match, error) {
	return getDoc(ctx, s.col(matchesCollection).Doc(id), setMatchID)
}

func (s *Store) AddMatch(ctx context.Context, match league.Match) (league.Match, error) {
	if match.MatchDay == 0 {
		next, err := s.nextMatchDay(ctx)
		if err != nil {
			return league.Match{}, err
		}
		match.MatchDay = next
	}

	ref, _, err := s.col(matchesCollection).Add(ctx, match)
	if err != nil {
		return league.Match{}, xerrors.Errorf("failed to add match: %w", err)
	}
	return getDoc(ctx, ref, setMatchID)
}

func (s *Store) nextMatchDay(ctx context.Context) (int, error) {
	q := s.col(matchesCollection).OrderBy("matchDay", firestore.Desc).Limit(1)
	latest, err := getAll(q.Documents(ctx), setMatchID)
	if err != nil {
		return 0, err
	}
	if len(latest) == 0 {
		return 1, nil
	}
	return latest[0].MatchDay + 1, nil
}

func (s *Store) UpdateMatch(ctx context.Context, id string, update league.MatchUpdate) error {
	return s.update(ctx, s.col(matchesCollection).Doc(id), matchUpdates(update))
}

// DeleteMatch removes the match and its events in one transaction.
func (s *Store) DeleteMatch(ctx context.Context, id string) error {
	ref := s.col(matchesCollection).Doc(id)
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return wrapErr(err, "failed to get match")
		}
		events, err := s.matchEventRefs(tx, id)
		if err != nil {
			return err
		}

		if err := tx.Delete(ref); err != nil {
			return err
		}
		for _, e := range events {
			if err := tx.Delete(e); err != nil {
				return err
			}
		}
		return nil
	})
}

// RecordMatchEvents writes every event of the batch atomically.
func (s *Store) RecordMatchEvents(ctx context.Context, matchID string, matchDay int, batch league.EventBatch) error {
	if batch.Len() == 0 {
		return nil
	}

	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, kind := range league.EventKinds {
			for _, in := range batch.ByKind(kind) {
				event := league.PlayerEvent{
					PlayerID: in.PlayerID,
					MatchID:  matchID,
					MatchDay: matchDay,
					TeamID:   in.TeamID,
				}
				if err := tx.Create(s.col(kind.Collection()).NewDoc(), event); err != nil {
					return xerrors.Errorf("failed to record %s: %w", kind, err)
				}
			}
		}
		return nil
	})
}

func (s *Store) DeleteMatchEvents(ctx context.Context, matchID string) error {
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		events, err := s.matchEventRefs(tx, matchID)
		if err != nil {
			return err
		}
		for _, e := range events {
			if err := tx.Delete(e); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) matchEventRefs(tx *firestore.Transaction, matchID string) ([]*firestore.DocumentRef, error) {
	var refs []*firestore.DocumentRef
	for _, kind := range league.EventKinds {
		q := s.col(kind.Collection()).Where("matchId", "==", matchID)
		docs, err := tx.Documents(q).GetAll()
		if err != nil {
			return nil, xerrors.Errorf("failed to query %s: %w", kind.Collection(), err)
		}
		for _, d := range docs {
			refs = append(refs, d.Ref)
		}
	}
	return refs, nil
}

func matchUpdates(u league.MatchUpdate) []firestore.Update {
	var updates []firestore.Update

	ints := []struct {
		path  string
		value *int
	}{
		{"matchDay", u.MatchDay},
		{"homeScore", u.HomeScore},
		{"awayScore", u.AwayScore},
		{"homeYellows", u.HomeYellows},
		{"awayYellows", u.AwayYellows},
		{"homeReds", u.HomeReds},
		{"awayReds", u.AwayReds},
		{"homePoints", u.HomePoints},
		{"awayPoints", u.AwayPoints},
		{"minutesPlayed", u.MinutesPlayed},
	}
	for _, f := range ints {
		if f.value != nil {
			updates = append(updates, firestore.Update{Path: f.path, Value: *f.value})
		}
	}

	strs := []struct {
		path  string
		value *string
	}{
		{"homeTeamId", u.HomeTeamID},
		{"awayTeamId", u.AwayTeamID},
		{"league", u.League},
		{"date", u.Date},
		{"time", u.Time},
	}
	for _, f := range strs {
		if f.value != nil {
			updates = append(updates, firestore.Update{Path: f.path, Value: *f.value})
		}
	}

	if u.Status != nil {
		updates = append(updates, firestore.Update{Path: "status", Value: string(*u.Status)})
	}
	return updates
}
