// Package docstore implements league.Store on top of Cloud Firestore.
package docstore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/jonboulle/clockwork"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/xerrors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nvbf/league-manager/pkg/league"
)

const (
	teamsCollection     = "teams"
	playersCollection   = "players"
	matchesCollection   = "matches"
	invitesCollection   = "user_invites"
	usersCollection     = "users"
	userRolesCollection = "user_roles"
)

var _ league.Store = (*Store)(nil)

type Store struct {
	client *firestore.Client
	clock  clockwork.Clock
}

// New wraps an open Firestore client. A nil clock uses the real clock.
func New(client *firestore.Client, clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{client: client, clock: clock}
}

func (s *Store) col(name string) *firestore.CollectionRef {
	return s.client.Collection(name)
}

// LoadSnapshot reads every collection concurrently.
func (s *Store) LoadSnapshot(ctx context.Context) (*league.Snapshot, error) {
	snapshot := &league.Snapshot{}
	events := make([][]league.PlayerEvent, len(league.EventKinds))

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		teams, err := s.ListTeams(ctx)
		snapshot.Teams = teams
		return err
	})
	p.Go(func(ctx context.Context) error {
		players, err := s.ListPlayers(ctx)
		snapshot.Players = players
		return err
	})
	p.Go(func(ctx context.Context) error {
		matches, err := s.ListMatches(ctx)
		snapshot.Matches = matches
		return err
	})
	for i, kind := range league.EventKinds {
		p.Go(func(ctx context.Context) error {
			list, err := s.listEvents(ctx, s.col(kind.Collection()).Query, kind)
			events[i] = list
			return err
		})
	}
	if err := p.Wait(); err != nil {
		return nil, xerrors.Errorf("failed to load snapshot: %w", err)
	}

	for i, kind := range league.EventKinds {
		snapshot.SetEvents(kind, events[i])
	}
	return snapshot, nil
}

func (s *Store) listEvents(ctx context.Context, q firestore.Query, kind league.EventKind) ([]league.PlayerEvent, error) {
	return getAll(q.Documents(ctx), func(e *league.PlayerEvent, id string) {
		e.ID = id
		e.Kind = kind
	})
}

// getAll decodes every document of iter into T, letting setID copy the
// document id onto the decoded value.
func getAll[T any](iter *firestore.DocumentIterator, setID func(*T, string)) ([]T, error) {
	defer iter.Stop()

	var out []T
	for {
		doc, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, xerrors.Errorf("failed to read documents: %w", err)
		}

		item, err := decode(doc, setID)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func decode[T any](doc *firestore.DocumentSnapshot, setID func(*T, string)) (T, error) {
	var item T
	if err := doc.DataTo(&item); err != nil {
		return item, xerrors.Errorf(
			"consistency error. Converting %s to %T failed: %w",
			doc.Ref.Path,
			item,
			err,
		)
	}
	if setID != nil {
		setID(&item, doc.Ref.ID)
	}
	return item, nil
}

func getDoc[T any](ctx context.Context, ref *firestore.DocumentRef, setID func(*T, string)) (T, error) {
	doc, err := ref.Get(ctx)
	if err != nil {
		var zero T
		return zero, wrapErr(err, "failed to get "+ref.Path)
	}
	return decode(doc, setID)
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// wrapErr maps Firestore not-found errors onto league.ErrNotFound.
func wrapErr(err error, msg string) error {
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return league.ErrNotFound
	}
	return xerrors.Errorf("%s: %w", msg, err)
}
