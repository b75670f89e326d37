// Package memstore is an in-process implementation of league.Store used for
// local development and tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/samborkent/uuidv7"

	"github.com/nvbf/league-manager/pkg/league"
)

var _ league.Store = (*Store)(nil)

type Store struct {
	mu    sync.RWMutex
	clock clockwork.Clock

	teams   *collection[league.Team]
	players *collection[league.Player]
	matches *collection[league.Match]
	events  map[league.EventKind]*collection[league.PlayerEvent]
	invites *collection[league.Invite]
	users   *collection[league.User]
	roles   map[string]league.Role
}

// New returns an empty store. A nil clock uses the real clock.
func New(clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	s := &Store{
		clock:   clock,
		teams:   newCollection[league.Team](),
		players: newCollection[league.Player](),
		matches: newCollection[league.Match](),
		events:  make(map[league.EventKind]*collection[league.PlayerEvent], len(league.EventKinds)),
		invites: newCollection[league.Invite](),
		users:   newCollection[league.User](),
		roles:   make(map[string]league.Role),
	}
	for _, kind := range league.EventKinds {
		s.events[kind] = newCollection[league.PlayerEvent]()
	}
	return s
}

// collection keeps documents in insertion order.
type collection[T any] struct {
	ids  []string
	docs map[string]T
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{docs: make(map[string]T)}
}

func (c *collection[T]) get(id string) (T, bool) {
	v, ok := c.docs[id]
	return v, ok
}

func (c *collection[T]) put(id string, v T) {
	if _, ok := c.docs[id]; !ok {
		c.ids = append(c.ids, id)
	}
	c.docs[id] = v
}

func (c *collection[T]) remove(id string) {
	if _, ok := c.docs[id]; !ok {
		return
	}
	delete(c.docs, id)
	for i, existing := range c.ids {
		if existing == id {
			c.ids = append(c.ids[:i], c.ids[i+1:]...)
			break
		}
	}
}

func (c *collection[T]) list() []T {
	out := make([]T, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.docs[id])
	}
	return out
}

func newID() string {
	return uuidv7.New().String()
}

func (s *Store) LoadSnapshot(_ context.Context) (*league.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := &league.Snapshot{
		Teams:   s.teams.list(),
		Players: s.players.list(),
		Matches: s.sortedMatches(),
	}
	for _, kind := range league.EventKinds {
		snapshot.SetEvents(kind, s.events[kind].list())
	}
	return snapshot, nil
}

func (s *Store) ListTeams(_ context.Context) ([]league.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.teams.list(), nil
}

func (s *Store) GetTeam(_ context.Context, id string) (league.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	team, ok := s.teams.get(id)
	if !ok {
		return league.Team{}, league.ErrNotFound
	}
	return team, nil
}

func (s *Store) AddTeam(_ context.Context, team league.Team) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	team.ID = newID()
	s.teams.put(team.ID, team)
	return team.ID, nil
}

func (s *Store) UpdateTeam(_ context.Context, id string, update league.TeamUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.teams.get(id)
	if !ok {
		return league.ErrNotFound
	}
	update.Apply(&team)
	s.teams.put(id, team)
	return nil
}

func (s *Store) DeleteTeam(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.teams.get(id); !ok {
		return league.ErrNotFound
	}
	for _, p := range s.players.docs {
		if p.TeamID == id {
			return league.ErrTeamHasPlayers
		}
	}
	s.teams.remove(id)
	return nil
}

func (s *Store) ListPlayers(_ context.Context) ([]league.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.players.list(), nil
}

func (s *Store) GetPlayer(_ context.Context, id string) (league.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, ok := s.players.get(id)
	if !ok {
		return league.Player{}, league.ErrNotFound
	}
	return player, nil
}

func (s *Store) AddPlayer(_ context.Context, player league.Player) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player.ID = newID()
	s.players.put(player.ID, player)
	return player.ID, nil
}

func (s *Store) UpdatePlayer(_ context.Context, id string, update league.PlayerUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players.get(id)
	if !ok {
		return league.ErrNotFound
	}
	update.Apply(&player)
	s.players.put(id, player)
	return nil
}

func (s *Store) DeletePlayer(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players.get(id); !ok {
		return league.ErrNotFound
	}
	s.players.remove(id)
	return nil
}

func (s *Store) SetManager(_ context.Context, teamID, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.teams.get(teamID); !ok {
		return league.ErrNotFound
	}
	target, ok := s.players.get(playerID)
	if !ok {
		return league.ErrNotFound
	}
	if target.TeamID != teamID {
		return league.ErrPlayerNotInTeam
	}

	for _, id := range s.players.ids {
		p := s.players.docs[id]
		if p.TeamID != teamID {
			continue
		}
		p.IsManager = id == playerID
		s.players.docs[id] = p
	}
	return nil
}

func (s *Store) ListMatches(_ context.Context) ([]league.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedMatches(), nil
}

// sortedMatches orders by match day, newest first.
func (s *Store) sortedMatches() []league.Match {
	matches := s.matches.list()
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchDay > matches[j].MatchDay
	})
	return matches
}

func (s *Store) GetMatch(_ context.Context, id string) (league.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	match, ok := s.matches.get(id)
	if !ok {
		return league.Match{}, league.ErrNotFound
	}
	return match, nil
}

func (s *Store) AddMatch(_ context.Context, match league.Match) (league.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if match.MatchDay == 0 {
		highest := 0
		for _, m := range s.matches.docs {
			highest = max(highest, m.MatchDay)
		}
		match.MatchDay = highest + 1
	}
	match.ID = newID()
	match.CreatedAt = s.clock.Now()
	s.matches.put(match.ID, match)
	return match, nil
}

func (s *Store) UpdateMatch(_ context.Context, id string, update league.MatchUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	match, ok := s.matches.get(id)
	if !ok {
		return league.ErrNotFound
	}
	update.Apply(&match)
	s.matches.put(id, match)
	return nil
}

func (s *Store) DeleteMatch(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches.get(id); !ok {
		return league.ErrNotFound
	}
	s.matches.remove(id)
	s.deleteEvents(id)
	return nil
}

func (s *Store) RecordMatchEvents(_ context.Context, matchID string, matchDay int, batch league.EventBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	for _, kind := range league.EventKinds {
		for _, in := range batch.ByKind(kind) {
			event := league.PlayerEvent{
				ID:        newID(),
				Kind:      kind,
				PlayerID:  in.PlayerID,
				MatchID:   matchID,
				MatchDay:  matchDay,
				TeamID:    in.TeamID,
				Timestamp: now,
			}
			s.events[kind].put(event.ID, event)
		}
	}
	return nil
}

func (s *Store) DeleteMatchEvents(_ context.Context, matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleteEvents(matchID)
	return nil
}

func (s *Store) deleteEvents(matchID string) {
	for _, kind := range league.EventKinds {
		c := s.events[kind]
		for _, event := range c.list() {
			if event.MatchID == matchID {
				c.remove(event.ID)
			}
		}
	}
}

func (s *Store) CreateInvite(_ context.Context, invite league.Invite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	invite.CreatedAt = s.clock.Now()
	s.invites.put(invite.Code, invite)
	return nil
}

func (s *Store) GetInvite(_ context.Context, code string) (league.Invite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invite, ok := s.invites.get(code)
	if !ok {
		return league.Invite{}, league.ErrNotFound
	}
	return invite, nil
}

func (s *Store) ClaimInvite(_ context.Context, code, userID string) (league.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invite, ok := s.invites.get(code)
	if !ok || invite.Used {
		return league.Invite{}, league.ErrInvalidInvite
	}
	now := s.clock.Now()
	invite.Used = true
	invite.UsedBy = &userID
	invite.UsedAt = &now
	s.invites.put(code, invite)
	return invite, nil
}

func (s *Store) DeleteInvite(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.invites.get(code); !ok {
		return league.ErrNotFound
	}
	s.invites.remove(code)
	return nil
}

func (s *Store) PendingInvites(_ context.Context) ([]league.Invite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []league.Invite
	for _, invite := range s.invites.list() {
		if !invite.Used {
			out = append(out, invite)
		}
	}
	return out, nil
}

func (s *Store) FindPendingInviteByEmail(_ context.Context, email string) (league.Invite, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, invite := range s.invites.list() {
		if !invite.Used && strings.EqualFold(invite.Email, email) {
			return invite, true, nil
		}
	}
	return league.Invite{}, false, nil
}

func (s *Store) CreateUser(_ context.Context, user league.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.clock.Now()
	}
	s.users.put(user.ID, user)
	return nil
}

func (s *Store) GetUser(_ context.Context, id string) (league.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users.get(id)
	if !ok {
		return league.User{}, league.ErrNotFound
	}
	return user, nil
}

func (s *Store) IsUserRegistered(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users.docs {
		if strings.EqualFold(user.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) GetUserRole(_ context.Context, userID string) (league.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if role, ok := s.roles[userID]; ok {
		return role, nil
	}
	return league.RoleUser, nil
}

func (s *Store) SetUserRole(_ context.Context, userID string, role league.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.roles[userID] = role
	return nil
}

func (s *Store) ListUsersWithRoles(_ context.Context) ([]league.UserWithRole, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := s.users.list()
	out := make([]league.UserWithRole, 0, len(users))
	for _, u := range users {
		role, ok := s.roles[u.ID]
		if !ok {
			role = league.RoleUser
		}
		out = append(out, league.UserWithRole{
			UserID:      u.ID,
			Email:       u.Email,
			DisplayName: u.DisplayName,
			Role:        role,
		})
	}
	return out, nil
}

func (s *Store) SetUserPhoto(_ context.Context, userID, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users.get(userID)
	if !ok {
		return league.ErrNotFound
	}
	user.PhotoURL = &url
	s.users.put(userID, user)
	return nil
}
