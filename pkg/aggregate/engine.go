// Package aggregate derives standings, leaderboards and player statistics
// from a league snapshot. Every call recomputes from the snapshot; nothing is
// cached between engines.
package aggregate

import (
	"github.com/nvbf/league-manager/pkg/league"
)

// UnknownOpponent is reported when a record's opponent team cannot be resolved.
const UnknownOpponent = "Unknown Opponent"

// GapKind identifies which lookup failed.
type GapKind string

const (
	GapMatchForEvent GapKind = "match_for_event"
	GapTeamForMatch  GapKind = "team_for_match"
	GapOpponentTeam  GapKind = "opponent_team"
)

// Gap describes a reference the engine could not resolve and skipped.
type Gap struct {
	Kind     GapKind
	MatchID  string
	TeamID   string
	PlayerID string
}

type Option func(*Engine)

// WithGapHook registers fn to be called for every skipped reference.
func WithGapHook(fn func(Gap)) Option {
	return func(e *Engine) {
		e.onGap = fn
	}
}

type Engine struct {
	snapshot *league.Snapshot
	onGap    func(Gap)

	teams   map[string]league.Team
	players map[string]league.Player
	matches map[string]league.Match
	// byPlayer indexes events per kind, then per player, in snapshot order.
	byPlayer map[league.EventKind]map[string][]league.PlayerEvent
}

func New(snapshot *league.Snapshot, opts ...Option) *Engine {
	if snapshot == nil {
		snapshot = &league.Snapshot{}
	}
	e := &Engine{
		snapshot: snapshot,
		teams:    make(map[string]league.Team, len(snapshot.Teams)),
		players:  make(map[string]league.Player, len(snapshot.Players)),
		matches:  make(map[string]league.Match, len(snapshot.Matches)),
		byPlayer: make(map[league.EventKind]map[string][]league.PlayerEvent, len(league.EventKinds)),
	}
	for _, opt := range opts {
		opt(e)
	}

	for _, t := range snapshot.Teams {
		e.teams[t.ID] = t
	}
	for _, p := range snapshot.Players {
		e.players[p.ID] = p
	}
	for _, m := range snapshot.Matches {
		e.matches[m.ID] = m
	}
	for _, kind := range league.EventKinds {
		idx := make(map[string][]league.PlayerEvent)
		for _, ev := range snapshot.Events(kind) {
			idx[ev.PlayerID] = append(idx[ev.PlayerID], ev)
		}
		e.byPlayer[kind] = idx
	}
	return e
}

func (e *Engine) gap(g Gap) {
	if e.onGap != nil {
		e.onGap(g)
	}
}

// Team looks up a team by id.
func (e *Engine) Team(id string) (league.Team, bool) {
	t, ok := e.teams[id]
	return t, ok
}

// Player looks up a player by id.
func (e *Engine) Player(id string) (league.Player, bool) {
	p, ok := e.players[id]
	return p, ok
}

// TeamPlayers returns the players of a team in snapshot order.
func (e *Engine) TeamPlayers(teamID string) []league.Player {
	var out []league.Player
	for _, p := range e.snapshot.Players {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out
}

// TeamManager returns the first player of the team flagged as manager.
func (e *Engine) TeamManager(teamID string) (league.Player, bool) {
	for _, p := range e.snapshot.Players {
		if p.TeamID == teamID && p.IsManager {
			return p, true
		}
	}
	return league.Player{}, false
}
