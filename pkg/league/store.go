package league

import "context"

// SnapshotLoader fetches every collection the aggregation engine needs.
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
}

type TeamStore interface {
	ListTeams(ctx context.Context) ([]Team, error)
	GetTeam(ctx context.Context, id string) (Team, error)
	AddTeam(ctx context.Context, team Team) (string, error)
	UpdateTeam(ctx context.Context, id string, update TeamUpdate) error
	// DeleteTeam fails with ErrTeamHasPlayers while any player references the team.
	DeleteTeam(ctx context.Context, id string) error
}

type PlayerStore interface {
	ListPlayers(ctx context.Context) ([]Player, error)
	GetPlayer(ctx context.Context, id string) (Player, error)
	AddPlayer(ctx context.Context, player Player) (string, error)
	UpdatePlayer(ctx context.Context, id string, update PlayerUpdate) error
	DeletePlayer(ctx context.Context, id string) error
	// SetManager clears the manager flag on every player of the team and sets
	// it on playerID as one atomic step.
	SetManager(ctx context.Context, teamID, playerID string) error
}

type MatchStore interface {
	ListMatches(ctx context.Context) ([]Match, error)
	GetMatch(ctx context.Context, id string) (Match, error)
	// AddMatch stores the match. A zero MatchDay is replaced by the highest
	// stored match day plus one. The stored match is returned.
	AddMatch(ctx context.Context, match Match) (Match, error)
	UpdateMatch(ctx context.Context, id string, update MatchUpdate) error
	// DeleteMatch removes the match and every event recorded against it.
	DeleteMatch(ctx context.Context, id string) error
}

type EventStore interface {
	RecordMatchEvents(ctx context.Context, matchID string, matchDay int, batch EventBatch) error
	DeleteMatchEvents(ctx context.Context, matchID string) error
}

type InviteStore interface {
	CreateInvite(ctx context.Context, invite Invite) error
	GetInvite(ctx context.Context, code string) (Invite, error)
	// ClaimInvite marks an unused invite as used by userID. Missing or used
	// invites yield ErrInvalidInvite.
	ClaimInvite(ctx context.Context, code, userID string) (Invite, error)
	DeleteInvite(ctx context.Context, code string) error
	PendingInvites(ctx context.Context) ([]Invite, error)
	FindPendingInviteByEmail(ctx context.Context, email string) (Invite, bool, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	IsUserRegistered(ctx context.Context, email string) (bool, error)
	// GetUserRole returns RoleUser when no role is stored.
	GetUserRole(ctx context.Context, userID string) (Role, error)
	SetUserRole(ctx context.Context, userID string, role Role) error
	ListUsersWithRoles(ctx context.Context) ([]UserWithRole, error)
	SetUserPhoto(ctx context.Context, userID, url string) error
}

// Store is the complete data-loading layer.
type Store interface {
	SnapshotLoader
	TeamStore
	PlayerStore
	MatchStore
	EventStore
	InviteStore
	UserStore
}
