package league

import "errors"

var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrSameTeam          = errors.New("a team cannot play against itself")
	ErrTeamHasPlayers    = errors.New("cannot delete team with active players")
	ErrNotEnoughTeams    = errors.New("at least two teams are required")
	ErrPlayerNotInTeam   = errors.New("player does not belong to team")
	ErrInvalidInvite     = errors.New("invalid or expired invite code")
	ErrAlreadyInvited    = errors.New("there is already a pending invite for this email")
	ErrAlreadyRegistered = errors.New("a user with this email is already registered")
)
