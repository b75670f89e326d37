package admin

import "github.com/nvbf/league-manager/pkg/league"

type CreateInviteRequest struct {
	Email string      `json:"email"`
	Role  league.Role `json:"role" validate:"omitempty,oneof=admin user"`
}

// InviteResult reports whether the invite mail went out. The invite is
// stored either way.
type InviteResult struct {
	Invite    league.Invite `json:"invite"`
	EmailSent bool          `json:"emailSent"`
}

type ActivateRequest struct {
	InviteCode  string `json:"inviteCode" validate:"required"`
	DisplayName string `json:"displayName" validate:"max=100"`
}

type SetRoleRequest struct {
	Role league.Role `json:"role" validate:"required,oneof=admin user"`
}

// Profile is the caller's account. Activated is false until an invite has
// been claimed.
type Profile struct {
	UID         string      `json:"uid"`
	Email       string      `json:"email"`
	DisplayName string      `json:"displayName"`
	PhotoURL    *string     `json:"photoUrl"`
	Role        league.Role `json:"role"`
	Activated   bool        `json:"activated"`
}
