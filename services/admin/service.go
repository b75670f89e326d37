package admin

import (
	"context"
	"errors"
	"io"
	"strings"

	"golang.org/x/xerrors"

	access "github.com/nvbf/league-manager/pkg/accessCode"
	"github.com/nvbf/league-manager/pkg/auth"
	"github.com/nvbf/league-manager/pkg/league"
	"github.com/nvbf/league-manager/pkg/logging"
)

const userPhotoFolder = "user-photos"

var (
	ErrUploadsDisabled = errors.New("image uploads are not configured")
	ErrSelfDemotion    = xerrors.Errorf("%w: admins cannot remove their own admin role", league.ErrInvalidInput)
)

type Store interface {
	league.InviteStore
	league.UserStore
}

// Mailer delivers invite e-mails.
type Mailer interface {
	SendInvite(ctx context.Context, email, code string, role league.Role) error
}

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, folder, contentType string, r io.Reader) (string, error)
}

type AdminService struct {
	store    Store
	mailer   Mailer
	uploader Uploader
}

// NewAdminService returns the service. uploader may be nil.
func NewAdminService(store Store, mailer Mailer, uploader Uploader) *AdminService {
	return &AdminService{
		store:    store,
		mailer:   mailer,
		uploader: uploader,
	}
}

// CreateInvite stores an invite for email and mails the code. A mail failure
// is reported in the result, not as an error.
func (s *AdminService) CreateInvite(ctx context.Context, adminID string, request CreateInviteRequest) (*InviteResult, error) {
	email := normalizeEmail(request.Email)
	if !league.ValidateEmail(email) {
		return nil, xerrors.Errorf("%w: invalid email address", league.ErrInvalidInput)
	}
	if err := league.Validate(ctx, request); err != nil {
		return nil, err
	}
	role := request.Role
	if role == "" {
		role = league.RoleUser
	}

	if _, found, err := s.store.FindPendingInviteByEmail(ctx, email); err != nil {
		return nil, err
	} else if found {
		return nil, league.ErrAlreadyInvited
	}
	registered, err := s.store.IsUserRegistered(ctx, email)
	if err != nil {
		return nil, err
	}
	if registered {
		return nil, league.ErrAlreadyRegistered
	}

	invite := league.Invite{
		Code:             access.GenerateCode(),
		Email:            email,
		Role:             role,
		CreatedByAdminID: adminID,
	}
	if err := s.store.CreateInvite(ctx, invite); err != nil {
		return nil, err
	}
	logging.Default().Info("invite created", "email", email, "role", role, "admin", adminID)

	return &InviteResult{
		Invite:    invite,
		EmailSent: s.send(ctx, invite),
	}, nil
}

func (s *AdminService) ResendInvite(ctx context.Context, code string) (*InviteResult, error) {
	invite, err := s.store.GetInvite(ctx, access.Normalize(code))
	if err != nil {
		return nil, err
	}
	if invite.Used {
		return nil, league.ErrInvalidInvite
	}
	return &InviteResult{Invite: invite, EmailSent: s.send(ctx, invite)}, nil
}

func (s *AdminService) send(ctx context.Context, invite league.Invite) bool {
	if s.mailer == nil {
		return false
	}
	if err := s.mailer.SendInvite(ctx, invite.Email, invite.Code, invite.Role); err != nil {
		logging.Default().Warn("failed to send invite mail", "email", invite.Email, "error", err)
		return false
	}
	return true
}

func (s *AdminService) PendingInvites(ctx context.Context) ([]league.Invite, error) {
	invites, err := s.store.PendingInvites(ctx)
	if invites == nil && err == nil {
		invites = []league.Invite{}
	}
	return invites, err
}

func (s *AdminService) DeleteInvite(ctx context.Context, code string) error {
	return s.store.DeleteInvite(ctx, access.Normalize(code))
}

func (s *AdminService) ListUsers(ctx context.Context) ([]league.UserWithRole, error) {
	return s.store.ListUsersWithRoles(ctx)
}

func (s *AdminService) SetUserRole(ctx context.Context, actor auth.Session, userID string, request SetRoleRequest) error {
	if err := league.Validate(ctx, request); err != nil {
		return err
	}
	if actor.UID == userID && request.Role != league.RoleAdmin {
		return ErrSelfDemotion
	}
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return err
	}
	if err := s.store.SetUserRole(ctx, userID, request.Role); err != nil {
		return err
	}
	logging.Default().Info("user role changed", "user", userID, "role", request.Role, "admin", actor.UID)
	return nil
}

// Activate claims an invite for the caller, creates the user profile and
// grants the invited role.
func (s *AdminService) Activate(ctx context.Context, session auth.Session, request ActivateRequest) (*Profile, error) {
	request.InviteCode = access.Normalize(request.InviteCode)
	if err := league.Validate(ctx, request); err != nil {
		return nil, err
	}
	if !access.Valid(request.InviteCode) {
		return nil, league.ErrInvalidInvite
	}

	invite, err := s.store.ClaimInvite(ctx, request.InviteCode, session.UID)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(session.Email)
	if email == "" {
		email = invite.Email
	}
	user := league.User{
		ID:          session.UID,
		Email:       email,
		DisplayName: strings.TrimSpace(request.DisplayName),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	if err := s.store.SetUserRole(ctx, session.UID, invite.Role); err != nil {
		return nil, err
	}

	logging.Default().Info("account activated", "user", session.UID, "role", invite.Role)
	return &Profile{
		UID:         user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        invite.Role,
		Activated:   true,
	}, nil
}

func (s *AdminService) Me(ctx context.Context, session auth.Session) (*Profile, error) {
	profile := &Profile{UID: session.UID, Email: session.Email, Role: session.Role}

	user, err := s.store.GetUser(ctx, session.UID)
	if errors.Is(err, league.ErrNotFound) {
		return profile, nil
	}
	if err != nil {
		return nil, err
	}

	profile.Email = user.Email
	profile.DisplayName = user.DisplayName
	profile.PhotoURL = user.PhotoURL
	profile.Activated = true
	return profile, nil
}

func (s *AdminService) UploadPhoto(ctx context.Context, userID, contentType string, r io.Reader) (string, error) {
	if s.uploader == nil {
		return "", ErrUploadsDisabled
	}
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return "", err
	}
	url, err := s.uploader.Upload(ctx, userPhotoFolder, contentType, r)
	if err != nil {
		return "", err
	}
	return url, s.store.SetUserPhoto(ctx, userID, url)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
