package admin

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	access "github.com/nvbf/league-manager/pkg/accessCode"
	"github.com/nvbf/league-manager/pkg/auth"
	"github.com/nvbf/league-manager/pkg/league"
	"github.com/nvbf/league-manager/repos/memstore"
)

type sentMail struct {
	email, code string
	role        league.Role
}

type fakeMailer struct {
	fail bool
	sent []sentMail
}

func (f *fakeMailer) SendInvite(_ context.Context, email, code string, role league.Role) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, sentMail{email, code, role})
	return nil
}

type fakeUploader struct{}

func (fakeUploader) Upload(_ context.Context, folder, _ string, r io.Reader) (string, error) {
	_, err := io.ReadAll(r)
	return "https://cdn.test/" + folder + "/me", err
}

var adminSession = auth.Session{UID: "admin-1", Email: "admin@example.com", Role: league.RoleAdmin}

func newService() (*AdminService, *memstore.Store, *fakeMailer) {
	store := memstore.New(nil)
	mailer := &fakeMailer{}
	return NewAdminService(store, mailer, fakeUploader{}), store, mailer
}

func TestCreateInvite(t *testing.T) {
	ctx := context.Background()
	s, store, mailer := newService()

	result, err := s.CreateInvite(ctx, adminSession.UID, CreateInviteRequest{Email: " New@Example.com "})
	require.NoError(t, err)
	assert.True(t, result.EmailSent)
	assert.Equal(t, "new@example.com", result.Invite.Email)
	assert.Equal(t, league.RoleUser, result.Invite.Role)
	assert.True(t, access.Valid(result.Invite.Code))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, result.Invite.Code, mailer.sent[0].code)

	stored, err := store.GetInvite(ctx, result.Invite.Code)
	require.NoError(t, err)
	assert.Equal(t, adminSession.UID, stored.CreatedByAdminID)
	assert.False(t, stored.Used)
}

func TestCreateInviteRejects(t *testing.T) {
	ctx := context.Background()
	s, store, _ := newService()

	_, err := s.CreateInvite(ctx, "a", CreateInviteRequest{Email: "nope"})
	assert.ErrorIs(t, err, league.ErrInvalidInput)

	_, err = s.CreateInvite(ctx, "a", CreateInviteRequest{Email: "x@example.com", Role: "owner"})
	assert.ErrorIs(t, err, league.ErrInvalidInput)

	_, err = s.CreateInvite(ctx, "a", CreateInviteRequest{Email: "x@example.com"})
	require.NoError(t, err)
	_, err = s.CreateInvite(ctx, "a", CreateInviteRequest{Email: "X@example.com"})
	assert.ErrorIs(t, err, league.ErrAlreadyInvited)

	require.NoError(t, store.CreateUser(ctx, league.User{ID: "u1", Email: "member@example.com"}))
	_, err = s.CreateInvite(ctx, "a", CreateInviteRequest{Email: "member@example.com"})
	assert.ErrorIs(t, err, league.ErrAlreadyRegistered)
}

func TestCreateInviteMailFailure(t *testing.T) {
	ctx := context.Background()
	s, store, mailer := newService()
	mailer.fail = true

	result, err := s.CreateInvite(ctx, "a", CreateInviteRequest{Email: "x@example.com", Role: league.RoleAdmin})
	require.NoError(t, err)
	assert.False(t, result.EmailSent)

	pending, err := store.PendingInvites(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	mailer.fail = false
	resent, err := s.ResendInvite(ctx, result.Invite.Code)
	require.NoError(t, err)
	assert.True(t, resent.EmailSent)
	assert.Equal(t, league.RoleAdmin, mailer.sent[0].role)
}

func TestActivate(t *testing.T) {
	ctx := context.Background()
	s, store, _ := newService()

	result, err := s.CreateInvite(ctx, "a", CreateInviteRequest{Email: "new@example.com", Role: league.RoleAdmin})
	require.NoError(t, err)

	caller := auth.Session{UID: "new-uid", Email: "new@example.com", Role: league.RoleUser}
	profile, err := s.Activate(ctx, caller, ActivateRequest{
		InviteCode:  " " + result.Invite.Code + " ",
		DisplayName: "New Person",
	})
	require.NoError(t, err)
	assert.Equal(t, league.RoleAdmin, profile.Role)
	assert.True(t, profile.Activated)

	role, err := store.GetUserRole(ctx, "new-uid")
	require.NoError(t, err)
	assert.Equal(t, league.RoleAdmin, role)

	invite, err := store.GetInvite(ctx, result.Invite.Code)
	require.NoError(t, err)
	assert.True(t, invite.Used)
	assert.Equal(t, "new-uid", *invite.UsedBy)

	_, err = s.Activate(ctx, auth.Session{UID: "other"}, ActivateRequest{InviteCode: result.Invite.Code})
	assert.ErrorIs(t, err, league.ErrInvalidInvite)

	_, err = s.Activate(ctx, caller, ActivateRequest{InviteCode: "bad code!"})
	assert.ErrorIs(t, err, league.ErrInvalidInvite)

	_, err = s.ResendInvite(ctx, result.Invite.Code)
	assert.ErrorIs(t, err, league.ErrInvalidInvite)
}

func TestSetUserRole(t *testing.T) {
	ctx := context.Background()
	s, store, _ := newService()
	require.NoError(t, store.CreateUser(ctx, league.User{ID: "u1", Email: "u1@example.com"}))
	require.NoError(t, store.CreateUser(ctx, league.User{ID: adminSession.UID, Email: adminSession.Email}))

	require.NoError(t, s.SetUserRole(ctx, adminSession, "u1", SetRoleRequest{Role: league.RoleAdmin}))
	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, league.RoleAdmin, users[0].Role)

	assert.ErrorIs(t, s.SetUserRole(ctx, adminSession, adminSession.UID, SetRoleRequest{Role: league.RoleUser}), league.ErrInvalidInput)
	assert.ErrorIs(t, s.SetUserRole(ctx, adminSession, "u1", SetRoleRequest{Role: "owner"}), league.ErrInvalidInput)
	assert.ErrorIs(t, s.SetUserRole(ctx, adminSession, "ghost", SetRoleRequest{Role: league.RoleUser}), league.ErrNotFound)
}

func TestMeAndPhoto(t *testing.T) {
	ctx := context.Background()
	s, store, _ := newService()

	caller := auth.Session{UID: "u1", Email: "u1@example.com", Role: league.RoleUser}
	profile, err := s.Me(ctx, caller)
	require.NoError(t, err)
	assert.False(t, profile.Activated)

	_, err = s.UploadPhoto(ctx, "u1", "image/png", bytes.NewReader(nil))
	assert.ErrorIs(t, err, league.ErrNotFound)

	require.NoError(t, store.CreateUser(ctx, league.User{ID: "u1", Email: "u1@example.com", DisplayName: "U One"}))
	url, err := s.UploadPhoto(ctx, "u1", "image/png", bytes.NewReader([]byte("img")))
	require.NoError(t, err)

	profile, err = s.Me(ctx, caller)
	require.NoError(t, err)
	assert.True(t, profile.Activated)
	assert.Equal(t, "U One", profile.DisplayName)
	require.NotNil(t, profile.PhotoURL)
	assert.Equal(t, url, *profile.PhotoURL)
}

func TestDeleteInvite(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newService()

	result, err := s.CreateInvite(ctx, "a", CreateInviteRequest{Email: "x@example.com"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteInvite(ctx, result.Invite.Code))
	assert.ErrorIs(t, s.DeleteInvite(ctx, result.Invite.Code), league.ErrNotFound)

	pending, err := s.PendingInvites(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
