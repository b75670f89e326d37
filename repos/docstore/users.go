package docstore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/xerrors"

	"github.com/nvbf/league-manager/pkg/league"
)

type roleDoc struct {
	Role league.Role `firestore:"role"`
}

func setInviteCode(i *league.Invite, code string) { i.Code = code }
func setUserID(u *league.User, id string) { u.ID = id }

// CreateInvite stores the invite under its code. Existing codes are rejected.
func (s *Store) CreateInvite(ctx context.Context, invite league.Invite) error {
	_, err := s.col(invitesCollection).Doc(invite.Code).Create(ctx, invite)
	if err != nil {
		return xerrors.Errorf("failed to create invite: %w", err)
	}
	return nil
}

func (s *Store) GetInvite(ctx context.Context, code string) (league.Invite, error) {
	return getDoc(ctx, s.col(invitesCollection).Doc(code), setInviteCode)
}

func (s *Store) ClaimInvite(ctx context.Context, code, userID string) (league.Invite, error) {
	ref := s.col(invitesCollection).Doc(code)
	var claimed league.Invite

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return league.ErrInvalidInvite
			}
			return xerrors.Errorf("failed to get invite: %w", err)
		}
		invite, err := decode(doc, setInviteCode)
		if err != nil {
			return err
		}
		if invite.Used {
			return league.ErrInvalidInvite
		}

		now := s.clock.Now()
		invite.Used = true
		invite.UsedBy = &userID
		invite.UsedAt = &now
		claimed = invite

		return tx.Update(ref, []firestore.Update{
			{Path: "used", Value: true},
			{Path: "usedBy", Value: userID},
			{Path: "usedAt", Value: now},
		})
	})
	if err != nil {
		return league.Invite{}, err
	}
	return claimed, nil
}

func (s *Store) DeleteInvite(ctx context.Context, code string) error {
	ref := s.col(invitesCollection).Doc(code)
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return wrapErr(err, "failed to get invite")
		}
		return tx.Delete(ref)
	})
}

func (s *Store) PendingInvites(ctx context.Context) ([]league.Invite, error) {
	q := s.col(invitesCollection).Where("used", "==", false)
	return getAll(q.Documents(ctx), setInviteCode)
}

func (s *Store) FindPendingInviteByEmail(ctx context.Context, email string) (league.Invite, bool, error) {
	q := s.col(invitesCollection).Where("email", "==", email).Where("used", "==", false).Limit(1)
	invites, err := getAll(q.Documents(ctx), setInviteCode)
	if err != nil || len(invites) == 0 {
		return league.Invite{}, false, err
	}
	return invites[0], true, nil
}

// CreateUser writes the profile document keyed by the auth uid.
func (s *Store) CreateUser(ctx context.Context, user league.User) error {
	_, err := s.col(usersCollection).Doc(user.ID).Set(ctx, user)
	if err != nil {
		return xerrors.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (league.User, error) {
	return getDoc(ctx, s.col(usersCollection).Doc(id), setUserID)
}

func (s *Store) IsUserRegistered(ctx context.Context, email string) (bool, error) {
	q := s.col(usersCollection).Where("email", "==", email).Limit(1)
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return false, xerrors.Errorf("failed to query users: %w", err)
	}
	return len(docs) > 0, nil
}

func (s *Store) GetUserRole(ctx context.Context, userID string) (league.Role, error) {
	doc, err := s.col(userRolesCollection).Doc(userID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return league.RoleUser, nil
		}
		return "", xerrors.Errorf("failed to get user role: %w", err)
	}

	role, err := decode[roleDoc](doc, nil)
	if err != nil {
		return "", err
	}
	if role.Role == "" {
		return league.RoleUser, nil
	}
	return role.Role, nil
}

func (s *Store) SetUserRole(ctx context.Context, userID string, role league.Role) error {
	_, err := s.col(userRolesCollection).Doc(userID).Set(ctx, map[string]interface{}{
		"role":      string(role),
		"updatedAt": firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		return xerrors.Errorf("failed to set user role: %w", err)
	}
	return nil
}

// ListUsersWithRoles joins the users and user_roles collections.
func (s *Store) ListUsersWithRoles(ctx context.Context) ([]league.UserWithRole, error) {
	var (
		users []league.User
		roles = map[string]league.Role{}
	)

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		var err error
		users, err = getAll(s.col(usersCollection).Documents(ctx), setUserID)
		return err
	})
	p.Go(func(ctx context.Context) error {
		docs, err := s.col(userRolesCollection).Documents(ctx).GetAll()
		if err != nil {
			return xerrors.Errorf("failed to read user roles: %w", err)
		}
		for _, doc := range docs {
			role, err := decode[roleDoc](doc, nil)
			if err != nil {
				return err
			}
			roles[doc.Ref.ID] = role.Role
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	out := make([]league.UserWithRole, 0, len(users))
	for _, u := range users {
		role := roles[u.ID]
		if role == "" {
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

func (s *Store) SetUserPhoto(ctx context.Context, userID, url string) error {
	return s.update(ctx, s.col(usersCollection).Doc(userID), []firestore.Update{
		{Path: "photoUrl", Value: url},
	})
}
