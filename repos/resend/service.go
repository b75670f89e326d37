package resend

import (
	"context"
	"fmt"
	"net/url"

	resend "github.com/resend/resend-go/v2"
	"golang.org/x/xerrors"

	"github.com/nvbf/league-manager/pkg/league"
	"github.com/nvbf/league-manager/pkg/logging"
)

// Service sends transactional mail through Resend.
type Service struct {
	client *resend.Client
	from   string
	appURL string
}

// NewService creates a mailer for apiKey.
func NewService(apiKey, from, appURL string) *Service {
	return NewServiceWithClient(resend.NewClient(apiKey), from, appURL)
}

func NewServiceWithClient(client *resend.Client, from, appURL string) *Service {
	return &Service{
		client: client,
		from:   from,
		appURL: appURL,
	}
}

// InviteURL is the activation link embedded in invite mails.
func (s *Service) InviteURL(code string) string {
	return fmt.Sprintf("%s/auth?inviteCode=%s", s.appURL, url.QueryEscape(code))
}

func (s *Service) SendInvite(ctx context.Context, email, code string, role league.Role) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{email},
		Subject: "You're invited to the league",
		Html:    getInviteTemplate(s.InviteURL(code), code, role),
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return xerrors.Errorf("failed to send invite to %s: %w", email, err)
	}
	logging.Default().Info("invite mail sent", "email", email, "id", sent.Id)
	return nil
}
