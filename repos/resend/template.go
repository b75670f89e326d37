package resend

import (
	"fmt"
	"html"

	"github.com/nvbf/league-manager/pkg/league"
)

func roleLabel(role league.Role) string {
	if role == league.RoleAdmin {
		return "an administrator"
	}
	return "a member"
}

func getInviteTemplate(link, code string, role league.Role) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: Arial, sans-serif;
            background-color: #f4f4f4;
            margin: 0;
            padding: 20px;
        }
        .container {
            background-color: #ffffff;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            box-shadow: 0 0 10px rgba(0,0,0,0.1);
        }
        .code {
            font-family: monospace;
            font-size: 22px;
            letter-spacing: 4px;
            text-align: center;
        }
        .button {
            display: block;
            width: 220px;
            height: 50px;
            margin: 20px auto;
            background-color: #16a34a;
            color: #ffffff;
            font-size: 16px;
            text-align: center;
            line-height: 50px;
            text-decoration: none;
            border-radius: 5px;
        }
    </style>
</head>
<body>
    <div class="container">
        <h2>You have been invited</h2>
        <p>You have been invited to join the league manager as %s.</p>
        <p>Your invite code:</p>
        <p class="code">%s</p>
        <a href="%s" class="button">Activate account</a>
        <p>If you did not expect this invitation you can ignore this email.</p>
    </div>
</body>
</html>`, roleLabel(role), html.EscapeString(code), html.EscapeString(link))
}
