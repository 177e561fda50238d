package tui

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/careerit/examterm/internal/api"
	"github.com/careerit/examterm/internal/auth"
)

// Login prompts for portal credentials and installs the resulting
// credential on the client. Returns the credential so callers can do
// role-based routing.
func Login(ctx context.Context, client *api.Client, p *Prompter, log zerolog.Logger) (*auth.Credential, error) {
	email, err := p.Line("Roll Number")
	if err != nil {
		return nil, err
	}
	password, err := p.Password("Password")
	if err != nil {
		return nil, err
	}

	cred, err := client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	log.Info().Str("role", cred.Role).Msg("logged in")
	p.Say("Welcome, %s.", cred.Name)
	return cred, nil
}
