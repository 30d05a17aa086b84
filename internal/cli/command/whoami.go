package command

import (
	"context"
	"time"

	"github.com/urfave/cli/v2"
)

// WhoamiCommand returns the whoami command.
func WhoamiCommand() *cli.Command {
	return &cli.Command{
		Name:   "whoami",
		Usage:  "Show the current session identity",
		Action: whoamiAction,
	}
}

func whoamiAction(c *cli.Context) error {
	return run(c, "whoami", "", func(ctx context.Context, env *Env) error {
		identity := env.Sessions.Identity()
		view := struct {
			Username  string `json:"username"`
			Role      string `json:"role"`
			ExpiresAt string `json:"expires_at"`
		}{
			Username:  identity.Username,
			Role:      string(identity.Role),
			ExpiresAt: time.Unix(identity.ExpiresAt, 0).Format(time.RFC3339),
		}
		return formatterFor(c).Format(env.Out, view)
	})
}
