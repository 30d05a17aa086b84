package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/avelarde/attendctl-go/internal/core/domain"
)

// GrafanaCommand returns the grafana command. The analytics dashboard
// is gated at role user; viewers do not get it.
func GrafanaCommand() *cli.Command {
	return &cli.Command{
		Name:   "grafana",
		Usage:  "Show the analytics dashboard location",
		Action: grafanaAction,
	}
}

func grafanaAction(c *cli.Context) error {
	return run(c, "grafana", domain.RoleUser, func(ctx context.Context, env *Env) error {
		fmt.Fprintln(env.Out, env.Config.Grafana.URL)
		return nil
	})
}
