package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

// LoginCommand returns the login command.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Authenticate against the attendance backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "username",
				Aliases:  []string{"u"},
				Usage:    "Account username",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Account password",
				EnvVars: []string{"ATTENDCTL_PASSWORD"},
			},
		},
		Action: loginAction,
	}
}

func loginAction(c *cli.Context) error {
	username := c.String("username")
	password := c.String("password")

	return run(c, "", "", func(ctx context.Context, env *Env) error {
		session, err := env.Sessions.Login(ctx, username, password)
		if err != nil {
			return err
		}
		fmt.Fprintf(env.Out, "logged in as %s (%s)\n",
			session.Identity.Username, session.Identity.Role)

		// Point the user back at the view that sent them here.
		if dest, err := env.Records.RecallDestination(ctx); err == nil && dest != "" {
			fmt.Fprintf(env.Out, "you can now run 'attendctl %s'\n", dest)
			if err := env.Records.ForgetDestination(ctx); err != nil {
				env.Logger.Warn("clearing remembered destination failed", "error", err)
			}
		}
		return nil
	})
}

// LogoutCommand returns the logout command.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Drop the current session",
		Action: logoutAction,
	}
}

func logoutAction(c *cli.Context) error {
	return run(c, "", "", func(ctx context.Context, env *Env) error {
		env.Sessions.Logout()
		fmt.Fprintln(env.Out, "logged out")
		return nil
	})
}
