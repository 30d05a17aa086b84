package command

import (
	"context"

	"github.com/urfave/cli/v2"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect the effective configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the configuration after file, env, and flag overrides",
				Action: configShow,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	return run(c, "", "", func(ctx context.Context, env *Env) error {
		view := struct {
			BaseURL         string `json:"base_url"`
			Timeout         string `json:"timeout"`
			DataDir         string `json:"data_dir"`
			RefreshInterval string `json:"refresh_interval"`
			PollInterval    string `json:"poll_interval"`
			GrafanaURL      string `json:"grafana_url"`
			LogLevel        string `json:"log_level"`
			LogFormat       string `json:"log_format"`
		}{
			BaseURL:         env.Config.API.BaseURL,
			Timeout:         env.Config.API.Timeout.String(),
			DataDir:         env.Config.Storage.DataDir,
			RefreshInterval: env.Config.Session.RefreshInterval.String(),
			PollInterval:    env.Config.Metrics.PollInterval.String(),
			GrafanaURL:      env.Config.Grafana.URL,
			LogLevel:        env.Config.Log.Level,
			LogFormat:       env.Config.Log.Format,
		}
		return formatterFor(c).Format(env.Out, view)
	})
}
