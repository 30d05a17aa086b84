package command

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/avelarde/attendctl-go/internal/apiclient"
	"github.com/avelarde/attendctl-go/internal/cli/output"
	"github.com/avelarde/attendctl-go/internal/config"
	"github.com/avelarde/attendctl-go/internal/core/domain"
	"github.com/avelarde/attendctl-go/internal/core/service"
	"github.com/avelarde/attendctl-go/internal/infra/confloader"
	"github.com/avelarde/attendctl-go/internal/infra/shutdown"
	"github.com/avelarde/attendctl-go/internal/promtext"
)

// quickStatCategories are the metric prefixes summarized below the
// group tables.
var quickStatCategories = []string{"biometric", "esp32", "employee"}

// MetricsCommand returns the metrics command.
func MetricsCommand() *cli.Command {
	return &cli.Command{
		Name:  "metrics",
		Usage: "Fetch and display device metrics",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Keep re-fetching until interrupted",
			},
			&cli.DurationFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Re-fetch interval in watch mode (default from config)",
			},
		},
		Action: metricsAction,
	}
}

func metricsAction(c *cli.Context) error {
	return run(c, "metrics", domain.RoleViewer, func(ctx context.Context, env *Env) error {
		if c.Bool("watch") {
			return metricsWatch(c, ctx, env)
		}
		payload, err := env.Client.Metrics(ctx)
		if err != nil {
			return err
		}
		samples, err := promtext.Parse(payload)
		if err != nil {
			return err
		}
		return renderMetrics(c, env, samples)
	})
}

// metricsWatch re-fetches on an interval until interrupted. The
// session refresher runs alongside so an expiring session ends the
// watch instead of producing an endless 401 stream.
func metricsWatch(c *cli.Context, parent context.Context, env *Env) error {
	interval := env.Config.Metrics.PollInterval
	if c.Duration("interval") > 0 {
		interval = c.Duration("interval")
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	poller := apiclient.NewPoller(env.Client, interval, func(res apiclient.PollResult) {
		if res.Err != nil {
			if errors.Is(res.Err, domain.ErrNotAuthenticated) {
				fmt.Fprintln(env.ErrOut, "session ended, stopping watch")
				cancel()
				return
			}
			env.Logger.Warn("metrics fetch failed", "error", res.Err)
			return
		}
		fmt.Fprintf(env.Out, "-- %s --\n", res.FetchedAt.Format(time.TimeOnly))
		if err := renderMetrics(c, env, res.Samples); err != nil {
			env.Logger.Warn("rendering metrics failed", "error", err)
		}
	}, env.Logger)

	refresher := service.NewRefresher(env.Sessions, env.Config.Session.RefreshInterval, env.Logger)

	handler := shutdown.NewHandler(10 * time.Second)
	watchConfigFile(c, env, poller, handler)
	handler.OnShutdown(func(context.Context) error {
		refresher.Stop()
		return nil
	})
	handler.OnShutdown(func(context.Context) error {
		poller.Stop()
		<-poller.Done()
		return nil
	})

	go refresher.Run(ctx)
	go poller.Run(ctx)

	return handler.Wait(ctx)
}

// watchConfigFile reloads the configuration while a watch session
// runs, so an edited poll interval or server address takes effect
// without a restart. No-op when no config file is in use.
func watchConfigFile(c *cli.Context, env *Env, poller *apiclient.Poller, handler *shutdown.Handler) {
	if env.ConfigPath == "" {
		return
	}
	watcher, err := confloader.NewWatcher(env.Logger)
	if err != nil {
		env.Logger.Warn("configuration watcher unavailable", "error", err)
		return
	}
	watcher.OnChange(func(path string) {
		if filepath.Base(path) != filepath.Base(env.ConfigPath) {
			return
		}
		if err := applyConfigReload(env, poller, c.Duration("interval"), c.String("server")); err != nil {
			env.Logger.Warn("configuration reload failed", "error", err)
		}
	})
	if err := watcher.Watch(env.ConfigPath); err != nil {
		env.Logger.Warn("watching configuration file failed", "error", err)
		return
	}
	watcher.StartAsync()
	handler.OnShutdown(func(context.Context) error {
		return watcher.Stop()
	})
}

// applyConfigReload re-reads the configuration file and applies the
// settings a running watch can honor. Command-line flags keep their
// precedence: a flag-supplied interval or server address is not
// overridden by the file. A successful reload triggers an immediate
// fetch so the new settings show right away.
func applyConfigReload(env *Env, poller *apiclient.Poller, flagInterval time.Duration, flagServer string) error {
	cfg := config.Default()
	if err := confloader.NewLoader(confloader.WithConfigFile(env.ConfigPath)).Load(cfg); err != nil {
		return err
	}
	if err := config.Verify(cfg); err != nil {
		return err
	}

	if flagInterval <= 0 {
		env.Config.Metrics.PollInterval = cfg.Metrics.PollInterval
		poller.SetInterval(cfg.Metrics.PollInterval)
	}
	if flagServer == "" {
		env.Config.API.BaseURL = cfg.API.BaseURL
		env.Client.SetBaseURL(cfg.API.BaseURL)
	}

	env.Logger.Info("configuration reloaded",
		"poll_interval", env.Config.Metrics.PollInterval,
		"server", env.Config.API.BaseURL)
	poller.Trigger()
	return nil
}

// renderMetrics writes the parsed samples grouped by prefix. Table
// output gets one section per group plus the quick-stat summary;
// json/yaml get the groups as structured data.
func renderMetrics(c *cli.Context, env *Env, samples []domain.Sample) error {
	groups := promtext.GroupByPrefix(samples)

	switch output.Format(c.String("output")) {
	case output.FormatJSON, output.FormatYAML:
		return formatterFor(c).Format(env.Out, groups)
	}

	wide := c.Bool("wide")
	for _, g := range groups {
		fmt.Fprintf(env.Out, "== %s ==\n", g.Key)

		table := &output.Table{Headers: []string{"NAME", "VALUE", "TYPE", "LABELS"}}
		if wide {
			table.Headers = append(table.Headers, "HELP")
		}
		for _, s := range g.Samples {
			row := []string{s.Name, s.Value, s.Type, formatLabels(s.Labels)}
			if wide {
				row = append(row, s.Help)
			}
			table.AddRow(row...)
		}
		if err := table.Render(env.Out); err != nil {
			return err
		}
		fmt.Fprintln(env.Out)
	}

	for _, category := range quickStatCategories {
		for _, g := range groups {
			if g.Key != category {
				continue
			}
			fmt.Fprintf(env.Out, "%s: %d samples, %d active\n",
				category, len(g.Samples), g.ActiveCount())
		}
	}
	return nil
}

func formatLabels(labels map[string]string) string {
	if len(labels) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+labels[k])
	}
	return strings.Join(pairs, ",")
}
