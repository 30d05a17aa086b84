package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/avelarde/attendctl-go/internal/apiclient"
	"github.com/avelarde/attendctl-go/internal/cli/output"
	"github.com/avelarde/attendctl-go/internal/config"
	"github.com/avelarde/attendctl-go/internal/core/domain"
	"github.com/avelarde/attendctl-go/internal/core/service"
	"github.com/avelarde/attendctl-go/internal/infra/confloader"
	"github.com/avelarde/attendctl-go/internal/storage"
	"github.com/avelarde/attendctl-go/internal/telemetry/logger"
)

// Build information, set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Env carries everything a command action needs. It is built once in
// the app's Before hook and injected through the cli metadata; tests
// construct it directly.
type Env struct {
	Config *config.Config

	// ConfigPath is the configuration file in effect, "" when the
	// defaults and environment were the only sources. Watch mode
	// reloads from it on change.
	ConfigPath string

	Logger   logger.Logger
	Store    storage.Store
	Records  *storage.SessionRecords
	Client   *apiclient.Client
	Sessions *service.SessionService
	Guard    *service.Guard
	Super    Supervisor

	Out    io.Writer
	ErrOut io.Writer
}

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:    "attendctl",
		Usage:   "Admin console for the IoT biometric attendance backend",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			LoginCommand(),
			LogoutCommand(),
			WhoamiCommand(),
			AttendanceCommand(),
			MetricsCommand(),
			GrafanaCommand(),
			ConfigCommand(),
		},
		Before: func(c *cli.Context) error {
			if _, ok := c.App.Metadata["env"].(*Env); ok {
				return nil // injected by a test
			}
			env, err := newEnv(c)
			if err != nil {
				return err
			}
			c.App.Metadata["env"] = env
			c.App.Metadata["envOwned"] = true
			return nil
		},
		After: func(c *cli.Context) error {
			// Only close a store this invocation opened; injected
			// environments outlive single runs.
			owned, _ := c.App.Metadata["envOwned"].(bool)
			env, ok := c.App.Metadata["env"].(*Env)
			if !owned || !ok || env.Store == nil {
				return nil
			}
			return env.Store.Close()
		},
	}
	if app.Metadata == nil {
		app.Metadata = make(map[string]any)
	}
	return app
}

// globalFlags returns the flags shared by every command.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "Backend base URL (e.g., http://localhost:8000)",
			EnvVars: []string{"ATTENDCTL_SERVER"},
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the configuration file",
			EnvVars: []string{"ATTENDCTL_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
	}
}

// newEnv loads configuration and wires the full dependency graph.
func newEnv(c *cli.Context) (*Env, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if path := c.String("config"); path != "" {
		opts = append(opts, confloader.WithConfigFile(path))
	}
	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if server := c.String("server"); server != "" {
		if !strings.HasPrefix(server, "http://") && !strings.HasPrefix(server, "https://") {
			server = "http://" + server
		}
		cfg.API.BaseURL = server
	}
	if err := config.Verify(cfg); err != nil {
		return nil, err
	}

	logCfg := logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: os.Stderr}
	if c.Bool("verbose") {
		logCfg.Level = "debug"
	}
	log := logger.New(logCfg)

	var store storage.Store
	if cfg.Storage.DataDir != "" {
		badgerStore, err := storage.NewBadgerStore(cfg.Storage.DataDir, logger.Raw(log))
		if err != nil {
			return nil, fmt.Errorf("opening session store: %w", err)
		}
		store = badgerStore
	} else {
		store = storage.NewMemoryStore()
	}
	records := storage.NewSessionRecords(store)

	// The client reads the token through the session service, and the
	// session service authenticates through the client. Late-bind the
	// token source to close the cycle.
	var sessions *service.SessionService
	client := apiclient.New(cfg.API.BaseURL, cfg.API.Timeout, func() string {
		if sessions == nil {
			return ""
		}
		return sessions.Token()
	}, log)
	sessions = service.NewSessionService(records, client, log)
	sessions.Restore(c.Context)

	return &Env{
		Config:     cfg,
		ConfigPath: c.String("config"),
		Logger:     log,
		Store:      store,
		Records:    records,
		Client:     client,
		Sessions:   sessions,
		Guard:      service.NewGuard(sessions),
		Super:      NewSupervisor(log, os.Stderr),
		Out:        os.Stdout,
		ErrOut:     os.Stderr,
	}, nil
}

// envFrom retrieves the injected environment.
func envFrom(c *cli.Context) *Env {
	if env, ok := c.App.Metadata["env"].(*Env); ok {
		return env
	}
	return nil
}

// run wraps a command action with the supervisor and, when
// destination is non-empty, the access guard.
func run(c *cli.Context, destination string, required domain.Role, action func(ctx context.Context, env *Env) error) error {
	env := envFrom(c)
	if env == nil {
		return fmt.Errorf("command environment not initialized")
	}
	return env.Super.Run(func() error {
		ctx := c.Context
		if ctx == nil {
			ctx = context.Background()
		}
		if destination != "" {
			if err := checkAccess(ctx, env, destination, required); err != nil {
				return err
			}
		}
		return action(ctx, env)
	})
}

// checkAccess evaluates the guard for one navigation. A denial for
// missing authentication remembers the destination so login can point
// the user back.
func checkAccess(ctx context.Context, env *Env, destination string, required domain.Role) error {
	decision := env.Guard.Evaluate(destination, required)
	switch decision.State {
	case service.StateAllowed:
		return nil
	case service.StateDeniedForbidden:
		return domain.ErrForbidden.WithDetails(fmt.Sprintf(
			"%s requires role %s, current role is %s",
			destination, decision.RequiredRole, decision.ActualRole))
	default:
		if err := env.Records.RememberDestination(ctx, destination); err != nil {
			env.Logger.Warn("remembering destination failed", "error", err)
		}
		return domain.ErrNotAuthenticated.WithDetails("run 'attendctl login' first")
	}
}

// formatterFor builds the output formatter selected by the global
// flags.
func formatterFor(c *cli.Context) output.Formatter {
	return output.NewFormatter(output.Format(c.String("output")), c.Bool("wide"))
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
