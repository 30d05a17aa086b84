package command

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/avelarde/attendctl-go/internal/core/domain"
)

// AttendanceCommand returns the attendance subcommand group.
func AttendanceCommand() *cli.Command {
	return &cli.Command{
		Name:    "attendance",
		Aliases: []string{"att"},
		Usage:   "Inspect attendance records",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List attendance events",
				Action: attendanceList,
			},
			{
				Name:   "stats",
				Usage:  "Show attendance summary figures",
				Action: attendanceStats,
			},
		},
	}
}

func attendanceList(c *cli.Context) error {
	return run(c, "attendance list", domain.RoleViewer, func(ctx context.Context, env *Env) error {
		records, err := env.Client.Attendance(ctx)
		if err != nil {
			return err
		}
		return formatterFor(c).Format(env.Out, records)
	})
}

func attendanceStats(c *cli.Context) error {
	return run(c, "attendance stats", domain.RoleViewer, func(ctx context.Context, env *Env) error {
		stats, err := env.Client.AttendanceStats(ctx)
		if err != nil {
			return err
		}
		return formatterFor(c).Format(env.Out, stats)
	})
}
