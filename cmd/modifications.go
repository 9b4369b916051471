package cmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
)

// ModificationsCmd returns the modifications command.
func ModificationsCmd() *cli.Command {
	flags := append(sandboxFlags(), reportFlags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:  "since",
			Usage: "Start of the build cycle (RFC3339 or YYYY-MM-DD; default: --window before --until)",
		},
		&cli.StringFlag{
			Name:  "until",
			Usage: "End of the build cycle (RFC3339 or YYYY-MM-DD; default: now)",
		},
		&cli.DurationFlag{
			Name:  "window",
			Usage: "Cycle length used when --since is omitted",
			Value: 24 * time.Hour,
		},
	)

	return &cli.Command{
		Name:    "modifications",
		Aliases: []string{"m"},
		Usage:   "List sandbox members changed within the build cycle",
		Flags:   flags,
		Action:  modificationsAction,
	}
}

func modificationsAction(c *cli.Context) error {
	from, to, err := cycleWindow(c, time.Now())
	if err != nil {
		return err
	}

	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		mods, err := ctx.Adapter.GetModifications(c.Context, from, to)
		if err != nil {
			return err
		}
		return writeModificationReport(ctx, c, newModificationReport(ctx, from, to, mods))
	})
}

// cycleWindow resolves --since/--until/--window into a closed interval.
func cycleWindow(c *cli.Context, now time.Time) (time.Time, time.Time, error) {
	since, err := parseTimeFlag(c.String("since"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid since date: %w", err)
	}
	until, err := parseTimeFlag(c.String("until"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid until date: %w", err)
	}

	to := now
	if until != nil {
		to = *until
	}
	from := to.Add(-c.Duration("window"))
	if since != nil {
		from = *since
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("--until (%s) is before --since (%s)", to.Format(time.RFC3339), from.Format(time.RFC3339))
	}
	return from, to, nil
}
