package cmd

import (
	"time"

	"github.com/fatih/color"
	"github.com/masmgr/sisync/internal/mks"
	"github.com/urfave/cli/v2"
)

// GetSourceCmd returns the getsource command.
func GetSourceCmd() *cli.Command {
	return &cli.Command{
		Name:    "getsource",
		Aliases: []string{"sync"},
		Usage:   "Resynchronize the sandbox and clear read-only attributes",
		Flags: append(sandboxFlags(),
			&cli.StringFlag{
				Name:  "label",
				Usage: "Build label, used for logging",
			},
		),
		Action: getSourceAction,
	}
}

func getSourceAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		start := time.Now()
		result := mks.BuildResult{Succeeded: true, Label: c.String("label"), StartTime: start}
		if err := ctx.Adapter.GetSource(c.Context, result); err != nil {
			return err
		}
		if !ctx.Adapter.SyncsSource() {
			color.Yellow("autoGetSource is disabled; sandbox left untouched.")
			return nil
		}
		color.Green("Sandbox %s resynchronized in %s", ctx.Adapter.Settings().SandboxPath(), time.Since(start).Round(time.Millisecond))
		return nil
	})
}
