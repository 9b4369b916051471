package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/masmgr/sisync/internal/mks"
	"github.com/urfave/cli/v2"
)

// LabelCmd returns the label command.
func LabelCmd() *cli.Command {
	return &cli.Command{
		Name:      "label",
		Usage:     "Checkpoint the project after a successful build",
		ArgsUsage: "<build label>",
		Flags: append(sandboxFlags(),
			&cli.BoolFlag{
				Name:  "failed",
				Usage: "Report the build as failed (no checkpoint is created)",
			},
		),
		Action: labelAction,
	}
}

func labelAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one build label argument, got %d", c.NArg())
	}

	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		result := mks.BuildResult{
			Succeeded: !c.Bool("failed"),
			Label:     c.Args().Get(0),
		}
		if err := ctx.Adapter.LabelSourceControl(c.Context, result); err != nil {
			return err
		}
		if !ctx.Adapter.Checkpoints(result) {
			color.Yellow("Checkpoint skipped (checkpointOnSuccess=%t, succeeded=%t).", ctx.Adapter.Settings().CheckpointOnSuccess, result.Succeeded)
			return nil
		}
		color.Green("Checkpointed %s as %q", ctx.Adapter.Settings().SandboxPath(), "Build - "+result.Label)
		return nil
	})
}
