package cmd

import (
	"time"

	"github.com/masmgr/sisync/internal/mks"
	"github.com/masmgr/sisync/internal/output"
	"github.com/urfave/cli/v2"
)

func newModificationReport(ctx *CommandContext, from, to time.Time, mods []mks.Modification) *output.ModificationReport {
	return &output.ModificationReport{
		Sandbox:     ctx.Adapter.Settings().SandboxPath(),
		From:        from,
		To:          to,
		GeneratedAt: time.Now(),
		Policy:      ctx.Adapter.Policy(),
		Items:       mods,
	}
}

func writeModificationReport(ctx *CommandContext, c *cli.Context, report *output.ModificationReport) error {
	opts := output.OutputOptions{
		Format:     output.ParseFormat(ctx.Config.Output.Format),
		OutputPath: c.String("output"),
	}
	return output.NewModificationWriter(opts.Format).Write(report, opts)
}
