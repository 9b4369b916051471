package cmd

import (
	"fmt"
	"strings"

	"github.com/masmgr/sisync/internal/mks"
	"github.com/urfave/cli/v2"
)

// CommandsCmd returns the commands command, which prints the si command
// lines the adapter would run without running them.
func CommandsCmd() *cli.Command {
	return &cli.Command{
		Name:      "commands",
		Usage:     "Print the si command lines used for each operation",
		ArgsUsage: "[member path]",
		Flags: append(sandboxFlags(),
			&cli.StringFlag{
				Name:  "label",
				Usage: "Build label for the checkpoint command",
				Value: "<label>",
			},
		),
		Action: commandsAction,
	}
}

func commandsAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.MKS.Validate(); err != nil {
		return err
	}

	member := "<member>"
	if c.NArg() > 0 {
		member = c.Args().Get(0)
	}

	for _, line := range commandLines(cfg.MKS, member, c.String("label")) {
		fmt.Fprintln(c.App.Writer, line)
	}
	return nil
}

func commandLines(s mks.Settings, member, label string) []string {
	member = strings.ReplaceAll(member, `\`, "/")
	folder, file := "", member
	if i := strings.LastIndex(member, "/"); i >= 0 {
		folder, file = member[:i], member[i+1:]
	}
	return []string{
		"viewsandbox: " + s.ViewSandboxChangesCommand().String(),
		"memberinfo:  " + s.MemberInfoCommand(mks.Modification{FolderName: folder, FileName: file}).String(),
		"resync:      " + s.ResyncCommand().String(),
		"checkpoint:  " + s.CheckpointCommand(label).String(),
	}
}
