package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/masmgr/sisync/config"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "sisync",
		Usage:   "Change detection and sandbox sync for MKS Integrity (si) builds",
		Version: "1.0.0",
		Commands: []*cli.Command{
			ModificationsCmd(),
			GetSourceCmd(),
			LabelCmd(),
			WatchCmd(),
			CommandsCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file (.yaml or .json)",
				EnvVars: []string{"SISYNC_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error); overrides the config file",
			},
		},
	}
}

// Sandbox flags shared across commands.
func sandboxFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "sandbox-root",
			Usage: "Sandbox root directory",
		},
		&cli.StringFlag{
			Name:  "sandbox-file",
			Usage: "Sandbox project file name, e.g. project.pj",
		},
		&cli.StringFlag{
			Name:    "user",
			Aliases: []string{"u"},
			Usage:   "si user name",
		},
		&cli.StringFlag{
			Name:  "hostname",
			Usage: "Integrity server host name",
		},
		&cli.IntFlag{
			Name:  "port",
			Usage: "Integrity server port",
		},
		&cli.StringFlag{
			Name:  "si",
			Usage: "Path to the si executable",
		},
		&cli.BoolFlag{
			Name:  "checkpoint",
			Usage: "Checkpoint successful builds (disables timestamp filtering)",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Timeout for each si invocation",
		},
	}
}

// Report flags for commands that list modifications.
func reportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns to include (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns to exclude (can be specified multiple times)",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Concurrent memberinfo queries",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, markdown, ci)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
	}
}

// timeLayouts are accepted by --since and --until.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimeFlag parses a timestamp flag. Zone-less values are local time.
func parseTimeFlag(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid time format: %s (expected RFC3339 or YYYY-MM-DD)", s)
}

// loadConfig loads configuration from file or defaults and applies flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if v := c.String("sandbox-root"); v != "" {
		cfg.MKS.SandboxRoot = v
	}
	if v := c.String("sandbox-file"); v != "" {
		cfg.MKS.SandboxFile = v
	}
	if v := c.String("user"); v != "" {
		cfg.MKS.User = v
	}
	if v := c.String("hostname"); v != "" {
		cfg.MKS.Hostname = v
	}
	if v := c.Int("port"); v > 0 {
		cfg.MKS.Port = v
	}
	if v := c.String("si"); v != "" {
		cfg.MKS.Executable = v
	}
	if c.IsSet("checkpoint") {
		cfg.MKS.CheckpointOnSuccess = c.Bool("checkpoint")
	}
	if v := c.Duration("timeout"); v > 0 {
		cfg.MKS.Timeout = v
	}
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}
	if v := c.Int("workers"); v > 0 {
		cfg.Workers = v
	}
	if v := c.String("format"); v != "" {
		cfg.Output.Format = v
	}
	if v := c.String("log-level"); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}

// newLogger builds the logger for a command run.
func newLogger(level string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if level == "" {
		return logger, nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(lvl)
	return logger, nil
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
