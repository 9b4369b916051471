package cmd

import (
	"fmt"

	"github.com/masmgr/sisync/config"
	"github.com/masmgr/sisync/internal/mks"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across all si commands.
type CommandContext struct {
	Config  *config.Config
	Logger  *logrus.Logger
	Adapter *mks.Adapter
}

// NewCommandContext creates a context from CLI flags.
// It performs configuration loading, validation and adapter construction.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	return newCommandContext(cfg, &mks.ExecInvoker{Dir: cfg.MKS.SandboxRoot})
}

func newCommandContext(cfg *config.Config, inv mks.Invoker) (*CommandContext, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	adapter := mks.New(cfg.MKS,
		mks.WithInvoker(inv),
		mks.WithLogger(logger.WithField("sandbox", cfg.MKS.SandboxPath())),
		mks.WithPathFilter(cfg.Filters.PathFilter()),
		mks.WithWorkers(cfg.Workers),
	)

	return &CommandContext{
		Config:  cfg,
		Logger:  logger,
		Adapter: adapter,
	}, nil
}

// executeWithContext sets up the command context and runs fn with it.
func executeWithContext(c *cli.Context, fn func(ctx *CommandContext, c *cli.Context) error) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	return fn(ctx, c)
}
