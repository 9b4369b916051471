package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v2"
)

// WatchCmd returns the watch command.
func WatchCmd() *cli.Command {
	flags := append(sandboxFlags(), reportFlags()...)
	flags = append(flags,
		&cli.DurationFlag{
			Name:  "every",
			Usage: "Polling interval",
			Value: 5 * time.Minute,
		},
	)

	return &cli.Command{
		Name:   "watch",
		Usage:  "Poll the sandbox and report changes since the previous poll",
		Flags:  flags,
		Action: watchAction,
	}
}

// poller reports modifications for consecutive, adjoining windows.
type poller struct {
	mu   sync.Mutex
	last time.Time
	run  func(ctx context.Context, from, to time.Time) error
}

// poll reports [last, now] and advances last only when the report succeeded,
// so a failed poll is covered by the next one.
func (p *poller) poll(ctx context.Context, now time.Time) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.run(ctx, p.last, now); err != nil {
		return err
	}
	p.last = now
	return nil
}

func watchAction(c *cli.Context) error {
	every := c.Duration("every")
	if every <= 0 {
		return fmt.Errorf("--every must be positive")
	}

	return executeWithContext(c, func(cc *CommandContext, c *cli.Context) error {
		ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()

		p := &poller{
			last: time.Now().Add(-every),
			run: func(ctx context.Context, from, to time.Time) error {
				mods, err := cc.Adapter.GetModifications(ctx, from, to)
				if err != nil {
					return err
				}
				if len(mods) == 0 {
					cc.Logger.WithField("until", to.Format(time.RFC3339)).Debug("No modifications")
					return nil
				}
				return writeModificationReport(cc, c, newModificationReport(cc, from, to, mods))
			},
		}

		scheduler := cron.New()
		_, err := scheduler.AddFunc(fmt.Sprintf("@every %s", every), func() {
			if err := p.poll(ctx, time.Now()); err != nil {
				cc.Logger.Errorf("Poll failed: %v", err)
			}
		})
		if err != nil {
			return fmt.Errorf("failed to schedule poll: %w", err)
		}

		cc.Logger.Infof("Watching %s every %s", cc.Config.MKS.SandboxPath(), every)
		if err := p.poll(ctx, time.Now()); err != nil {
			cc.Logger.Errorf("Poll failed: %v", err)
		}

		scheduler.Start()
		<-ctx.Done()
		cc.Logger.Info("Stopping watch...")
		<-scheduler.Stop().Done()
		return nil
	})
}
