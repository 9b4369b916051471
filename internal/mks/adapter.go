package mks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Adapter detects sandbox changes, resynchronizes the sandbox and checkpoints
// successful builds by driving the si command line client.
type Adapter struct {
	settings Settings
	invoker  Invoker
	logger   logrus.FieldLogger
	filter   PathFilter
	workers  int
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithInvoker replaces the process invoker, e.g. with a RecordingInvoker in tests.
func WithInvoker(inv Invoker) Option {
	return func(a *Adapter) { a.invoker = inv }
}

// WithLogger sets the logger used for command and result logging.
func WithLogger(l logrus.FieldLogger) Option {
	return func(a *Adapter) { a.logger = l }
}

// WithPathFilter restricts reported modifications to matching member paths.
func WithPathFilter(f PathFilter) Option {
	return func(a *Adapter) { a.filter = f }
}

// WithWorkers bounds concurrent memberinfo queries. The default is 1.
func WithWorkers(n int) Option {
	return func(a *Adapter) { a.workers = n }
}

// New creates an adapter for the given settings.
func New(settings Settings, opts ...Option) *Adapter {
	a := &Adapter{
		settings: settings,
		invoker:  &ExecInvoker{},
		logger:   logrus.StandardLogger(),
		workers:  1,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Settings returns the adapter's settings.
func (a *Adapter) Settings() Settings {
	return a.settings
}

// Policy returns the filter policy applied by GetModifications.
func (a *Adapter) Policy() FilterPolicy {
	return PolicyFor(a.settings)
}

// SyncsSource reports whether GetSource resynchronizes the sandbox.
func (a *Adapter) SyncsSource() bool {
	return a.settings.AutoGetSource
}

// Checkpoints reports whether LabelSourceControl checkpoints the project for result.
func (a *Adapter) Checkpoints(result BuildResult) bool {
	return a.settings.CheckpointOnSuccess && result.Succeeded
}

// GetModifications returns the members changed in the build cycle [from, to].
// The result is never nil. Any failure aborts the call without a partial list.
func (a *Adapter) GetModifications(ctx context.Context, from, to time.Time) ([]Modification, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, &ConfigurationError{Field: "timeframe", Reason: fmt.Sprintf("ends (%s) before it starts (%s)", to.Format(time.RFC3339), from.Format(time.RFC3339))}
	}

	out, err := a.run(ctx, a.settings.ViewSandboxChangesCommand())
	if err != nil {
		return nil, fmt.Errorf("list sandbox changes: %w", err)
	}
	mods, err := ParseSandboxChanges(strings.NewReader(out))
	if err != nil {
		return nil, err
	}

	enricher := &Enricher{
		Invoker:  a.invoker,
		Settings: a.settings,
		Workers:  a.workers,
		Logger:   a.logger,
	}
	if err := enricher.Enrich(ctx, mods); err != nil {
		return nil, fmt.Errorf("enrich modifications: %w", err)
	}

	policy := a.Policy()
	kept := a.filter.Apply(policy.Apply(mods, from, to))

	a.logger.WithFields(logrus.Fields{
		"listed": len(mods),
		"kept":   len(kept),
		"policy": policy.String(),
	}).Info("Detected sandbox modifications")
	return kept, nil
}

// GetSource resynchronizes the sandbox when AutoGetSource is enabled and then
// clears read-only attributes across the sandbox tree.
func (a *Adapter) GetSource(ctx context.Context, result BuildResult) error {
	if !a.SyncsSource() {
		a.logger.Debug("AutoGetSource disabled, leaving sandbox untouched")
		return nil
	}
	if err := a.validate(); err != nil {
		return err
	}

	if _, err := a.run(ctx, a.settings.ResyncCommand()); err != nil {
		return fmt.Errorf("resync sandbox: %w", err)
	}
	cleared, err := ClearReadOnly(a.settings.SandboxRoot)
	if err != nil {
		return err
	}
	a.logger.WithFields(logrus.Fields{
		"sandbox": a.settings.SandboxPath(),
		"cleared": cleared,
		"label":   result.Label,
	}).Info("Resynchronized sandbox")
	return nil
}

// LabelSourceControl checkpoints the project with the build label when
// CheckpointOnSuccess is enabled and the build succeeded.
func (a *Adapter) LabelSourceControl(ctx context.Context, result BuildResult) error {
	if !a.Checkpoints(result) {
		return nil
	}
	if err := a.validate(); err != nil {
		return err
	}
	if err := ValidateLabel(result.Label); err != nil {
		return err
	}

	if _, err := a.run(ctx, a.settings.CheckpointCommand(result.Label)); err != nil {
		return fmt.Errorf("checkpoint %q: %w", result.Label, err)
	}
	a.logger.WithField("label", result.Label).Info("Checkpointed project")
	return nil
}

func (a *Adapter) validate() error {
	if err := a.settings.Validate(); err != nil {
		return err
	}
	return a.filter.Validate()
}

func (a *Adapter) run(ctx context.Context, cmd Command) (string, error) {
	a.logger.WithField("command", cmd.String()).Debug("Running si")
	return run(ctx, a.invoker, cmd, a.settings.Timeout)
}
