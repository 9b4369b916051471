package mks

import (
	"context"
	"time"
)

// SourceControl is the surface the build orchestrator drives once per build cycle.
type SourceControl interface {
	GetModifications(ctx context.Context, from, to time.Time) ([]Modification, error)
	GetSource(ctx context.Context, result BuildResult) error
	LabelSourceControl(ctx context.Context, result BuildResult) error
}

// Compile-time interface conformance check.
var _ SourceControl = (*Adapter)(nil)
