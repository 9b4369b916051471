package mks

import (
	"fmt"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// FilterPolicy selects how a bulk listing is trimmed to the build cycle.
type FilterPolicy int

const (
	// FilterByTimestamp keeps modifications whose time lies within [from, to].
	FilterByTimestamp FilterPolicy = iota
	// FilterByCheckpoint trusts si's checkpoint boundary and keeps the listing as is.
	FilterByCheckpoint
)

// String returns a string representation of the policy.
func (p FilterPolicy) String() string {
	switch p {
	case FilterByTimestamp:
		return "timestamp"
	case FilterByCheckpoint:
		return "checkpoint"
	default:
		return "unknown"
	}
}

// PolicyFor returns the filter policy implied by the settings.
// When builds are checkpointed the sandbox listing is already scoped by the
// last checkpoint, so timestamp filtering would restrict it twice.
func PolicyFor(s Settings) FilterPolicy {
	if s.CheckpointOnSuccess {
		return FilterByCheckpoint
	}
	return FilterByTimestamp
}

// Apply trims mods according to the policy.
func (p FilterPolicy) Apply(mods []Modification, from, to time.Time) []Modification {
	if p == FilterByCheckpoint {
		return mods
	}
	return FilterTimeframe(mods, from, to)
}

// FilterTimeframe keeps modifications with from <= time <= to, and every deletion.
// Order is preserved.
func FilterTimeframe(mods []Modification, from, to time.Time) []Modification {
	kept := make([]Modification, 0, len(mods))
	for _, m := range mods {
		if m.IsDeleted() || InTimeframe(m.ModifiedTime, from, to) {
			kept = append(kept, m)
		}
	}
	return kept
}

// InTimeframe reports whether t lies within the closed interval [from, to].
func InTimeframe(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

// PathFilter restricts modifications by member path using doublestar globs.
type PathFilter struct {
	Include []string
	Exclude []string
}

// Validate reports the first malformed pattern.
func (f PathFilter) Validate() error {
	for _, p := range append(append([]string{}, f.Include...), f.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return &ConfigurationError{Field: "filters", Reason: fmt.Sprintf("has invalid pattern %q", p)}
		}
	}
	return nil
}

// Matches checks a slash-separated member path against the patterns.
// Exclude patterns win; with no include patterns every path is accepted.
func (f PathFilter) Matches(path string) bool {
	path = strings.ReplaceAll(path, "\\", "/")

	for _, pattern := range f.Exclude {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return false
		}
	}
	if len(f.Include) == 0 {
		return true
	}
	for _, pattern := range f.Include {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}
	return false
}

// Apply returns the modifications whose path matches, preserving order.
func (f PathFilter) Apply(mods []Modification) []Modification {
	if len(f.Include) == 0 && len(f.Exclude) == 0 {
		return mods
	}
	kept := make([]Modification, 0, len(mods))
	for _, m := range mods {
		if f.Matches(m.Path()) {
			kept = append(kept, m)
		}
	}
	return kept
}
