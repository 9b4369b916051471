package mks

import (
	"path"
	"strings"
	"time"
)

// ModificationType represents the kind of change reported for a member.
type ModificationType string

const (
	ModificationAdded    ModificationType = "added"
	ModificationModified ModificationType = "modified"
	ModificationDeleted  ModificationType = "deleted"
)

// String returns a string representation of the modification type.
func (t ModificationType) String() string {
	return string(t)
}

// Modification represents one changed sandbox member within a build cycle.
type Modification struct {
	Type         ModificationType
	FileName     string
	FolderName   string // Empty when the member lives at the sandbox root
	ModifiedTime time.Time
	UserName     string
	Comment      string
	Version      string
}

// Path returns the slash-separated member path relative to the sandbox root.
func (m Modification) Path() string {
	if m.FolderName == "" {
		return m.FileName
	}
	return path.Join(m.FolderName, m.FileName)
}

// IsDeleted reports whether the member no longer exists in the sandbox.
func (m Modification) IsDeleted() bool {
	return m.Type == ModificationDeleted
}

// BuildResult is the part of the orchestrator's build result the adapter reads.
type BuildResult struct {
	Succeeded bool
	Label     string
	StartTime time.Time
}

// splitMemberPath splits a member path into folder and file name.
// Backslashes are normalized so Windows sandboxes report the same paths.
func splitMemberPath(name string) (folder, file string) {
	name = strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	name = strings.Trim(name, "/")
	folder, file = path.Split(name)
	return strings.TrimSuffix(folder, "/"), file
}
