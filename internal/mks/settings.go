package mks

import (
	"path/filepath"
	"time"
)

const (
	DefaultExecutable = "si"
	DefaultPort       = 7001
	DefaultTimeout    = 10 * time.Minute
	DefaultProduct    = "CruiseControl.NET"
)

// Settings holds the si connection and sandbox configuration for one adapter.
type Settings struct {
	Executable          string        `json:"executable" yaml:"executable"`
	User                string        `json:"user" yaml:"user"`
	Password            string        `json:"password" yaml:"password"`
	Hostname            string        `json:"hostname" yaml:"hostname"`
	Port                int           `json:"port" yaml:"port"`
	SandboxRoot         string        `json:"sandboxRoot" yaml:"sandboxRoot"`
	SandboxFile         string        `json:"sandboxFile" yaml:"sandboxFile"`
	CheckpointOnSuccess bool          `json:"checkpointOnSuccess" yaml:"checkpointOnSuccess"`
	AutoGetSource       bool          `json:"autoGetSource" yaml:"autoGetSource"`
	Timeout             time.Duration `json:"timeout" yaml:"timeout"`
	Product             string        `json:"product" yaml:"product"`
}

// DefaultSettings returns settings with the si defaults applied.
func DefaultSettings() Settings {
	return Settings{
		Executable:    DefaultExecutable,
		Port:          DefaultPort,
		AutoGetSource: true,
		Timeout:       DefaultTimeout,
		Product:       DefaultProduct,
	}
}

// SandboxPath returns the path of the sandbox project file.
func (s Settings) SandboxPath() string {
	return filepath.Join(s.SandboxRoot, s.SandboxFile)
}

// Validate checks the fields every si call depends on.
func (s Settings) Validate() error {
	switch {
	case s.Executable == "":
		return &ConfigurationError{Field: "executable", Reason: "is required"}
	case s.SandboxRoot == "":
		return &ConfigurationError{Field: "sandboxRoot", Reason: "is required"}
	case s.SandboxFile == "":
		return &ConfigurationError{Field: "sandboxFile", Reason: "is required"}
	case s.Port < 0 || s.Port > 65535:
		return &ConfigurationError{Field: "port", Reason: "must be between 0 and 65535"}
	case s.Timeout < 0:
		return &ConfigurationError{Field: "timeout", Reason: "must not be negative"}
	}
	return nil
}
