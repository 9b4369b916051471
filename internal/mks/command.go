package mks

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/kballard/go-shellquote"
)

const passwordFlag = "--password="

// Command is an si invocation as an ordered list of discrete argv tokens.
// No token is ever passed through a shell.
type Command struct {
	Executable string
	Args       []string
}

// Name returns the si subcommand, e.g. "viewsandbox".
func (c Command) Name() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

// String renders the command line with the password masked.
func (c Command) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		if strings.HasPrefix(a, passwordFlag) && len(a) > len(passwordFlag) {
			a = passwordFlag + "****"
		}
		args[i] = a
	}
	return shellquote.Join(append([]string{c.Executable}, args...)...)
}

// commonOptions selects the shared trailing arguments.
type commonOptions struct {
	recurse     bool
	withSandbox bool
}

func (s Settings) commonArgs(opts commonOptions) []string {
	var args []string
	if opts.recurse {
		args = append(args, "-R")
	}
	if opts.withSandbox {
		args = append(args, "-S", s.SandboxPath())
	}
	if s.Hostname != "" {
		args = append(args, "--hostname="+s.Hostname)
		if s.Port > 0 {
			args = append(args, "--port="+strconv.Itoa(s.Port))
		}
	}
	args = append(args,
		"--user="+s.User,
		passwordFlag+s.Password,
		"--quiet",
	)
	return args
}

func (s Settings) command(flags []string, opts commonOptions) Command {
	args := append(flags, s.commonArgs(opts)...)
	return Command{Executable: s.Executable, Args: args}
}

// ResyncCommand overwrites the sandbox with the project state, restoring dropped members.
func (s Settings) ResyncCommand() Command {
	return s.command([]string{
		"resync",
		"--overwriteChanged",
		"--restoreTimestamp",
		"--forceConfirm=yes",
		"--includeDropped",
	}, commonOptions{recurse: true, withSandbox: true})
}

// CheckpointCommand checkpoints the project and labels it with the build label.
// Callers validate the label with ValidateLabel first.
func (s Settings) CheckpointCommand(label string) Command {
	return s.command([]string{
		"checkpoint",
		"-d", fmt.Sprintf("%s Build - %s", s.Product, label),
		"-L", "Build - " + label,
	}, commonOptions{recurse: true, withSandbox: true})
}

// ViewSandboxChangesCommand lists every changed member of the sandbox as XML.
func (s Settings) ViewSandboxChangesCommand() Command {
	return s.command([]string{
		"viewsandbox",
		"--nopersist",
		"--filter=changed:all",
		"--xmlapi",
	}, commonOptions{recurse: true, withSandbox: true})
}

// MemberInfoCommand queries revision details for a single member.
func (s Settings) MemberInfoCommand(mod Modification) Command {
	cmd := s.command([]string{
		"memberinfo",
		"--xmlapi",
	}, commonOptions{})
	cmd.Args = append(cmd.Args, s.MemberPath(mod))
	return cmd
}

// MemberPath returns the absolute sandbox path of a member.
func (s Settings) MemberPath(mod Modification) string {
	if mod.FolderName == "" {
		return filepath.Join(s.SandboxRoot, mod.FileName)
	}
	return filepath.Join(s.SandboxRoot, filepath.FromSlash(mod.FolderName), mod.FileName)
}

// ValidateLabel rejects labels si cannot store verbatim in a checkpoint.
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return &ConfigurationError{Field: "label", Reason: "is required for checkpoint"}
	}
	if strings.ContainsRune(label, '"') {
		return &ConfigurationError{Field: "label", Reason: fmt.Sprintf("%q must not contain double quotes", label)}
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return &ConfigurationError{Field: "label", Reason: fmt.Sprintf("%q must not contain control characters", label)}
		}
	}
	return nil
}
