package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/masmgr/sisync/cmd"
)

// TestApp_Commands verifies every operation is reachable from the CLI.
func TestApp_Commands(t *testing.T) {
	app := cmd.App()

	for _, name := range []string{"modifications", "getsource", "label", "watch", "commands"} {
		if app.Command(name) == nil {
			t.Errorf("command %q not registered", name)
		}
	}
}

// TestApp_CommandsOutput runs the dry-run command end to end.
func TestApp_CommandsOutput(t *testing.T) {
	t.Setenv("SISYNC_CONFIG", "")
	app := cmd.App()
	var out bytes.Buffer
	app.Writer = &out

	args := []string{"sisync", "--config", t.TempDir() + "/none.yaml", "commands",
		"--sandbox-root", "/sb", "--sandbox-file", "project.pj", "--label", "42", "src/a.c"}
	if err := app.Run(args); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	for _, want := range []string{"viewsandbox --nopersist", "memberinfo --xmlapi", "resync --overwriteChanged", "'Build - 42'"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}
