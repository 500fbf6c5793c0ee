package relay

import (
	"context"
	"strings"
	"testing"
)

func TestExecRunnerCombinedOutput(t *testing.T) {
	out, err := NewExecRunner().Run(context.Background(), "sh", "-c", "echo to-stdout; echo to-stderr 1>&2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "to-stdout") || !strings.Contains(s, "to-stderr") {
		t.Errorf("combined output = %q, want both streams", s)
	}
}

func TestExecRunnerExitError(t *testing.T) {
	out, err := NewExecRunner().Run(context.Background(), "sh", "-c", "echo failing; exit 3")
	if err == nil {
		t.Fatal("expected error for nonzero exit")
	}
	if !strings.Contains(string(out), "failing") {
		t.Errorf("output = %q, want output captured despite failure", out)
	}
}

func TestExecRunnerMissingCommand(t *testing.T) {
	if _, err := NewExecRunner().Run(context.Background(), "definitely-not-a-command-kmx"); err == nil {
		t.Fatal("expected error for missing command")
	}
}
