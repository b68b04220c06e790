package runner

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestCommand_String(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{
			name: "tool only",
			cmd:  Command{Tool: "rsnapshot"},
			want: "rsnapshot",
		},
		{
			name: "tool with args",
			cmd:  Command{Tool: "rsnapshot", Args: []string{"-c", "/etc/rsnapshot.conf", "daily"}},
			want: "rsnapshot -c /etc/rsnapshot.conf daily",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cmd.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCommandError_Format(t *testing.T) {
	cause := errors.New("exit status 2")
	err := NewCommandError("weekly", 2, cause)

	msg := err.Error()
	if msg != "external command error [tier=weekly, exit=2]: exit status 2" {
		t.Errorf("unexpected error message: %q", msg)
	}
	if !errors.Is(err, cause) {
		t.Error("expected CommandError to unwrap to its cause")
	}
}

func TestExecRunner_Success(t *testing.T) {
	var out bytes.Buffer
	runner := NewExecRunner(nil)
	runner.Stdout = &out

	cmd := Command{Tool: "sh", Args: []string{"-c", "echo snapshot-done"}, Tier: "daily"}
	if err := runner.Run(context.Background(), cmd); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if !bytes.Contains(out.Bytes(), []byte("snapshot-done")) {
		t.Errorf("expected child stdout to be forwarded, got %q", out.String())
	}
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	runner := NewExecRunner(nil)
	runner.Stdout = &bytes.Buffer{}
	runner.Stderr = &bytes.Buffer{}

	cmd := Command{Tool: "sh", Args: []string{"-c", "exit 3"}, Tier: "monthly"}
	err := runner.Run(context.Background(), cmd)
	if err == nil {
		t.Fatal("expected non-zero exit to fail")
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected *CommandError, got %T", err)
	}
	if cmdErr.Tier != "monthly" {
		t.Errorf("expected tier %q, got %q", "monthly", cmdErr.Tier)
	}
	if cmdErr.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %d", cmdErr.ExitCode)
	}
}

func TestExecRunner_ToolNotFound(t *testing.T) {
	runner := NewExecRunner(nil)
	runner.Stdout = &bytes.Buffer{}
	runner.Stderr = &bytes.Buffer{}

	cmd := Command{Tool: "definitely-not-a-real-tool-4a1b", Tier: "daily"}
	err := runner.Run(context.Background(), cmd)
	if err == nil {
		t.Fatal("expected missing tool to fail")
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected *CommandError, got %T", err)
	}
	if cmdErr.ExitCode != -1 {
		t.Errorf("expected exit code -1 for a tool that never started, got %d", cmdErr.ExitCode)
	}
}
