package runner

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"
)

func requireUnixShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tests rely on a POSIX shell")
	}
}

func TestRun_CapturesStdoutAndStderr(t *testing.T) {
	requireUnixShell(t)

	out, err := NewExec().Run(context.Background(), Invocation{
		Command: "sh",
		Args:    []string{"-c", "echo out; echo err >&2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ExitCode != 0 {
		t.Errorf("expected exit code 0, got %d", out.ExitCode)
	}
	if out.Stdout != "out\n" {
		t.Errorf("expected stdout %q, got %q", "out\n", out.Stdout)
	}
	if out.Stderr != "err\n" {
		t.Errorf("expected stderr %q, got %q", "err\n", out.Stderr)
	}
}

func TestRun_NonZeroExit(t *testing.T) {
	requireUnixShell(t)

	out, err := NewExec().Run(context.Background(), Invocation{
		Command: "sh",
		Args:    []string{"-c", "echo failed >&2; exit 3"},
	})
	if err != nil {
		t.Fatalf("expected no error for non-zero exit, got %v", err)
	}
	if out.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %d", out.ExitCode)
	}
	if out.Stderr != "failed\n" {
		t.Errorf("expected stderr %q, got %q", "failed\n", out.Stderr)
	}
}

func TestRun_StdinPayload(t *testing.T) {
	requireUnixShell(t)

	out, err := NewExec().Run(context.Background(), Invocation{
		Command: "sh",
		Args:    []string{"-c", "cat"},
		Stdin:   []byte(`{"query":"x"}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Stdout != `{"query":"x"}` {
		t.Errorf("expected stdin echoed back, got %q", out.Stdout)
	}
}

func TestRun_Timeout(t *testing.T) {
	requireUnixShell(t)

	start := time.Now()
	_, err := NewExec().Run(context.Background(), Invocation{
		Command: "sleep",
		Args:    []string{"10"},
		Timeout: 100 * time.Millisecond,
	})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("timeout did not kill the process promptly, took %s", elapsed)
	}
}

func TestRun_LaunchFailure(t *testing.T) {
	_, err := NewExec().Run(context.Background(), Invocation{
		Command: "definitely-not-a-real-binary-1b2c3",
	})
	if err == nil {
		t.Fatal("expected error for missing executable")
	}
	if errors.Is(err, ErrTimeout) {
		t.Error("launch failure must not be reported as timeout")
	}
}
