package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ErrTimeout is returned when a command exceeds its wall-clock timeout. The
// child process is killed before the error is reported.
var ErrTimeout = errors.New("command timed out")

// Invocation describes a single external command execution.
type Invocation struct {
	Command string
	Args    []string
	Stdin   []byte
	Timeout time.Duration
}

// Outcome is the result of a completed command. Stdout and stderr are captured
// separately; a non-zero ExitCode is not an error at this layer.
type Outcome struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes external commands. Implementations must be safe for
// sequential reuse across invocations.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (*Outcome, error)
}

// Exec runs commands via os/exec with context-based cancellation.
type Exec struct{}

// NewExec creates the default process runner.
func NewExec() *Exec { return &Exec{} }

// Run launches the command and waits for it to exit or the timeout to elapse.
// On timeout the process is killed and ErrTimeout is returned with no partial
// output. Launch failures are returned verbatim.
func (e *Exec) Run(ctx context.Context, inv Invocation) (*Outcome, error) {
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, inv.Command, inv.Args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if len(inv.Stdin) > 0 {
		cmd.Stdin = bytes.NewReader(inv.Stdin)
	}

	err := cmd.Run()
	if ctx.Err() != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ctx.Err()
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Outcome{
				ExitCode: exitErr.ExitCode(),
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
			}, nil
		}
		return nil, fmt.Errorf("launching %q: %w", inv.Command, err)
	}

	return &Outcome{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}, nil
}
