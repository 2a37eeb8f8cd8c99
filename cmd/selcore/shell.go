package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	osexec "os/exec"
	"strings"
)

// execShell runs pipe commands through /bin/sh.
type execShell struct {
	shell string
	args  []string
}

func newExecShell() *execShell {
	return &execShell{shell: "/bin/sh", args: []string{"-c"}}
}

func (s *execShell) command(ctx context.Context, command string) *osexec.Cmd {
	return osexec.CommandContext(ctx, s.shell, append(s.args, command)...)
}

// Pipe runs command with input on stdin. A non-zero exit is reported
// through the status, not as an error.
func (s *execShell) Pipe(ctx context.Context, input, command string) (string, int, error) {
	cmd := s.command(ctx, command)
	cmd.Stdin = strings.NewReader(input)
	var out bytes.Buffer
	cmd.Stdout = &out

	err := cmd.Run()
	var exitErr *osexec.ExitError
	if errors.As(err, &exitErr) {
		return out.String(), exitErr.ExitCode(), nil
	}
	if err != nil {
		return "", -1, fmt.Errorf("run %q: %w", command, err)
	}
	return out.String(), 0, nil
}

// Eval runs command and returns its output.
func (s *execShell) Eval(ctx context.Context, command string) (string, error) {
	cmd := s.command(ctx, command)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("run %q: %s", command, msg)
		}
		return "", fmt.Errorf("run %q: %w", command, err)
	}
	return out.String(), nil
}
