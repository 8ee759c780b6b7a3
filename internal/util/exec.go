package util

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Run executes name with args in cwd and returns its standard output.
// Standard error only shows up in the returned error.
func Run(ctx context.Context, cwd string, name string, args ...string) (string, error) {
	return run(ctx, cwd, nil, name, args...)
}

// RunWithStdin is Run with stdin fed from a string.
func RunWithStdin(ctx context.Context, cwd, stdin, name string, args ...string) (string, error) {
	return run(ctx, cwd, strings.NewReader(stdin), name, args...)
}

func run(ctx context.Context, cwd string, stdin io.Reader, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if cwd != "" {
		cmd.Dir = cwd
	}
	cmd.Stdin = stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("command failed: %s %s: %w (%s)", name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
