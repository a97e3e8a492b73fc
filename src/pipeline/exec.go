package pipeline

import (
	"context"
	"errors"
	"os/exec"
)

// runCommand executes argv in dir, capturing combined output.
// A missing binary or start failure reports exit code -1 with the error
// text as output, so advisory gating still applies uniformly.
func runCommand(ctx context.Context, dir string, argv []string) (output string, exitCode int) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	if err == nil {
		return string(out), 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return string(out), exitErr.ExitCode()
	}

	// Binary not found, permission denied, context cancelled before start.
	return string(out) + err.Error() + "\n", -1
}
