package testlist

// exec.go contains execution of a test binary's self-listing mode.

import (
	"context"
	"os/exec"
	"strings"

	"github.com/perfgo/nextest/runner"
)

var listArgs = []string{"--list", "--format", "terse"}

// runListing runs the binary with and without --ignored and returns both outputs.
func (a *TestArtifact) runListing(ctx context.Context, r *runner.TargetRunner) (nonIgnored, ignored string, err error) {
	platformRunner := r.ForBuildPlatform(a.BuildPlatform)

	nonIgnored, err = a.execSingle(ctx, false, platformRunner)
	if err != nil {
		return "", "", err
	}
	ignored, err = a.execSingle(ctx, true, platformRunner)
	if err != nil {
		return "", "", err
	}
	return nonIgnored, ignored, nil
}

func (a *TestArtifact) execSingle(ctx context.Context, ignored bool, r *runner.PlatformRunner) (string, error) {
	args := append([]string{}, listArgs...)
	if ignored {
		args = append(args, "--ignored")
	}
	program, argv := r.BuildArgs(a.BinaryPath, args...)

	cmd := exec.CommandContext(ctx, program, argv...)
	cmd.Dir = a.Cwd

	// Capture stdout and stderr separately
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return "", &ProcessInvocationError{
			Command: runner.QuoteCommand(program, argv),
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}

	return stdout.String(), nil
}
