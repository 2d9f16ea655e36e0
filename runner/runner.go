// Package runner resolves the wrapper programs (emulators, remote
// launchers, ...) test binaries have to be executed through.
package runner

// runner.go contains utilities for building wrapped command lines.

import (
	"fmt"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/anmitsu/go-shlex"

	"github.com/perfgo/nextest/model"
)

const (
	// EnvTargetRunner overrides the runner for target binaries.
	EnvTargetRunner = "NEXTEST_TARGET_RUNNER"
	// EnvHostRunner overrides the runner for host binaries.
	EnvHostRunner = "NEXTEST_HOST_RUNNER"
)

// PlatformRunner is a wrapper program with fixed arguments. The test binary
// path is appended after the fixed arguments.
type PlatformRunner struct {
	binary string
	args   []string
}

// Parse splits a runner command line (e.g. "qemu-aarch64 -L /usr/aarch64")
// using shell word rules.
func Parse(command string) (*PlatformRunner, error) {
	words, err := shlex.Split(command, true)
	if err != nil {
		return nil, fmt.Errorf("invalid runner %q: %w", command, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("invalid runner %q: no program given", command)
	}
	return &PlatformRunner{binary: words[0], args: words[1:]}, nil
}

// Binary returns the wrapper's executable.
func (r *PlatformRunner) Binary() string {
	return r.binary
}

// Args returns the wrapper's fixed arguments.
func (r *PlatformRunner) Args() []string {
	return r.args
}

// BuildArgs returns the program and argument vector that execute binary
// with args. Without a runner (r == nil) the binary is the program.
func (r *PlatformRunner) BuildArgs(binary string, args ...string) (string, []string) {
	if r == nil {
		return binary, append([]string{}, args...)
	}

	argv := make([]string, 0, len(r.args)+1+len(args))
	argv = append(argv, r.args...)
	argv = append(argv, binary)
	argv = append(argv, args...)
	return r.binary, argv
}

// BuildCommand joins BuildArgs into a shell-escaped command line.
func (r *PlatformRunner) BuildCommand(binary string, args ...string) string {
	program, argv := r.BuildArgs(binary, args...)
	return QuoteCommand(program, argv)
}

// QuoteCommand renders program and argv as a single shell-escaped line.
func QuoteCommand(program string, argv []string) string {
	parts := make([]string, 0, len(argv)+1)
	parts = append(parts, shellescape.Quote(program))
	for _, arg := range argv {
		parts = append(parts, shellescape.Quote(arg))
	}
	return strings.Join(parts, " ")
}

func (r *PlatformRunner) String() string {
	if r == nil {
		return ""
	}
	return QuoteCommand(r.binary, r.args)
}

// TargetRunner holds the optional runner of each build platform. A nil
// *TargetRunner runs everything natively.
type TargetRunner struct {
	host   *PlatformRunner
	target *PlatformRunner
}

// New parses the host and target runner command lines. Empty strings mean
// no runner for that platform.
func New(hostCommand, targetCommand string) (*TargetRunner, error) {
	t := &TargetRunner{}
	if hostCommand != "" {
		host, err := Parse(hostCommand)
		if err != nil {
			return nil, fmt.Errorf("host runner: %w", err)
		}
		t.host = host
	}
	if targetCommand != "" {
		target, err := Parse(targetCommand)
		if err != nil {
			return nil, fmt.Errorf("target runner: %w", err)
		}
		t.target = target
	}
	return t, nil
}

// FromEnv resolves the runners, preferring the environment variables over
// the given defaults.
func FromEnv(getenv func(string) string, hostDefault, targetDefault string) (*TargetRunner, error) {
	host := hostDefault
	if v := getenv(EnvHostRunner); v != "" {
		host = v
	}
	target := targetDefault
	if v := getenv(EnvTargetRunner); v != "" {
		target = v
	}
	return New(host, target)
}

// ForBuildPlatform returns the runner for binaries built for p, or nil if
// they run natively.
func (t *TargetRunner) ForBuildPlatform(p model.BuildPlatform) *PlatformRunner {
	if t == nil {
		return nil
	}
	switch p {
	case model.BuildPlatformHost:
		return t.host
	case model.BuildPlatformTarget:
		return t.target
	}
	return nil
}
