package testlist

// command.go contains the invocation plan of a single test.

import (
	"context"
	"os"
	"os/exec"
	"sort"

	"github.com/perfgo/nextest/runner"
)

// Command is everything needed to run one test: program, arguments,
// working directory and the variables added to the environment.
type Command struct {
	Program string            `json:"program"`
	Args    []string          `json:"args"`
	Dir     string            `json:"cwd"`
	Env     map[string]string `json:"env"`
}

// Environ returns the added variables as sorted KEY=value pairs.
func (c *Command) Environ() []string {
	env := make([]string, 0, len(c.Env))
	for k, v := range c.Env {
		env = append(env, k+"="+v)
	}
	sort.Strings(env)
	return env
}

// Cmd returns an *exec.Cmd for the plan. The process inherits the current
// environment, with the plan's variables taking precedence.
func (c *Command) Cmd(ctx context.Context) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.Program, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = append(os.Environ(), c.Environ()...)
	return cmd
}

// String renders the program and arguments as a shell-escaped line.
func (c *Command) String() string {
	return runner.QuoteCommand(c.Program, c.Args)
}
