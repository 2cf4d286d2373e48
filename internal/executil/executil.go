// Package executil runs external tools through a narrow interface so that
// adapters can be exercised in tests without spawning processes.
package executil

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Command describes a single external tool invocation. A zero exit status is
// the only success condition.
type Command struct {
	Program string
	Args    []string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Program}, c.Args...), " ")
}

// Runner executes external commands.
type Runner interface {
	Run(ctx context.Context, cmd Command) (output string, err error)
}

type execRunner struct{}

// NewRunner returns a Runner backed by os/exec.
func NewRunner() Runner { return execRunner{} }

func (execRunner) Run(ctx context.Context, c Command) (string, error) {
	cmd := exec.CommandContext(ctx, c.Program, c.Args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s: %w\n%s", c.Program, err, string(b))
	}
	return string(b), nil
}
