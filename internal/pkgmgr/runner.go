package pkgmgr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// Runner executes external commands
type Runner interface {
	// Run executes the command with output streamed to the terminal
	Run(ctx context.Context, name string, args ...string) error
	// Output executes the command and returns its stdout
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct {
	// Stdin is nil when commands must not read the terminal
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	log    *log.Logger
}

// NewExecRunner creates a runner writing to the process stdout and stderr
func NewExecRunner(logger *log.Logger) *ExecRunner {
	return &ExecRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr, log: logger}
}

// Run executes name with args. The last stderr line is attached to the
// returned error.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	r.log.Debug("Running command", "cmd", name, "args", strings.Join(args, " "))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = io.MultiWriter(r.Stderr, &stderr)

	if err := cmd.Run(); err != nil {
		return commandError(name, args, err, stderr.Bytes())
	}
	return nil
}

// Output executes name with args and returns stdout
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	r.log.Debug("Querying command", "cmd", name, "args", strings.Join(args, " "))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return out, commandError(name, args, err, stderr.Bytes())
	}
	return out, nil
}

func commandError(name string, args []string, err error, stderr []byte) error {
	cmdline := strings.TrimSpace(name + " " + strings.Join(args, " "))
	if line := lastLine(stderr); line != "" {
		return fmt.Errorf("%s: %w: %s", cmdline, err, line)
	}
	return fmt.Errorf("%s: %w", cmdline, err)
}

func lastLine(b []byte) string {
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
