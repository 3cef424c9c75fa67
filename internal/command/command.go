package command

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Spec describes one external program invocation.
type Spec struct {
	Name string
	Args []string

	// Interactive attaches the program to the terminal so it can prompt the
	// operator (sudo's password prompt). Output is not captured.
	Interactive bool
}

func (s Spec) String() string {
	return strings.Join(append([]string{s.Name}, s.Args...), " ")
}

type Runner interface {
	Run(ctx context.Context, spec Spec) error
}

// Error is returned when a program exits unsuccessfully.
type Error struct {
	Spec     Spec
	ExitCode int
	Output   string
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Spec, e.Err)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

type ExecRunner struct {
	Logger hclog.Logger
}

func NewExecRunner(logger hclog.Logger) *ExecRunner {
	return &ExecRunner{Logger: logger}
}

// Run blocks until the program exits.
func (r *ExecRunner) Run(ctx context.Context, spec Spec) error {
	if spec.Name == "" {
		return fmt.Errorf("command is empty")
	}

	cmd := exec.CommandContext(ctx, spec.Name, spec.Args...)
	hideWindow(cmd)

	var output bytes.Buffer
	if spec.Interactive {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stdout = &output
		cmd.Stderr = &output
	}

	r.Logger.Debug("running command", "command", spec.String(), "interactive", spec.Interactive)

	err := cmd.Run()
	if err == nil {
		return nil
	}

	exitCode := 1
	if exitErr, ok := err.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	}
	r.Logger.Debug("command failed", "command", spec.String(), "exit_code", exitCode, "error", err)

	return &Error{
		Spec:     spec,
		ExitCode: exitCode,
		Output:   strings.TrimSpace(output.String()),
		Err:      err,
	}
}
