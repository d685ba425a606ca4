// Package runner executes the external download tool and classifies how it
// finished.
package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/ytdl-ng/ytdl-web/internal/constants"
)

type OutcomeKind int

const (
	// OutcomeSucceeded means the process exited with status 0.
	OutcomeSucceeded OutcomeKind = iota
	// OutcomeFailed means the process ran and exited non-zero.
	OutcomeFailed
	// OutcomeSpawnError means the process could not be started.
	OutcomeSpawnError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	case OutcomeSpawnError:
		return "spawn_error"
	default:
		return "unknown"
	}
}

// Command describes one invocation of an external program.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// String renders the command line for logging.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Outcome is the classified result of running a Command.
type Outcome struct {
	Err      error
	Stdout   []string
	Stderr   []string
	Kind     OutcomeKind
	ExitCode int
}

// Runner runs a command to completion.
type Runner interface {
	Run(ctx context.Context, cmd Command) Outcome
}

// Exec runs commands with os/exec, buffering output in full.
type Exec struct{}

func NewExec() *Exec {
	return &Exec{}
}

func (e *Exec) Run(ctx context.Context, c Command) Outcome {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return classify(err, stdout.Bytes(), stderr.Bytes())
}

func classify(err error, stdout, stderr []byte) Outcome {
	out := Outcome{
		Stdout: SplitLines(stdout),
		Stderr: SplitLines(stderr),
	}

	if err == nil {
		out.Kind = OutcomeSucceeded
		return out
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.Kind = OutcomeFailed
		out.ExitCode = exitErr.ExitCode()
		if out.ExitCode < 0 {
			out.ExitCode = constants.ExitCodeUnknown
		}
		out.Err = err
		return out
	}

	out.Kind = OutcomeSpawnError
	out.ExitCode = constants.ExitCodeUnknown
	out.Err = err
	return out
}

// SplitLines decodes b leniently and splits it on newlines. A trailing "\r"
// is dropped from each line and no empty line is produced after a final
// newline.
func SplitLines(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	s := strings.ToValidUTF8(string(b), "�")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
