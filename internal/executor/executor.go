// Package executor runs the external search process and captures its output.
package executor

import (
	"context"
	"io"
	"log"
	"os/exec"

	"golang.org/x/sync/errgroup"
)

// SpawnFailureExit is the sentinel exit code reported when the process could
// not even be started; the failure message takes the place of stderr.
const SpawnFailureExit = -1

// Result carries everything the backend process produced.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes one backend invocation rooted at a directory. argv[0] is
// the executable name.
type Runner interface {
	Run(ctx context.Context, root string, argv []string) Result
}

// ProcessRunner is the real subprocess-backed Runner.
type ProcessRunner struct{}

// NewProcessRunner creates a process-backed runner.
func NewProcessRunner() Runner {
	return ProcessRunner{}
}

// Run starts the process with the working directory set to root and reads
// both streams to EOF before waiting on the process. Draining first matters:
// waiting while a pipe is full deadlocks the child against the parent.
func (ProcessRunner) Run(ctx context.Context, root string, argv []string) Result {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = root

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Result{Stderr: err.Error(), ExitCode: SpawnFailureExit}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Result{Stderr: err.Error(), ExitCode: SpawnFailureExit}
	}

	if err := cmd.Start(); err != nil {
		log.Printf("Failed to start %s: %v", argv[0], err)
		return Result{Stderr: err.Error(), ExitCode: SpawnFailureExit}
	}

	var outData, errData []byte
	var g errgroup.Group
	g.Go(func() error {
		outData, _ = io.ReadAll(stdout)
		return nil
	})
	g.Go(func() error {
		errData, _ = io.ReadAll(stderr)
		return nil
	})
	_ = g.Wait()

	exitCode := 0
	if err := cmd.Wait(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			log.Printf("Wait failed for %s: %v", argv[0], err)
			exitCode = SpawnFailureExit
		}
	}

	return Result{
		Stdout:   string(outData),
		Stderr:   string(errData),
		ExitCode: exitCode,
	}
}
