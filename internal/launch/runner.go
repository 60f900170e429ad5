package launch

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"golang.org/x/sync/errgroup"
)

// Result holds the raw facts of one executed trainer process. Status
// inference from these facts is Report's job.
type Result struct {
	Elapsed  time.Duration
	ExitCode int
}

// Runner executes assembled trainer commands one at a time. The caller
// blocks until the trainer exits; the launcher defines no internal
// timeout or cancellation beyond the supplied context.
type Runner struct {
	// Stdout receives the trainer's combined output as it streams.
	// Defaults to os.Stdout.
	Stdout io.Writer
	// LogPath, when set, also captures the trainer's output to a file.
	LogPath string
}

// DryRun prints the rendered command without spawning anything. Terminal
// state: no process is ever created for a dry run.
func (r *Runner) DryRun(cmd *Command) {
	out := r.Stdout
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintln(out, cmd.String())
}

// Run spawns the trainer synchronously with its working directory set on
// the child process (the launcher's own working directory is never
// changed). Child stdout and stderr are streamed to Stdout and, when
// configured, a log file. A non-zero trainer exit is not an error here;
// it is reported through Result.ExitCode. The returned error covers
// spawn and plumbing failures only.
func (r *Runner) Run(ctx context.Context, cmd *Command) (*Result, error) {
	out := r.Stdout
	if out == nil {
		out = os.Stdout
	}

	var sink io.Writer = out
	if r.LogPath != "" {
		logFile, err := os.Create(r.LogPath)
		if err != nil {
			return nil, fmt.Errorf("creating run log: %w", err)
		}
		defer logFile.Close()
		sink = io.MultiWriter(out, logFile)
	}

	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir

	stdout, err := c.StdoutPipe()
	if err != nil {
		return nil, err
	}
	stderr, err := c.StderrPipe()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if err := c.Start(); err != nil {
		return nil, fmt.Errorf("starting trainer: %w", err)
	}

	var g errgroup.Group
	g.Go(func() error {
		_, err := io.Copy(sink, stdout)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(sink, stderr)
		return err
	})
	streamErr := g.Wait()

	waitErr := c.Wait()
	elapsed := time.Since(start)

	res := &Result{Elapsed: elapsed, ExitCode: c.ProcessState.ExitCode()}

	if waitErr != nil {
		if _, ok := waitErr.(*exec.ExitError); !ok {
			return nil, fmt.Errorf("waiting for trainer: %w", waitErr)
		}
	}
	if streamErr != nil {
		return res, fmt.Errorf("streaming trainer output: %w", streamErr)
	}
	return res, nil
}
