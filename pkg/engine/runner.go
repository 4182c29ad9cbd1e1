package engine

import (
	"context"
	"fmt"
	"time"

	"dagger.io/dagger"
)

// Options configures a container run
type Options struct {
	Command     []string
	WorkDir     string
	Environment map[string]string
	Timeout     time.Duration
}

// Result contains the captured output of a container run
type Result struct {
	ExitCode  int
	Stdout    string
	Stderr    string
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// ContainerRunner runs a command in a container built from a base image
type ContainerRunner interface {
	Run(ctx context.Context, baseImage string, opts *Options) (*Result, error)
}

// Runner executes commands in containers through a Dagger client
type Runner struct {
	client *dagger.Client
}

// New creates a new runner
func New(client *dagger.Client) *Runner {
	return &Runner{
		client: client,
	}
}

// Run builds a container from baseImage, executes the command and captures
// its output. Whatever the engine reports (image not found, non-zero exit,
// connectivity failure) surfaces here; there is no retry or recovery.
func (r *Runner) Run(ctx context.Context, baseImage string, opts *Options) (*Result, error) {
	if baseImage == "" {
		return nil, fmt.Errorf("%w: base image is required", ErrInvalidOptions)
	}
	if opts == nil || len(opts.Command) == 0 {
		return nil, fmt.Errorf("%w: command is required", ErrInvalidOptions)
	}
	if r.client == nil {
		return nil, ErrNoClient
	}

	// Apply timeout
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	startTime := time.Now()

	// Configure container
	container := r.client.Container().From(baseImage)

	if opts.WorkDir != "" {
		container = container.WithWorkdir(opts.WorkDir)
	}

	for key, value := range opts.Environment {
		container = container.WithEnvVariable(key, value)
	}

	// Execute command
	execContainer := container.WithExec(opts.Command)

	// Get outputs
	stdout, err := execContainer.Stdout(ctx)
	if err != nil {
		// Even on error, try to get stderr for debugging
		stderr, _ := execContainer.Stderr(ctx)
		endTime := time.Now()
		return &Result{
			ExitCode:  -1,
			Stdout:    stdout,
			Stderr:    stderr,
			StartTime: startTime,
			EndTime:   endTime,
			Duration:  endTime.Sub(startTime),
		}, fmt.Errorf("%w: %v", ErrExecFailed, err)
	}

	stderr, _ := execContainer.Stderr(ctx)

	endTime := time.Now()

	// The SDK doesn't expose the exit code directly; a non-zero exit
	// surfaces as an error from Stdout above
	return &Result{
		ExitCode:  0,
		Stdout:    stdout,
		Stderr:    stderr,
		StartTime: startTime,
		EndTime:   endTime,
		Duration:  endTime.Sub(startTime),
	}, nil
}

// RunSimple runs a command without extra configuration
func (r *Runner) RunSimple(ctx context.Context, baseImage string, command ...string) (*Result, error) {
	return r.Run(ctx, baseImage, &Options{
		Command: command,
	})
}
