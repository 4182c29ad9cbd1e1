// Package testutil provides test doubles for the pipeline service.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/your-org/pipelines/pkg/engine"
)

// MockRunner is a test implementation of engine.ContainerRunner
type MockRunner struct {
	mu     sync.Mutex
	Stdout string
	Stderr string
	RunErr error

	// Calls records every invocation for assertions
	Calls []MockCall
}

// MockCall captures the arguments of a single Run invocation
type MockCall struct {
	BaseImage string
	Command   []string
}

// NewMockRunner creates a mock runner that returns the given stdout
func NewMockRunner(stdout string) *MockRunner {
	return &MockRunner{
		Stdout: stdout,
	}
}

// Run mock implementation
func (m *MockRunner) Run(ctx context.Context, baseImage string, opts *engine.Options) (*engine.Result, error) {
	m.mu.Lock()
	var command []string
	if opts != nil {
		command = append([]string(nil), opts.Command...)
	}
	m.Calls = append(m.Calls, MockCall{
		BaseImage: baseImage,
		Command:   command,
	})
	m.mu.Unlock()

	if m.RunErr != nil {
		return nil, m.RunErr
	}

	now := time.Now()
	return &engine.Result{
		ExitCode:  0,
		Stdout:    m.Stdout,
		Stderr:    m.Stderr,
		StartTime: now,
		EndTime:   now,
		Duration:  time.Millisecond,
	}, nil
}

// CallCount returns how many times Run was invoked
func (m *MockRunner) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
