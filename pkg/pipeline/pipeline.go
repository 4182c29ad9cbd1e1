package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/your-org/pipelines/internal/gitinfo"
	"github.com/your-org/pipelines/internal/metrics"
	"github.com/your-org/pipelines/pkg/action"
	"github.com/your-org/pipelines/pkg/engine"
	"github.com/your-org/pipelines/pkg/run"
)

// BaseImage is the pinned base image both default actions run against
const BaseImage = "python:3.11.1-alpine"

// versionCommand prints the interpreter version to stdout
var versionCommand = []string{"python", "-V"}

// Defaults returns the default action set
func Defaults() []*action.Definition {
	return []*action.Definition{
		{
			Name:        "publish",
			Kind:        action.KindCommand,
			Description: "Publish the client",
			BaseImage:   BaseImage,
			Command:     versionCommand,
		},
		{
			Name:        "lint",
			Kind:        action.KindCheck,
			Description: "Lint the Python SDK",
			BaseImage:   BaseImage,
			Command:     versionCommand,
		},
	}
}

// Config holds configuration for the pipeline
type Config struct {
	ExecTimeout time.Duration
	Git         *gitinfo.Resolver // optional source metadata for run records
}

// Pipeline resolves named actions and runs them through the engine
type Pipeline struct {
	registry *action.Registry
	runner   engine.ContainerRunner
	runs     *run.Store
	config   *Config
	logger   *slog.Logger
}

// New creates a pipeline with the default actions registered
func New(runner engine.ContainerRunner, config *Config, logger *slog.Logger) (*Pipeline, error) {
	if runner == nil {
		return nil, engine.ErrNoClient
	}
	if config == nil {
		config = &Config{}
	}

	registry := action.NewRegistry()
	for _, def := range Defaults() {
		if err := registry.Register(def); err != nil {
			return nil, fmt.Errorf("failed to register default action %s: %w", def.Name, err)
		}
	}

	return &Pipeline{
		registry: registry,
		runner:   runner,
		runs:     run.NewStore(),
		config:   config,
		logger:   logger.With("component", "pipeline"),
	}, nil
}

// Registry exposes the action registry
func (p *Pipeline) Registry() *action.Registry {
	return p.registry
}

// Runs exposes the run store
func (p *Pipeline) Runs() *run.Store {
	return p.runs
}

// Invoke runs the named action and records the outcome. Engine failures
// propagate unmodified beyond wrapping; there is no fallback output.
func (p *Pipeline) Invoke(ctx context.Context, name string) (*run.Record, error) {
	def, err := p.registry.Get(name)
	if err != nil {
		return nil, err
	}

	rec := p.runs.Begin(def.RegisteredName(), string(def.Kind))

	p.logger.Info("running action",
		"action", def.RegisteredName(),
		"run", rec.ID,
		"image", def.BaseImage,
	)

	// Best effort: stamp source metadata on the record
	var src *gitinfo.Info
	if p.config.Git != nil {
		if info, err := p.config.Git.Resolve(ctx); err == nil {
			src = info
		} else {
			p.logger.Warn("failed to resolve git metadata", "error", err)
		}
	}

	result, runErr := p.runner.Run(ctx, def.BaseImage, &engine.Options{
		Command: def.Command,
		Timeout: p.config.ExecTimeout,
	})

	rec, err = p.runs.Finish(rec.ID, func(r *run.Record) {
		if src != nil {
			r.Commit = src.Commit
			r.Branch = src.Branch
		}
		if result != nil {
			r.Output = result.Stdout
			r.ExitCode = result.ExitCode
		}
		if runErr != nil {
			r.Status = run.StatusFailed
			r.Error = runErr.Error()
		} else {
			r.Status = run.StatusSucceeded
		}
	})
	if err != nil {
		return nil, err
	}

	if runErr != nil {
		metrics.ActionRunsTotal.WithLabelValues(rec.Action, "failed").Inc()
		p.logger.Error("action failed",
			"action", rec.Action,
			"run", rec.ID,
			"error", runErr,
		)
		return rec, runErr
	}

	metrics.ActionRunsTotal.WithLabelValues(rec.Action, "success").Inc()
	metrics.ActionRunDuration.WithLabelValues(rec.Action).Observe(result.Duration.Seconds())

	p.logger.Info("action succeeded",
		"action", rec.Action,
		"run", rec.ID,
		"exit_code", rec.ExitCode,
		"duration", result.Duration,
	)

	return rec, nil
}

// Output invokes the named action and returns its captured stdout verbatim
func (p *Pipeline) Output(ctx context.Context, name string) (string, error) {
	rec, err := p.Invoke(ctx, name)
	if err != nil {
		return "", err
	}
	return rec.Output, nil
}
