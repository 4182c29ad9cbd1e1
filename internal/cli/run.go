package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"dagger.io/dagger"
	"github.com/spf13/cobra"

	"github.com/your-org/pipelines/internal/gitinfo"
	"github.com/your-org/pipelines/pkg/engine"
	"github.com/your-org/pipelines/pkg/pipeline"
)

// newRunCmd creates the run command
func newRunCmd() *cobra.Command {
	var (
		timeout  time.Duration
		repoPath string
		quiet    bool
	)

	cmd := &cobra.Command{
		Use:   "run <action>",
		Short: "Run a pipeline action and print its output",
		Long: `Run a named pipeline action through the Dagger engine and print the
captured standard output. Checks are addressed by their registered name,
e.g. "check: lint".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			logOutput := os.Stderr
			logger := slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{
				Level: slog.LevelWarn,
			}))
			if !quiet {
				logger = slog.New(slog.NewTextHandler(logOutput, nil))
			}

			dag, err := dagger.Connect(ctx, dagger.WithLogOutput(logOutput))
			if err != nil {
				return fmt.Errorf("failed to connect to dagger: %w", err)
			}
			defer dag.Close()

			cfg := &pipeline.Config{
				ExecTimeout: timeout,
			}
			if repoPath != "" {
				git, err := gitinfo.NewResolver(repoPath)
				if err != nil {
					return err
				}
				cfg.Git = git
			}

			p, err := pipeline.New(engine.New(dag), cfg, logger)
			if err != nil {
				return err
			}

			output, err := p.Output(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 5*time.Minute, "Maximum time to wait for the action to finish")
	cmd.Flags().StringVar(&repoPath, "repo", "", "Repository path to stamp commit and branch metadata on the run")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only log warnings and errors")

	return cmd
}
