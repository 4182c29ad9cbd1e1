// Package gitinfo resolves source metadata from the host repository so run
// records can carry the commit and branch a publish or check ran against.
package gitinfo

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Info holds resolved repository metadata
type Info struct {
	Commit string
	Branch string
}

// Resolver reads git metadata from a repository path
type Resolver struct {
	repoPath string
}

// NewResolver creates a resolver for the given repository path
func NewResolver(repoPath string) (*Resolver, error) {
	// Verify repo path is a git repository
	cmd := exec.Command("git", "-C", repoPath, "rev-parse", "--git-dir")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("not a git repository: %s", repoPath)
	}

	return &Resolver{
		repoPath: repoPath,
	}, nil
}

// Resolve returns the current commit and branch
func (r *Resolver) Resolve(ctx context.Context) (*Info, error) {
	commit, err := r.git(ctx, "rev-parse", "HEAD")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve commit: %w", err)
	}

	branch, err := r.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve branch: %w", err)
	}

	return &Info{
		Commit: commit,
		Branch: branch,
	}, nil
}

func (r *Resolver) git(ctx context.Context, args ...string) (string, error) {
	fullArgs := append([]string{"-C", r.repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}

	return strings.TrimSpace(string(output)), nil
}
