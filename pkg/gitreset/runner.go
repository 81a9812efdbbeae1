package gitreset

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/codebox-dev/codebox/pkg/logging"
)

// Runner executes git with an explicit working directory. The process-global
// current directory is never touched, so early returns cannot leave the
// process somewhere unexpected.
type Runner struct {
	Dir string
}

// Run executes a git command and returns its combined output. A non-zero
// exit yields an error carrying the output.
func (r Runner) Run(ctx context.Context, args ...string) (string, error) {
	logging.LogCommand("git", args)

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	out, err := cmd.CombinedOutput()
	text := strings.TrimSpace(string(out))
	if err != nil {
		return text, fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, text)
	}
	return text, nil
}

// Output executes a git command and returns stdout only, for discovery
// commands whose output is consumed.
func (r Runner) Output(ctx context.Context, args ...string) (string, error) {
	logging.LogCommand("git", args)

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// IsRepo reports whether the directory is inside a git work tree.
func (r Runner) IsRepo(ctx context.Context) bool {
	out, err := r.Output(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// CurrentBranch returns the checked-out branch name.
func (r Runner) CurrentBranch(ctx context.Context) (string, error) {
	return r.Output(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}

// HasRemote reports whether the named remote is configured.
func (r Runner) HasRemote(ctx context.Context, remote string) bool {
	_, err := r.Output(ctx, "remote", "get-url", remote)
	return err == nil
}

// RemoteHasBranch reports whether the remote advertises the branch. Only the
// exit status is consumed.
func (r Runner) RemoteHasBranch(ctx context.Context, remote, branch string) bool {
	_, err := r.Run(ctx, "ls-remote", "--exit-code", "--heads", remote, branch)
	return err == nil
}

// HasTrackedChanges reports staged or unstaged modifications to tracked files.
func (r Runner) HasTrackedChanges(ctx context.Context) (bool, error) {
	out, err := r.Output(ctx, "status", "--porcelain", "--untracked-files=no")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// StatusClean reports whether git status shows nothing at all.
func (r Runner) StatusClean(ctx context.Context) (bool, error) {
	out, err := r.Output(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out == "", nil
}
