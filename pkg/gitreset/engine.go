// Package gitreset returns a repository working tree to a clean state
// matching its remote, while preserving designated exceptions.
//
// The phase is best-effort by design: a failed git command is demoted to a
// warning and the sequence advances, because a working container matters more
// here than transactional consistency.
package gitreset

import (
	"context"
	"fmt"
	"time"

	"github.com/codebox-dev/codebox/pkg/errors"
	"github.com/codebox-dev/codebox/pkg/logging"
)

// Remote is the only remote the reset engine synchronizes with.
const Remote = "origin"

// Files and directories spared by the untracked clean. The env file holds
// machine-local credentials no remote can restore.
var DefaultKeepUntracked = []string{".devcontainer.env"}

// Additional survivors of the ignored-files clean: dependency caches for the
// supported ecosystems, expensive to rebuild and safe to keep.
var DefaultKeepIgnored = []string{
	".devcontainer.env",
	"node_modules",
	".venv",
	"vendor",
	"__pycache__",
	".cache",
}

// Policy states how a step failure is treated.
type Policy int

const (
	// FatalOnError aborts the sequence
	FatalOnError Policy = iota
	// WarnAndContinue records a warning and advances
	WarnAndContinue
)

// Step is one unit of the reset sequence.
type Step struct {
	Name   string
	Policy Policy
	Run    func(ctx context.Context) error
}

// Options configures a reset run.
type Options struct {
	Dir           string
	KeepUntracked []string
	KeepIgnored   []string

	// ConfirmContinue is consulted after a failed stash, before the
	// destructive reset proceeds. Nil means continue (non-interactive runs).
	ConfirmContinue func() bool
}

// Report is the terminal state of a reset run.
type Report struct {
	Branch       string
	StashCreated bool
	RemoteSynced bool
	LocalOnly    bool
	Clean        bool
	Warnings     []string
}

// Reset drives the working tree through stash, hard reset, clean, and
// resynchronization with the remote. Only a missing repository is fatal;
// individual git failures degrade to warnings.
func Reset(ctx context.Context, opts Options) (*Report, error) {
	logger := logging.GetLogger("gitreset")
	git := Runner{Dir: opts.Dir}

	if !git.IsRepo(ctx) {
		return nil, errors.Newf(errors.ErrGitCommand, "%s is not a git repository", opts.Dir)
	}

	keepUntracked := opts.KeepUntracked
	if keepUntracked == nil {
		keepUntracked = DefaultKeepUntracked
	}
	keepIgnored := opts.KeepIgnored
	if keepIgnored == nil {
		keepIgnored = DefaultKeepIgnored
	}

	report := &Report{}
	if branch, err := git.CurrentBranch(ctx); err == nil {
		report.Branch = branch
	}

	steps := []Step{
		{
			Name:   "stash uncommitted changes",
			Policy: WarnAndContinue,
			Run: func(ctx context.Context) error {
				dirty, err := git.HasTrackedChanges(ctx)
				if err != nil {
					return err
				}
				if !dirty {
					return nil
				}
				label := fmt.Sprintf("codebox reset %s", time.Now().Format("2006-01-02 15:04:05"))
				if _, err := git.Run(ctx, "stash", "push", "-m", label); err != nil {
					// The stash was the safety net for the reset below.
					// Give the operator a chance to stop here.
					if opts.ConfirmContinue != nil && !opts.ConfirmContinue() {
						return errors.Wrap(err, errors.ErrCancelled, "stash failed and operator declined to continue")
					}
					return err
				}
				report.StashCreated = true
				return nil
			},
		},
		{
			Name:   "reset tracked files",
			Policy: WarnAndContinue,
			Run: func(ctx context.Context) error {
				_, err := git.Run(ctx, "reset", "--hard", "HEAD")
				return err
			},
		},
		{
			Name:   "clean untracked files",
			Policy: WarnAndContinue,
			Run: func(ctx context.Context) error {
				args := append([]string{"clean", "-fd"}, excludeArgs(keepUntracked)...)
				_, err := git.Run(ctx, args...)
				return err
			},
		},
		{
			Name:   "clean ignored files",
			Policy: WarnAndContinue,
			Run: func(ctx context.Context) error {
				args := append([]string{"clean", "-fXd"}, negatedExcludeArgs(keepIgnored)...)
				_, err := git.Run(ctx, args...)
				return err
			},
		},
		{
			Name:   "synchronize with remote",
			Policy: WarnAndContinue,
			Run: func(ctx context.Context) error {
				if !git.HasRemote(ctx, Remote) {
					logger.Info().Msg("No remote configured, skipping fetch")
					return nil
				}
				if _, err := git.Run(ctx, "fetch", "--prune", Remote); err != nil {
					return err
				}
				if report.Branch == "" || report.Branch == "HEAD" {
					return nil
				}
				if !git.RemoteHasBranch(ctx, Remote, report.Branch) {
					logger.Info().Str("branch", report.Branch).Msg("Branch not on remote, keeping local-only branch")
					report.LocalOnly = true
					return nil
				}
				if _, err := git.Run(ctx, "reset", "--hard", Remote+"/"+report.Branch); err != nil {
					return err
				}
				report.RemoteSynced = true
				return nil
			},
		},
		{
			Name:   "normalize line endings",
			Policy: WarnAndContinue,
			Run: func(ctx context.Context) error {
				if _, err := git.Run(ctx, "add", "--renormalize", "."); err != nil {
					return err
				}
				_, err := git.Run(ctx, "reset", "--quiet")
				return err
			},
		},
	}

	for _, step := range steps {
		logger.Debug().Str("step", step.Name).Msg("Running reset step")
		err := step.Run(ctx)
		if err == nil {
			continue
		}
		if errors.IsCancelled(err) {
			return nil, err
		}
		if step.Policy == FatalOnError {
			return nil, errors.Wrapf(err, errors.ErrGitCommand, "reset step %q failed", step.Name)
		}
		warning := fmt.Sprintf("%s: %v", step.Name, err)
		report.Warnings = append(report.Warnings, warning)
		logger.Warn().Str("step", step.Name).Err(err).Msg("Reset step failed, continuing")
	}

	clean, err := git.StatusClean(ctx)
	if err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("final status: %v", err))
	} else {
		report.Clean = clean
	}

	logger.Info().
		Str("branch", report.Branch).
		Bool("stash", report.StashCreated).
		Bool("remoteSynced", report.RemoteSynced).
		Bool("clean", report.Clean).
		Int("warnings", len(report.Warnings)).
		Msg("Repository reset completed")
	return report, nil
}

// excludeArgs renders the exception list as git clean -e flags. A plain
// pattern marks the entry as ignored, which a non -x clean leaves alone.
func excludeArgs(keep []string) []string {
	args := make([]string, 0, len(keep)*2)
	for _, entry := range keep {
		args = append(args, "-e", entry)
	}
	return args
}

// negatedExcludeArgs renders exceptions for the ignored-files clean. Under
// -X an entry must be re-included (negated) to survive, since -e patterns
// extend the ignore rules that -X removes by.
func negatedExcludeArgs(keep []string) []string {
	args := make([]string, 0, len(keep)*2)
	for _, entry := range keep {
		args = append(args, "-e", "!"+entry)
	}
	return args
}
