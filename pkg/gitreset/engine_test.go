package gitreset

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/codebox-dev/codebox/pkg/errors"
	"github.com/codebox-dev/codebox/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

// mustGit runs git in dir and fails the test on error.
func mustGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := Runner{Dir: dir}.Run(context.Background(), args...)
	require.NoError(t, err, "git %v", args)
	return out
}

// initRepo creates a repository with an initial commit on main.
func initRepo(t *testing.T) string {
	t.Helper()
	dir := testutil.TempDir(t)
	mustGit(t, dir, "init")
	mustGit(t, dir, "config", "user.name", "Test User")
	mustGit(t, dir, "config", "user.email", "test@example.com")
	mustGit(t, dir, "symbolic-ref", "HEAD", "refs/heads/main")
	testutil.CreateFile(t, dir, "b.txt", "tracked content\n")
	mustGit(t, dir, "add", ".")
	mustGit(t, dir, "commit", "-m", "initial")
	return dir
}

// withRemote wires repo to a fresh bare remote and pushes main.
func withRemote(t *testing.T, repo string) string {
	t.Helper()
	bare := testutil.TempDir(t)
	mustGit(t, bare, "init", "--bare")
	mustGit(t, repo, "remote", "add", "origin", bare)
	mustGit(t, repo, "push", "-u", "origin", "main")
	return bare
}

func TestResetNotARepository(t *testing.T) {
	requireGit(t)
	dir := testutil.TempDir(t)

	_, err := Reset(context.Background(), Options{Dir: dir})
	assert.True(t, errors.IsErrorCode(err, errors.ErrGitCommand))
}

func TestResetConvergesToRemote(t *testing.T) {
	requireGit(t)
	repo := initRepo(t)
	withRemote(t, repo)
	remoteTip := mustGit(t, repo, "rev-parse", "HEAD")

	// local main moves ahead of the remote
	testutil.CreateFile(t, repo, "local-only.txt", "ahead\n")
	mustGit(t, repo, "add", ".")
	mustGit(t, repo, "commit", "-m", "local ahead")

	// one uncommitted modification, one untracked file
	testutil.CreateFile(t, repo, "b.txt", "modified content\n")
	testutil.CreateFile(t, repo, "a.txt", "untracked\n")

	report, err := Reset(context.Background(), Options{Dir: repo})
	require.NoError(t, err)

	assert.Equal(t, "main", report.Branch)
	assert.True(t, report.StashCreated, "the b.txt modification must be stashed")
	assert.True(t, report.RemoteSynced)
	assert.True(t, report.Clean)
	assert.Empty(t, report.Warnings)

	// a stash entry captures the modification
	stashes := mustGit(t, repo, "stash", "list")
	assert.Contains(t, stashes, "codebox reset")

	// untracked file removed, HEAD back at the remote tip, status clean
	assert.False(t, testutil.FileExists(t, filepath.Join(repo, "a.txt")))
	assert.Equal(t, remoteTip, mustGit(t, repo, "rev-parse", "HEAD"))
	assert.Equal(t, "", mustGit(t, repo, "status", "--porcelain"))
}

func TestResetWithoutRemote(t *testing.T) {
	requireGit(t)
	repo := initRepo(t)
	testutil.CreateFile(t, repo, "scratch.txt", "untracked\n")

	report, err := Reset(context.Background(), Options{Dir: repo})
	require.NoError(t, err)

	assert.False(t, report.RemoteSynced)
	assert.False(t, report.StashCreated, "no tracked changes, nothing to stash")
	assert.True(t, report.Clean)
	assert.False(t, testutil.FileExists(t, filepath.Join(repo, "scratch.txt")))
}

func TestResetLocalOnlyBranch(t *testing.T) {
	requireGit(t)
	repo := initRepo(t)
	withRemote(t, repo)
	mustGit(t, repo, "checkout", "-b", "feature")

	report, err := Reset(context.Background(), Options{Dir: repo})
	require.NoError(t, err)

	assert.Equal(t, "feature", report.Branch)
	assert.True(t, report.LocalOnly)
	assert.False(t, report.RemoteSynced)
	// the branch tip survives
	assert.Equal(t, "feature", mustGit(t, repo, "rev-parse", "--abbrev-ref", "HEAD"))
}

func TestResetKeepsExceptions(t *testing.T) {
	requireGit(t)
	repo := initRepo(t)

	// ignored cache dir plus the env file, both on the exception lists
	testutil.CreateFile(t, repo, ".gitignore", "node_modules/\n.devcontainer.env\n")
	mustGit(t, repo, "add", ".gitignore")
	mustGit(t, repo, "commit", "-m", "ignore caches")

	testutil.CreateFile(t, repo, ".devcontainer.env", "SECRET=1\n")
	testutil.CreateFile(t, repo, "node_modules/pkg/index.js", "module.exports = {}\n")
	testutil.CreateFile(t, repo, "stray.txt", "remove me\n")

	report, err := Reset(context.Background(), Options{Dir: repo})
	require.NoError(t, err)
	assert.Empty(t, report.Warnings)

	assert.True(t, testutil.FileExists(t, filepath.Join(repo, ".devcontainer.env")))
	assert.True(t, testutil.FileExists(t, filepath.Join(repo, "node_modules", "pkg", "index.js")))
	assert.False(t, testutil.FileExists(t, filepath.Join(repo, "stray.txt")))
}

func TestResetDetachedHeadSkipsRemoteReset(t *testing.T) {
	requireGit(t)
	repo := initRepo(t)
	withRemote(t, repo)
	mustGit(t, repo, "checkout", "--detach", "HEAD")

	report, err := Reset(context.Background(), Options{Dir: repo})
	require.NoError(t, err)
	assert.Equal(t, "HEAD", report.Branch)
	assert.False(t, report.RemoteSynced)
}
