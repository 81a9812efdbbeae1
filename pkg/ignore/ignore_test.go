package ignore

import (
	"path/filepath"
	"testing"

	"github.com/codebox-dev/codebox/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileCreatesFile(t *testing.T) {
	dir := testutil.TempDir(t)
	path := filepath.Join(dir, ".gitignore")

	result, err := Reconcile(path, DefaultPatterns)
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, DefaultPatterns, result.Added)

	content := testutil.ReadFile(t, path)
	assert.Contains(t, content, CommentLine)
	for _, p := range DefaultPatterns {
		assert.Contains(t, content, p)
	}
}

func TestReconcilePreservesExistingContent(t *testing.T) {
	dir := testutil.TempDir(t)
	existing := "# my project\n*.log\nbuild/\n"
	path := testutil.CreateFile(t, dir, ".gitignore", existing)

	result, err := Reconcile(path, []string{".devcontainer.env", "build/"})
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, []string{".devcontainer.env"}, result.Added)

	content := testutil.ReadFile(t, path)
	// existing content is an untouched prefix of the output
	assert.True(t, len(content) > len(existing))
	assert.Equal(t, existing, content[:len(existing)])
}

func TestReconcileIsIdempotent(t *testing.T) {
	dir := testutil.TempDir(t)
	path := filepath.Join(dir, ".gitignore")

	_, err := Reconcile(path, DefaultPatterns)
	require.NoError(t, err)
	after1 := testutil.ReadFile(t, path)

	result, err := Reconcile(path, DefaultPatterns)
	require.NoError(t, err)
	assert.Empty(t, result.Added)
	assert.Equal(t, after1, testutil.ReadFile(t, path))
}

func TestReconcileTolerantOfTrailingSlash(t *testing.T) {
	dir := testutil.TempDir(t)
	path := testutil.CreateFile(t, dir, ".gitignore", "node_modules\n.venv\n")

	result, err := Reconcile(path, []string{"node_modules/", ".venv/"})
	require.NoError(t, err)
	assert.Empty(t, result.Added)
}

func TestReconcileSkipsCommentLines(t *testing.T) {
	dir := testutil.TempDir(t)
	path := testutil.CreateFile(t, dir, ".gitignore", "# .devcontainer.env is documented here\n")

	result, err := Reconcile(path, []string{".devcontainer.env"})
	require.NoError(t, err)
	assert.Equal(t, []string{".devcontainer.env"}, result.Added)
}

func TestReconcileMissingTrailingNewline(t *testing.T) {
	dir := testutil.TempDir(t)
	path := testutil.CreateFile(t, dir, ".gitignore", "*.tmp")

	_, err := Reconcile(path, []string{".DS_Store"})
	require.NoError(t, err)

	content := testutil.ReadFile(t, path)
	assert.Contains(t, content, "*.tmp\n")
	assert.Contains(t, content, ".DS_Store\n")
	// the user's last entry and our batch never share a line
	assert.NotContains(t, content, "*.tmp"+CommentLine)
}
