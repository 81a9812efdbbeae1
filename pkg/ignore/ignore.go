// Package ignore merges required patterns into a project's .gitignore without
// disturbing anything the user already has in it.
package ignore

import (
	"os"
	"strings"

	"github.com/codebox-dev/codebox/pkg/errors"
	"github.com/codebox-dev/codebox/pkg/logging"
)

// CommentLine precedes the batch of appended patterns.
const CommentLine = "# codebox: local environment artifacts"

// DefaultPatterns is the pattern set every deployment target must carry.
// The env file holds machine-local credentials and must never be committed.
var DefaultPatterns = []string{
	".devcontainer.env",
	".venv/",
	"node_modules/",
	"__pycache__/",
	".DS_Store",
}

// Result reports what Reconcile changed.
type Result struct {
	Created bool
	Added   []string
}

// Reconcile ensures every required pattern is present in the ignore file at
// path. Existing content is preserved byte-for-byte; missing patterns are
// appended in one batch after a single comment line. Running twice is a no-op.
func Reconcile(path string, patterns []string) (Result, error) {
	logger := logging.GetLogger("ignore")

	var result Result
	content, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		result.Created = true
		content = nil
	case err != nil:
		return result, errors.Wrapf(err, errors.ErrFileNotFound, "cannot read ignore file %s", path)
	}

	existing := string(content)
	for _, pattern := range patterns {
		if !contains(existing, pattern) {
			result.Added = append(result.Added, pattern)
		}
	}

	if len(result.Added) == 0 {
		logger.Debug().Str("path", path).Msg("Ignore file already contains required patterns")
		return result, nil
	}

	var sb strings.Builder
	sb.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		sb.WriteString("\n")
	}
	if existing != "" {
		sb.WriteString("\n")
	}
	sb.WriteString(CommentLine + "\n")
	for _, pattern := range result.Added {
		sb.WriteString(pattern + "\n")
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "cannot write ignore file %s", path)
	}

	logger.Info().
		Str("path", path).
		Strs("added", result.Added).
		Bool("created", result.Created).
		Msg("Reconciled ignore file")
	return result, nil
}

// contains reports whether a pattern is already present. The match is
// line-based and tolerant of a trailing path separator, so "node_modules"
// satisfies a required "node_modules/".
func contains(content, pattern string) bool {
	want := normalize(pattern)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if normalize(line) == want {
			return true
		}
	}
	return false
}

func normalize(entry string) string {
	return strings.TrimSuffix(strings.TrimSpace(entry), "/")
}
