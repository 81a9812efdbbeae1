// Package paths locates the template bundle and resolves deployment targets.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/codebox-dev/codebox/pkg/errors"
	"github.com/codebox-dev/codebox/pkg/logging"
)

// TemplateDirName is the directory inside the bundle that holds the template tree.
const TemplateDirName = "template"

// TemplateRoot returns the template source directory. It lives at a fixed
// relation to the running executable, so the bundle stays self-consistent
// wherever it is placed on disk.
func TemplateRoot() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrTemplateNotFound, "cannot locate executable")
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrTemplateNotFound, "cannot resolve executable path")
	}
	return TemplateRootFrom(exe), nil
}

// TemplateRootFrom computes the template directory for a given executable path.
func TemplateRootFrom(execPath string) string {
	return filepath.Join(filepath.Dir(execPath), TemplateDirName)
}

// ValidateTemplateRoot verifies the template directory exists and is a directory.
func ValidateTemplateRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return errors.Wrapf(err, errors.ErrTemplateNotFound, "template directory not found at %s", root)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrTemplateNotFound, "template path %s is not a directory", root)
	}
	return nil
}

// ResolveTarget resolves a user-supplied project path to an absolute directory.
// "." resolves to the current working directory; any other input is trimmed of
// surrounding quote characters and made absolute. If the path does not exist,
// confirmCreate is consulted; declining yields a cancelled outcome, not a failure.
func ResolveTarget(arg string, confirmCreate func(path string) bool) (string, error) {
	logger := logging.GetLogger("paths")

	arg = strings.TrimSpace(arg)
	arg = strings.Trim(arg, `"'`)
	if arg == "" || arg == "." {
		cwd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrTargetResolve, "cannot determine current directory")
		}
		return cwd, nil
	}

	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTargetResolve, "cannot resolve path %q", arg)
	}

	info, err := os.Stat(abs)
	switch {
	case err == nil:
		if !info.IsDir() {
			return "", errors.Newf(errors.ErrTargetResolve, "target %s exists but is not a directory", abs)
		}
		return abs, nil
	case os.IsNotExist(err):
		if confirmCreate == nil || !confirmCreate(abs) {
			logger.Info().Str("target", abs).Msg("Target creation declined")
			return "", errors.Newf(errors.ErrCancelled, "target %s does not exist", abs)
		}
		if err := os.MkdirAll(abs, 0755); err != nil {
			return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create target directory %s", abs)
		}
		logger.Info().Str("target", abs).Msg("Created target directory")
		return abs, nil
	default:
		return "", errors.Wrapf(err, errors.ErrTargetResolve, "cannot inspect path %s", abs)
	}
}
