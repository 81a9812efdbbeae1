// Package deploy copies the template tree into deployment targets and drives
// the deploy-time pipeline.
package deploy

import (
	"io"
	"os"
	"path/filepath"

	"github.com/codebox-dev/codebox/pkg/errors"
	"github.com/codebox-dev/codebox/pkg/logging"
	"github.com/codebox-dev/codebox/pkg/template"
)

// CopyResult reports what a copy strategy did.
type CopyResult struct {
	Copied  int
	Missing []string
}

// CopyTree copies every file of the template into destDir (bulk mode),
// preserving relative structure and creating intermediate directories. The
// first failing file aborts with a fatal error naming the file; files already
// copied remain in place.
func CopyTree(tmpl *template.Template, destDir string) (CopyResult, error) {
	logger := logging.GetLogger("deploy")

	files, err := tmpl.Files()
	if err != nil {
		return CopyResult{}, err
	}

	var result CopyResult
	for _, rel := range files {
		if err := copyFile(tmpl.Path(rel), filepath.Join(destDir, filepath.FromSlash(rel))); err != nil {
			return result, errors.Wrapf(err, errors.ErrFileCopy, "failed to copy %s", rel)
		}
		result.Copied++
	}

	logger.Info().Int("copied", result.Copied).Str("dest", destDir).Msg("Copied template tree")
	return result, nil
}

// CopyManifest copies only the manifest-enumerated files (selective mode).
// Manifest entries absent from the template are skipped and reported, not
// fatal; an actual I/O failure is.
func CopyManifest(tmpl *template.Template, destDir string, entries []string) (CopyResult, error) {
	logger := logging.GetLogger("deploy")

	var result CopyResult
	for _, rel := range entries {
		if !tmpl.Has(rel) {
			logger.Warn().Str("entry", rel).Msg("Manifest entry missing from template, skipping")
			result.Missing = append(result.Missing, rel)
			continue
		}
		if err := copyFile(tmpl.Path(rel), filepath.Join(destDir, filepath.FromSlash(rel))); err != nil {
			return result, errors.Wrapf(err, errors.ErrFileCopy, "failed to copy %s", rel)
		}
		result.Copied++
	}

	logger.Info().
		Int("copied", result.Copied).
		Int("missing", len(result.Missing)).
		Str("dest", destDir).
		Msg("Copied manifest entries")
	return result, nil
}

// PlaceAttributes copies the template's .gitattributes to the target root
// once. An existing attributes file is never overwritten.
func PlaceAttributes(tmpl *template.Template, targetDir string) (bool, error) {
	if !tmpl.Has(template.AttributesName) {
		return false, nil
	}

	dest := filepath.Join(targetDir, template.AttributesName)
	if _, err := os.Stat(dest); err == nil {
		return false, nil
	}

	if err := copyFile(tmpl.Path(template.AttributesName), dest); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileCopy, "failed to copy %s", template.AttributesName)
	}
	return true, nil
}

// copyFile copies one file, creating parent directories and carrying the
// source mode so setup scripts stay executable.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
