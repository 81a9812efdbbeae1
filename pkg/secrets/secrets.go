// Package secrets materializes the machine-local env file from the template.
// An existing env file is never regenerated: it may hold real credentials.
package secrets

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/codebox-dev/codebox/pkg/errors"
	"github.com/codebox-dev/codebox/pkg/logging"
)

// Literal placeholder defaults the template ships with. Only these exact
// values are ever replaced; everything else in the template passes through.
const (
	PlaceholderProject = "my-project"
	PlaceholderName    = "Your Name"
	PlaceholderEmail   = "you@example.com"
)

// Values holds the machine-local identity interpolated into the env file.
type Values struct {
	Project  string
	GitName  string
	GitEmail string
}

// Detect gathers identity values: explicit environment overrides first, then
// the invoking user's global git config, then the target directory name for
// the project. Empty values leave the corresponding placeholder in place.
func Detect(target string) Values {
	v := Values{
		Project:  os.Getenv("PROJECT_NAME"),
		GitName:  os.Getenv("GIT_USER_NAME"),
		GitEmail: os.Getenv("GIT_USER_EMAIL"),
	}

	if v.Project == "" && target != "" {
		v.Project = filepath.Base(target)
	}
	if v.GitName == "" {
		v.GitName = gitConfig("user.name")
	}
	if v.GitEmail == "" {
		v.GitEmail = gitConfig("user.email")
	}
	return v
}

// gitConfig reads a globally configured git value; missing config is fine.
func gitConfig(key string) string {
	logging.LogCommand("git", []string{"config", "--get", key})
	out, err := exec.Command("git", "config", "--get", key).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// Ensure writes the interpolated env file at destPath unless one already
// exists. It returns true when a new file was created; an existing file is
// left completely untouched.
func Ensure(templatePath, destPath string, vals Values) (bool, error) {
	logger := logging.GetLogger("secrets")

	if _, err := os.Stat(destPath); err == nil {
		logger.Info().Str("path", destPath).Msg("Env file already exists, leaving it alone")
		return false, nil
	}

	raw, err := os.ReadFile(templatePath)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileNotFound, "cannot read env template %s", templatePath)
	}

	rendered := Interpolate(string(raw), vals)

	// 0600: the file is expected to hold credentials
	if err := os.WriteFile(destPath, []byte(rendered), 0600); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "cannot write env file %s", destPath)
	}

	logger.Info().Str("path", destPath).Msg("Created env file from template")
	return true, nil
}

// Interpolate replaces recognized placeholder values in KEY=value lines.
// Unrecognized keys and values, comments, and blank lines pass through
// unchanged.
func Interpolate(content string, vals Values) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		switch value {
		case PlaceholderProject:
			if vals.Project != "" {
				lines[i] = key + "=" + vals.Project
			}
		case PlaceholderName:
			if vals.GitName != "" {
				lines[i] = key + "=" + vals.GitName
			}
		case PlaceholderEmail:
			if vals.GitEmail != "" {
				lines[i] = key + "=" + vals.GitEmail
			}
		}
	}
	return strings.Join(lines, "\n")
}
