// Package devcontainer rewrites the deployed devcontainer.json. Edits are
// path-addressed replacements on the raw bytes, so unrelated keys, ordering
// and formatting survive untouched.
package devcontainer

import (
	"os"

	"github.com/codebox-dev/codebox/pkg/errors"
	"github.com/codebox-dev/codebox/pkg/logging"
	"github.com/codebox-dev/codebox/pkg/profile"
	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/sjson"
)

// ExtensionsPath addresses the VS Code extension list inside devcontainer.json.
const ExtensionsPath = "customizations.vscode.extensions"

// ApplyProfile replaces the extension list in the config document at path
// with the profile's fixed list. Passthrough profiles (full, custom) leave the
// document byte-for-byte unchanged. JSONC comments are normalized to
// whitespace on the first transforming edit; every other byte round-trips.
func ApplyProfile(path string, p profile.Profile) error {
	logger := logging.GetLogger("devcontainer")

	if p.Passthrough() {
		logger.Debug().Str("profile", string(p)).Msg("Passthrough profile, config untouched")
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileNotFound, "cannot read config document %s", path)
	}

	plain := jsonc.ToJSON(raw)
	if !gjson.ValidBytes(plain) {
		return errors.Newf(errors.ErrConfigParse, "config document %s is not valid JSON", path)
	}

	updated, err := sjson.SetBytes(plain, ExtensionsPath, p.Extensions())
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "cannot rewrite extension list in %s", path)
	}

	if err := os.WriteFile(path, updated, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "cannot write config document %s", path)
	}

	logger.Info().
		Str("profile", string(p)).
		Int("extensions", len(p.Extensions())).
		Str("path", path).
		Msg("Applied extension profile")
	return nil
}

// Extensions reads the extension list back from the config document.
func Extensions(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileNotFound, "cannot read config document %s", path)
	}

	plain := jsonc.ToJSON(raw)
	if !gjson.ValidBytes(plain) {
		return nil, errors.Newf(errors.ErrConfigParse, "config document %s is not valid JSON", path)
	}

	result := gjson.GetBytes(plain, ExtensionsPath)
	if !result.Exists() {
		return nil, nil
	}

	var exts []string
	for _, item := range result.Array() {
		exts = append(exts, item.String())
	}
	return exts, nil
}
