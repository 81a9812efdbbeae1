package devcontainer

import (
	"path/filepath"
	"testing"

	"github.com/codebox-dev/codebox/pkg/errors"
	"github.com/codebox-dev/codebox/pkg/profile"
	"github.com/codebox-dev/codebox/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const sampleConfig = `{
  "name": "codebox",
  "build": {
    "dockerfile": "Dockerfile",
    "context": "."
  },
  "customizations": {
    "vscode": {
      "settings": {
        "editor.formatOnSave": true
      },
      "extensions": [
        "ms-python.python",
        "dbaeumer.vscode-eslint",
        "eamodio.gitlens"
      ]
    }
  },
  "postCreateCommand": "bash .devcontainer/setup.sh",
  "remoteUser": "dev"
}
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := testutil.TempDir(t)
	return testutil.CreateFile(t, dir, "devcontainer.json", content)
}

func TestApplyProfileReplacesOnlyExtensionList(t *testing.T) {
	for _, p := range []profile.Profile{profile.Minimal, profile.DataScience, profile.Web} {
		t.Run(string(p), func(t *testing.T) {
			path := writeConfig(t, sampleConfig)

			require.NoError(t, ApplyProfile(path, p))

			exts, err := Extensions(path)
			require.NoError(t, err)
			assert.Equal(t, p.Extensions(), exts)

			// every sibling key survives with its pre-transform value
			after := testutil.ReadFile(t, path)
			assert.Equal(t, "codebox", gjson.Get(after, "name").String())
			assert.Equal(t, "Dockerfile", gjson.Get(after, "build.dockerfile").String())
			assert.True(t, gjson.Get(after, "customizations.vscode.settings.editor\\.formatOnSave").Bool())
			assert.Equal(t, "bash .devcontainer/setup.sh", gjson.Get(after, "postCreateCommand").String())
			assert.Equal(t, "dev", gjson.Get(after, "remoteUser").String())
		})
	}
}

func TestApplyProfilePassthrough(t *testing.T) {
	for _, p := range []profile.Profile{profile.Full, profile.Custom} {
		t.Run(string(p), func(t *testing.T) {
			path := writeConfig(t, sampleConfig)

			require.NoError(t, ApplyProfile(path, p))
			assert.Equal(t, sampleConfig, testutil.ReadFile(t, path), "passthrough must not rewrite the document")
		})
	}
}

func TestApplyProfileAcceptsJSONC(t *testing.T) {
	jsoncConfig := `{
  // image configuration
  "name": "codebox",
  "customizations": {
    "vscode": {
      "extensions": ["ms-python.python"]
    }
  }
}
`
	path := writeConfig(t, jsoncConfig)

	require.NoError(t, ApplyProfile(path, profile.Web))

	exts, err := Extensions(path)
	require.NoError(t, err)
	assert.Equal(t, profile.Web.Extensions(), exts)
	assert.Equal(t, "codebox", gjson.Get(jsonString(t, path), "name").String())
}

func jsonString(t *testing.T, path string) string {
	t.Helper()
	return testutil.ReadFile(t, path)
}

func TestApplyProfileInvalidDocument(t *testing.T) {
	path := writeConfig(t, "{not json")

	err := ApplyProfile(path, profile.Minimal)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestApplyProfileMissingFile(t *testing.T) {
	dir := testutil.TempDir(t)

	err := ApplyProfile(filepath.Join(dir, "devcontainer.json"), profile.Minimal)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}

func TestApplyProfileIsIdempotent(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	require.NoError(t, ApplyProfile(path, profile.Web))
	first := testutil.ReadFile(t, path)

	require.NoError(t, ApplyProfile(path, profile.Web))
	assert.Equal(t, first, testutil.ReadFile(t, path))
}

func TestExtensionsMissingList(t *testing.T) {
	path := writeConfig(t, `{"name": "bare"}`)

	exts, err := Extensions(path)
	require.NoError(t, err)
	assert.Nil(t, exts)
}
