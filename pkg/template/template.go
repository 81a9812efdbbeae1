// Package template models the source bundle deployed into projects.
package template

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/codebox-dev/codebox/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Well-known file names inside the template tree.
const (
	ConfigName      = "devcontainer.json"
	EnvTemplateName = "devcontainer.env.template"
	ManifestName    = "manifest.yaml"
	AttributesName  = ".gitattributes"
	SetupScriptName = "setup.sh"
)

// DeployedDirName is the conventional name of the deployed subtree.
const DeployedDirName = ".devcontainer"

// EnvFileName is the conventional name of the secrets file at the project root.
const EnvFileName = ".devcontainer.env"

// Template is a read-only view of the source directory. It is never mutated,
// only copied.
type Template struct {
	Root string
}

// Load validates the source directory and returns a Template over it.
func Load(root string) (*Template, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateNotFound, "template directory not found at %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrTemplateNotFound, "template path %s is not a directory", root)
	}
	return &Template{Root: root}, nil
}

// Files returns the sorted relative paths of every regular file in the template.
func (t *Template) Files() ([]string, error) {
	var files []string
	err := filepath.Walk(t.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(t.Root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateNotFound, "cannot enumerate template at %s", t.Root)
	}
	sort.Strings(files)
	return files, nil
}

// Has reports whether a relative path exists as a regular file in the template.
func (t *Template) Has(rel string) bool {
	info, err := os.Stat(filepath.Join(t.Root, filepath.FromSlash(rel)))
	return err == nil && !info.IsDir()
}

// Path returns the absolute path of a template entry.
func (t *Template) Path(rel string) string {
	return filepath.Join(t.Root, filepath.FromSlash(rel))
}

// Manifest is the enumerated file list for selective deployment.
type Manifest struct {
	Files []string `yaml:"files"`
}

// Manifest loads and parses the template's manifest.yaml.
func (t *Template) Manifest() (*Manifest, error) {
	raw, err := os.ReadFile(t.Path(ManifestName))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "cannot read %s", ManifestName)
	}

	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "cannot parse %s", ManifestName)
	}
	if len(m.Files) == 0 {
		return nil, errors.Newf(errors.ErrManifestParse, "%s lists no files", ManifestName)
	}
	return &m, nil
}
