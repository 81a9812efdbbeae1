package deploy

import (
	"path/filepath"

	"github.com/codebox-dev/codebox/pkg/conflict"
	"github.com/codebox-dev/codebox/pkg/devcontainer"
	"github.com/codebox-dev/codebox/pkg/ignore"
	"github.com/codebox-dev/codebox/pkg/logging"
	"github.com/codebox-dev/codebox/pkg/profile"
	"github.com/codebox-dev/codebox/pkg/secrets"
	"github.com/codebox-dev/codebox/pkg/template"
)

// Options configures one deploy pipeline run. Interactive choices are
// resolved at the CLI boundary and injected as callbacks.
type Options struct {
	TemplateRoot string
	Target       string
	Profile      string
	UseManifest  bool
	Force        bool
	CreateEnv    bool
	Choose       func() conflict.Decision
}

// Result reports what the pipeline did.
type Result struct {
	Cancelled        bool
	Target           string
	BackupPath       string
	Copied           int
	Missing          []string
	IgnoreAdded      []string
	AttributesPlaced bool
	EnvCreated       bool
}

// Run executes the deploy pipeline: validate the profile, resolve conflicts
// with any prior deployment, reconcile the ignore file, copy the template
// tree, transform the config document, and materialize the env file.
//
// The ignore file is reconciled before the tree copy on purpose: git must
// already ignore the environment artifacts by the time the subtree appears.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("deploy.pipeline")

	// Input validation happens before any filesystem mutation.
	prof, err := profile.Parse(opts.Profile)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.Load(opts.TemplateRoot)
	if err != nil {
		return nil, err
	}

	result := &Result{Target: opts.Target}
	deployedDir := filepath.Join(opts.Target, template.DeployedDirName)

	resolution, err := conflict.Resolve(deployedDir, opts.Force, opts.Choose)
	if err != nil {
		return nil, err
	}
	if resolution.Decision == conflict.DecisionCancel {
		logger.Info().Str("target", opts.Target).Msg("Deployment cancelled, target untouched")
		result.Cancelled = true
		return result, nil
	}
	result.BackupPath = resolution.BackupPath

	ignoreResult, err := ignore.Reconcile(filepath.Join(opts.Target, ".gitignore"), ignore.DefaultPatterns)
	if err != nil {
		return nil, err
	}
	result.IgnoreAdded = ignoreResult.Added

	var copied CopyResult
	if opts.UseManifest {
		manifest, err := tmpl.Manifest()
		if err != nil {
			return nil, err
		}
		copied, err = CopyManifest(tmpl, deployedDir, manifest.Files)
		if err != nil {
			return nil, err
		}
	} else {
		copied, err = CopyTree(tmpl, deployedDir)
		if err != nil {
			return nil, err
		}
	}
	result.Copied = copied.Copied
	result.Missing = copied.Missing

	result.AttributesPlaced, err = PlaceAttributes(tmpl, opts.Target)
	if err != nil {
		return nil, err
	}

	if err := applyProfile(deployedDir, prof); err != nil {
		return nil, err
	}

	if opts.CreateEnv && tmpl.Has(template.EnvTemplateName) {
		created, err := secrets.Ensure(
			tmpl.Path(template.EnvTemplateName),
			filepath.Join(opts.Target, template.EnvFileName),
			secrets.Detect(opts.Target),
		)
		if err != nil {
			return nil, err
		}
		result.EnvCreated = created
	}

	logger.Info().
		Str("target", opts.Target).
		Str("profile", string(prof)).
		Int("copied", result.Copied).
		Msg("Deploy pipeline completed")
	return result, nil
}

// applyProfile transforms the deployed config document. Passthrough profiles
// skip the step entirely so a manifest deployment without a config document
// still succeeds under the default profile.
func applyProfile(deployedDir string, prof profile.Profile) error {
	if prof.Passthrough() {
		return nil
	}
	return devcontainer.ApplyProfile(filepath.Join(deployedDir, template.ConfigName), prof)
}
