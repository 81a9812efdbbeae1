package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/codebox-dev/codebox/pkg/conflict"
	"github.com/codebox-dev/codebox/pkg/deploy"
	"github.com/codebox-dev/codebox/pkg/errors"
	"github.com/codebox-dev/codebox/pkg/logging"
	"github.com/codebox-dev/codebox/pkg/paths"
	"github.com/codebox-dev/codebox/pkg/profile"
	"github.com/codebox-dev/codebox/pkg/prompt"
	"github.com/codebox-dev/codebox/pkg/style"
	"github.com/spf13/cobra"
)

var (
	deployProfile  string
	deployManifest bool
	deployForce    bool
	deployEnv      bool
	deployOpen     bool
)

var deployCmd = &cobra.Command{
	Use:   "deploy [path]",
	Short: "Deploy the devcontainer template into a project",
	Long: `Deploy copies the template into <path>/.devcontainer, merges the
required ignore patterns into .gitignore, applies the chosen extension
profile to devcontainer.json and creates the machine-local env file.

A prior deployment is detected and you choose whether to overwrite it,
back it up, or cancel. Cancelling leaves the target untouched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.GetLogger("cmd.deploy")

		templateRoot, err := templateRoot()
		if err != nil {
			return err
		}

		p := prompt.New()

		targetArg := "."
		if len(args) > 0 {
			targetArg = args[0]
		}
		target, err := paths.ResolveTarget(targetArg, func(path string) bool {
			return p.Confirm(fmt.Sprintf("Target %s does not exist. Create it?", path), true)
		})
		if err != nil {
			return err
		}

		createEnv := deployEnv
		if !createEnv && p.Interactive() {
			createEnv = p.Confirm("Create .devcontainer.env with your git identity?", true)
		}

		logger.Info().
			Str("target", target).
			Str("profile", deployProfile).
			Bool("force", deployForce).
			Msg("Starting deploy")

		result, err := deploy.Run(deploy.Options{
			TemplateRoot: templateRoot,
			Target:       target,
			Profile:      deployProfile,
			UseManifest:  deployManifest,
			Force:        deployForce,
			CreateEnv:    createEnv,
			Choose: func() conflict.Decision {
				choice := p.Choice(
					"A .devcontainer deployment already exists. What now?",
					[]string{"Overwrite it", "Back it up and continue", "Cancel"},
					2,
				)
				switch choice {
				case 0:
					return conflict.DecisionOverwrite
				case 1:
					return conflict.DecisionBackup
				default:
					return conflict.DecisionCancel
				}
			},
		})
		if err != nil {
			return err
		}
		if result.Cancelled {
			return errors.New(errors.ErrCancelled, "deployment cancelled")
		}

		fmt.Println(style.Success(fmt.Sprintf("Deployed %d files to %s", result.Copied, target)))
		if result.BackupPath != "" {
			fmt.Println(style.Muted("Previous deployment saved at " + result.BackupPath))
		}
		if len(result.Missing) > 0 {
			fmt.Println(style.Warn("Manifest entries missing from template: " + strings.Join(result.Missing, ", ")))
		}
		if result.EnvCreated {
			fmt.Println(style.Muted("Created .devcontainer.env — review it before first boot"))
		}

		if deployOpen {
			openEditor(target)
		}
		return nil
	},
}

func init() {
	deployCmd.Flags().StringVar(&deployProfile, "profile", string(profile.Full),
		"Extension profile: "+strings.Join(profile.Names(), "|"))
	deployCmd.Flags().BoolVar(&deployManifest, "manifest", false, "Copy only the files listed in the template manifest")
	deployCmd.Flags().BoolVar(&deployForce, "force", false, "Overwrite an existing deployment without prompting")
	deployCmd.Flags().BoolVar(&deployEnv, "env", false, "Create the env file without prompting")
	deployCmd.Flags().BoolVar(&deployOpen, "open", false, "Open the target in the editor after deploying")
}

// templateRoot locates the template bundle, honoring the override used by
// packaging and tests.
func templateRoot() (string, error) {
	if dir := os.Getenv("CODEBOX_TEMPLATE_DIR"); dir != "" {
		return dir, paths.ValidateTemplateRoot(dir)
	}
	root, err := paths.TemplateRoot()
	if err != nil {
		return "", err
	}
	return root, paths.ValidateTemplateRoot(root)
}

// openEditor launches the editor on the target, best effort.
func openEditor(target string) {
	logger := logging.GetLogger("cmd.deploy")
	logging.LogCommand("code", []string{target})
	if err := exec.Command("code", target).Start(); err != nil {
		logger.Warn().Err(err).Msg("Could not open editor")
	}
}
