package main

import (
	"fmt"

	"github.com/codebox-dev/codebox/pkg/gitreset"
	"github.com/codebox-dev/codebox/pkg/logging"
	"github.com/codebox-dev/codebox/pkg/paths"
	"github.com/codebox-dev/codebox/pkg/prompt"
	"github.com/codebox-dev/codebox/pkg/style"
	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset [path]",
	Short: "Reconcile the repository working tree with its remote",
	Long: `Reset stashes uncommitted changes, hard-resets the working tree,
removes untracked and ignored files (sparing the env file and dependency
caches), and synchronizes the current branch with its remote counterpart.

This runs inside the provisioned container, typically on first boot. Each
step is best-effort: failures are reported as warnings and the sequence
continues.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.GetLogger("cmd.reset")

		targetArg := "."
		if len(args) > 0 {
			targetArg = args[0]
		}
		dir, err := paths.ResolveTarget(targetArg, nil)
		if err != nil {
			return err
		}

		p := prompt.New()
		confirm := func() bool {
			if resetYes || !p.Interactive() {
				return true
			}
			return p.Confirm("Stashing failed; continuing will discard uncommitted changes. Continue?", false)
		}

		logger.Info().Str("dir", dir).Msg("Starting repository reset")

		report, err := gitreset.Reset(cmd.Context(), gitreset.Options{
			Dir:             dir,
			ConfirmContinue: confirm,
		})
		if err != nil {
			return err
		}

		if report.StashCreated {
			fmt.Println(style.Muted("Uncommitted changes saved to a stash (git stash pop to recover)"))
		}
		for _, warning := range report.Warnings {
			fmt.Println(style.Warn("warning: " + warning))
		}
		switch {
		case report.Clean && report.RemoteSynced:
			fmt.Println(style.Success(fmt.Sprintf("Working tree clean, %s synchronized with %s", report.Branch, gitreset.Remote)))
		case report.Clean:
			fmt.Println(style.Success("Working tree clean"))
		default:
			fmt.Println(style.Warn("Residual differences remain (often line endings); see git status"))
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "Continue without prompting after a failed stash")
}
