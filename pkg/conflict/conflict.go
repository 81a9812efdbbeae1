// Package conflict decides what happens when a deployment target already
// contains a prior deployment: overwrite it, move it aside, or cancel the run.
package conflict

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/codebox-dev/codebox/pkg/errors"
	"github.com/codebox-dev/codebox/pkg/logging"
)

// Decision is the closed set of conflict outcomes.
type Decision int

const (
	// DecisionOverwrite removes the prior deployment before copying
	DecisionOverwrite Decision = iota
	// DecisionBackup renames the prior deployment aside before copying
	DecisionBackup
	// DecisionCancel aborts the run without touching the filesystem
	DecisionCancel
)

// String returns the decision name for logs and prompts
func (d Decision) String() string {
	switch d {
	case DecisionOverwrite:
		return "overwrite"
	case DecisionBackup:
		return "backup"
	default:
		return "cancel"
	}
}

// ParseDecision maps prompt input to a Decision. Anything unrecognized is
// Cancel, so a stray answer can never destroy data.
func ParseDecision(input string) Decision {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "o", "overwrite":
		return DecisionOverwrite
	case "b", "backup":
		return DecisionBackup
	default:
		return DecisionCancel
	}
}

// Resolution reports what Resolve did to the prior deployment.
type Resolution struct {
	Decision   Decision
	HadPrior   bool
	BackupPath string
}

// Resolve inspects deployedPath for a prior deployment and applies the chosen
// decision. Without a prior deployment, or with force set, the run proceeds as
// an overwrite without consulting choose. A Backup rename must succeed before
// any new file is written; rename failure aborts the run.
func Resolve(deployedPath string, force bool, choose func() Decision) (Resolution, error) {
	logger := logging.GetLogger("conflict")

	if _, err := os.Stat(deployedPath); err != nil {
		if os.IsNotExist(err) {
			return Resolution{Decision: DecisionOverwrite}, nil
		}
		return Resolution{}, errors.Wrapf(err, errors.ErrTargetResolve, "cannot inspect %s", deployedPath)
	}

	decision := DecisionOverwrite
	if !force {
		if choose == nil {
			decision = DecisionCancel
		} else {
			decision = choose()
		}
	}

	logger.Info().
		Str("deployed", deployedPath).
		Str("decision", decision.String()).
		Bool("force", force).
		Msg("Resolved deployment conflict")

	switch decision {
	case DecisionOverwrite:
		if err := os.RemoveAll(deployedPath); err != nil {
			return Resolution{}, errors.Wrapf(err, errors.ErrFileWrite, "failed to remove prior deployment %s", deployedPath)
		}
		return Resolution{Decision: DecisionOverwrite, HadPrior: true}, nil

	case DecisionBackup:
		backup := backupPath(deployedPath, time.Now())
		if err := os.Rename(deployedPath, backup); err != nil {
			return Resolution{}, errors.Wrapf(err, errors.ErrBackup, "failed to move prior deployment to %s", backup)
		}
		logger.Info().Str("backup", backup).Msg("Moved prior deployment aside")
		return Resolution{Decision: DecisionBackup, HadPrior: true, BackupPath: backup}, nil

	default:
		return Resolution{Decision: DecisionCancel, HadPrior: true}, nil
	}
}

// backupPath derives a free backup location with a second-resolution
// timestamp, incrementing a numeric suffix on collision.
func backupPath(base string, now time.Time) string {
	stamp := now.Format("20060102-150405")
	candidate := fmt.Sprintf("%s.backup.%s", base, stamp)
	for n := 1; ; n++ {
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = fmt.Sprintf("%s.backup.%s-%d", base, stamp, n)
	}
}
