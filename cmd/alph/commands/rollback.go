package commands

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rollbackCmd)
}

var rollbackCmd = &cobra.Command{
	Use:   "rollback <agent>",
	Short: "Restore an agent's config from its most recent backup",
	Long: `Restore an agent's configuration file from the most recent backup and
re-validate the result.

The restored file is checked against the agent's structural rules; a
restore that fails validation is reported as an error so a suspect
rollback never passes silently.`,
	Example: `  alph rollback cursor
  alph rollback claude`,
	Args: cobra.ExactArgs(1),
	RunE: runRollback,
}

func runRollback(_ *cobra.Command, args []string) error {
	reg := newRegistry(newDeps())
	p, ok := reg.Lookup(args[0])
	if !ok {
		return errors.Newf("unknown agent %q", args[0])
	}

	backupPath, err := p.Rollback()
	if err != nil {
		return errors.Wrapf(err, "rolling back %s", p.Name())
	}
	if backupPath == "" {
		fmt.Printf("No backups found for %s; nothing to restore\n", p.Name())
		return nil
	}
	fmt.Printf("Restored %s config from %s\n", p.Name(), backupPath)
	return nil
}
