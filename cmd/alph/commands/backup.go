package commands

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

func init() {
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupPruneCmd)
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage configuration backups",
	Long: `Manage the timestamped backups alph leaves next to each config file
it edits. Backups are named <file>.bak.<timestamp><ext> and live in the
same directory as the original.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list <agent>",
	Short: "List backups of an agent's config file",
	Example: `  alph backup list cursor
  alph backup list claude`,
	Args: cobra.ExactArgs(1),
	RunE: runBackupList,
}

var backupPruneCmd = &cobra.Command{
	Use:   "prune <agent>",
	Short: "Delete backups past the retention policy",
	Long: `Delete backups of an agent's config file that are older than the
retention window or beyond the retained count (newest kept). Retention
is configured via backup.max_age_days and backup.max_count
(ALPH_BACKUP_MAX_AGE_DAYS, ALPH_BACKUP_MAX_COUNT).`,
	Args: cobra.ExactArgs(1),
	RunE: runBackupPrune,
}

// agentConfigPath resolves the config file backups are kept next to.
func agentConfigPath(name string) (string, error) {
	reg := newRegistry(newDeps())
	p, ok := reg.Lookup(name)
	if !ok {
		return "", errors.Newf("unknown agent %q", name)
	}
	path, err := p.Detect(dirFlag)
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", errors.Newf("%s is not installed (no config file found)", name)
	}
	return path, nil
}

func runBackupList(_ *cobra.Command, args []string) error {
	path, err := agentConfigPath(args[0])
	if err != nil {
		return err
	}

	infos, err := newDeps().Backups.List(path)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Printf("No backups for %s\n", path)
		return nil
	}

	fmt.Printf("Backups of %s (newest first):\n", path)
	for _, info := range infos {
		fmt.Printf("  %s  %s\n", info.Timestamp.Format(time.RFC3339), info.BackupPath)
	}
	return nil
}

func runBackupPrune(_ *cobra.Command, args []string) error {
	path, err := agentConfigPath(args[0])
	if err != nil {
		return err
	}

	deleted, err := newDeps().Backups.Prune(path)
	if err != nil {
		return err
	}
	fmt.Printf("Pruned %d backup(s) of %s\n", deleted, path)
	return nil
}
