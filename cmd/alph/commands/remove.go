package commands

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/alph-cli/alph/internal/mcp"
)

// Package-level flag variables for the remove command.
var (
	removeScope    string
	removeNoBackup bool
)

func init() {
	removeCmd.Flags().StringVar(&removeScope, "scope", "auto",
		"scope(s) to remove from: auto, global, project, all")
	removeCmd.Flags().BoolVar(&removeNoBackup, "no-backup", false,
		"skip the pre-edit backup")
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:   "remove <server-id>",
	Short: "Remove an MCP server registration from agents",
	Long: `Remove an MCP server entry from each targeted agent's configuration.

The --scope flag controls which configuration scopes are searched:
  auto      global first, then likely project roots (the working
            directory and the enclosing git repository root); the first
            scope holding the entry is edited (default)
  global    the agent-wide configuration only
  project   the project-scoped configuration only (see --dir)
  all       every scope the agent supports

An agent reports not-found when the id is absent from every scope its
policy implies; its files are left untouched in that case.`,
	Example: `  alph remove github
  alph remove api --scope all
  alph remove db --scope project --dir ~/work/backend --agents cursor`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	scope := mcp.RemovalScope(removeScope)
	switch scope {
	case mcp.ScopeAuto, mcp.ScopeGlobal, mcp.ScopeProject, mcp.ScopeAll:
	default:
		return errors.Newf("invalid --scope %q: must be auto, global, project, or all", removeScope)
	}

	rm := &mcp.RemovalConfig{
		ServerID:  args[0],
		ConfigDir: dirFlag,
		Scope:     scope,
		Backup:    !removeNoBackup,
	}

	ctx := cmd.Context()
	reg := newRegistry(newDeps())
	providers, err := targetProviders(ctx, reg)
	if err != nil {
		return err
	}

	fmt.Printf("Removing %q from %d agent(s):\n", rm.ServerID, len(providers))
	results := reg.RemoveAll(ctx, providers, rm)
	return reportResults("remove", results)
}
