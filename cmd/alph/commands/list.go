package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// listFormat holds the value of the --format flag.
var listFormat string

func init() {
	listCmd.Flags().StringVar(&listFormat, "format", "text",
		"output format: text, json, yaml")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered MCP servers per agent",
	Long: `List the MCP server ids registered with each detected agent.

With --dir, project-scoped registrations for that directory are listed
instead of the global ones (for agents that support project scoping).

Examples:
  alph list
  alph list --agents cursor,claude
  alph list --dir ~/work/backend --format json`,
	RunE: runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	reg := newRegistry(newDeps())

	providers, err := targetProviders(ctx, reg)
	if err != nil {
		return err
	}

	servers := make(map[string][]string, len(providers))
	for _, p := range providers {
		ids, err := p.ListServers(dirFlag)
		if err != nil {
			return errors.Wrapf(err, "listing %s servers", p.Name())
		}
		servers[p.Name()] = ids
	}

	switch listFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(servers)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(servers)
	case "text":
		for _, p := range providers {
			ids := servers[p.Name()]
			fmt.Printf("%s (%d):\n", p.Name(), len(ids))
			for _, id := range ids {
				fmt.Printf("  %s\n", id)
			}
		}
		return nil
	default:
		return errors.Newf("invalid --format %q: must be text, json, or yaml", listFormat)
	}
}
