package commands

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/alph-cli/alph/internal/mcp"
)

// Package-level flag variables for the setup command.
var (
	setupURL       string
	setupTransport string
	setupAccessKey string
	setupEnv       []string
	setupHeaders   []string
	setupCwd       string
	setupTimeout   int
	setupNoBackup  bool
)

func init() {
	setupCmd.Flags().StringVar(&setupURL, "url", "",
		"remote server endpoint for http/sse transports")
	setupCmd.Flags().StringVar(&setupTransport, "transport", "",
		"explicit transport type: stdio, http, sse (default: inferred)")
	setupCmd.Flags().StringVar(&setupAccessKey, "access-key", "",
		"bearer token sent as the Authorization header")
	setupCmd.Flags().StringSliceVar(&setupEnv, "env", nil,
		"environment variables in KEY=VALUE format (repeatable)")
	setupCmd.Flags().StringSliceVar(&setupHeaders, "header", nil,
		"HTTP headers in KEY=VALUE format (repeatable)")
	setupCmd.Flags().StringVar(&setupCwd, "cwd", "",
		"working directory for stdio servers (agents that support it)")
	setupCmd.Flags().IntVar(&setupTimeout, "timeout", 0,
		"per-server timeout in milliseconds (agents that support it)")
	setupCmd.Flags().BoolVar(&setupNoBackup, "no-backup", false,
		"skip the pre-edit backup")
	rootCmd.AddCommand(setupCmd)
}

var setupCmd = &cobra.Command{
	Use:   "setup <server-id> [command] [args...]",
	Short: "Register an MCP server with detected agents",
	Long: `Register an MCP server in each targeted agent's native configuration.

For local stdio servers, provide a command and optional arguments:
  alph setup github npx -y @modelcontextprotocol/server-github

For remote servers, use --url with an optional explicit --transport:
  alph setup api --url=https://api.example.com/mcp --transport http
  alph setup events --url=https://api.example.com/sse --transport sse

A --url without --transport defaults to sse. Agents without native remote
support (Kiro, Codex) receive an mcp-remote bridge entry instead; the
access key rides in the entry's environment, never in its argv.

Each agent's file is backed up, rewritten atomically, validated, and
rolled back on failure. Use --agents to target a subset, --dir to write
project-scoped configuration, and --no-backup to skip the backup.`,
	Example: `  alph setup github npx -y @modelcontextprotocol/server-github
  alph setup api --url=https://api.example.com/mcp --transport http --access-key $KEY
  alph setup db ./db-mcp --env DB_HOST=localhost --agents cursor,claude --dir .`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSetup,
}

func runSetup(cmd *cobra.Command, args []string) error {
	serverID := args[0]
	var command string
	var cmdArgs []string
	if len(args) > 1 {
		command = args[1]
		cmdArgs = args[2:]
	}

	if command == "" && setupURL == "" {
		return errors.New("either a command or --url is required")
	}
	if command != "" && setupURL != "" {
		return errors.New("cannot specify both a command and --url")
	}

	transport := mcp.Transport(setupTransport)
	if transport == "" {
		if setupURL != "" {
			transport = mcp.TransportSSE
		} else {
			transport = mcp.TransportStdio
		}
	}
	if !transport.Valid() {
		return errors.Newf("invalid --transport %q: must be stdio, http, or sse", setupTransport)
	}

	env, err := parseKeyValueSlice(setupEnv, "--env")
	if err != nil {
		return err
	}
	headers, err := parseKeyValueSlice(setupHeaders, "--header")
	if err != nil {
		return err
	}

	cfg := &mcp.ServerConfig{
		ServerID:  serverID,
		Transport: transport,
		URL:       setupURL,
		AccessKey: setupAccessKey,
		Headers:   headers,
		Env:       env,
		Command:   command,
		Args:      cmdArgs,
		Cwd:       setupCwd,
		TimeoutMS: setupTimeout,
		ConfigDir: dirFlag,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	reg := newRegistry(newDeps())
	providers, err := targetProviders(ctx, reg)
	if err != nil {
		return err
	}

	fmt.Printf("Registering %q with %d agent(s):\n", serverID, len(providers))
	results := reg.ConfigureAll(ctx, providers, cfg, !setupNoBackup)
	return reportResults("setup", results)
}
