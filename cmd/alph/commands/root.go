// Package commands implements the CLI commands for alph.
package commands

import (
	"log/slog"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/alph-cli/alph/internal/agent"
	"github.com/alph-cli/alph/internal/agent/claude"
	"github.com/alph-cli/alph/internal/agent/codex"
	"github.com/alph-cli/alph/internal/agent/cursor"
	"github.com/alph-cli/alph/internal/agent/gemini"
	"github.com/alph-cli/alph/internal/agent/generic"
	"github.com/alph-cli/alph/internal/agent/kiro"
	"github.com/alph-cli/alph/internal/agent/warp"
	"github.com/alph-cli/alph/internal/agent/windsurf"
	"github.com/alph-cli/alph/internal/config"
	alpherrors "github.com/alph-cli/alph/internal/errors"
	"github.com/alph-cli/alph/internal/logging"
	"github.com/alph-cli/alph/internal/paths"
)

// version is set at build time via ldflags.
// Default to a development version for local builds.
const version = "0.1.0"

// agentsFlag holds the value of the --agents flag.
var agentsFlag []string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// dirFlag holds the value of the --dir flag (project directory).
var dirFlag string

// mcpConfigFile holds the value of --mcp-config-file, enabling the generic
// provider against an explicit path.
var mcpConfigFile string

// cfg is the loaded configuration, populated by initConfig.
var cfg *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringSliceVarP(&agentsFlag, "agents", "a", nil,
		`target agent(s): claude, cursor, gemini, windsurf, kiro, warp, codex (default: all detected)`)
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "",
		"project directory for project-scoped configuration")
	rootCmd.PersistentFlags().StringVar(&mcpConfigFile, "mcp-config-file", "",
		"path to a generic {\"mcpServers\": ...} config file to manage alongside known agents")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("alph version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	cfg, configLoadErr = config.Load("")
}

var rootCmd = &cobra.Command{
	Use:   "alph",
	Short: "Configure MCP servers across AI coding agents",
	Long: `alph detects the AI coding agents installed on this machine and edits
each agent's native configuration to register, remove, or report MCP
(Model Context Protocol) servers.

Supported agents: Claude, Cursor, Gemini CLI, Windsurf, Kiro, Warp, and
Codex, plus any tool following the plain {"mcpServers": ...} convention
via --mcp-config-file.

Every edit is protected: the target file is backed up, rewritten
atomically, validated against the agent's structural rules, and rolled
back to its previous content if anything goes wrong.`,
	Example: `  # Register a local stdio server with every detected agent
  alph setup --server-id github --command npx --args "-y,@mcp/github"

  # Register a remote server with specific agents
  alph setup --server-id api --transport http --url https://api.example.com/mcp \
    --access-key $API_KEY --agents cursor,claude

  # Remove a server everywhere it is registered
  alph remove github --scope all

  # Show what is installed and configured
  alph status`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return validateAgentsFlag(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return alpherrors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("ALPH_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2
				case "2":
					v = 3
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	logger := logging.New(logging.Config{
		Level:  level,
		Format: logging.Format(logFormat),
		Output: cmd.ErrOrStderr(),
	})
	slog.SetDefault(logger)
	return nil
}

// validateAgentsFlag checks that all specified agents are valid.
func validateAgentsFlag(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}

	if configLoadErr != nil {
		return alpherrors.NewUserError(configLoadErr, "Check the config file syntax or remove it")
	}

	if len(agentsFlag) == 0 {
		return nil
	}

	var invalid []string
	for _, a := range agentsFlag {
		if !paths.ValidAgent(a) {
			invalid = append(invalid, a)
		}
	}
	if len(invalid) > 0 {
		err := errors.Newf("invalid agent(s): %s (valid: %s)",
			strings.Join(invalid, ", "),
			strings.Join(paths.Agents(), ", "))
		return alpherrors.NewUserError(err, "Run 'alph --help' to see valid agents")
	}
	return nil
}

// newDeps builds the shared provider machinery from the loaded config.
func newDeps() agent.Deps {
	c := cfg
	if c == nil {
		c = &config.Config{}
	}
	return agent.NewDeps(c, slog.Default())
}

// newRegistry builds the provider registry. The generic provider joins the
// set only when --mcp-config-file names a file to manage.
func newRegistry(deps agent.Deps) *agent.Registry {
	providers := []agent.Provider{
		claude.New(deps),
		cursor.New(deps),
		gemini.New(deps),
		windsurf.New(deps),
		kiro.New(deps),
		warp.New(deps),
		codex.New(deps),
	}
	if mcpConfigFile != "" {
		providers = append(providers, generic.New(mcpConfigFile, deps))
	}
	return agent.NewRegistry(providers, agent.WithLogger(deps.Log))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
