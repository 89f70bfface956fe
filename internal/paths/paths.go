package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// Agent identifiers for supported AI coding tools.
const (
	AgentClaude   = "claude"
	AgentCursor   = "cursor"
	AgentGemini   = "gemini"
	AgentWindsurf = "windsurf"
	AgentKiro     = "kiro"
	AgentWarp     = "warp"
	AgentCodex    = "codex"
)

// agentGlobalConfigs maps agent names to their global MCP config file,
// relative to the user's home directory.
var agentGlobalConfigs = map[string]string{
	AgentClaude:   ".claude.json",
	AgentCursor:   ".cursor/mcp.json",
	AgentGemini:   ".gemini/settings.json",
	AgentWindsurf: ".codeium/windsurf/mcp_config.json",
	AgentKiro:     ".kiro/settings/mcp.json",
	AgentWarp:     ".warp/mcp.json",
	AgentCodex:    ".codex/config.toml",
}

// agentProjectConfigs maps agent names to their project-scoped MCP config
// file, relative to the project root. Empty means the agent keeps project
// entries nested inside its global file instead of a separate file.
var agentProjectConfigs = map[string]string{
	AgentClaude:   "", // nested under projects[<abs path>] in ~/.claude.json
	AgentCursor:   ".cursor/mcp.json",
	AgentGemini:   ".gemini/settings.json",
	AgentWindsurf: "",
	AgentKiro:     ".kiro/settings/mcp.json",
	AgentWarp:     "",
	AgentCodex:    "",
}

// agentEnvOverrides maps agent names to the environment variable that, when
// set, takes precedence over every other candidate config path.
var agentEnvOverrides = map[string]string{
	AgentClaude:   "ALPH_CLAUDE_CONFIG",
	AgentCursor:   "ALPH_CURSOR_CONFIG",
	AgentGemini:   "ALPH_GEMINI_CONFIG",
	AgentWindsurf: "ALPH_WINDSURF_CONFIG",
	AgentKiro:     "ALPH_KIRO_CONFIG",
	AgentWarp:     "ALPH_WARP_CONFIG",
	AgentCodex:    "ALPH_CODEX_CONFIG",
}

// agentLegacyConfigs maps agent names to older config locations still probed
// during detection, relative to the user's home directory.
var agentLegacyConfigs = map[string][]string{
	AgentClaude:   {".claude/settings.json"},
	AgentWindsurf: {".windsurf/mcp_config.json"},
	AgentWarp:     {".warp/mcp_servers.json"},
}

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified
// permissions. If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory.
// Note: it returns an empty string on error for backward compatibility.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
func DataHome() string {
	return xdg.DataHome
}

// ValidAgent returns true if the agent name is recognized.
func ValidAgent(agent string) bool {
	_, ok := agentGlobalConfigs[agent]
	return ok
}

// Agents returns all supported agent identifiers in deterministic order.
func Agents() []string {
	return []string{
		AgentClaude,
		AgentCursor,
		AgentGemini,
		AgentWindsurf,
		AgentKiro,
		AgentWarp,
		AgentCodex,
	}
}

// GlobalConfigPath returns the global MCP config file for an agent.
// Returns an empty string for unknown agents or when the home directory
// cannot be resolved.
func GlobalConfigPath(agent string) string {
	relPath, ok := agentGlobalConfigs[agent]
	if !ok {
		return ""
	}
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, relPath)
}

// ProjectConfigPath returns the project-scoped MCP config file for an agent.
// Returns an empty string if the agent keeps project entries inside its
// global file, or if projectRoot is empty.
func ProjectConfigPath(agent, projectRoot string) string {
	relPath, ok := agentProjectConfigs[agent]
	if !ok || relPath == "" || projectRoot == "" {
		return ""
	}
	return filepath.Join(projectRoot, relPath)
}

// EnvOverride returns the environment variable name that overrides the
// config path for an agent, or an empty string for unknown agents.
func EnvOverride(agent string) string {
	return agentEnvOverrides[agent]
}

// LegacyConfigPaths returns older config locations for an agent, resolved
// against the home directory. The slice is empty when there are none.
func LegacyConfigPaths(agent string) []string {
	rels := agentLegacyConfigs[agent]
	if len(rels) == 0 {
		return nil
	}
	home := Home()
	if home == "" {
		return nil
	}
	out := make([]string, 0, len(rels))
	for _, rel := range rels {
		out = append(out, filepath.Join(home, rel))
	}
	return out
}
