package render

import "github.com/alph-cli/alph/internal/mcp"

// Codex stores servers in config.toml under mcp_servers. Remote transports
// have no native TOML shape, so they go through the same mcp-remote bridge
// as Kiro.

func codexStdio(cfg *mcp.ServerConfig) map[string]any {
	entry := make(map[string]any)
	putCommand(entry, cfg)
	return entry
}

func codexRemote(cfg *mcp.ServerConfig) map[string]any {
	args, env := remoteWrapper(cfg)
	entry := map[string]any{
		"command": wrapperCommand,
		"args":    args,
	}
	if len(env) > 0 {
		entry["env"] = env
	}
	return entry
}
