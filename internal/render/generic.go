package render

import "github.com/alph-cli/alph/internal/mcp"

// The generic shape covers tools that follow the common {mcpServers: {...}}
// convention with explicit type tags on remote entries.

func genericStdio(cfg *mcp.ServerConfig) map[string]any {
	entry := make(map[string]any)
	putCommand(entry, cfg)
	return entry
}

func genericRemote(cfg *mcp.ServerConfig) map[string]any {
	entry := map[string]any{
		"type": string(cfg.Transport),
		"url":  cfg.URL,
	}
	putHeaders(entry, cfg)
	return entry
}
