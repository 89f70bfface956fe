package render

import "github.com/alph-cli/alph/internal/mcp"

// Warp changed its remote key name between releases; populating both url
// and serverUrl keeps one entry readable by either version.

func warpStdio(cfg *mcp.ServerConfig) map[string]any {
	entry := make(map[string]any)
	putCommand(entry, cfg)
	return entry
}

func warpRemote(cfg *mcp.ServerConfig) map[string]any {
	entry := map[string]any{
		"url":       cfg.URL,
		"serverUrl": cfg.URL,
	}
	putHeaders(entry, cfg)
	return entry
}
