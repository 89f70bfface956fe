package render

import "github.com/alph-cli/alph/internal/mcp"

// Claude Code tags every remote entry with an explicit type.

func claudeStdio(cfg *mcp.ServerConfig) map[string]any {
	entry := make(map[string]any)
	putCommand(entry, cfg)
	return entry
}

func claudeSSE(cfg *mcp.ServerConfig) map[string]any {
	entry := map[string]any{
		"type": "sse",
		"url":  cfg.URL,
	}
	putHeaders(entry, cfg)
	return entry
}

func claudeHTTP(cfg *mcp.ServerConfig) map[string]any {
	entry := map[string]any{
		"type": "http",
		"url":  cfg.URL,
	}
	putHeaders(entry, cfg)
	return entry
}
