package render

import "github.com/alph-cli/alph/internal/mcp"

// Cursor keeps entries minimal: stdio entries have no transport key at all,
// http is inferred from the bare url, and only sse is tagged explicitly.

func cursorStdio(cfg *mcp.ServerConfig) map[string]any {
	entry := make(map[string]any)
	putCommand(entry, cfg)
	return entry
}

func cursorSSE(cfg *mcp.ServerConfig) map[string]any {
	entry := map[string]any{
		"type": "sse",
		"url":  cfg.URL,
	}
	putHeaders(entry, cfg)
	return entry
}

func cursorHTTP(cfg *mcp.ServerConfig) map[string]any {
	entry := map[string]any{
		"url": cfg.URL,
	}
	putHeaders(entry, cfg)
	return entry
}
