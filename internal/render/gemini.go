package render

import "github.com/alph-cli/alph/internal/mcp"

// Gemini CLI names the transport explicitly for stdio and sse, but http
// entries carry an httpUrl key and no transport key; the CLI infers the
// transport from which URL-like field is present.

func geminiStdio(cfg *mcp.ServerConfig) map[string]any {
	entry := map[string]any{
		"transport": "stdio",
		"command":   cfg.Command,
	}
	if len(cfg.Args) > 0 {
		entry["args"] = copyStrings(cfg.Args)
	}
	if cfg.Cwd != "" {
		entry["cwd"] = cfg.Cwd
	}
	if len(cfg.Env) > 0 {
		entry["env"] = copyMap(cfg.Env)
	}
	putTimeout(entry, cfg)
	return entry
}

func geminiSSE(cfg *mcp.ServerConfig) map[string]any {
	entry := map[string]any{
		"transport": "sse",
		"url":       cfg.URL,
	}
	putHeaders(entry, cfg)
	if len(cfg.Env) > 0 {
		entry["env"] = copyMap(cfg.Env)
	}
	putTimeout(entry, cfg)
	return entry
}

func geminiHTTP(cfg *mcp.ServerConfig) map[string]any {
	entry := map[string]any{
		"httpUrl": cfg.URL,
	}
	putHeaders(entry, cfg)
	if len(cfg.Env) > 0 {
		entry["env"] = copyMap(cfg.Env)
	}
	putTimeout(entry, cfg)
	return entry
}

func putTimeout(entry map[string]any, cfg *mcp.ServerConfig) {
	if cfg.TimeoutMS > 0 {
		entry["timeout"] = cfg.TimeoutMS
	}
}
