package render

import "github.com/alph-cli/alph/internal/mcp"

// Windsurf distinguishes only local and remote: remote entries use a
// serverUrl key regardless of sse vs http.

func windsurfStdio(cfg *mcp.ServerConfig) map[string]any {
	entry := map[string]any{
		"transport": "stdio",
		"command":   cfg.Command,
	}
	if len(cfg.Args) > 0 {
		entry["args"] = copyStrings(cfg.Args)
	}
	if len(cfg.Env) > 0 {
		entry["env"] = copyMap(cfg.Env)
	}
	return entry
}

func windsurfRemote(cfg *mcp.ServerConfig) map[string]any {
	entry := map[string]any{
		"serverUrl": cfg.URL,
	}
	putHeaders(entry, cfg)
	if len(cfg.Env) > 0 {
		entry["env"] = copyMap(cfg.Env)
	}
	return entry
}
