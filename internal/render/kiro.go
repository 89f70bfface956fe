package render

import "github.com/alph-cli/alph/internal/mcp"

// Kiro only speaks stdio natively. Every entry carries the disabled and
// autoApprove keys its settings UI expects, and remote transports are
// rewritten as mcp-remote bridge invocations.

func kiroStdio(cfg *mcp.ServerConfig) map[string]any {
	entry := map[string]any{
		"command":     cfg.Command,
		"disabled":    false,
		"autoApprove": []string{},
	}
	if len(cfg.Args) > 0 {
		entry["args"] = copyStrings(cfg.Args)
	}
	if len(cfg.Env) > 0 {
		entry["env"] = copyMap(cfg.Env)
	}
	return entry
}

func kiroRemote(cfg *mcp.ServerConfig) map[string]any {
	args, env := remoteWrapper(cfg)
	entry := map[string]any{
		"command":     wrapperCommand,
		"args":        args,
		"disabled":    false,
		"autoApprove": []string{},
	}
	if len(env) > 0 {
		entry["env"] = env
	}
	return entry
}
