package render

import (
	"sort"

	"github.com/alph-cli/alph/internal/mcp"
)

// Agents without native remote-transport support launch mcp-remote as a
// local stdio bridge instead.
const (
	wrapperCommand = "npx"
	wrapperPackage = "mcp-remote"

	// authHeaderEnv carries the Authorization value out-of-band. Embedding
	// it in argv trips a Windows argument-quoting bug when the value
	// contains spaces ("Bearer <token>" always does), so argv references
	// the variable and the secret rides in the environment.
	authHeaderEnv = "AUTH_HEADER"
)

// remoteWrapper builds the argv and env for an mcp-remote bridge entry.
// Header flags are emitted in sorted key order so identical input yields
// identical output.
func remoteWrapper(cfg *mcp.ServerConfig) (args []string, env map[string]string) {
	mode := "http-only"
	if cfg.Transport == mcp.TransportSSE {
		mode = "sse-only"
	}

	args = []string{wrapperPackage, cfg.URL, "--transport", mode}
	env = copyMap(cfg.Env)

	headers := cfg.EffectiveHeaders()
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if k == "Authorization" {
			args = append(args, "--header", "Authorization:${"+authHeaderEnv+"}")
			env[authHeaderEnv] = headers[k]
			continue
		}
		args = append(args, "--header", k+": "+headers[k])
	}

	return args, env
}
