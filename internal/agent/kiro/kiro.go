// Package kiro is the provider for Kiro's settings/mcp.json.
package kiro

import (
	"strings"

	"github.com/alph-cli/alph/internal/agent"
	"github.com/alph-cli/alph/internal/paths"
	"github.com/alph-cli/alph/internal/validate"
)

// New builds the Kiro provider. Kiro only launches stdio servers, so remote
// transports land on disk as mcp-remote bridge invocations; the validator
// enforces that no raw remote entry slips through.
func New(deps agent.Deps) agent.Provider {
	return agent.NewBase(agent.Spec{
		Name:       paths.AgentKiro,
		ServersKey: "mcpServers",
		Validate:   validateDoc,
	}, deps)
}

// validateDoc checks Kiro's structural rules: every entry's command is a
// non-empty string, args when present is an array, and nothing carries the
// url-style keys Kiro cannot execute. An entry whose first arg is
// mcp-remote must be launched through npx.
func validateDoc(doc map[string]any) *validate.Result {
	result := &validate.Result{}

	servers, present, err := agent.Section(doc, "mcpServers")
	if err != nil {
		result.Addf("mcpServers", "%v", err)
		return result
	}
	if !present {
		return result
	}

	for id, raw := range servers {
		entry, ok := agent.EntryMap(raw)
		if !ok {
			result.Add("mcpServers."+id, "entry is not an object", raw)
			continue
		}

		for _, key := range []string{"url", "serverUrl", "httpUrl"} {
			if _, present := entry[key]; present {
				result.Add("mcpServers."+id+"."+key,
					"remote entries must be bridged through mcp-remote, not written raw", entry[key])
			}
		}

		command, ok := agent.StringField(entry, "command")
		if !ok || command == "" {
			result.Add("mcpServers."+id+".command", "command must be a non-empty string", entry["command"])
			continue
		}

		args, hasArgs := entry["args"]
		if hasArgs && !agent.IsArray(args) {
			result.Add("mcpServers."+id+".args", "args must be an array", args)
			continue
		}

		if first, ok := agent.FirstArg(args); ok && isWrapperArg(first) && command != "npx" {
			result.Add("mcpServers."+id+".command", "mcp-remote bridge entries must run via npx", command)
		}
	}
	return result
}

// isWrapperArg matches the mcp-remote package, versioned or not.
func isWrapperArg(arg string) bool {
	return arg == "mcp-remote" || strings.HasPrefix(arg, "mcp-remote@")
}
