// Package codex is the provider for Codex's config.toml.
//
// Codex is the one TOML-configured agent; its provider runs the shared
// safe-edit lifecycle with the TOML codec and the mcp_servers table key.
// Codex only launches stdio servers, so remote transports are written as
// mcp-remote bridge invocations.
package codex

import (
	"github.com/alph-cli/alph/internal/agent"
	"github.com/alph-cli/alph/internal/fileops"
	"github.com/alph-cli/alph/internal/paths"
	"github.com/alph-cli/alph/internal/validate"
)

// New builds the Codex provider.
func New(deps agent.Deps) agent.Provider {
	return agent.NewBase(agent.Spec{
		Name:       paths.AgentCodex,
		ServersKey: "mcp_servers",
		Codec:      fileops.TOML,
		Validate:   validateDoc,
	}, deps)
}

// validateDoc checks that every mcp_servers table has a non-empty command
// and array args, and carries no url-style keys Codex cannot execute.
func validateDoc(doc map[string]any) *validate.Result {
	result := &validate.Result{}

	servers, present, err := agent.Section(doc, "mcp_servers")
	if err != nil {
		result.Addf("mcp_servers", "%v", err)
		return result
	}
	if !present {
		return result
	}

	for id, raw := range servers {
		entry, ok := agent.EntryMap(raw)
		if !ok {
			result.Add("mcp_servers."+id, "entry is not a table", raw)
			continue
		}

		for _, key := range []string{"url", "serverUrl"} {
			if _, present := entry[key]; present {
				result.Add("mcp_servers."+id+"."+key,
					"remote entries must be bridged through mcp-remote, not written raw", entry[key])
			}
		}

		command, ok := agent.StringField(entry, "command")
		if !ok || command == "" {
			result.Add("mcp_servers."+id+".command", "command must be a non-empty string", entry["command"])
			continue
		}
		if args, hasArgs := entry["args"]; hasArgs && !agent.IsArray(args) {
			result.Add("mcp_servers."+id+".args", "args must be an array", args)
		}
	}
	return result
}
