// Package warp is the provider for Warp's mcp.json.
package warp

import (
	"github.com/alph-cli/alph/internal/agent"
	"github.com/alph-cli/alph/internal/paths"
	"github.com/alph-cli/alph/internal/validate"
)

// New builds the Warp provider. Warp reads remote entries through either a
// url or serverUrl key depending on version, so rendered entries carry
// both; the validator accepts either.
func New(deps agent.Deps) agent.Provider {
	return agent.NewBase(agent.Spec{
		Name:       paths.AgentWarp,
		ServersKey: "mcpServers",
		Validate:   validateDoc,
	}, deps)
}

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

		command, hasCommand := agent.StringField(entry, "command")
		_, hasURL := agent.StringField(entry, "url")
		_, hasServerURL := agent.StringField(entry, "serverUrl")

		switch {
		case hasURL || hasServerURL:
			// remote entry, nothing further to require
		case hasCommand:
			if command == "" {
				result.Add("mcpServers."+id+".command", "command must be non-empty", command)
			}
		default:
			result.Add("mcpServers."+id, "entry needs a command or a url", nil)
		}
	}
	return result
}
