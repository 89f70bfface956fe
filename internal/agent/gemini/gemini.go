// Package gemini is the provider for Gemini CLI's settings.json.
package gemini

import (
	"github.com/alph-cli/alph/internal/agent"
	"github.com/alph-cli/alph/internal/paths"
	"github.com/alph-cli/alph/internal/validate"
)

// New builds the Gemini provider. Gemini keeps mcpServers inside
// ~/.gemini/settings.json alongside unrelated settings, which the safe-edit
// modifier must preserve untouched.
func New(deps agent.Deps) agent.Provider {
	return agent.NewBase(agent.Spec{
		Name:       paths.AgentGemini,
		ServersKey: "mcpServers",
		Validate:   validateDoc,
	}, deps)
}

// validateDoc checks Gemini's structural rules. Gemini infers the transport
// from which URL-like field is present when no explicit transport key
// exists, so the check cross-validates the declared transport against the
// fields actually set: stdio needs command, sse needs url, http entries
// carry httpUrl and no transport key, and url/httpUrl are mutually
// exclusive.
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

		transport, hasTransport := agent.StringField(entry, "transport")
		url, hasURL := agent.StringField(entry, "url")
		httpURL, hasHTTPURL := agent.StringField(entry, "httpUrl")
		command, hasCommand := agent.StringField(entry, "command")

		if hasURL && hasHTTPURL {
			result.Add("mcpServers."+id, "url and httpUrl are mutually exclusive", nil)
			continue
		}

		// Infer the transport from field presence when not declared.
		inferred := transport
		if !hasTransport {
			switch {
			case hasHTTPURL:
				inferred = "http"
			case hasURL:
				inferred = "sse"
			case hasCommand:
				inferred = "stdio"
			}
		}

		switch inferred {
		case "stdio":
			if !hasCommand || command == "" {
				result.Add("mcpServers."+id+".command", "stdio entry requires a non-empty command", entry["command"])
			}
		case "sse":
			if !hasURL || url == "" {
				result.Add("mcpServers."+id+".url", "sse entry requires a url", entry["url"])
			}
		case "http":
			if hasTransport {
				result.Add("mcpServers."+id+".transport", "http entries declare no transport key, only httpUrl", transport)
			}
			if !hasHTTPURL || httpURL == "" {
				result.Add("mcpServers."+id+".httpUrl", "http entry requires httpUrl", entry["httpUrl"])
			}
		case "":
			result.Add("mcpServers."+id, "entry declares no transport and none can be inferred", nil)
		default:
			result.Add("mcpServers."+id+".transport", "unknown transport", transport)
		}
	}
	return result
}
