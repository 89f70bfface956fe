package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/alph-cli/alph/internal/agent"
)

// parseKeyValueSlice parses repeated KEY=VALUE flag values into a map.
func parseKeyValueSlice(pairs []string, flagName string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, errors.Newf("invalid %s value %q: expected KEY=VALUE", flagName, pair)
		}
		out[key] = value
	}
	return out, nil
}

// targetProviders resolves which providers a write operation addresses:
// the --agents selection when given, otherwise every detected agent. The
// generic provider (when --mcp-config-file is set) is always included, its
// path being an explicit instruction to manage it.
func targetProviders(ctx context.Context, reg *agent.Registry) ([]agent.Provider, error) {
	if len(agentsFlag) > 0 {
		var selected []agent.Provider
		for _, name := range agentsFlag {
			p, ok := reg.Lookup(name)
			if !ok {
				return nil, errors.Newf("unknown agent %q", name)
			}
			selected = append(selected, p)
		}
		if mcpConfigFile != "" {
			if p, ok := reg.Lookup("generic"); ok {
				selected = append(selected, p)
			}
		}
		return selected, nil
	}

	detected := reg.DetectInstalled(ctx, nil, dirFlag)
	if mcpConfigFile != "" {
		if p, ok := reg.Lookup("generic"); ok {
			var present bool
			for _, d := range detected {
				if d.Name() == "generic" {
					present = true
					break
				}
			}
			if !present {
				detected = append(detected, p)
			}
		}
	}
	if len(detected) == 0 {
		return nil, errors.New("no agents detected (use --agents to target specific ones)")
	}
	return detected, nil
}

// reportResults prints one line per provider outcome and returns an error
// when any operation failed.
func reportResults(verb string, results []agent.OpResult) error {
	var failed []string
	for _, res := range results {
		if res.Err != nil {
			fmt.Printf("  %s: %s failed: %v\n", res.Agent, verb, res.Err)
			failed = append(failed, res.Agent)
			continue
		}
		if res.BackupPath != "" {
			fmt.Printf("  %s: done (backup: %s)\n", res.Agent, res.BackupPath)
		} else {
			fmt.Printf("  %s: done\n", res.Agent)
		}
	}
	if len(failed) > 0 {
		return errors.Newf("%s failed for: %s", verb, strings.Join(failed, ", "))
	}
	return nil
}

// truncate shortens a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
