package agent

import (
	"context"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/alph-cli/alph/internal/logging"
	"github.com/alph-cli/alph/internal/mcp"
)

// Detection is one provider's detect outcome.
type Detection struct {
	// Agent is the provider name.
	Agent string

	// Path is the detected config file, empty when the agent is absent.
	Path string

	// Detected is true when a usable config file was found.
	Detected bool

	// Err is set when a candidate existed but was unreadable or broken.
	Err error
}

// OpResult is one provider's outcome for a fan-out write operation.
type OpResult struct {
	// Agent is the provider name.
	Agent string

	// BackupPath names the backup the edit left behind, when one was made.
	BackupPath string

	// Err is the provider's failure, nil on success.
	Err error
}

// Registry coordinates operations across providers. Fan-out is concurrent;
// each provider's file edit stays sequential and independently protected by
// the safe-edit engine. There is no transaction across different agents'
// files.
type Registry struct {
	providers []Provider
	log       *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the registry's logger.
func WithLogger(log *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.log = log
	}
}

// NewRegistry builds a registry over the given providers, preserving their
// order for deterministic result ordering.
func NewRegistry(providers []Provider, opts ...RegistryOption) *Registry {
	r := &Registry{
		providers: providers,
		log:       logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Providers returns the registered providers in registration order.
func (r *Registry) Providers() []Provider {
	return r.providers
}

// Lookup returns the provider with the given name.
func (r *Registry) Lookup(name string) (Provider, bool) {
	for _, p := range r.providers {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// filtered returns the providers matching the name filter, all of them when
// the filter is empty.
func (r *Registry) filtered(filter []string) []Provider {
	if len(filter) == 0 {
		return r.providers
	}
	selected := make([]Provider, 0, len(filter))
	for _, p := range r.providers {
		if slices.Contains(filter, p.Name()) {
			selected = append(selected, p)
		}
	}
	return selected
}

// DetectAll runs detection across all (or filtered) providers concurrently.
// One Detection per selected provider, in provider order. A provider's
// detection failure lands in its record; it never aborts the others.
func (r *Registry) DetectAll(ctx context.Context, filter []string, configDir string) []Detection {
	selected := r.filtered(filter)
	results := make([]Detection, len(selected))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range selected {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Detection{Agent: p.Name(), Err: err}
				return nil
			}
			path, err := p.Detect(configDir)
			results[i] = Detection{
				Agent:    p.Name(),
				Path:     path,
				Detected: err == nil && path != "",
				Err:      err,
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// DetectInstalled returns only the providers with a usable config file.
func (r *Registry) DetectInstalled(ctx context.Context, filter []string, configDir string) []Provider {
	detections := r.DetectAll(ctx, filter, configDir)
	installed := make([]Provider, 0, len(detections))
	for _, d := range detections {
		if d.Detected {
			if p, ok := r.Lookup(d.Agent); ok {
				installed = append(installed, p)
			}
		}
	}
	return installed
}

// ConfigureAll applies one server registration across providers
// concurrently. Each provider's failure is confined to its own record and
// its own file; rollback on failure is the per-provider safe-edit rollback,
// never a cross-provider transaction.
func (r *Registry) ConfigureAll(ctx context.Context, providers []Provider, cfg *mcp.ServerConfig, backup bool) []OpResult {
	results := make([]OpResult, len(providers))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range providers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = OpResult{Agent: p.Name(), Err: err}
				return nil
			}
			backupPath, err := p.Configure(cfg, backup)
			results[i] = OpResult{Agent: p.Name(), BackupPath: backupPath, Err: err}
			if err != nil {
				r.log.Warn("configure failed", "agent", p.Name(), "error", err.Error())
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// RemoveAll applies one removal across providers concurrently, with the
// same per-provider isolation as ConfigureAll.
func (r *Registry) RemoveAll(ctx context.Context, providers []Provider, rm *mcp.RemovalConfig) []OpResult {
	results := make([]OpResult, len(providers))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range providers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = OpResult{Agent: p.Name(), Err: err}
				return nil
			}
			backupPath, err := p.Remove(rm)
			results[i] = OpResult{Agent: p.Name(), BackupPath: backupPath, Err: err}
			if err != nil {
				r.log.Warn("remove failed", "agent", p.Name(), "error", err.Error())
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
