package agent

import (
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/alph-cli/alph/internal/backup"
	alpherrors "github.com/alph-cli/alph/internal/errors"
	"github.com/alph-cli/alph/internal/fileops"
	"github.com/alph-cli/alph/internal/git"
	"github.com/alph-cli/alph/internal/mcp"
	"github.com/alph-cli/alph/internal/paths"
	"github.com/alph-cli/alph/internal/render"
	"github.com/alph-cli/alph/internal/safeedit"
	"github.com/alph-cli/alph/internal/validate"
)

// Spec describes one agent's configuration layout. Per-agent packages fill
// in a Spec and hand it to NewBase; path and document hooks left nil get
// defaults covering the common case of a flat server map under ServersKey
// in a file from the paths package tables.
type Spec struct {
	// Name is the agent identifier, matching the paths and render tables.
	Name string

	// ServersKey is the document key the server map lives under
	// ("mcpServers" for most agents, "mcp_servers" for Codex).
	ServersKey string

	// Codec is the document format. Nil means JSON.
	Codec fileops.Codec

	// Validate is the structural predicate over a parsed document. It must
	// tolerate both in-memory and decoded value representations.
	Validate func(doc map[string]any) *validate.Result

	// GlobalPath resolves the agent-wide config file. Nil means the paths
	// package default for Name.
	GlobalPath func() string

	// ProjectPath resolves the project-scoped config file under root, or
	// empty when the agent has no separate project file. Nil means the
	// paths package default for Name.
	ProjectPath func(root string) string

	// EnvVar is the override environment variable. Empty with
	// DisableEnvOverride false means the paths package default.
	EnvVar string

	// DisableEnvOverride opts out of env-based path overrides entirely
	// (the generic provider, whose path is caller-supplied).
	DisableEnvOverride bool

	// Legacy returns older config locations still probed during
	// detection. Nil means the paths package default for Name.
	Legacy func() []string

	// NestedProjects marks agents that keep project-scoped entries inside
	// the global file, keyed by project path (Claude). For these the
	// project dir is routed to the document hooks instead of selecting a
	// different file.
	NestedProjects bool

	// Inject, Delete, and IDs override the flat-map document access.
	// projectDir is non-empty only for NestedProjects agents operating on
	// a project scope.
	Inject func(doc map[string]any, id string, entry map[string]any, projectDir string) error
	Delete func(doc map[string]any, id string, projectDir string) (bool, error)
	IDs    func(doc map[string]any, projectDir string) ([]string, error)
}

// Base implements Provider from a Spec. All per-tool providers are a Base;
// the packages under internal/agent differ only in the Spec they build.
type Base struct {
	spec Spec
	deps Deps

	mu         sync.Mutex
	lastBackup *backup.Info
}

// NewBase builds a provider from spec, filling nil hooks with defaults.
func NewBase(spec Spec, deps Deps) *Base {
	if spec.Codec == nil {
		spec.Codec = fileops.JSON
	}
	if spec.GlobalPath == nil {
		name := spec.Name
		spec.GlobalPath = func() string { return paths.GlobalConfigPath(name) }
	}
	if spec.ProjectPath == nil {
		name := spec.Name
		spec.ProjectPath = func(root string) string { return paths.ProjectConfigPath(name, root) }
	}
	if spec.EnvVar == "" && !spec.DisableEnvOverride {
		spec.EnvVar = paths.EnvOverride(spec.Name)
	}
	if spec.Legacy == nil {
		name := spec.Name
		spec.Legacy = func() []string { return paths.LegacyConfigPaths(name) }
	}

	b := &Base{spec: spec, deps: deps}
	if spec.Inject == nil {
		b.spec.Inject = b.flatInject
	}
	if spec.Delete == nil {
		b.spec.Delete = b.flatDelete
	}
	if spec.IDs == nil {
		b.spec.IDs = b.flatIDs
	}
	return b
}

// Name implements Provider.
func (b *Base) Name() string { return b.spec.Name }

// envPath returns the env-override path, empty when unset.
func (b *Base) envPath() string {
	if b.spec.EnvVar == "" {
		return ""
	}
	return os.Getenv(b.spec.EnvVar)
}

// configPath resolves the file a write or read targets: env override first,
// then the project file when a project dir is given and the agent has one,
// then the global default.
func (b *Base) configPath(configDir string) string {
	if p := b.envPath(); p != "" {
		return p
	}
	if configDir != "" {
		if p := b.spec.ProjectPath(configDir); p != "" {
			return p
		}
	}
	return b.spec.GlobalPath()
}

// projectDirFor returns the project dir to route to document hooks. Only
// nested-project agents care; everyone else addresses project scope through
// a separate file.
func (b *Base) projectDirFor(configDir string) string {
	if b.spec.NestedProjects && configDir != "" {
		return configDir
	}
	return ""
}

// Detect implements Provider.
func (b *Base) Detect(configDir string) (string, error) {
	var candidates []string
	if p := b.envPath(); p != "" {
		candidates = append(candidates, p)
	}
	if configDir != "" {
		if p := b.spec.ProjectPath(configDir); p != "" {
			candidates = append(candidates, p)
		}
	}
	if p := b.spec.GlobalPath(); p != "" {
		candidates = append(candidates, p)
	}
	candidates = append(candidates, b.spec.Legacy()...)

	for _, path := range candidates {
		if !b.deps.Ops.FileExists(path) {
			continue
		}
		if !b.deps.Ops.IsReadable(path) {
			return "", errors.Mark(
				errors.Newf("%s config %s exists but is not readable", b.spec.Name, path),
				alpherrors.ErrPermissionDenied,
			)
		}
		if _, err := b.deps.Ops.ReadDoc(path, b.spec.Codec); err != nil {
			return "", errors.Wrapf(err, "%s config %s exists but does not parse", b.spec.Name, path)
		}
		return path, nil
	}
	return "", nil
}

// validator adapts the spec's structural predicate to the safe-edit
// contract. Nil when the spec has none.
func (b *Base) validator() safeedit.Validator {
	if b.spec.Validate == nil {
		return nil
	}
	return func(doc map[string]any) error {
		return b.spec.Validate(doc).Err()
	}
}

func (b *Base) editOptions(withBackup bool) []safeedit.EditOption {
	opts := []safeedit.EditOption{safeedit.WithCodec(b.spec.Codec)}
	if v := b.validator(); v != nil {
		opts = append(opts, safeedit.WithValidator(v))
	}
	if !withBackup {
		opts = append(opts, safeedit.WithoutBackup())
	}
	return opts
}

func (b *Base) setLastBackup(info *backup.Info) {
	if info == nil {
		return
	}
	b.mu.Lock()
	b.lastBackup = info
	b.mu.Unlock()
}

// Configure implements Provider.
func (b *Base) Configure(cfg *mcp.ServerConfig, withBackup bool) (string, error) {
	path := b.configPath(cfg.ConfigDir)
	if path == "" {
		return "", errors.Newf("cannot resolve %s config path", b.spec.Name)
	}

	entry, err := render.Entry(b.spec.Name, cfg)
	if err != nil {
		return "", errors.Wrapf(err, "rendering %s entry for %s", cfg.ServerID, b.spec.Name)
	}

	if err := b.deps.Ops.EnsureDir(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	projectDir := b.projectDirFor(cfg.ConfigDir)
	result := b.deps.Engine.Edit(path, func(doc map[string]any) (map[string]any, error) {
		if err := b.spec.Inject(doc, cfg.ServerID, entry, projectDir); err != nil {
			return nil, err
		}
		return doc, nil
	}, b.editOptions(withBackup)...)

	if result.Err != nil {
		return "", errors.Wrapf(result.Err, "configuring %s for %s", cfg.ServerID, b.spec.Name)
	}

	b.setLastBackup(result.Backup)
	b.deps.Log.Info("server configured",
		"agent", b.spec.Name, "server", cfg.ServerID, "path", path)
	if result.Backup != nil {
		return result.Backup.BackupPath, nil
	}
	return "", nil
}

// target is one (file, project dir) pair a removal may touch.
type target struct {
	path       string
	projectDir string
}

// globalTarget is the agent-wide file, honoring the env override.
func (b *Base) globalTarget() target {
	if p := b.envPath(); p != "" {
		return target{path: p}
	}
	return target{path: b.spec.GlobalPath()}
}

// projectRoots returns the likely project roots for a removal: the explicit
// config dir when given, otherwise the working directory, each widened to
// its enclosing git repository root when one exists.
func (b *Base) projectRoots(rm *mcp.RemovalConfig) []string {
	var roots []string
	add := func(root string) {
		if root != "" && !slices.Contains(roots, root) {
			roots = append(roots, root)
		}
	}

	if rm.ConfigDir != "" {
		add(rm.ConfigDir)
		if repo, err := git.RepoRoot(rm.ConfigDir); err == nil {
			add(repo)
		}
		return roots
	}

	if cwd, err := os.Getwd(); err == nil {
		add(cwd)
	}
	add(git.WorkingRoot())
	return roots
}

// projectTargets maps project roots onto removal targets. Nested-project
// agents address each root inside the global file; others have a separate
// file per root or no project scope at all.
func (b *Base) projectTargets(roots []string) []target {
	var targets []target
	for _, root := range roots {
		if b.spec.NestedProjects {
			targets = append(targets, target{path: b.globalTarget().path, projectDir: root})
			continue
		}
		if p := b.spec.ProjectPath(root); p != "" {
			targets = append(targets, target{path: p})
		}
	}
	return targets
}

// removalTargets expands the removal's scope policy into concrete targets.
func (b *Base) removalTargets(rm *mcp.RemovalConfig) []target {
	var targets []target
	add := func(t target) {
		if t.path == "" {
			return
		}
		for _, existing := range targets {
			if existing == t {
				return
			}
		}
		targets = append(targets, t)
	}

	scope := rm.EffectiveScope()
	if scope == mcp.ScopeGlobal || scope == mcp.ScopeAuto || scope == mcp.ScopeAll {
		add(b.globalTarget())
	}
	if scope == mcp.ScopeProject || scope == mcp.ScopeAuto || scope == mcp.ScopeAll {
		for _, t := range b.projectTargets(b.projectRoots(rm)) {
			add(t)
		}
	}
	return targets
}

// hasInTarget reports whether the id is registered in one target.
func (b *Base) hasInTarget(t target, id string) (bool, error) {
	if !b.deps.Ops.FileExists(t.path) {
		return false, nil
	}
	doc, err := b.deps.Ops.ReadDoc(t.path, b.spec.Codec)
	if err != nil {
		return false, err
	}
	ids, err := b.spec.IDs(doc, t.projectDir)
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, id), nil
}

// Remove implements Provider. Targets are scanned before anything is
// edited: when the id is absent from every scope the policy implies, the
// removal fails with a NotFound kind and no file is touched. ScopeAuto
// stops at the first scope holding the id; ScopeAll sweeps them all.
func (b *Base) Remove(rm *mcp.RemovalConfig) (string, error) {
	targets := b.removalTargets(rm)

	var hits []target
	for _, t := range targets {
		found, err := b.hasInTarget(t, rm.ServerID)
		if err != nil {
			return "", errors.Wrapf(err, "scanning %s for %s", t.path, rm.ServerID)
		}
		if found {
			hits = append(hits, t)
		}
	}

	if len(hits) == 0 {
		return "", errors.Mark(
			errors.Newf("server %q not found in any %s scope (%s)",
				rm.ServerID, b.spec.Name, string(rm.EffectiveScope())),
			alpherrors.ErrNotFound,
		)
	}
	if rm.EffectiveScope() == mcp.ScopeAuto {
		hits = hits[:1]
	}

	var backupPath string
	for _, t := range hits {
		projectDir := t.projectDir
		result := b.deps.Engine.Edit(t.path, func(doc map[string]any) (map[string]any, error) {
			if _, err := b.spec.Delete(doc, rm.ServerID, projectDir); err != nil {
				return nil, err
			}
			return doc, nil
		}, b.editOptions(rm.Backup)...)

		if result.Err != nil {
			return "", errors.Wrapf(result.Err, "removing %s from %s", rm.ServerID, t.path)
		}
		b.setLastBackup(result.Backup)
		if result.Backup != nil {
			backupPath = result.Backup.BackupPath
		}
		b.deps.Log.Info("server removed",
			"agent", b.spec.Name, "server", rm.ServerID, "path", t.path)
	}
	return backupPath, nil
}

// ListServers implements Provider.
func (b *Base) ListServers(configDir string) ([]string, error) {
	path := b.configPath(configDir)
	if path == "" || !b.deps.Ops.FileExists(path) {
		return nil, nil
	}
	doc, err := b.deps.Ops.ReadDoc(path, b.spec.Codec)
	if err != nil {
		return nil, err
	}
	ids, err := b.spec.IDs(doc, b.projectDirFor(configDir))
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}

// HasServer implements Provider.
func (b *Base) HasServer(id, configDir string) (bool, error) {
	ids, err := b.ListServers(configDir)
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, id), nil
}

// Validate implements Provider. Any failure to read or parse the current
// file reads as false; nothing propagates.
func (b *Base) Validate() bool {
	path := b.configPath("")
	if path == "" || !b.deps.Ops.FileExists(path) {
		return false
	}
	doc, err := b.deps.Ops.ReadDoc(path, b.spec.Codec)
	if err != nil {
		return false
	}
	if b.spec.Validate == nil {
		return true
	}
	return b.spec.Validate(doc).OK()
}

// Rollback implements Provider.
func (b *Base) Rollback() (string, error) {
	b.mu.Lock()
	info := b.lastBackup
	b.mu.Unlock()

	if info == nil {
		latest, err := b.deps.Backups.Latest(b.configPath(""))
		if err != nil {
			return "", err
		}
		info = latest
	}
	if info == nil {
		return "", nil
	}

	if err := b.deps.Backups.Restore(info); err != nil {
		return "", err
	}

	// Re-validate what the restore produced. A backup that fails the
	// structural check means the rollback itself cannot be trusted.
	if b.spec.Validate != nil {
		doc, err := b.deps.Ops.ReadDoc(info.OriginalPath, b.spec.Codec)
		if err != nil {
			return "", errors.Mark(
				errors.Wrapf(err, "restored %s config does not parse", b.spec.Name),
				alpherrors.ErrRollbackFailed,
			)
		}
		if result := b.spec.Validate(doc); !result.OK() {
			return "", errors.Mark(
				errors.Wrapf(result.Err(), "restored %s config fails validation", b.spec.Name),
				alpherrors.ErrRollbackFailed,
			)
		}
	}
	return info.BackupPath, nil
}

// flatInject is the default Inject: put the entry into the server map at
// the document root.
func (b *Base) flatInject(doc map[string]any, id string, entry map[string]any, _ string) error {
	section, err := EnsureSection(doc, b.spec.ServersKey)
	if err != nil {
		return err
	}
	section[id] = entry
	return nil
}

// flatDelete is the default Delete.
func (b *Base) flatDelete(doc map[string]any, id string, _ string) (bool, error) {
	section, present, err := Section(doc, b.spec.ServersKey)
	if err != nil || !present {
		return false, err
	}
	if _, ok := section[id]; !ok {
		return false, nil
	}
	delete(section, id)
	return true, nil
}

// flatIDs is the default IDs.
func (b *Base) flatIDs(doc map[string]any, _ string) ([]string, error) {
	section, present, err := Section(doc, b.spec.ServersKey)
	if err != nil || !present {
		return nil, err
	}
	ids := make([]string, 0, len(section))
	for id := range section {
		ids = append(ids, id)
	}
	return ids, nil
}
