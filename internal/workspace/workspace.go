// Package workspace manages a local graph directory: its config.json and the
// Solidity sources under src/.
package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ghostlogs/ghost/internal/api"
	"github.com/ghostlogs/ghost/internal/chain"
	"github.com/ghostlogs/ghost/internal/logging"
	"go.uber.org/zap"
)

const (
	ConfigFile = "config.json"
	SourceDir  = "src"

	SchemaFile  = "src/schema.sol"
	EventsFile  = "src/events.sol"
	IndexerFile = "src/indexer.sol"
)

var (
	// ErrNotWorkspace is returned by Open outside a graph directory.
	ErrNotWorkspace = errors.New("config.json not found. This command can only be run in a ghost directory")
	// ErrDirNotEmpty is returned by PrepareDir for a directory with entries.
	ErrDirNotEmpty = errors.New("cannot initialize a graph in a non-empty directory")
)

// GraphConfig is the content of a workspace's config.json. Chain holds the
// persisted chain key (e.g. "BaseMainnet") and is nil until known.
type GraphConfig struct {
	ID        string  `json:"id"`
	VersionID string  `json:"version_id"`
	Chain     *string `json:"chain"`
}

// Workspace is an opened graph directory.
type Workspace struct {
	Dir    string
	Config GraphConfig

	log *zap.Logger
}

// GraphGetter looks up a graph on the service.
type GraphGetter interface {
	GetGraph(ctx context.Context, id string) (*api.Graph, error)
}

// Open loads the workspace rooted at dir. Every path in required (relative
// to dir) must exist.
func Open(dir string, log *zap.Logger, required ...string) (*Workspace, error) {
	cfgPath := filepath.Join(dir, ConfigFile)
	if _, err := os.Stat(cfgPath); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotWorkspace
		}
		return nil, err
	}
	for _, f := range required {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			return nil, fmt.Errorf("%s not found", f)
		}
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", ConfigFile, err)
	}
	var cfg GraphConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", ConfigFile, err)
	}
	return &Workspace{Dir: dir, Config: cfg, log: logging.OrNop(log)}, nil
}

// Read returns the content of a workspace file.
func (w *Workspace) Read(rel string) (string, error) {
	data, err := os.ReadFile(filepath.Join(w.Dir, rel))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Save writes config.json.
func (w *Workspace) Save() error {
	return writeConfig(w.Dir, w.Config)
}

// Ensure fills in a missing chain by asking the service for the graph
// version. A chain the registry cannot persist leaves the config unchanged,
// and a failed write is only logged.
func (w *Workspace) Ensure(ctx context.Context, graphs GraphGetter, reg *chain.Registry) error {
	if w.Config.Chain != nil {
		return nil
	}
	g, err := graphs.GetGraph(ctx, w.Config.VersionID)
	if err != nil {
		return err
	}
	c, err := reg.GetByID(g.Chain)
	if err != nil || !c.Selectable() {
		w.log.Debug("graph chain not persistable", zap.Uint64("chain", g.Chain))
		return nil
	}
	key := c.Key
	w.Config.Chain = &key
	if err := w.Save(); err != nil {
		w.log.Warn("could not update config.json", zap.Error(err))
	}
	return nil
}

// PrepareDir creates dir if needed and refuses one that already has entries.
func PrepareDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return fmt.Errorf("%w: %s", ErrDirNotEmpty, dir)
	}
	return nil
}

// WriteSources writes each file under dir/src, overwriting existing ones.
func WriteSources(dir string, files []api.GraphFile) error {
	src := filepath.Join(dir, SourceDir)
	if err := os.MkdirAll(src, 0o755); err != nil {
		return err
	}
	for _, f := range files {
		if !filepath.IsLocal(f.Path) {
			return fmt.Errorf("refusing to write %q outside %s", f.Path, src)
		}
		p := filepath.Join(src, f.Path)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(p, []byte(f.Code), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", f.Path, err)
		}
	}
	return nil
}

// Init writes the sources and config.json of a new workspace.
func Init(dir string, cfg GraphConfig, files []api.GraphFile) error {
	if err := WriteSources(dir, files); err != nil {
		return err
	}
	return writeConfig(dir, cfg)
}

func writeConfig(dir string, cfg GraphConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, ConfigFile), data, 0o644)
}
